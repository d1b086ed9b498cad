package fetcher

import (
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultTimeout 요청 하나에 허용되는 기본 시간
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRedirects 따라갈 리다이렉트의 기본 최대 횟수
	DefaultMaxRedirects = 10
)

// HTTPFetcher http.Client를 감싸 실제 네트워크 요청을 수행하는 체인의 가장 안쪽 Fetcher입니다.
type HTTPFetcher struct {
	client *http.Client
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*HTTPFetcher)(nil)

// Option HTTPFetcher의 설정을 변경하는 함수입니다.
type Option func(*HTTPFetcher)

// NewHTTPFetcher 기본 타임아웃과 리다이렉트 정책을 가진 HTTPFetcher를 생성합니다.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client: &http.Client{
			Timeout:       DefaultTimeout,
			CheckRedirect: newCheckRedirectPolicy(DefaultMaxRedirects),
		},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// WithTimeout 요청 전체(연결, 리다이렉트, 본문 읽기 포함)의 타임아웃을 설정합니다.
func WithTimeout(timeout time.Duration) Option {
	return func(f *HTTPFetcher) {
		if timeout > 0 {
			f.client.Timeout = timeout
		}
	}
}

// WithMaxRedirects 따라갈 리다이렉트의 최대 횟수를 설정합니다. 0이면 리다이렉트를 따라가지 않습니다.
func WithMaxRedirects(max int) Option {
	if max < 0 {
		max = DefaultMaxRedirects
	}

	return func(f *HTTPFetcher) {
		f.client.CheckRedirect = newCheckRedirectPolicy(max)
	}
}

// WithTransport 사용할 RoundTripper를 설정합니다.
func WithTransport(transport http.RoundTripper) Option {
	return func(f *HTTPFetcher) {
		f.client.Transport = transport
	}
}

// WithCookieJar 쿠키 저장소를 설정합니다. 로그인 세션 유지에 사용됩니다.
func WithCookieJar(jar http.CookieJar) Option {
	return func(f *HTTPFetcher) {
		f.client.Jar = jar
	}
}

func (f *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	return f.client.Do(req)
}

// Jar 설정된 쿠키 저장소를 반환합니다.
func (f *HTTPFetcher) Jar() http.CookieJar {
	return f.client.Jar
}

func newCheckRedirectPolicy(max int) func(req *http.Request, via []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if max == 0 {
			return http.ErrUseLastResponse
		}
		if len(via) >= max {
			return fmt.Errorf("stopped after %d redirects", max)
		}
		return nil
	}
}
