package fetcher

import (
	"net/http"
	"time"
)

// Config Fetcher 체인을 조립하기 위한 설정입니다. 0 값 필드는 기본값으로 보정됩니다.
type Config struct {
	// Timeout 요청 하나의 전체 타임아웃 (0이면 DefaultTimeout)
	Timeout time.Duration

	// MaxRedirects 따라갈 리다이렉트의 최대 횟수 (nil이면 DefaultMaxRedirects)
	MaxRedirects *int

	// Jar 로그인 세션 쿠키를 보관할 저장소
	Jar http.CookieJar

	// Transport 테스트에서 네트워크를 대체할 RoundTripper
	Transport http.RoundTripper

	// UserAgents 요청마다 무작위로 선택할 User-Agent 목록 (비어 있으면 내장 목록)
	UserAgents []string

	MaxRetries    int
	MinRetryDelay time.Duration
	MaxRetryDelay time.Duration

	// AllowedStatusCodes 성공으로 취급할 상태 코드 (비어 있으면 200 OK만)
	AllowedStatusCodes []int

	// MaxBytes 응답 본문의 최대 크기 (0이면 DefaultMaxBytes, NoLimit이면 제한 없음)
	MaxBytes int64

	DisableLogging bool
}

// NewFromConfig 설정에 따라 Fetcher 체인을 조립합니다.
//
// 체인은 안쪽부터 HTTP ─▶ MaxBytes ─▶ StatusCode ─▶ Retry ─▶ UserAgent ─▶ Logging 순서로 감싸집니다.
// Retry가 StatusCode 바깥에 있으므로 5xx와 429 응답은 *HTTPStatusError로 변환된 뒤 재시도 여부가 판단됩니다.
func NewFromConfig(cfg Config, opts ...Option) Fetcher {
	var httpOpts []Option
	if cfg.Timeout > 0 {
		httpOpts = append(httpOpts, WithTimeout(cfg.Timeout))
	}
	if cfg.MaxRedirects != nil {
		httpOpts = append(httpOpts, WithMaxRedirects(*cfg.MaxRedirects))
	}
	if cfg.Jar != nil {
		httpOpts = append(httpOpts, WithCookieJar(cfg.Jar))
	}
	if cfg.Transport != nil {
		httpOpts = append(httpOpts, WithTransport(cfg.Transport))
	}
	httpOpts = append(httpOpts, opts...)

	var f Fetcher = NewHTTPFetcher(httpOpts...)

	f = NewMaxBytesFetcher(f, cfg.MaxBytes)
	f = NewStatusCodeFetcher(f, cfg.AllowedStatusCodes...)
	f = NewRetryFetcher(f, cfg.MaxRetries, cfg.MinRetryDelay, cfg.MaxRetryDelay)
	f = NewUserAgentFetcher(f, cfg.UserAgents)

	if !cfg.DisableLogging {
		f = NewLoggingFetcher(f)
	}

	return f
}
