// Package fetcher HTTP 요청을 실행하는 Fetcher 인터페이스와 데코레이터 체인을 제공합니다.
//
// 체인은 바깥쪽부터 다음 순서로 조립됩니다.
//
//	LoggingFetcher ─▶ UserAgentFetcher ─▶ RetryFetcher ─▶ StatusCodeFetcher ─▶ MaxBytesFetcher ─▶ HTTPFetcher
//
// 각 데코레이터는 하나의 관심사만 처리하며, 조립은 NewFromConfig가 담당합니다.
package fetcher

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// component 로깅용 컴포넌트 이름
const component = "fetcher"

// Fetcher HTTP 요청을 실행하는 인터페이스입니다.
//
// 에러를 반환하는 경우 응답 Body는 이미 정리된 상태여야 하며, 호출자는 nil 응답을 가정해야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get 주어진 URL로 GET 요청을 보냅니다.
func Get(ctx context.Context, f Fetcher, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, newErrRequestCreationFailed(err, rawURL)
	}

	return do(f, req)
}

// PostForm application/x-www-form-urlencoded 본문으로 POST 요청을 보냅니다.
//
// 본문은 strings.Reader로 만들어지므로 GetBody가 자동으로 설정됩니다.
func PostForm(ctx context.Context, f Fetcher, rawURL string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, newErrRequestCreationFailed(err, rawURL)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return do(f, req)
}

func do(f Fetcher, req *http.Request) (*http.Response, error) {
	resp, err := f.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}

		return nil, err
	}

	return resp, nil
}
