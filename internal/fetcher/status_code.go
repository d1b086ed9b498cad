package fetcher

import "net/http"

// StatusCodeFetcher 허용되지 않은 상태 코드의 응답을 *HTTPStatusError로 바꾸는 데코레이터입니다.
type StatusCodeFetcher struct {
	delegate Fetcher

	allowedStatusCodes []int
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*StatusCodeFetcher)(nil)

// NewStatusCodeFetcher 허용 목록이 비어 있으면 200 OK만 허용합니다.
func NewStatusCodeFetcher(delegate Fetcher, allowedStatusCodes ...int) *StatusCodeFetcher {
	return &StatusCodeFetcher{
		delegate:           delegate,
		allowedStatusCodes: allowedStatusCodes,
	}
}

func (f *StatusCodeFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}

		return nil, err
	}

	if statusErr := CheckResponseStatus(resp, f.allowedStatusCodes...); statusErr != nil {
		drainAndCloseBody(resp.Body)

		return nil, statusErr
	}

	return resp, nil
}
