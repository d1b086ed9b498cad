package fetcher

import (
	"io"
	"net/http"
	"slices"

	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
)

// bodySnippetLimit HTTPStatusError에 담을 응답 본문의 최대 크기
const bodySnippetLimit = 4096

// CheckResponseStatus 응답의 상태 코드가 허용 목록에 있는지 검증합니다.
//
// 허용 목록이 비어 있으면 200 OK만 허용합니다. 실패 시 본문 일부를 읽어 *HTTPStatusError에 담으며,
// 이후 resp.Body는 일부가 소비된 상태이므로 호출자가 즉시 닫아야 합니다.
func CheckResponseStatus(resp *http.Response, allowedStatusCodes ...int) error {
	if len(allowedStatusCodes) == 0 {
		if resp.StatusCode == http.StatusOK {
			return nil
		}
	} else if slices.Contains(allowedStatusCodes, resp.StatusCode) {
		return nil
	}

	var urlStr, bodySnippet string
	if resp.Request != nil {
		urlStr = redactURL(resp.Request.URL)
	}
	if resp.Body != nil {
		if b, err := io.ReadAll(io.LimitReader(resp.Body, bodySnippetLimit)); err == nil {
			bodySnippet = string(b)
		}
	}

	return &HTTPStatusError{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		URL:         urlStr,
		Header:      redactHeaders(resp.Header),
		BodySnippet: bodySnippet,
		Cause:       newErrHTTPStatus(statusErrorType(resp.StatusCode), resp.Status, urlStr),
	}
}

// statusErrorType 상태 코드를 에러 타입으로 분류합니다. 5xx, 408, 429는 재시도 대상인 Unavailable입니다.
func statusErrorType(code int) apperrors.ErrorType {
	switch {
	case code == http.StatusNotFound:
		return apperrors.NotFound
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return apperrors.Forbidden
	case code == http.StatusBadRequest:
		return apperrors.InvalidInput
	case code == http.StatusTooManyRequests, code == http.StatusRequestTimeout, code >= 500:
		return apperrors.Unavailable
	default:
		return apperrors.ExecutionFailed
	}
}
