package fetcher

import (
	"fmt"
	"net/http"
)

// HTTPStatusError 허용되지 않은 HTTP 상태 코드를 받았을 때 반환되는 에러입니다.
//
// URL과 Header는 민감 정보가 마스킹된 상태로 저장됩니다.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	URL        string
	Header     http.Header

	// BodySnippet 응답 본문의 앞부분 (최대 4KB)
	BodySnippet string

	// Cause 에러 분류(apperrors.ErrorType)를 담은 원인 에러
	Cause error
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d (%s)", e.StatusCode, e.Status)
	if e.URL != "" {
		msg += fmt.Sprintf(" URL: %s", e.URL)
	}
	if e.BodySnippet != "" {
		msg += fmt.Sprintf(", Body: %s", e.BodySnippet)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *HTTPStatusError) Unwrap() error {
	return e.Cause
}
