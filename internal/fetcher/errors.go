package fetcher

import (
	"errors"
	"fmt"

	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
)

// ErrMaxRetriesExceeded 최대 재시도 횟수를 모두 사용한 뒤에도 요청이 성공하지 못했음을 나타냅니다.
var ErrMaxRetriesExceeded = errors.New("최대 재시도 횟수를 초과했습니다")

func newErrRequestCreationFailed(err error, rawURL string) error {
	return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("HTTP 요청을 생성할 수 없습니다 (URL: %s)", redactRawURL(rawURL)))
}

func newErrMaxRetriesExceeded(lastErr error) error {
	if lastErr == nil {
		return apperrors.Wrap(ErrMaxRetriesExceeded, apperrors.Unavailable, ErrMaxRetriesExceeded.Error())
	}

	return apperrors.Wrap(fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, lastErr), apperrors.Unavailable, "재시도 후에도 요청이 실패했습니다")
}

func newErrRetryAfterExceeded(retryAfter, maxDelay string) error {
	return apperrors.New(apperrors.Unavailable, fmt.Sprintf("서버가 요청한 대기 시간(%s)이 최대 재시도 대기 시간(%s)을 초과하여 재시도를 중단합니다", retryAfter, maxDelay))
}

func newErrGetBodyFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "재시도를 위한 요청 본문 재생성에 실패했습니다")
}

func newErrResponseBodyTooLarge(limit int64) error {
	return apperrors.Newf(apperrors.InvalidInput, "페이지 본문이 %d 바이트 제한(http.max_bytes)을 넘어 읽기를 중단했습니다", limit)
}

func newErrResponseBodyTooLargeByContentLength(contentLength, limit int64) error {
	return apperrors.Newf(apperrors.InvalidInput, "페이지 본문(Content-Length %d 바이트)이 %d 바이트 제한(http.max_bytes)을 넘습니다", contentLength, limit)
}

func newErrHTTPStatus(errType apperrors.ErrorType, status, rawURL string) error {
	if rawURL == "" {
		return apperrors.New(errType, fmt.Sprintf("HTTP 요청이 실패했습니다 (상태: %s)", status))
	}
	return apperrors.New(errType, fmt.Sprintf("HTTP 요청이 실패했습니다 (상태: %s, URL: %s)", status, rawURL))
}
