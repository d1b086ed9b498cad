package fetcher

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
	applog "github.com/darkkaiser/biomac-scraper/pkg/log"
)

const (
	minAllowedRetries = 0
	maxAllowedRetries = 10

	minAllowedRetryDelay = time.Millisecond
	defaultMaxRetryDelay = 30 * time.Second
)

// RetryFetcher 일시적인 실패(네트워크 오류, 5xx, 429, 408)에 대해 요청을 재시도하는 데코레이터입니다.
//
// 대기 시간은 지수 백오프에 Full Jitter를 적용하여 계산하며, 서버가 Retry-After 헤더를 보내면 그 값을 우선합니다.
// 멱등성이 보장되지 않는 메서드(POST 등)는 재시도하지 않습니다.
type RetryFetcher struct {
	delegate Fetcher

	maxRetries    int
	minRetryDelay time.Duration
	maxRetryDelay time.Duration
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*RetryFetcher)(nil)

// NewRetryFetcher maxRetries는 0~10 범위로, 대기 시간은 최소 1ms 이상으로 보정됩니다.
// maxRetryDelay가 0이면 30초를 사용합니다.
func NewRetryFetcher(delegate Fetcher, maxRetries int, minRetryDelay, maxRetryDelay time.Duration) *RetryFetcher {
	minRetryDelay, maxRetryDelay = normalizeRetryDelays(minRetryDelay, maxRetryDelay)

	return &RetryFetcher{
		delegate:      delegate,
		maxRetries:    normalizeMaxRetries(maxRetries),
		minRetryDelay: minRetryDelay,
		maxRetryDelay: maxRetryDelay,
	}
}

func (f *RetryFetcher) Do(req *http.Request) (*http.Response, error) {
	effectiveMaxRetries := f.maxRetries
	if !isIdempotentMethod(req.Method) {
		effectiveMaxRetries = 0
	}

	// 본문을 다시 만들 수 없으면 재시도할 수 없습니다.
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil && effectiveMaxRetries > 0 {
		applog.WithComponentAndFields(component, applog.Fields{
			"url":         redactURL(req.URL),
			"method":      req.Method,
			"max_retries": f.maxRetries,
		}).Warn("재시도 비활성화: 요청 본문 재생성 불가 (GetBody nil)")

		effectiveMaxRetries = 0
	}

	var lastErr error
	var lastResp *http.Response

	for i := 0; i <= effectiveMaxRetries; i++ {
		if i > 0 {
			delay, err := f.nextDelay(i, lastResp, lastErr)
			if err != nil {
				if lastResp != nil {
					drainAndCloseBody(lastResp.Body)
				}
				return nil, err
			}

			f.logRetry(req, i, effectiveMaxRetries, delay, lastResp, lastErr)

			timer := time.NewTimer(delay)
			select {
			case <-req.Context().Done():
				timer.Stop()
				if lastResp != nil && lastResp.Body != nil {
					lastResp.Body.Close()
				}
				return nil, req.Context().Err()

			case <-timer.C:
			}

			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					if lastResp != nil {
						drainAndCloseBody(lastResp.Body)
					}
					return nil, newErrGetBodyFailed(err)
				}

				req = req.Clone(req.Context())
				req.Body = body
			}

			// 이전 응답은 재시도 직전에 정리합니다.
			if lastResp != nil {
				drainAndCloseBody(lastResp.Body)
				lastResp = nil
			}
		}

		resp, err := f.delegate.Do(req)
		if err != nil {
			if resp != nil {
				drainAndCloseBody(resp.Body)
			}

			if req.Context().Err() != nil || !isRetriable(err) {
				return nil, err
			}

			lastErr, lastResp = err, nil
			continue
		}

		if !isRetriableStatus(resp.StatusCode) {
			return resp, nil
		}

		lastErr, lastResp = nil, resp
	}

	if lastResp != nil {
		bodySnippet := ""
		if lastResp.Body != nil {
			bodyBytes, _ := io.ReadAll(io.LimitReader(lastResp.Body, bodySnippetLimit))
			bodySnippet = string(bodyBytes)
			drainAndCloseBody(lastResp.Body)
		}

		return nil, &HTTPStatusError{
			StatusCode:  lastResp.StatusCode,
			Status:      lastResp.Status,
			URL:         redactURL(req.URL),
			Header:      redactHeaders(lastResp.Header),
			BodySnippet: bodySnippet,
			Cause:       ErrMaxRetriesExceeded,
		}
	}

	return nil, newErrMaxRetriesExceeded(lastErr)
}

// nextDelay attempt번째 재시도 전에 기다릴 시간을 계산합니다.
func (f *RetryFetcher) nextDelay(attempt int, lastResp *http.Response, lastErr error) (time.Duration, error) {
	var retryAfter string
	if lastResp != nil {
		retryAfter = lastResp.Header.Get("Retry-After")
	} else {
		var statusErr *HTTPStatusError
		if errors.As(lastErr, &statusErr) && statusErr.Header != nil {
			retryAfter = statusErr.Header.Get("Retry-After")
		}
	}

	if d, ok := parseRetryAfter(retryAfter); ok {
		if d > f.maxRetryDelay {
			return 0, newErrRetryAfterExceeded(d.String(), f.maxRetryDelay.String())
		}
		return d, nil
	}

	delay := f.minRetryDelay * time.Duration(1<<(attempt-1))
	if delay > f.maxRetryDelay || delay <= 0 {
		delay = f.maxRetryDelay
	}

	// Full Jitter: [0, delay] 범위에서 무작위로 선택합니다.
	delay = time.Duration(rand.Int64N(int64(delay) + 1))
	if delay < f.minRetryDelay {
		delay = f.minRetryDelay
	}

	return delay, nil
}

func (f *RetryFetcher) logRetry(req *http.Request, attempt, effectiveMaxRetries int, delay time.Duration, lastResp *http.Response, lastErr error) {
	fields := applog.Fields{
		"url":               redactURL(req.URL),
		"retry":             attempt,
		"max_retries":       f.maxRetries,
		"remaining_retries": effectiveMaxRetries - attempt,
		"delay":             delay.String(),
	}
	if lastErr != nil {
		fields["error"] = lastErr.Error()
		fields["retry_reason"] = "network_error"
	}
	if lastResp != nil {
		fields["status_code"] = lastResp.StatusCode
		fields["retry_reason"] = fmt.Sprintf("status_code_%d", lastResp.StatusCode)
	}

	applog.WithComponentAndFields(component, fields).
		WithContext(req.Context()).
		Warn("재시도 대기 중: 일시적 오류로 인해 요청 재시도를 준비합니다")
}

func normalizeMaxRetries(maxRetries int) int {
	if maxRetries < minAllowedRetries {
		return minAllowedRetries
	}
	if maxRetries > maxAllowedRetries {
		return maxAllowedRetries
	}
	return maxRetries
}

func normalizeRetryDelays(minRetryDelay, maxRetryDelay time.Duration) (time.Duration, time.Duration) {
	if minRetryDelay < minAllowedRetryDelay {
		minRetryDelay = minAllowedRetryDelay
	}
	if maxRetryDelay == 0 {
		maxRetryDelay = defaultMaxRetryDelay
	}
	if maxRetryDelay < minRetryDelay {
		maxRetryDelay = minRetryDelay
	}
	return minRetryDelay, maxRetryDelay
}

func isRetriableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests, http.StatusRequestTimeout:
		return true

	// 서버가 영구적으로 처리할 수 없는 요청
	case http.StatusNotImplemented, http.StatusHTTPVersionNotSupported, http.StatusNetworkAuthenticationRequired:
		return false
	}

	return statusCode >= 500
}

// isRetriable 에러가 재시도로 해결될 수 있는 일시적인 오류인지 판단합니다.
func isRetriable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return isRetriableStatus(statusErr.StatusCode)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if strings.Contains(urlErr.Error(), "redirects") || strings.Contains(urlErr.Error(), "unsupported protocol scheme") {
			return false
		}
	}

	var hostnameErr x509.HostnameError
	var unknownAuthorityErr x509.UnknownAuthorityError
	var certificateInvalidErr x509.CertificateInvalidError
	if errors.As(err, &hostnameErr) || errors.As(err, &unknownAuthorityErr) || errors.As(err, &certificateInvalidErr) {
		return false
	}

	if apperrors.Is(err, apperrors.InvalidInput) ||
		apperrors.Is(err, apperrors.Forbidden) ||
		apperrors.Is(err, apperrors.NotFound) ||
		apperrors.Is(err, apperrors.ExecutionFailed) {
		return false
	}

	return true
}

func isIdempotentMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace, http.MethodPut, http.MethodDelete:
		return true

	default:
		return false
	}
}

// parseRetryAfter Retry-After 헤더 값(초 단위 정수 또는 HTTP 날짜)을 대기 시간으로 변환합니다.
func parseRetryAfter(value string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}

	if seconds, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}

	if date, err := http.ParseTime(value); err == nil {
		d := time.Until(date)
		if d < 0 {
			d = 0
		}
		return d, true
	}

	return 0, false
}
