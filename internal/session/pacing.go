package session

import (
	"net/http"
	"time"

	"github.com/darkkaiser/biomac-scraper/internal/fetcher"
	"golang.org/x/time/rate"
)

// PacedFetcher 연속된 요청 사이에 최소 간격을 두는 데코레이터입니다.
//
// 상점 서버에 부담을 주지 않도록 로그인과 카테고리 요청 전체가 하나의 Limiter를 공유합니다.
type PacedFetcher struct {
	delegate fetcher.Fetcher
	limiter  *rate.Limiter
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ fetcher.Fetcher = (*PacedFetcher)(nil)

// NewPacedFetcher interval이 0 이하이면 간격 없이 요청합니다.
func NewPacedFetcher(delegate fetcher.Fetcher, interval time.Duration) *PacedFetcher {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	return &PacedFetcher{
		delegate: delegate,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

func (f *PacedFetcher) Do(req *http.Request) (*http.Response, error) {
	if err := f.limiter.Wait(req.Context()); err != nil {
		return nil, newErrPacingCanceled(err)
	}

	return f.delegate.Do(req)
}
