package pipeline

import (
	"time"

	"github.com/darkkaiser/biomac-scraper/internal/catalog"
	"github.com/darkkaiser/biomac-scraper/internal/history"
)

// Result 수집 실행 한 번의 결과입니다.
type Result struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time

	// File 작성된 엑셀 파일 경로
	File string

	Records []catalog.ProductRecord
	Events  []catalog.Event

	// PerCategory 설정된 카테고리 순서대로 집계한 레코드 수
	PerCategory []CategorySummary

	// Changes 이전 실행 대비 실제 판매가가 달라진 상품 (이력 저장을 사용하지 않으면 nil)
	Changes []history.PriceChange
}

// CategorySummary 카테고리 한 개의 집계입니다.
type CategorySummary struct {
	Category    string
	Records     int
	Discounted  int
	Unavailable int
}

// EventCount 종류별 데이터 품질 이벤트 수를 반환합니다.
func (r *Result) EventCount(kind catalog.EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// summarize categories 순서대로 레코드를 집계합니다. 레코드가 없는 카테고리도 0건으로 포함됩니다.
func summarize(categories []string, records []catalog.ProductRecord) []CategorySummary {
	index := make(map[string]int, len(categories))
	summaries := make([]CategorySummary, 0, len(categories))
	for _, c := range categories {
		if _, ok := index[c]; ok {
			continue
		}
		index[c] = len(summaries)
		summaries = append(summaries, CategorySummary{Category: c})
	}

	for i := range records {
		r := &records[i]
		pos, ok := index[r.Category]
		if !ok {
			pos = len(summaries)
			index[r.Category] = pos
			summaries = append(summaries, CategorySummary{Category: r.Category})
		}

		s := &summaries[pos]
		s.Records++
		if r.Discounted() {
			s.Discounted++
		}
		if r.Unavailable() {
			s.Unavailable++
		}
	}

	return summaries
}
