package history

import (
	"github.com/darkkaiser/biomac-scraper/internal/catalog"
	"github.com/shopspring/decimal"
)

// PriceChange 이전 실행과 비교하여 실제 판매가가 달라진 상품입니다.
type PriceChange struct {
	Category string
	Title    string
	Previous decimal.NullDecimal
	Current  decimal.NullDecimal
}

// Changes previous(상품 제목별 이전 판매가)와 records를 비교하여 가격이 달라진 상품을 입력 순서대로 반환합니다.
// 이전 실행에 없던 상품은 포함하지 않습니다.
func Changes(previous map[string]decimal.NullDecimal, records []catalog.ProductRecord) []PriceChange {
	var changes []PriceChange
	for _, r := range records {
		prev, ok := previous[r.Title]
		if !ok || sameNullDecimal(prev, r.EffectivePrice) {
			continue
		}
		changes = append(changes, PriceChange{
			Category: r.Category,
			Title:    r.Title,
			Previous: prev,
			Current:  r.EffectivePrice,
		})
	}
	return changes
}

func sameNullDecimal(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}
