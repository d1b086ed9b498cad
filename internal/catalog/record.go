package catalog

import (
	"github.com/shopspring/decimal"
)

// ProductRecord 카드 한 개에서 만들어진 상품 레코드입니다. 조립 이후에는 변경하지 않습니다.
//
// FinalPrice와 RoundedPrice는 EffectivePrice가 null일 때만 null입니다.
type ProductRecord struct {
	Title           string              // "por ..." 구절을 제거한 제목
	Weight          WeightSpec          // 킬로그램 단위 중량
	Price           PriceVariant        // 가격 표시 형태
	BasePrice       decimal.NullDecimal // 기준가 (할인 전)
	EffectivePrice  decimal.NullDecimal // 실제 판매가 (할인가가 있으면 할인가)
	DiscountPercent int                 // 할인 배지의 할인율, 없으면 0
	MinPurchaseQty  int                 // 최소 구매 수량, 기본값 1
	Category        string              // 카테고리 URL의 슬러그 (예: frutas)
	MarginPercent   int                 // 적용된 마진(%)
	FinalPrice      decimal.NullDecimal // 마진 적용가
	RoundedPrice    decimal.NullDecimal // 100 단위로 올린 판매가
}

// Unavailable 품절 상품인지 여부를 반환합니다.
func (r *ProductRecord) Unavailable() bool {
	return r.Price.Kind() == PriceUnavailable
}

// Discounted 원래 가격과 할인가가 함께 표시된 상품인지 여부를 반환합니다.
func (r *ProductRecord) Discounted() bool {
	return r.Price.Kind() == PriceDiscounted
}
