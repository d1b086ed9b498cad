package catalog

import (
	"github.com/shopspring/decimal"
)

// DefaultMargin 오버라이드가 없는 상품의 기본 마진(%)입니다.
const DefaultMargin = 30

// ResolveMargin 정리된 제목으로 오버라이드 마진을 찾고, 없으면 기본 마진을 반환합니다.
// 제목은 정확히 일치해야 합니다.
func ResolveMargin(cleanTitle string, overrides map[string]int, defaultMargin int) int {
	if m, ok := overrides[cleanTitle]; ok {
		return m
	}
	return defaultMargin
}

// FinalPrice effective * (100 + margin) / 100 을 계산합니다. effective가 null이면 null입니다.
func FinalPrice(effective decimal.NullDecimal, margin int) decimal.NullDecimal {
	if !effective.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(effective.Decimal.Mul(decimal.NewFromInt(int64(100 + margin))).Shift(-2))
}

// RoundUpToHundred 0에서 멀어지는 방향으로 가장 가까운 100의 배수로 올립니다.
// 스프레드시트의 ROUNDUP(x, -2)와 같으며, 이미 100의 배수이면 그대로 둡니다.
func RoundUpToHundred(price decimal.NullDecimal) decimal.NullDecimal {
	if !price.Valid {
		return decimal.NullDecimal{}
	}

	scaled := price.Decimal.Shift(-2)
	if price.Decimal.Sign() >= 0 {
		scaled = scaled.Ceil()
	} else {
		scaled = scaled.Floor()
	}
	return decimal.NewNullDecimal(scaled.Shift(2))
}
