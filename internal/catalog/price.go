package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceKind 가격 표시 형태입니다.
type PriceKind int

const (
	// PriceSingle 할인 없이 가격 하나만 표시됨
	PriceSingle PriceKind = iota

	// PriceDiscounted 취소선이 그어진 원래 가격과 현재 가격이 함께 표시됨
	PriceDiscounted

	// PriceUnavailable 품절
	PriceUnavailable
)

func (k PriceKind) String() string {
	switch k {
	case PriceSingle:
		return "Single"
	case PriceDiscounted:
		return "Discounted"
	case PriceUnavailable:
		return "Unavailable"
	default:
		return fmt.Sprintf("PriceKind(%d)", int(k))
	}
}

// PriceVariant 카드 한 개의 가격 상태입니다. Unavailable, Single, Discounted 생성자로 만듭니다.
//
// Discounted의 현재 가격이 원래 가격보다 높더라도 그대로 허용합니다.
type PriceVariant struct {
	kind     PriceKind
	original decimal.NullDecimal
	current  decimal.NullDecimal
}

// Unavailable 품절 상태의 PriceVariant를 반환합니다.
func Unavailable() PriceVariant {
	return PriceVariant{kind: PriceUnavailable}
}

// Single 가격 하나만 표시된 PriceVariant를 반환합니다. amount는 null일 수 있습니다.
func Single(amount decimal.NullDecimal) PriceVariant {
	return PriceVariant{kind: PriceSingle, original: amount, current: amount}
}

// Discounted 원래 가격과 현재 가격이 함께 표시된 PriceVariant를 반환합니다.
func Discounted(original, current decimal.NullDecimal) PriceVariant {
	return PriceVariant{kind: PriceDiscounted, original: original, current: current}
}

// Kind 가격 표시 형태를 반환합니다.
func (v PriceVariant) Kind() PriceKind {
	return v.kind
}

// Prices 기준가와 실제 판매가를 반환합니다.
//
//   - Unavailable      ─▶ null, null
//   - Discounted(o, c) ─▶ o, c
//   - Single(a)        ─▶ a, a
func (v PriceVariant) Prices() (base, effective decimal.NullDecimal) {
	if v.kind == PriceUnavailable {
		return decimal.NullDecimal{}, decimal.NullDecimal{}
	}
	return v.original, v.current
}

func (v PriceVariant) String() string {
	switch v.kind {
	case PriceUnavailable:
		return "Unavailable"
	case PriceDiscounted:
		return fmt.Sprintf("Discounted(%s, %s)", nullString(v.original), nullString(v.current))
	default:
		return fmt.Sprintf("Single(%s)", nullString(v.current))
	}
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return "null"
	}
	return d.Decimal.String()
}

// amountReplacer 통화 기호와 공백(줄바꿈 없는 공백 포함)을 제거하고 천 단위 구분자(.)를 없앱니다.
var amountReplacer = strings.NewReplacer(
	"$", "",
	" ", "",
	"\u00a0", "",
	"\t", "",
	"\n", "",
	".", "",
)

// ParseAmount 아르헨티나 표기법("$1.200,50")의 금액 문자열을 decimal로 변환합니다.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := amountReplacer.Replace(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.Zero, newErrUnparsableAmount(text, nil)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, newErrUnparsableAmount(text, err)
	}
	return d, nil
}

// ResolvePrice 가격 마크업과 품절 여부로 PriceVariant를 결정합니다. 먼저 일치하는 규칙이 적용됩니다.
//
//  1. 품절 ─▶ Unavailable (금액 파싱 생략)
//  2. 원래 가격과 현재 가격 모두 존재 ─▶ Discounted
//  3. 금액이 하나만 존재 ─▶ Single
//  4. 금액 없음 ─▶ Single(null)
//
// 변환할 수 없는 금액은 null이 되며 금액마다 오류가 하나씩 반환됩니다.
func ResolvePrice(markup PriceMarkup, unavailable bool) (PriceVariant, []error) {
	if unavailable {
		return Unavailable(), nil
	}

	var errs []error
	parse := func(raw string) decimal.NullDecimal {
		d, err := ParseAmount(raw)
		if err != nil {
			errs = append(errs, err)
			return decimal.NullDecimal{}
		}
		return decimal.NewNullDecimal(d)
	}

	switch {
	case markup.HasOriginal && markup.HasActive:
		o := parse(markup.Original)
		c := parse(markup.Active)
		return Discounted(o, c), errs
	case markup.HasActive:
		return Single(parse(markup.Active)), errs
	case markup.HasOriginal:
		return Single(parse(markup.Original)), errs
	default:
		return Single(decimal.NullDecimal{}), nil
	}
}
