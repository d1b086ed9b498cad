package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// WooCommerce 상품 카드의 마크업 클래스
const (
	classTitle       = "woocommerce-loop-product__title"
	classOutOfStock  = "out_of_stock"
	classOnSale      = "onsale"
	classQuantity    = "quantity"
	classPrice       = "price"
	classPriceAmount = "woocommerce-Price-amount"
)

var firstIntegerRegex = regexp.MustCompile(`\d+`)

// PriceMarkup 가격 영역(.price)에서 찾은 원시 금액 문자열입니다.
type PriceMarkup struct {
	// Original 취소선(del)이 그어진 원래 가격
	Original    string
	HasOriginal bool

	// Active 현재 적용 중인 가격 (ins 또는 할인이 없을 때의 정가)
	Active    string
	HasActive bool
}

// ExtractTitle 상품 제목을 추출합니다. 제목은 카드에서 유일한 필수 필드입니다.
func ExtractTitle(card Fragment) (string, error) {
	el, ok := card.FindByClass(classTitle)
	if !ok {
		return "", newErrMissingTitle()
	}

	title := strings.TrimSpace(el.Text())
	if title == "" {
		return "", newErrBlankTitle()
	}
	return title, nil
}

// IsOutOfStock 품절 표시 요소가 있는지 확인합니다.
func IsOutOfStock(card Fragment) bool {
	_, ok := card.FindByClass(classOutOfStock)
	return ok
}

// ExtractDiscountPercent 할인 배지(.onsale)에서 처음 나오는 정수를 할인율로 읽습니다.
//
// 배지가 없으면 0을 반환합니다. 배지가 있지만 숫자가 없거나 범위를 벗어나면 0과 함께 오류를 반환합니다.
func ExtractDiscountPercent(card Fragment) (int, error) {
	badge, ok := card.FindByClass(classOnSale)
	if !ok {
		return 0, nil
	}

	text := strings.TrimSpace(badge.Text())
	digits := firstIntegerRegex.FindString(text)
	if digits == "" {
		return 0, newErrUnparsableDiscount(text, nil)
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, newErrUnparsableDiscount(text, err)
	}
	return n, nil
}

// ExtractMinPurchase 수량 입력 요소에서 최소 구매 수량을 읽습니다.
// min이 1보다 크면 min을, 아니면 value를 사용하고, 둘 다 쓸 수 없으면 1을 반환합니다.
func ExtractMinPurchase(card Fragment) int {
	qty, ok := card.FindByClass(classQuantity)
	if !ok {
		return 1
	}
	input, ok := qty.FindByTag("input")
	if !ok {
		return 1
	}

	if n := intAttr(input, "min"); n > 1 {
		return n
	}
	if n := intAttr(input, "value"); n > 0 {
		return n
	}
	return 1
}

// intAttr 속성이 없거나 정수가 아니면 0을 반환합니다.
func intAttr(f Fragment, name string) int {
	raw, ok := f.Attr(name)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// ExtractPriceMarkup 가격 영역에서 원래 가격(del)과 현재 가격(ins)을 찾습니다.
//
// ins가 없고 del도 없으면 첫 번째 금액 요소를 정가로 사용합니다.
func ExtractPriceMarkup(card Fragment) PriceMarkup {
	var m PriceMarkup

	price, ok := card.FindByClass(classPrice)
	if !ok {
		return m
	}

	if del, ok := price.FindByTag("del"); ok {
		m.Original, m.HasOriginal = amountText(del), true
	}
	if ins, ok := price.FindByTag("ins"); ok {
		m.Active, m.HasActive = amountText(ins), true
		return m
	}

	if !m.HasOriginal {
		if amount, ok := price.FindByClass(classPriceAmount); ok {
			m.Active, m.HasActive = amountText(amount), true
		}
	}

	return m
}

// amountText 금액 요소의 텍스트를 반환합니다. bdi 요소가 있으면 스크린 리더용 문구를 제외하기 위해 bdi만 읽습니다.
func amountText(f Fragment) string {
	if bdi, ok := f.FindByTag("bdi"); ok {
		return strings.TrimSpace(bdi.Text())
	}
	return strings.TrimSpace(f.Text())
}
