package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/darkkaiser/biomac-scraper/internal/catalog"
)

// Card goquery Selection을 catalog.Fragment로 감싼 어댑터입니다.
//
// 항상 Selection의 첫 번째 노드만을 대상으로 합니다.
type Card struct {
	sel *goquery.Selection
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ catalog.Fragment = Card{}

// NewCard 주어진 Selection의 첫 번째 노드를 감싼 Card를 반환합니다.
func NewCard(sel *goquery.Selection) Card {
	return Card{sel: sel.First()}
}

func (c Card) FindByClass(name string) (catalog.Fragment, bool) {
	if strings.TrimSpace(name) == "" {
		return nil, false
	}
	return c.find("." + name)
}

func (c Card) FindByTag(name string) (catalog.Fragment, bool) {
	if strings.TrimSpace(name) == "" {
		return nil, false
	}
	return c.find(name)
}

func (c Card) Attr(name string) (string, bool) {
	return c.sel.Attr(name)
}

func (c Card) Text() string {
	return c.sel.Text()
}

func (c Card) find(selector string) (catalog.Fragment, bool) {
	found := c.sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, false
	}
	return Card{sel: found}, true
}

// Cards 문서에서 selector에 해당하는 모든 상품 카드를 문서 순서대로 반환합니다.
func Cards(doc *goquery.Document, selector string) []catalog.Fragment {
	sel := doc.Find(selector)

	cards := make([]catalog.Fragment, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		cards = append(cards, NewCard(s))
	})
	return cards
}
