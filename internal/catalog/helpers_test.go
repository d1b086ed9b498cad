package catalog

import (
	"slices"
	"strings"
)

// =============================================================================
// Test Helpers: 메모리 기반 Fragment
// =============================================================================

type node struct {
	tag      string
	classes  []string
	attrs    map[string]string
	text     string
	children []*node
}

var _ Fragment = (*node)(nil)

func el(tag, class string, children ...*node) *node {
	return &node{tag: tag, classes: strings.Fields(class), children: children}
}

func txt(s string) *node {
	return &node{text: s}
}

func (n *node) with(attrs map[string]string) *node {
	n.attrs = attrs
	return n
}

func (n *node) find(match func(*node) bool) (Fragment, bool) {
	for _, c := range n.children {
		if match(c) {
			return c, true
		}
		if f, ok := c.find(match); ok {
			return f, true
		}
	}
	return nil, false
}

func (n *node) FindByClass(name string) (Fragment, bool) {
	return n.find(func(c *node) bool { return slices.Contains(c.classes, name) })
}

func (n *node) FindByTag(name string) (Fragment, bool) {
	return n.find(func(c *node) bool { return c.tag == name })
}

func (n *node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

func (n *node) Text() string {
	var sb strings.Builder
	sb.WriteString(n.text)
	for _, c := range n.children {
		sb.WriteString(c.Text())
	}
	return sb.String()
}

// amount WooCommerce 금액 마크업을 만듭니다. <span class="woocommerce-Price-amount amount"><bdi>$ 1.200,00</bdi></span>
func amount(s string) *node {
	return el("span", "woocommerce-Price-amount amount",
		el("bdi", "", el("span", "woocommerce-Price-currencySymbol", txt("$")), txt(strings.TrimPrefix(s, "$"))))
}

type cardSpec struct {
	title      string
	noTitle    bool
	original   string
	active     string
	regular    string
	outOfStock bool
	badge      string
	minAttrs   map[string]string
}

// newCard .item-producto-bio 카드 한 개를 구성합니다.
func newCard(s cardSpec) *node {
	card := el("div", "item-producto-bio")

	if !s.noTitle {
		card.children = append(card.children, el("h2", "woocommerce-loop-product__title", txt(s.title)))
	}
	if s.badge != "" {
		card.children = append(card.children, el("span", "onsale off", txt(s.badge)))
	}
	if s.outOfStock {
		card.children = append(card.children, el("span", "out_of_stock", txt("Sin stock")))
	}

	price := el("span", "price")
	if s.original != "" {
		price.children = append(price.children, el("del", "", amount(s.original)).with(map[string]string{"aria-hidden": "true"}))
	}
	if s.active != "" {
		price.children = append(price.children, el("ins", "", amount(s.active)).with(map[string]string{"aria-hidden": "true"}))
	}
	if s.regular != "" {
		price.children = append(price.children, amount(s.regular))
	}
	card.children = append(card.children, price)

	if s.minAttrs != nil {
		card.children = append(card.children, el("div", "quantity", el("input", "input-text qty text").with(s.minAttrs)))
	}

	return card
}
