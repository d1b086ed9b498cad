package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordView 비교하기 쉬운 형태로 레코드를 변환합니다.
type recordView struct {
	Title, Weight, Kind, Base, Effective, Final, Rounded string
	Discount, MinQty, Margin                             int
	Category                                             string
}

func view(r ProductRecord) recordView {
	return recordView{
		Title:     r.Title,
		Weight:    r.Weight.String(),
		Kind:      r.Price.Kind().String(),
		Base:      nullString(r.BasePrice),
		Effective: nullString(r.EffectivePrice),
		Final:     nullString(r.FinalPrice),
		Rounded:   nullString(r.RoundedPrice),
		Discount:  r.DiscountPercent,
		MinQty:    r.MinPurchaseQty,
		Margin:    r.MarginPercent,
		Category:  r.Category,
	}
}

func views(records []ProductRecord) []recordView {
	out := make([]recordView, 0, len(records))
	for _, r := range records {
		out = append(out, view(r))
	}
	return out
}

// =============================================================================
// CategoryFromURL
// =============================================================================

func TestCategoryFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url      string
		expected string
	}{
		{"https://reventa.biomac.com.ar/categoria-producto/vegetales/", "vegetales"},
		{"https://reventa.biomac.com.ar/categoria-producto/frutas/page/2/", "frutas"},
		{"https://reventa.biomac.com.ar/categoria-producto/helados", UnknownCategory},
		{"https://reventa.biomac.com.ar/tienda/", UnknownCategory},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CategoryFromURL(tt.url), "url: %s", tt.url)
	}
}

// =============================================================================
// AssembleCard / AssemblePage
// =============================================================================

func TestAssemblePage_TwoCardsDefaultMargin(t *testing.T) {
	t.Parallel()

	cards := []Fragment{
		newCard(cardSpec{title: "Tomate Perita x 1,5kg por Cajón", original: "$1.200,00", active: "$960,00", badge: "-20%"}),
		newCard(cardSpec{title: "Papa Negra 500gr", regular: "$850,00", minAttrs: map[string]string{"min": "2"}}),
	}

	a := NewAssembler(nil, DefaultMargin, nil)
	records := a.AssemblePage("vegetales", cards)

	expected := []recordView{
		{
			Title: "Tomate Perita x 1,5kg", Weight: "1.5kg", Kind: "Discounted",
			Base: "1200", Effective: "960", Final: "1248", Rounded: "1300",
			Discount: 20, MinQty: 1, Margin: 30, Category: "vegetales",
		},
		{
			Title: "Papa Negra 500gr", Weight: "0.5kg", Kind: "Single",
			Base: "850", Effective: "850", Final: "1105", Rounded: "1200",
			Discount: 0, MinQty: 2, Margin: 30, Category: "vegetales",
		},
	}

	if diff := cmp.Diff(expected, views(records)); diff != "" {
		t.Errorf("레코드 불일치 (-want +got):\n%s", diff)
	}

	for _, r := range records {
		assert.True(t, r.FinalPrice.Decimal.Equal(r.EffectivePrice.Decimal.Mul(decimal.RequireFromString("1.30"))))
		assert.True(t, r.RoundedPrice.Decimal.GreaterThanOrEqual(r.FinalPrice.Decimal))
	}
}

func TestAssembleCard_MarginOverride(t *testing.T) {
	t.Parallel()

	a := NewAssembler(map[string]int{"Manzana Roja": 20}, DefaultMargin, nil)

	overridden, ok := a.AssembleCard("frutas", newCard(cardSpec{title: "Manzana Roja por Kilo", regular: "$1.000,00"}))
	require.True(t, ok)
	assert.Equal(t, 20, overridden.MarginPercent)
	assert.Equal(t, "1200", nullString(overridden.FinalPrice))

	other, ok := a.AssembleCard("frutas", newCard(cardSpec{title: "Manzana Verde por Kilo", regular: "$1.000,00"}))
	require.True(t, ok)
	assert.Equal(t, DefaultMargin, other.MarginPercent)
}

func TestAssembleCard_OutOfStockKeptWithNullPrices(t *testing.T) {
	t.Parallel()

	a := NewAssembler(nil, DefaultMargin, nil)

	r, ok := a.AssembleCard("helados", newCard(cardSpec{title: "Helado 1kg", regular: "$5.000,00", outOfStock: true}))
	require.True(t, ok)

	assert.True(t, r.Unavailable())
	assert.False(t, r.BasePrice.Valid)
	assert.False(t, r.EffectivePrice.Valid)
	assert.False(t, r.FinalPrice.Valid)
	assert.False(t, r.RoundedPrice.Valid)
	assert.Equal(t, "1kg", r.Weight.String())
}

func TestAssembleCard_ReportsEvents(t *testing.T) {
	t.Parallel()

	log := &EventLog{}
	a := NewAssembler(nil, DefaultMargin, log)

	_, ok := a.AssembleCard("frutas", newCard(cardSpec{noTitle: true, regular: "$100,00"}))
	assert.False(t, ok)

	r, ok := a.AssembleCard("frutas", newCard(cardSpec{title: "Kiwi", regular: "Consultar", badge: "Oferta"}))
	require.True(t, ok)
	assert.False(t, r.EffectivePrice.Valid)
	assert.False(t, r.FinalPrice.Valid, "실제 판매가가 null이면 최종가도 null이어야 합니다")
	assert.Equal(t, 0, r.DiscountPercent)
	assert.False(t, r.Discounted())

	assert.Equal(t, 1, log.Count(MissingRequiredField))
	assert.Equal(t, 2, log.Count(UnparsableNumeric))
	assert.Equal(t, 3, log.Len())

	events := log.Events()
	assert.Equal(t, "title", events[0].Detail)
	assert.Equal(t, "discount", events[1].Detail)
	assert.Equal(t, "price", events[2].Detail)
	assert.Equal(t, "Kiwi", events[2].Title)
}

func TestAssemblePage_SkipsCardsWithoutTitle(t *testing.T) {
	t.Parallel()

	a := NewAssembler(nil, DefaultMargin, nil)
	records := a.AssemblePage("frutas", []Fragment{
		newCard(cardSpec{title: "Pera", regular: "$100,00"}),
		newCard(cardSpec{noTitle: true}),
		newCard(cardSpec{title: "Uva", regular: "$200,00"}),
	})

	require.Len(t, records, 2)
	assert.Equal(t, "Pera", records[0].Title)
	assert.Equal(t, "Uva", records[1].Title)
}

// =============================================================================
// Collect
// =============================================================================

type stubLoader map[string][]Fragment

func (s stubLoader) LoadCards(_ context.Context, url string) ([]Fragment, error) {
	cards, ok := s[url]
	if !ok {
		return nil, errors.New("404 Not Found")
	}
	return cards, nil
}

const (
	vegetalesURL = "https://reventa.biomac.com.ar/categoria-producto/vegetales/"
	frutasURL    = "https://reventa.biomac.com.ar/categoria-producto/frutas/"
	heladosURL   = "https://reventa.biomac.com.ar/categoria-producto/helados/"
)

func TestCollect_CategoryMajorOrderAndSkippedPage(t *testing.T) {
	t.Parallel()

	loader := stubLoader{
		vegetalesURL: {
			newCard(cardSpec{title: "Lechuga", regular: "$300,00"}),
			newCard(cardSpec{title: "Zapallo", regular: "$400,00"}),
		},
		heladosURL: {
			newCard(cardSpec{title: "Helado Frutilla 1kg", regular: "$4.000,00"}),
		},
	}

	log := &EventLog{}
	a := NewAssembler(nil, DefaultMargin, log)
	records := a.Collect(context.Background(), loader, []string{vegetalesURL, frutasURL, heladosURL})

	var got [][2]string
	for _, r := range records {
		got = append(got, [2]string{r.Category, r.Title})
	}
	assert.Equal(t, [][2]string{
		{"vegetales", "Lechuga"},
		{"vegetales", "Zapallo"},
		{"helados", "Helado Frutilla 1kg"},
	}, got)

	require.Equal(t, 1, log.Count(PageUnavailable))
	ev := log.Events()[0]
	assert.Equal(t, "frutas", ev.Category)
	assert.Equal(t, frutasURL, ev.URL)
	assert.EqualError(t, ev.Err, "404 Not Found")
}

func TestCollect_EmptyPageIsNotAnError(t *testing.T) {
	t.Parallel()

	log := &EventLog{}
	records := NewAssembler(nil, DefaultMargin, log).Collect(context.Background(), stubLoader{frutasURL: {}}, []string{frutasURL})

	assert.Empty(t, records)
	assert.Zero(t, log.Len())
}

func TestCollect_StopsWhenCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var loaded []string
	loader := PageLoaderFunc(func(_ context.Context, url string) ([]Fragment, error) {
		loaded = append(loaded, url)
		cancel()
		return []Fragment{newCard(cardSpec{title: "Lechuga", regular: "$300,00"})}, nil
	})

	records := NewAssembler(nil, DefaultMargin, nil).Collect(ctx, loader, []string{vegetalesURL, frutasURL})

	assert.Equal(t, []string{vegetalesURL}, loaded)
	assert.Len(t, records, 1, "취소 전에 가져온 페이지의 레코드는 유지되어야 합니다")
}

// =============================================================================
// Event sinks
// =============================================================================

func TestLogSink_WritesWarning(t *testing.T) {
	hook := test.NewGlobal()
	t.Cleanup(func() { logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks)) })

	NewLogSink().Report(Event{Kind: PageUnavailable, Category: "frutas", URL: frutasURL, Err: errors.New("timeout")})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, component, entry.Data["component"])
	assert.Equal(t, "PageUnavailable", entry.Data["kind"])
	assert.Equal(t, frutasURL, entry.Data["url"])
	assert.NotNil(t, entry.Data[logrus.ErrorKey])
}

func TestTee(t *testing.T) {
	t.Parallel()

	first, second := &EventLog{}, &EventLog{}
	var calls int
	sink := Tee(first, nil, second, EventSinkFunc(func(Event) { calls++ }))

	sink.Report(Event{Kind: UnparsableNumeric})

	assert.Equal(t, 1, first.Len())
	assert.Equal(t, 1, second.Len())
	assert.Equal(t, 1, calls)
}

func TestEventKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "MissingRequiredField", MissingRequiredField.String())
	assert.Equal(t, "EventKind(0)", EventKind(0).String())
}
