package catalog

import (
	"testing"

	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTitle(t *testing.T) {
	t.Parallel()

	t.Run("Trimmed", func(t *testing.T) {
		t.Parallel()

		title, err := ExtractTitle(newCard(cardSpec{title: "  Manzana Roja por Kilo \n"}))
		require.NoError(t, err)
		assert.Equal(t, "Manzana Roja por Kilo", title)
	})

	t.Run("Missing Element", func(t *testing.T) {
		t.Parallel()

		_, err := ExtractTitle(newCard(cardSpec{noTitle: true}))
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.NotFound))
	})

	t.Run("Blank Text", func(t *testing.T) {
		t.Parallel()

		_, err := ExtractTitle(newCard(cardSpec{title: "   "}))
		assert.Error(t, err)
	})
}

func TestIsOutOfStock(t *testing.T) {
	t.Parallel()

	assert.True(t, IsOutOfStock(newCard(cardSpec{title: "Helado", outOfStock: true})))
	assert.False(t, IsOutOfStock(newCard(cardSpec{title: "Helado"})))
}

func TestExtractDiscountPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		badge    string
		expected int
		wantErr  bool
	}{
		{name: "No Badge", badge: "", expected: 0},
		{name: "Percent", badge: "-20%", expected: 20},
		{name: "First Integer Wins", badge: "15% OFF hasta 30%", expected: 15},
		{name: "No Digits", badge: "Oferta", expected: 0, wantErr: true},
		{name: "Overflow", badge: "99999999999999999999999%", expected: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractDiscountPercent(newCard(cardSpec{title: "x", badge: tt.badge}))
			assert.Equal(t, tt.expected, got)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, apperrors.ParsingFailed))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExtractMinPurchase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		attrs    map[string]string
		expected int
	}{
		{name: "No Quantity Element", attrs: nil, expected: 1},
		{name: "Min Attribute", attrs: map[string]string{"min": "3", "value": "5"}, expected: 3},
		{name: "Value Fallback", attrs: map[string]string{"value": "2"}, expected: 2},
		{name: "Blank Min Uses Value", attrs: map[string]string{"min": " ", "value": "4"}, expected: 4},
		{name: "No Attributes", attrs: map[string]string{}, expected: 1},
		{name: "Zero", attrs: map[string]string{"min": "0"}, expected: 1},
		{name: "Negative", attrs: map[string]string{"min": "-2"}, expected: 1},
		{name: "Non Numeric", attrs: map[string]string{"min": "dos"}, expected: 1},
		{name: "Zero Min Uses Value", attrs: map[string]string{"min": "0", "value": "3"}, expected: 3},
		{name: "Min Of One Uses Value", attrs: map[string]string{"min": "1", "value": "5"}, expected: 5},
		{name: "Non Numeric Min Uses Value", attrs: map[string]string{"min": "dos", "value": "2"}, expected: 2},
		{name: "Min Of One Without Value", attrs: map[string]string{"min": "1"}, expected: 1},
		{name: "Negative Value", attrs: map[string]string{"min": "0", "value": "-4"}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, ExtractMinPurchase(newCard(cardSpec{title: "x", minAttrs: tt.attrs})))
		})
	}
}

func TestExtractPriceMarkup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		spec     cardSpec
		expected PriceMarkup
	}{
		{
			name:     "Discounted",
			spec:     cardSpec{original: "$1.200,00", active: "$960,00"},
			expected: PriceMarkup{Original: "$1.200,00", HasOriginal: true, Active: "$960,00", HasActive: true},
		},
		{
			name:     "Regular Only",
			spec:     cardSpec{regular: "$850,00"},
			expected: PriceMarkup{Active: "$850,00", HasActive: true},
		},
		{
			name:     "Struck Through Only",
			spec:     cardSpec{original: "$700,00"},
			expected: PriceMarkup{Original: "$700,00", HasOriginal: true},
		},
		{
			name:     "Empty Price Container",
			spec:     cardSpec{},
			expected: PriceMarkup{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.spec.title = "x"
			assert.Equal(t, tt.expected, ExtractPriceMarkup(newCard(tt.spec)))
		})
	}
}

func TestExtractPriceMarkup_NoPriceContainer(t *testing.T) {
	t.Parallel()

	card := el("div", "item-producto-bio", el("h2", "woocommerce-loop-product__title", txt("x")))
	assert.Equal(t, PriceMarkup{}, ExtractPriceMarkup(card))
}

func TestExtractPriceMarkup_WithoutBdi(t *testing.T) {
	t.Parallel()

	card := el("div", "", el("span", "price", el("span", "woocommerce-Price-amount", txt(" $ 500,00 "))))
	assert.Equal(t, PriceMarkup{Active: "$ 500,00", HasActive: true}, ExtractPriceMarkup(card))
}
