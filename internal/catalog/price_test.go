package catalog

import (
	"testing"

	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func assertNullDecimal(t *testing.T, expected, actual decimal.NullDecimal, msgAndArgs ...any) {
	t.Helper()

	require.Equal(t, expected.Valid, actual.Valid, msgAndArgs...)
	if expected.Valid {
		assert.True(t, expected.Decimal.Equal(actual.Decimal), "expected %s, got %s", expected.Decimal, actual.Decimal)
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "$1.200,00", expected: "1200"},
		{input: "$960,00", expected: "960"},
		{input: "$ 12.345.678,9", expected: "12345678.9"},
		{input: "$ 1.050,50", expected: "1050.5"},
		{input: "  850  ", expected: "850"},
		{input: "", wantErr: true},
		{input: "$", wantErr: true},
		{input: "Consultar", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		if tt.wantErr {
			require.Error(t, err, "input: %q", tt.input)
			assert.True(t, apperrors.Is(err, apperrors.ParsingFailed))
			continue
		}
		require.NoError(t, err, "input: %q", tt.input)
		assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "input: %q, got: %s", tt.input, got)
	}
}

func TestResolvePrice(t *testing.T) {
	t.Parallel()

	null := decimal.NullDecimal{}

	tests := []struct {
		name         string
		markup       PriceMarkup
		unavailable  bool
		expectedKind PriceKind
		expectedBase decimal.NullDecimal
		expectedEff  decimal.NullDecimal
		expectedErrs int
	}{
		{
			name:         "Discounted",
			markup:       PriceMarkup{Original: "$1.200,00", HasOriginal: true, Active: "$960,00", HasActive: true},
			expectedKind: PriceDiscounted,
			expectedBase: dec("1200"),
			expectedEff:  dec("960"),
		},
		{
			name:         "Out Of Stock Ignores Markup",
			markup:       PriceMarkup{Original: "$1.200,00", HasOriginal: true, Active: "$960,00", HasActive: true},
			unavailable:  true,
			expectedKind: PriceUnavailable,
			expectedBase: null,
			expectedEff:  null,
		},
		{
			name:         "Out Of Stock With Garbage",
			markup:       PriceMarkup{Active: "???", HasActive: true},
			unavailable:  true,
			expectedKind: PriceUnavailable,
		},
		{
			name:         "Single Regular",
			markup:       PriceMarkup{Active: "$850,00", HasActive: true},
			expectedKind: PriceSingle,
			expectedBase: dec("850"),
			expectedEff:  dec("850"),
		},
		{
			name:         "Lone Original Counts As Single",
			markup:       PriceMarkup{Original: "$700,00", HasOriginal: true},
			expectedKind: PriceSingle,
			expectedBase: dec("700"),
			expectedEff:  dec("700"),
		},
		{
			name:         "Nothing",
			markup:       PriceMarkup{},
			expectedKind: PriceSingle,
		},
		{
			name:         "Unparsable Active",
			markup:       PriceMarkup{Active: "Consultar", HasActive: true},
			expectedKind: PriceSingle,
			expectedErrs: 1,
		},
		{
			name:         "Both Unparsable",
			markup:       PriceMarkup{Original: "x", HasOriginal: true, Active: "y", HasActive: true},
			expectedKind: PriceDiscounted,
			expectedErrs: 2,
		},
		{
			name:         "Current Above Original Tolerated",
			markup:       PriceMarkup{Original: "$500,00", HasOriginal: true, Active: "$650,00", HasActive: true},
			expectedKind: PriceDiscounted,
			expectedBase: dec("500"),
			expectedEff:  dec("650"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			variant, errs := ResolvePrice(tt.markup, tt.unavailable)
			assert.Equal(t, tt.expectedKind, variant.Kind())
			assert.Len(t, errs, tt.expectedErrs)

			base, eff := variant.Prices()
			assertNullDecimal(t, tt.expectedBase, base, "base")
			assertNullDecimal(t, tt.expectedEff, eff, "effective")
		})
	}
}

func TestPriceVariant_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Unavailable", Unavailable().String())
	assert.Equal(t, "Single(null)", Single(decimal.NullDecimal{}).String())
	assert.Equal(t, "Discounted(1200, 960)", Discounted(dec("1200"), dec("960")).String())
	assert.Equal(t, "PriceKind(9)", PriceKind(9).String())
}
