package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCleanTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw      string
		expected string
	}{
		{"Manzana Roja por Kilo", "Manzana Roja"},
		{"Banana Ecuador POR 1kg", "Banana Ecuador"},
		{"Helado de Dulce de Leche Por Unidad 1kg", "Helado de Dulce de Leche"},
		{"Porotos Negros 500gr", "Porotos Negros 500gr"},
		{"Vaporizador de verduras", "Vaporizador de verduras"},
		{"  Tomate Perita  ", "Tomate Perita"},
		{"por kilo", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CleanTitle(tt.raw), "raw: %q", tt.raw)
	}
}

func TestExtractWeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw      string
		expected WeightSpec
	}{
		{"Tomate x 1,5kg", Kg(decimal.RequireFromString("1.5"))},
		{"Papa 500gr", Kg(decimal.RequireFromString("0.5"))},
		{"Frutilla 250 g", Kg(decimal.RequireFromString("0.25"))},
		{"Helado 1 KG", Kg(decimal.NewFromInt(1))},
		{"Mix 2kg por 10 unidades de 200g", Kg(decimal.NewFromInt(2))},
		{"Arándanos 1.5kg", Kg(decimal.RequireFromString("1.5"))},
		{"Frutilla x 500grs", Kg(decimal.RequireFromString("0.5"))},
		{"Nuez 250grs.", Kg(decimal.RequireFromString("0.25"))},
		{"Papa 2kgs", Kg(decimal.NewFromInt(2))},
		{"Queso 500gramos", Kg(decimal.RequireFromString("0.5"))},
		{"Caja 12 granos", Kg(decimal.RequireFromString("0.012"))},
		{"Banana", UnknownWeight},
		{"Pack x 6 unidades", UnknownWeight},
	}

	for _, tt := range tests {
		got := ExtractWeight(tt.raw)

		assert.Equal(t, tt.expected.Known, got.Known, "raw: %q", tt.raw)
		if tt.expected.Known {
			assert.True(t, tt.expected.Kilograms.Equal(got.Kilograms), "raw: %q, got: %s", tt.raw, got)
		}
	}
}

func TestWeightSpec_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-", UnknownWeight.String())
	assert.Equal(t, "0.5kg", Kg(decimal.RequireFromString("0.5")).String())
}
