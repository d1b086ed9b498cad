package report

import (
	"fmt"

	"github.com/darkkaiser/biomac-scraper/internal/catalog"
	"github.com/shopspring/decimal"
)

// outOfStockLabel 품절 상품의 가격 칸에 표시할 문구
const outOfStockLabel = "SIN STOCK"

// cell 시트에 기록할 셀 하나의 내용입니다. formula가 있으면 value 대신 수식을 기록합니다.
type cell struct {
	value   any
	formula string
	money   bool
}

// column 열 하나의 머리글과 행 값 생성 함수입니다.
type column struct {
	header string
	cell   func(r catalog.ProductRecord, row int, category string) cell
}

// staticColumns 계산된 값을 그대로 기록하는 레이아웃입니다.
var staticColumns = []column{
	{"Producto", func(r catalog.ProductRecord, _ int, _ string) cell { return cell{value: r.Title} }},
	{"Precio Base ($)", func(r catalog.ProductRecord, _ int, _ string) cell {
		if r.Unavailable() {
			return cell{value: outOfStockLabel}
		}
		return moneyCell(r.EffectivePrice)
	}},
	{"Peso (kg)", func(r catalog.ProductRecord, _ int, _ string) cell { return weightCell(r.Weight) }},
	{"Descuento (%)", func(r catalog.ProductRecord, _ int, _ string) cell { return cell{value: r.DiscountPercent} }},
	{"Mínimo de Compra", func(r catalog.ProductRecord, _ int, _ string) cell { return cell{value: r.MinPurchaseQty} }},
	{"Categoría", func(_ catalog.ProductRecord, _ int, category string) cell { return cell{value: category} }},
	{"Porcentaje de Ganancia (%)", func(r catalog.ProductRecord, _ int, _ string) cell { return cell{value: r.MarginPercent} }},
	{"Precio Final ($)", func(r catalog.ProductRecord, _ int, _ string) cell { return moneyCell(r.FinalPrice) }},
	{"Precio Redondeado ($)", func(r catalog.ProductRecord, _ int, _ string) cell { return moneyCell(r.RoundedPrice) }},
}

// formulaColumns 최종가와 반올림가를 스프레드시트 수식으로 기록하는 레이아웃입니다.
// 마진(F열)을 수정하면 최종가(G열)와 반올림가(H열)가 다시 계산됩니다.
var formulaColumns = []column{
	{"Producto", func(r catalog.ProductRecord, _ int, _ string) cell { return cell{value: r.Title} }},
	{"Peso (kg)", func(r catalog.ProductRecord, _ int, _ string) cell { return weightCell(r.Weight) }},
	{"Precio Base ($)", func(r catalog.ProductRecord, _ int, _ string) cell {
		if r.Unavailable() {
			return cell{value: outOfStockLabel}
		}
		return moneyCell(r.BasePrice)
	}},
	{"Precio con Descuento ($)", func(r catalog.ProductRecord, _ int, _ string) cell {
		if !r.Discounted() {
			return cell{money: true}
		}
		return moneyCell(r.EffectivePrice)
	}},
	{"Descuento (%)", func(r catalog.ProductRecord, _ int, _ string) cell { return cell{value: r.DiscountPercent} }},
	{"Porcentaje de Ganancia (%)", func(r catalog.ProductRecord, _ int, _ string) cell { return cell{value: r.MarginPercent} }},
	{"Precio Final ($)", func(r catalog.ProductRecord, row int, _ string) cell {
		if !r.EffectivePrice.Valid {
			return cell{money: true}
		}
		return cell{formula: fmt.Sprintf(`IF(D%[1]d<>"",D%[1]d*(1+F%[1]d/100),C%[1]d*(1+F%[1]d/100))`, row), money: true}
	}},
	{"Precio Redondeado ($)", func(r catalog.ProductRecord, row int, _ string) cell {
		if !r.EffectivePrice.Valid {
			return cell{money: true}
		}
		return cell{formula: fmt.Sprintf("ROUNDUP(G%d,-2)", row), money: true}
	}},
	{"Mínimo de Compra", func(r catalog.ProductRecord, _ int, _ string) cell { return cell{value: r.MinPurchaseQty} }},
	{"Categoría", func(_ catalog.ProductRecord, _ int, category string) cell { return cell{value: category} }},
}

func moneyCell(d decimal.NullDecimal) cell {
	if !d.Valid {
		return cell{money: true}
	}
	return cell{value: d.Decimal.InexactFloat64(), money: true}
}

func weightCell(w catalog.WeightSpec) cell {
	if !w.Known {
		return cell{}
	}
	return cell{value: w.Kilograms.InexactFloat64()}
}
