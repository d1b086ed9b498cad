package main

import (
	"fmt"
	"io"

	"github.com/darkkaiser/biomac-scraper/internal/catalog"
	"github.com/darkkaiser/biomac-scraper/internal/pipeline"
	"github.com/darkkaiser/biomac-scraper/internal/report"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
)

// eventKinds 요약 표에 출력할 데이터 품질 이벤트 순서
var eventKinds = []catalog.EventKind{
	catalog.MissingRequiredField,
	catalog.UnparsableNumeric,
	catalog.PageUnavailable,
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// renderSummary 수집 결과를 카테고리별 집계, 데이터 품질 이벤트, 가격 변동 순서로 출력합니다.
func renderSummary(w io.Writer, r *pipeline.Result) {
	t := newTable(w)
	t.SetTitle("실행 " + r.RunID)
	t.AppendHeader(table.Row{"카테고리", "상품", "할인", "품절"})

	var total pipeline.CategorySummary
	for _, c := range r.PerCategory {
		t.AppendRow(table.Row{report.DisplayCategory(c.Category), c.Records, c.Discounted, c.Unavailable})
		total.Records += c.Records
		total.Discounted += c.Discounted
		total.Unavailable += c.Unavailable
	}
	t.AppendFooter(table.Row{"합계", total.Records, total.Discounted, total.Unavailable})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()

	if len(r.Events) > 0 {
		et := newTable(w)
		et.SetTitle("데이터 품질 이벤트")
		et.AppendHeader(table.Row{"종류", "건수"})
		for _, kind := range eventKinds {
			if n := r.EventCount(kind); n > 0 {
				et.AppendRow(table.Row{kind.String(), n})
			}
		}
		et.Render()
	}

	if len(r.Changes) > 0 {
		ct := newTable(w)
		ct.SetTitle("가격 변동")
		ct.AppendHeader(table.Row{"카테고리", "상품", "이전", "현재"})
		for _, c := range r.Changes {
			ct.AppendRow(table.Row{report.DisplayCategory(c.Category), c.Title, formatPrice(c.Previous), formatPrice(c.Current)})
		}
		ct.Render()
	}

	fmt.Fprintf(w, "엑셀 파일: %s\n", r.File)
}

func formatPrice(p decimal.NullDecimal) string {
	if !p.Valid {
		return "-"
	}
	return "$" + p.Decimal.StringFixed(2)
}
