package report

import (
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	headerFill = "000000"
	defaultRow = "FFFFFF"

	// currencyFormat 가격 열의 표시 형식
	currencyFormat = `"$"#,##0.00`
)

var hexColorRegex = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

var thinBorders = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
}

type styleKey struct {
	fill  string
	money bool
}

// styleBook 통합 문서에 등록한 스타일 ID를 채움 색상과 통화 형식 여부별로 보관합니다.
type styleBook struct {
	f      *excelize.File
	header int
	rows   map[styleKey]int
}

func newStyleBook(f *excelize.File) (*styleBook, error) {
	header, err := f.NewStyle(&excelize.Style{
		Border: thinBorders,
		Fill:   excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Font:   &excelize.Font{Bold: true, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, err
	}

	return &styleBook{f: f, header: header, rows: make(map[styleKey]int)}, nil
}

// row 카테고리 색상 행의 스타일을 반환합니다. 색상이 없는 카테고리는 흰 바탕에 검은 글자입니다.
func (b *styleBook) row(fill string, money bool) (int, error) {
	fill = strings.ToUpper(fill)
	if fill == "" {
		fill = defaultRow
	}

	key := styleKey{fill: fill, money: money}
	if id, ok := b.rows[key]; ok {
		return id, nil
	}

	font := &excelize.Font{Color: "FFFFFF"}
	if fill == defaultRow {
		font.Color = "000000"
	}

	style := &excelize.Style{
		Border: thinBorders,
		Fill:   excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
		Font:   font,
	}
	if money {
		format := currencyFormat
		style.CustomNumFmt = &format
	}

	id, err := b.f.NewStyle(style)
	if err != nil {
		return 0, err
	}
	b.rows[key] = id

	return id, nil
}
