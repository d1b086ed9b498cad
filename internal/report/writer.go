// Package report 상품 레코드를 엑셀(xlsx) 파일로 기록합니다.
//
// 두 가지 레이아웃을 지원합니다. static 모드는 계산이 끝난 가격을 숫자로 기록하고,
// formula 모드는 최종가와 반올림가를 수식으로 남겨 시트에서 마진을 조정할 수 있게 합니다.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/darkkaiser/biomac-scraper/internal/catalog"
	applog "github.com/darkkaiser/biomac-scraper/pkg/log"
	"github.com/iancoleman/strcase"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// component 리포트 작성 로깅용 컴포넌트 이름
const component = "report"

const (
	// DefaultSheetName 시트 이름을 지정하지 않았을 때 사용하는 이름
	DefaultSheetName = "Productos"

	// tableName formula 모드에서 데이터 범위에 붙이는 표 이름
	tableName = "ProductosTable"

	// tableStyle formula 모드 표 스타일
	tableStyle = "TableStyleMedium9"

	// timestampLayout 파일 이름에 붙는 생성 시각 형식
	timestampLayout = "20060102_150405"

	// maxSheetNameLength 엑셀이 허용하는 시트 이름의 최대 길이
	maxSheetNameLength = 31
)

// Options Writer 생성 옵션입니다.
type Options struct {
	Mode      Mode
	OutputDir string

	// FilePrefix 파일 이름 접두사입니다. 비어 있으면 모드별 기본값을 사용하며, snake_case로 정규화됩니다.
	FilePrefix string

	SheetName string

	// CategoryColors 카테고리 슬러그별 행 채움 색상(RRGGBB)
	CategoryColors map[string]string

	// Now 파일 이름의 시각을 결정합니다. nil이면 time.Now를 사용합니다.
	Now func() time.Time
}

// Writer 레코드 목록을 하나의 xlsx 파일로 기록합니다.
type Writer struct {
	mode   Mode
	dir    string
	prefix string
	sheet  string
	colors map[string]string
	now    func() time.Time
}

// NewWriter 옵션을 검증하고 Writer를 생성합니다.
func NewWriter(opts Options) (*Writer, error) {
	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}

	sheet := strings.TrimSpace(opts.SheetName)
	if sheet == "" {
		sheet = DefaultSheetName
	}
	if utf8.RuneCountInString(sheet) > maxSheetNameLength {
		return nil, newErrInvalidSheetName(sheet)
	}

	colors := make(map[string]string, len(opts.CategoryColors))
	for slug, color := range opts.CategoryColors {
		if !hexColorRegex.MatchString(color) {
			return nil, newErrInvalidColor(color)
		}
		colors[slug] = strings.ToUpper(color)
	}

	prefix := strcase.ToSnake(strings.TrimSpace(opts.FilePrefix))
	if prefix == "" {
		prefix = mode.defaultPrefix()
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Writer{
		mode:   mode,
		dir:    dir,
		prefix: prefix,
		sheet:  sheet,
		colors: colors,
		now:    now,
	}, nil
}

// Mode Writer의 출력 모드를 반환합니다.
func (w *Writer) Mode() Mode {
	return w.mode
}

// Write 레코드를 입력 순서대로 기록한 xlsx 파일을 생성하고 파일 경로를 반환합니다.
func (w *Writer) Write(records []catalog.ProductRecord) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", newErrOutputDirUnavailable(err, w.dir)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), w.sheet); err != nil {
		return "", newErrWorkbookFailed(err, "시트 이름")
	}

	styles, err := newStyleBook(f)
	if err != nil {
		return "", newErrWorkbookFailed(err, "머리글 스타일")
	}

	columns := w.mode.columns()
	widths := make([]int, len(columns))

	for i, col := range columns {
		name, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(w.sheet, name, col.header); err != nil {
			return "", newErrWorkbookFailed(err, "머리글")
		}
		if err := f.SetCellStyle(w.sheet, name, name, styles.header); err != nil {
			return "", newErrWorkbookFailed(err, "머리글 스타일")
		}
		widths[i] = utf8.RuneCountInString(col.header)
	}

	for i, r := range records {
		row := i + 2
		category := DisplayCategory(r.Category)

		for j, col := range columns {
			c := col.cell(r, row, category)
			name, _ := excelize.CoordinatesToCellName(j+1, row)

			if err := setCell(f, w.sheet, name, c); err != nil {
				return "", newErrWorkbookFailed(err, fmt.Sprintf("%s 셀", name))
			}

			style, err := styles.row(w.colors[r.Category], c.money)
			if err != nil {
				return "", newErrWorkbookFailed(err, "행 스타일")
			}
			if err := f.SetCellStyle(w.sheet, name, name, style); err != nil {
				return "", newErrWorkbookFailed(err, fmt.Sprintf("%s 셀 스타일", name))
			}

			if width := displayWidth(c); width > widths[j] {
				widths[j] = width
			}
		}
	}

	if len(records) > 0 {
		if err := w.decorateRange(f, len(columns), len(records)+1); err != nil {
			return "", err
		}
	}

	for i, width := range widths {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(w.sheet, colName, colName, float64(width+2)); err != nil {
			return "", newErrWorkbookFailed(err, "열 너비")
		}
	}

	if err := f.SetPanes(w.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return "", newErrWorkbookFailed(err, "틀 고정")
	}

	path := filepath.Join(w.dir, w.FileName())
	if err := f.SaveAs(path); err != nil {
		return "", newErrSaveFailed(err, path)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"file":    path,
		"mode":    string(w.mode),
		"records": len(records),
	}).Info("엑셀 리포트 저장이 완료되었습니다")

	return path, nil
}

// FileName 현재 시각 기준의 파일 이름({prefix}_{YYYYmmdd_HHMMSS}.xlsx)을 반환합니다.
func (w *Writer) FileName() string {
	return fmt.Sprintf("%s_%s.xlsx", w.prefix, w.now().Format(timestampLayout))
}

// decorateRange static 모드는 자동 필터를, formula 모드는 줄무늬 표를 데이터 범위에 적용합니다.
func (w *Writer) decorateRange(f *excelize.File, cols, lastRow int) error {
	lastCell, _ := excelize.CoordinatesToCellName(cols, lastRow)
	rangeRef := "A1:" + lastCell

	if w.mode == ModeFormula {
		stripes := true
		if err := f.AddTable(w.sheet, &excelize.Table{
			Range:          rangeRef,
			Name:           tableName,
			StyleName:      tableStyle,
			ShowRowStripes: &stripes,
		}); err != nil {
			return newErrWorkbookFailed(err, "표")
		}
		return nil
	}

	if err := f.AutoFilter(w.sheet, rangeRef, nil); err != nil {
		return newErrWorkbookFailed(err, "자동 필터")
	}
	return nil
}

func setCell(f *excelize.File, sheet, name string, c cell) error {
	switch {
	case c.formula != "":
		return f.SetCellFormula(sheet, name, c.formula)
	case c.value != nil:
		return f.SetCellValue(sheet, name, c.value)
	}
	return nil
}

// DisplayCategory 카테고리 슬러그를 시트에 표시할 이름으로 변환합니다. (예: "frutas-secas" -> "Frutas Secas")
//
// cases.Caser는 상태를 가지므로 호출마다 새로 만듭니다.
func DisplayCategory(slug string) string {
	return cases.Title(language.Spanish).String(strings.ReplaceAll(slug, "-", " "))
}

// displayWidth 셀에 표시되는 문자열의 대략적인 길이를 반환합니다. 수식 셀은 머리글 너비를 따릅니다.
func displayWidth(c cell) int {
	if c.formula != "" || c.value == nil {
		return 0
	}

	switch v := c.value.(type) {
	case string:
		return utf8.RuneCountInString(v)
	case float64:
		if c.money {
			// "$" + 천 단위 구분 기호 + 소수점 둘째 자리
			s := fmt.Sprintf("%.2f", v)
			return len(s) + 1 + (len(s)-4)/3
		}
		return len(fmt.Sprint(v))
	default:
		return len(fmt.Sprint(v))
	}
}
