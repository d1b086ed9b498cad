package catalog

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// "Manzana Roja por Kilo" ─▶ "Manzana Roja"
	porClauseRegex = regexp.MustCompile(`(?i)\s*\bpor\b.*$`)

	// 숫자 뒤에 선택적 공백 한 칸과 단위가 붙은 첫 번째 토큰. 예) "1,5kg", "500 gr", "250g", "500grs"
	// 단위 뒤의 글자는 보지 않으므로 "2kgs", "500gramos"도 인식합니다.
	weightTokenRegex = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s?(kg|gr|g)`)
)

var thousand = decimal.NewFromInt(1000)

// WeightSpec 킬로그램 단위로 정규화된 중량입니다. Known이 false이면 제목에서 중량을 찾지 못한 것입니다.
type WeightSpec struct {
	Kilograms decimal.Decimal
	Known     bool
}

// UnknownWeight 중량을 알 수 없음을 나타냅니다.
var UnknownWeight = WeightSpec{}

// Kg 킬로그램 값으로 WeightSpec을 생성합니다.
func Kg(v decimal.Decimal) WeightSpec {
	return WeightSpec{Kilograms: v, Known: true}
}

func (w WeightSpec) String() string {
	if !w.Known {
		return "-"
	}
	return w.Kilograms.String() + "kg"
}

// CleanTitle 제목에서 "por"로 시작하는 단위 설명 구절을 제거합니다. 대소문자를 구분하지 않습니다.
func CleanTitle(raw string) string {
	return strings.TrimSpace(porClauseRegex.ReplaceAllString(raw, ""))
}

// ExtractWeight 제목에서 첫 번째 중량 토큰을 찾아 킬로그램으로 변환합니다.
// 소수점 구분자로 쉼표를 사용하며, g과 gr은 1000으로 나눕니다.
func ExtractWeight(raw string) WeightSpec {
	m := weightTokenRegex.FindStringSubmatch(raw)
	if m == nil {
		return UnknownWeight
	}

	v, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", "."))
	if err != nil {
		return UnknownWeight
	}

	if strings.ToLower(m[2]) != "kg" {
		v = v.Div(thousand)
	}
	return Kg(v)
}
