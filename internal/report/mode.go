package report

import (
	"fmt"
	"strings"

	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
)

// Mode 리포트 출력 방식입니다.
type Mode string

const (
	// ModeStatic 계산이 끝난 가격을 숫자로 기록합니다.
	ModeStatic Mode = "static"

	// ModeFormula 최종가와 반올림가를 수식으로 기록하여 시트에서 마진을 수정할 수 있게 합니다.
	ModeFormula Mode = "formula"
)

// ParseMode 문자열을 Mode로 변환합니다. 빈 문자열은 ModeStatic입니다.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeStatic:
		return ModeStatic, nil
	case ModeFormula:
		return ModeFormula, nil
	default:
		return "", apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지원하지 않는 리포트 모드입니다(static 또는 formula): '%s'", s))
	}
}

func (m Mode) columns() []column {
	if m == ModeFormula {
		return formulaColumns
	}
	return staticColumns
}

// defaultPrefix 모드별 기본 파일 이름 접두사
func (m Mode) defaultPrefix() string {
	if m == ModeFormula {
		return "productos_biomac_dinamico"
	}
	return "productos_biomac"
}
