// Package overrides 상품별 마진 오버라이드 목록(상품명 → 마진%)을 파일에서 읽어 들입니다.
//
// 상품명은 정제된 제목(catalog.CleanTitle 결과)과 대소문자까지 정확히 일치해야 적용됩니다.
package overrides

import (
	"fmt"
	"path/filepath"
	"strings"

	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
	applog "github.com/darkkaiser/biomac-scraper/pkg/log"
)

// component 로깅용 컴포넌트 이름
const component = "overrides"

const (
	minMargin = 0
	maxMargin = 1000
)

// Loader 마진 오버라이드 목록을 외부 데이터 소스로부터 로드하는 인터페이스입니다.
type Loader interface {
	Load() (map[string]int, error)
}

// Load 파일 확장자에 맞는 Loader를 선택하여 오버라이드 목록을 읽습니다.
//
// 경로가 비어 있으면 빈 목록을 반환합니다.
func Load(path string) (map[string]int, error) {
	if strings.TrimSpace(path) == "" {
		return map[string]int{}, nil
	}

	loader, err := NewLoader(path)
	if err != nil {
		return nil, err
	}

	margins, err := loader.Load()
	if err != nil {
		return nil, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"path":  path,
		"count": len(margins),
	}).Info("마진 오버라이드 목록을 불러왔습니다")

	return margins, nil
}

// NewLoader .csv 또는 .json 확장자에 해당하는 Loader를 반환합니다.
func NewLoader(path string) (Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &CSVLoader{FilePath: path}, nil
	case ".json":
		return &JSONLoader{FilePath: path}, nil
	default:
		return nil, apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지원하지 않는 마진 오버라이드 파일 형식입니다(.csv 또는 .json): '%s'", path))
	}
}

// put 상품명과 마진을 검증한 뒤 목록에 추가합니다. location은 오류 메시지에 사용할 위치 정보입니다.
func put(margins map[string]int, title string, margin int, location string) error {
	if title == "" {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s: 상품명이 비어 있습니다", location))
	}
	if margin < minMargin || margin > maxMargin {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s: 마진(%d)은 %d 이상 %d 이하여야 합니다", location, margin, minMargin, maxMargin))
	}
	if _, exists := margins[title]; exists {
		return apperrors.New(apperrors.Conflict, fmt.Sprintf("%s: 상품명('%s')이 중복되었습니다", location, title))
	}

	margins[title] = margin
	return nil
}
