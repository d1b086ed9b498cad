package overrides

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
	"github.com/tidwall/gjson"
)

// JSONLoader {"상품명": 마진} 형태의 JSON 객체로부터 오버라이드 목록을 로드합니다.
//
// 최상위에 "margins" 객체가 있으면 그 객체를 사용합니다.
type JSONLoader struct {
	FilePath string
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Loader = (*JSONLoader)(nil)

func (l *JSONLoader) Load() (map[string]int, error) {
	data, err := os.ReadFile(l.FilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("마진 오버라이드 파일(%s)이 존재하지 않습니다. 경로 설정을 확인해 주세요", l.FilePath))
		}
		return nil, apperrors.Wrap(err, apperrors.Internal, fmt.Sprintf("마진 오버라이드 파일(%s)을 읽는 중 오류가 발생했습니다", l.FilePath))
	}

	return parseJSON(data)
}

func parseJSON(data []byte) (map[string]int, error) {
	if !gjson.ValidBytes(data) {
		return nil, apperrors.New(apperrors.InvalidInput, "마진 오버라이드 JSON 형식이 올바르지 않습니다")
	}

	root := gjson.ParseBytes(data)
	if nested := root.Get("margins"); nested.IsObject() {
		root = nested
	}
	if !root.IsObject() {
		return nil, apperrors.New(apperrors.InvalidInput, `마진 오버라이드 JSON은 {"상품명": 마진} 형태의 객체여야 합니다`)
	}

	margins := make(map[string]int)

	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		location := fmt.Sprintf("키 '%s'", key.String())

		if value.Type != gjson.Number || value.Num != math.Trunc(value.Num) {
			err = apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s: 마진은 정수여야 합니다(%s)", location, value.Raw))
			return false
		}

		err = put(margins, key.String(), int(value.Int()), location)
		return err == nil
	})
	if err != nil {
		return nil, err
	}

	return margins, nil
}
