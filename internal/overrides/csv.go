package overrides

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
)

type csvColumnIndex int

// CSV 파일의 컬럼 순서 (헤더 행은 선택 사항)
const (
	csvColumnTitle  csvColumnIndex = iota // [0] 상품명
	csvColumnMargin                       // [1] 마진(%)
)

// CSVLoader 로컬 파일 시스템의 CSV 파일(상품명,마진)로부터 오버라이드 목록을 로드합니다.
type CSVLoader struct {
	FilePath string
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Loader = (*CSVLoader)(nil)

func (l *CSVLoader) Load() (map[string]int, error) {
	file, err := os.Open(l.FilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("마진 오버라이드 파일(%s)이 존재하지 않습니다. 경로 설정을 확인해 주세요", l.FilePath))
		}
		return nil, apperrors.Wrap(err, apperrors.Internal, fmt.Sprintf("마진 오버라이드 파일(%s)을 여는 중 오류가 발생했습니다", l.FilePath))
	}
	defer file.Close()

	return readCSV(file)
}

// readCSV CSV 스트림을 읽어 오버라이드 목록으로 변환합니다.
//
// 첫 행의 마진 컬럼이 숫자가 아니면 헤더로 간주하여 건너뜁니다. 빈 파일은 빈 목록입니다.
func readCSV(r io.Reader) (map[string]int, error) {
	// Windows 메모장 등으로 저장 시 발생하는 UTF-8 BOM 제거
	buf := bufio.NewReader(r)
	if runeChar, _, err := buf.ReadRune(); err == nil {
		if runeChar != '\uFEFF' {
			_ = buf.UnreadRune()
		}
	} else if errors.Is(err, io.EOF) {
		return map[string]int{}, nil
	}

	csvReader := csv.NewReader(buf)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	csvReader.Comment = '#'

	margins := make(map[string]int)
	for row := 0; ; row++ {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.InvalidInput, "마진 오버라이드 CSV 파싱 중 오류가 발생했습니다. 파일 형식을 확인해 주세요")
		}

		line, _ := csvReader.FieldPos(0)
		location := fmt.Sprintf("%d행", line)

		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		if len(record) <= int(csvColumnMargin) {
			return nil, apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s: 상품명과 마진 두 개의 컬럼이 필요합니다", location))
		}

		margin, err := strconv.Atoi(strings.TrimSuffix(record[csvColumnMargin], "%"))
		if err != nil {
			if row == 0 {
				continue
			}
			return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s: 마진('%s')이 정수가 아닙니다", location, record[csvColumnMargin]))
		}

		if err := put(margins, record[csvColumnTitle], margin, location); err != nil {
			return nil, err
		}
	}

	return margins, nil
}
