package report

import (
	"fmt"

	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
)

func newErrOutputDirUnavailable(err error, dir string) error {
	return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("리포트 출력 디렉터리를 준비할 수 없습니다: '%s'", dir))
}

func newErrInvalidSheetName(name string) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("시트 이름은 1~31자여야 합니다: '%s'", name))
}

func newErrInvalidColor(color string) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("카테고리 색상은 6자리 16진수여야 합니다: '%s'", color))
}

func newErrWorkbookFailed(err error, step string) error {
	return apperrors.Wrap(err, apperrors.Internal, fmt.Sprintf("엑셀 통합 문서 작성 중 오류가 발생하였습니다(%s)", step))
}

func newErrSaveFailed(err error, path string) error {
	return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("엑셀 파일을 저장할 수 없습니다: '%s'", path))
}
