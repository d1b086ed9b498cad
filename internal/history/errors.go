package history

import (
	"fmt"

	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
)

var (
	// ErrEmptyRunID 실행 ID 없이 이력을 저장하려고 할 때 반환됩니다.
	ErrEmptyRunID = apperrors.New(apperrors.InvalidInput, "실행 ID가 비어 있습니다")
)

func newErrOpenFailed(err error, path string) error {
	return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("실행 이력 데이터베이스를 열 수 없습니다: '%s'", path))
}

func newErrSchemaFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "실행 이력 테이블을 생성할 수 없습니다")
}

func newErrSaveFailed(err error, runID string) error {
	return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("실행 이력을 저장할 수 없습니다(run: %s)", runID))
}

func newErrQueryFailed(err error, what string) error {
	return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("실행 이력 조회 중 오류가 발생하였습니다(%s)", what))
}
