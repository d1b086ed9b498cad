package pipeline

import (
	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
)

var (
	// ErrRunnerNotInitialized 스케줄러에 실행할 작업이 지정되지 않았을 때 반환됩니다.
	ErrRunnerNotInitialized = apperrors.New(apperrors.Internal, "스케줄러에 실행할 작업(Job)이 지정되지 않았습니다")
)

func newErrRunCanceled(err error) error {
	return apperrors.Wrap(err, apperrors.Unavailable, "수집 실행이 취소되어 리포트를 작성하지 않았습니다")
}

func newErrCardLoaderFailed(err error) error {
	return apperrors.Wrap(err, apperrors.InvalidInput, "상품 카드 로더를 생성할 수 없습니다")
}

func newErrInvalidSchedule(err error, spec string) error {
	return apperrors.Wrapf(err, apperrors.InvalidInput, "스케줄 등록 실패: 잘못된 Cron 표현식입니다 (TimeSpec: %s)", spec)
}
