package session

import (
	"fmt"

	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
)

// ErrMissingCredentials 로그인 사용자 이름 또는 비밀번호가 비어 있습니다.
var ErrMissingCredentials = apperrors.New(apperrors.InvalidInput, "로그인 자격 증명(사용자 이름/비밀번호)이 설정되지 않았습니다")

func newErrInvalidBaseURL(baseURL string, err error) error {
	if err == nil {
		return apperrors.Newf(apperrors.InvalidInput, "상점 주소('%s')에 호스트가 없습니다", baseURL)
	}
	return apperrors.Wrapf(err, apperrors.InvalidInput, "상점 주소('%s')를 해석할 수 없습니다", baseURL)
}

func newErrCookieJarCreationFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "쿠키 저장소를 생성하지 못했습니다")
}

func newErrLoginPageUnavailable(err error) error {
	return apperrors.Wrap(err, apperrors.Unavailable, "로그인 페이지에 접속할 수 없습니다")
}

func newErrLoginRequestFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Unavailable, "로그인 요청 전송에 실패했습니다")
}

func newErrLoginRejected(message string) error {
	if message == "" {
		return apperrors.New(apperrors.Unauthorized, "로그인에 실패했습니다: 인증 쿠키를 받지 못했습니다")
	}
	return apperrors.New(apperrors.Unauthorized, fmt.Sprintf("로그인에 실패했습니다: %s", message))
}

func newErrPacingCanceled(err error) error {
	return apperrors.Wrap(err, apperrors.Unavailable, "요청 간격 대기 중 작업이 취소되었습니다")
}
