package scraper

import (
	"fmt"

	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
)

var (
	// ErrInputReaderNil 파싱할 Reader가 nil입니다.
	ErrInputReaderNil = apperrors.New(apperrors.Internal, "파싱 초기화 실패: 입력 데이터 스트림(Reader)이 nil입니다")

	// ErrInputReaderInvalidType 파싱할 Reader가 Typed Nil입니다.
	ErrInputReaderInvalidType = apperrors.New(apperrors.Internal, "파싱 초기화 실패: 입력 데이터 스트림(Reader)이 유효하지 않은 타입(Typed Nil)입니다")
)

func newErrContextCanceled(err error) error {
	return apperrors.Wrap(err, apperrors.ExecutionFailed, "작업 중단: 실행 중인 요청이 취소되었거나 타임아웃이 발생했습니다")
}

func newErrCreateHTTPRequest(url string, err error) error {
	return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("HTTP 요청 생성 실패: 요청을 초기화하는 도중 오류가 발생했습니다 (대상 URL: %s)", url))
}

func newErrHTTPRequestCanceled(url string, err error) error {
	return apperrors.Wrap(err, apperrors.Unavailable, fmt.Sprintf("요청 중단: 작업 시간이 초과되었거나 취소되었습니다 (대상 URL: %s)", url))
}

func newErrFetchFailed(url string, err error) error {
	return apperrors.Wrap(err, apperrors.Unavailable, fmt.Sprintf("페이지(%s)를 불러오지 못했습니다", url))
}

func newErrHTMLParseFailed(url string, err error) error {
	return apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("HTML 파싱 실패: 불러온 페이지(%s)를 처리하는 도중 오류가 발생하였습니다", url))
}

func newErrEmptyCardSelector() error {
	return apperrors.New(apperrors.InvalidInput, "상품 카드 CSS 셀렉터가 비어 있습니다")
}
