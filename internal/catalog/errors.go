package catalog

import (
	"fmt"

	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
)

func newErrMissingTitle() error {
	return apperrors.New(apperrors.NotFound, "상품 제목(.woocommerce-loop-product__title)을 찾을 수 없습니다")
}

func newErrBlankTitle() error {
	return apperrors.New(apperrors.NotFound, "상품 제목이 비어 있습니다")
}

func newErrUnparsableAmount(raw string, cause error) error {
	if cause == nil {
		return apperrors.New(apperrors.ParsingFailed, fmt.Sprintf("가격 문자열을 숫자로 변환할 수 없습니다: '%s'", raw))
	}
	return apperrors.Wrap(cause, apperrors.ParsingFailed, fmt.Sprintf("가격 문자열을 숫자로 변환할 수 없습니다: '%s'", raw))
}

func newErrUnparsableDiscount(raw string, cause error) error {
	if cause == nil {
		return apperrors.New(apperrors.ParsingFailed, fmt.Sprintf("할인율 배지에서 숫자를 찾을 수 없습니다: '%s'", raw))
	}
	return apperrors.Wrap(cause, apperrors.ParsingFailed, fmt.Sprintf("할인율 배지의 숫자를 변환할 수 없습니다: '%s'", raw))
}
