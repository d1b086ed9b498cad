package config

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
	"github.com/darkkaiser/biomac-scraper/pkg/cronx"
	"github.com/go-playground/validator/v10"
)

var (
	hexColorRegex     = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)
	categoryPathRegex = regexp.MustCompile(`/categoria-producto/[^/]+/$`)
)

var validate = newValidator()

// newValidator 설정 검증에 사용할 Validator를 생성합니다.
// 오류 메시지에 Go 필드명 대신 JSON 키 이름이 표시되도록 태그 이름 함수를 등록합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	register := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("초기화 치명적 오류: '%s' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", tag, err))
		}
	}
	register("hex_color", validateHexColor)
	register("category_url", validateCategoryURL)
	register("cron_spec", validateCronSpec)

	return v
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

// validateCategoryURL http(s) 절대 URL이며 경로가 /categoria-producto/{슬러그}/ 형식인지 검사합니다.
func validateCategoryURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil || u.Host == "" {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return categoryPathRegex.MatchString(u.Path)
}

func validateCronSpec(fl validator.FieldLevel) bool {
	return cronx.Validate(fl.Field().String()) == nil
}

// checkStruct 구조체를 검증하고, 실패 시 첫 번째 오류를 사용자 친화적인 메시지로 변환합니다.
func checkStruct(v *validator.Validate, s any, contextName string) error {
	if err := v.Struct(s); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			firstErr := validationErrors[0]

			if firstErr.Tag() == "unique" {
				return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 내에 중복된 항목이 존재합니다: '%v'", contextName, firstErr.Field()))
			}
			if firstErr.Tag() == "required_if" {
				return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 %s 값은 필수입니다", contextName, firstErr.Field()))
			}

			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 설정이 올바르지 않습니다: %s (조건: %s)", contextName, firstErr.Namespace(), firstErr.Tag()))
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 유효성 검증에 실패했습니다", contextName))
	}
	return nil
}
