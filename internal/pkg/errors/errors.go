// Package errors 애플리케이션 전용 에러 처리 시스템을 제공합니다.
//
// 모든 에러에 ErrorType을 붙여 호출자가 처리 방식을 결정할 수 있게 합니다.
// 수집 흐름에서는 Unauthorized면 실행 전체를 중단하고, Unavailable이면 해당 카테고리만 건너뛰며,
// ParsingFailed면 해당 값만 null로 처리합니다.
//
//	err := errors.New(errors.ParsingFailed, "가격 문자열을 숫자로 변환할 수 없습니다")
//	err = errors.Wrap(err, errors.Unavailable, "카테고리 페이지 요청 실패")
//
//	errors.Is(err, errors.Unavailable)   // true
//	errors.UnderlyingType(err)           // ParsingFailed
package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// AppError ErrorType, 메시지, 원인 에러, 생성 위치의 스택을 담는 에러입니다.
type AppError struct {
	errType ErrorType
	message string
	cause   error
	stack   []StackFrame
}

// constructorCallerSkip runtime.Callers, captureStack, newAppError, 공개 생성 함수를 건너뜁니다.
const constructorCallerSkip = 4

func newAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		errType: errType,
		message: message,
		cause:   cause,
		stack:   captureStack(constructorCallerSkip),
	}
}

// New ErrorType과 메시지로 새 에러를 생성합니다.
func New(errType ErrorType, message string) error {
	return newAppError(errType, message, nil)
}

// Newf New의 포맷 문자열 버전입니다.
func Newf(errType ErrorType, format string, args ...any) error {
	return newAppError(errType, fmt.Sprintf(format, args...), nil)
}

// Wrap err를 원인으로 하는 새 에러를 생성합니다. err가 nil이면 nil을 반환합니다.
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return newAppError(errType, message, err)
}

// Wrapf Wrap의 포맷 문자열 버전입니다.
func Wrapf(err error, errType ErrorType, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return newAppError(errType, fmt.Sprintf(format, args...), err)
}

func (e *AppError) Type() ErrorType     { return e.errType }
func (e *AppError) Message() string     { return e.message }
func (e *AppError) Stack() []StackFrame { return e.stack }
func (e *AppError) Unwrap() error       { return e.cause }

func (e *AppError) Error() string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(e.errType.String())
	sb.WriteString("] ")
	sb.WriteString(e.message)
	if e.cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.cause.Error())
	}
	return sb.String()
}

// Format %+v는 에러 체인과 스택을 여러 줄로 출력합니다. 스택은 체인에서 가장 안쪽 AppError의 것만 출력합니다.
func (e *AppError) Format(s fmt.State, verb rune) {
	switch {
	case verb == 'v' && s.Flag('+'):
		fmt.Fprintf(s, "[%s] %s", e.errType, e.message)

		var inner *AppError
		if !errors.As(e.cause, &inner) {
			writeStack(s, e.stack)
		}

		if e.cause != nil {
			io.WriteString(s, "\nCaused by:\n")
			if f, ok := e.cause.(fmt.Formatter); ok {
				f.Format(s, verb)
			} else {
				fmt.Fprintf(s, "\t%v", e.cause)
			}
		}
	case verb == 'q':
		fmt.Fprintf(s, "%q", e.Error())
	default:
		io.WriteString(s, e.Error())
	}
}

func writeStack(w io.Writer, stack []StackFrame) {
	if len(stack) == 0 {
		return
	}
	io.WriteString(w, "\nStack trace:")
	for _, f := range stack {
		fn := f.Function
		if i := strings.LastIndex(fn, "/"); i >= 0 {
			fn = fn[i+1:]
		}
		fmt.Fprintf(w, "\n\t%s:%d %s", f.File, f.Line, fn)
	}
}

// Is 에러 체인 안의 AppError 중 하나라도 errType이면 true를 반환합니다.
func Is(err error, errType ErrorType) bool {
	found := false
	walk(err, func(e *AppError) bool {
		found = e.errType == errType
		return !found
	})
	return found
}

// As errors.As와 같습니다.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// RootCause 에러 체인의 가장 안쪽 에러를 반환합니다.
func RootCause(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return err
}

// UnderlyingType 에러 체인에서 가장 안쪽 AppError의 ErrorType을 반환합니다. AppError가 없으면 Unknown입니다.
//
//	err := Wrap(New(ParsingFailed, "가격 변환 실패"), ExecutionFailed, "카드 처리 실패")
//	UnderlyingType(err) // ParsingFailed
func UnderlyingType(err error) ErrorType {
	t := Unknown
	walk(err, func(e *AppError) bool {
		t = e.errType
		return true
	})
	return t
}

// walk 바깥부터 안쪽으로 체인의 AppError를 방문합니다. visit이 false를 반환하면 멈춥니다.
func walk(err error, visit func(*AppError) bool) {
	for ; err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*AppError); ok && !visit(e) {
			return
		}
	}
}
