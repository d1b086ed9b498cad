package log

import (
	"errors"
	"fmt"
	"os"
)

// Options Setup에 전달하는 로그 설정입니다. 0 값 필드는 기본값을 사용합니다.
type Options struct {
	// Name 로그 파일 이름의 앞부분 (<Name>.log, <Name>.critical.log ...)
	Name string

	// Dir 로그 디렉토리 (기본값 ./logs)
	Dir   string
	Level Level

	MaxAge     int // 보관 일수, 0이면 삭제하지 않음
	MaxSizeMB  int
	MaxBackups int

	EnableCriticalLog bool
	EnableVerboseLog  bool
	EnableConsoleLog  bool

	ReportCaller bool

	// CallerPathPrefix 호출 위치를 출력할 때 함수 경로 앞에서 잘라낼 모듈 경로
	CallerPathPrefix string
}

// Validate 설정 값을 검사합니다.
func (opts *Options) Validate() error {
	if opts.Name == "" {
		return errors.New("애플리케이션 식별자(Name)가 설정되지 않았습니다")
	}

	if opts.Dir != "" {
		info, err := os.Stat(opts.Dir)
		if err == nil && !info.IsDir() {
			return fmt.Errorf("로그 디렉토리 경로(%s)가 이미 파일로 존재합니다", opts.Dir)
		}
	}

	for _, f := range []struct {
		name  string
		value int
	}{
		{"MaxAge", opts.MaxAge},
		{"MaxSizeMB", opts.MaxSizeMB},
		{"MaxBackups", opts.MaxBackups},
	} {
		if f.value < 0 {
			return fmt.Errorf("%s는 0 이상이어야 합니다: %d", f.name, f.value)
		}
	}

	return nil
}
