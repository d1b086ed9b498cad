// Package cronx 정기 실행 스케줄에 사용하는 Cron 표현식 파서를 제공합니다.
package cronx

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// StandardParser 초 단위를 포함하는 6필드 형식의 Cron 파서를 반환합니다.
//
// 필드 순서: [초] [분] [시] [일] [월] [요일]. @daily, @every 1h 같은 Descriptor도 허용합니다.
//
//   - "0 0 7 * * MON-SAT" : 월~토 오전 7시마다 가격표 생성
//   - "@daily"            : 매일 자정
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// Validate 표현식이 StandardParser로 해석 가능한지 검사합니다.
func Validate(spec string) error {
	if strings.TrimSpace(spec) == "" {
		return fmt.Errorf("cron 표현식이 비어 있습니다")
	}
	if _, err := StandardParser().Parse(spec); err != nil {
		return fmt.Errorf("cron 표현식('%s')을 해석할 수 없습니다: %w", spec, err)
	}
	return nil
}
