package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// hook 포맷팅한 로그 한 줄을 레벨에 맞는 파일로 보냅니다.
//
// Error 이상은 critical과 main, Warn/Info는 main, Debug 이하는 verbose에만 기록됩니다.
// console은 레벨과 무관하게 모든 로그를 받습니다.
type hook struct {
	mainWriter     io.Writer
	criticalWriter io.Writer
	verboseWriter  io.Writer
	consoleWriter  io.Writer

	formatter Formatter

	mu     sync.RWMutex
	closed bool
}

// destination 이름이 붙은 출력 대상
type destination struct {
	name string
	w    io.Writer
}

func (h *hook) Levels() []Level {
	return AllLevels
}

// destinations 레벨에 해당하는 파일 출력 대상을 반환합니다. console은 포함하지 않습니다.
func (h *hook) destinations(level Level) []destination {
	switch {
	case level <= ErrorLevel:
		return []destination{{"Critical", h.criticalWriter}, {"Main", h.mainWriter}}
	case level >= DebugLevel:
		return []destination{{"Verbose", h.verboseWriter}}
	default:
		return []destination{{"Main", h.mainWriter}}
	}
}

// Fire 한 대상의 기록이 실패해도 나머지 대상에는 계속 기록하고, 처음 발생한 에러를 반환합니다.
func (h *hook) Fire(entry *Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil
	}

	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	if h.consoleWriter != nil {
		if _, err := h.consoleWriter.Write(line); err != nil {
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-WARN] 콘솔 출력 실패: %v\n", err)
		}
	}

	var firstErr error
	for _, d := range h.destinations(entry.Level) {
		if d.w == nil {
			continue
		}
		if _, err := d.w.Write(line); err != nil {
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-FAILURE] %s 로그 기록 실패: %v\n", d.name, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Close 이후의 Fire 호출은 아무것도 기록하지 않습니다.
func (h *hook) Close() error {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	return nil
}
