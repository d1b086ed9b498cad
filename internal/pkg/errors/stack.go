package errors

import (
	"path/filepath"
	"runtime"
)

// maxStackFrames 수집할 최대 스택 프레임 수
const maxStackFrames = 5

// StackFrame 단일 함수 호출 스택의 실행 위치 정보입니다.
type StackFrame struct {
	File     string // 파일 이름
	Line     int    // 줄 번호
	Function string // 함수 이름
}

// captureStack 현재 실행 위치의 스택 정보를 최대 maxStackFrames 단계까지 수집합니다.
func captureStack(skip int) []StackFrame {
	pc := make([]uintptr, maxStackFrames)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return nil
	}

	frames := make([]StackFrame, 0, n)
	it := runtime.CallersFrames(pc[:n])
	for more := true; more; {
		var f runtime.Frame
		f, more = it.Next()
		frames = append(frames, StackFrame{File: filepath.Base(f.File), Line: f.Line, Function: f.Function})
	}
	return frames
}
