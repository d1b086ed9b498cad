package fetcher

import (
	"io"
	"sync"
)

// maxDrainBytes 연결 재사용을 위해 읽어서 버릴 응답 본문의 최대 크기
const maxDrainBytes = 64 * 1024

var drainBufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 32*1024)
		return &b
	},
}

// drainAndCloseBody 남은 본문을 일정 크기까지 읽어서 버린 뒤 닫습니다.
//
// 본문을 끝까지 읽어야 Transport가 Keep-Alive 연결을 풀에 반환할 수 있습니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	defer body.Close()

	bufPtr := drainBufPool.Get().(*[]byte)
	defer drainBufPool.Put(bufPtr)

	_, _ = io.CopyBuffer(io.Discard, io.LimitReader(body, maxDrainBytes), *bufPtr)
}
