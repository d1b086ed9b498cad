package scraper

import (
	"context"
	"io"
)

// contextAwareReader 읽기 전마다 Context 취소 여부를 확인하는 Reader입니다.
type contextAwareReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *contextAwareReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
