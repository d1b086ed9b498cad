package fetcher

import (
	"io"
	"net/http"
)

const (
	// DefaultMaxBytes 카테고리 페이지 하나에 허용하는 본문 크기 (10MB)
	DefaultMaxBytes = 10 * 1024 * 1024

	// NoLimit 본문 크기를 검사하지 않습니다.
	NoLimit = -1
)

// cappedBody limit를 넘는 첫 바이트를 읽는 순간 에러를 돌려주는 본문입니다.
// limit 이내의 데이터는 그대로 전달합니다.
type cappedBody struct {
	io.ReadCloser
	limit int64
	read  int64
}

func (b *cappedBody) Read(p []byte) (int, error) {
	if b.read > b.limit {
		return 0, newErrResponseBodyTooLarge(b.limit)
	}

	// 초과 여부를 알기 위해 limit보다 한 바이트만 더 읽습니다.
	if room := b.limit + 1 - b.read; int64(len(p)) > room {
		p = p[:room]
	}

	n, err := b.ReadCloser.Read(p)
	b.read += int64(n)
	if over := b.read - b.limit; over > 0 {
		return n - int(over), newErrResponseBodyTooLarge(b.limit)
	}
	return n, err
}

// MaxBytesFetcher 응답 본문 크기를 제한합니다. Content-Length로 초과가 확인되면 본문을 읽지 않고 실패합니다.
type MaxBytesFetcher struct {
	delegate Fetcher
	limit    int64
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*MaxBytesFetcher)(nil)

// NewMaxBytesFetcher limit가 NoLimit이면 delegate를 그대로, 0 이하이면 DefaultMaxBytes를 사용합니다.
func NewMaxBytesFetcher(delegate Fetcher, limit int64) Fetcher {
	switch {
	case limit == NoLimit:
		return delegate
	case limit <= 0:
		limit = DefaultMaxBytes
	}
	return &MaxBytesFetcher{delegate: delegate, limit: limit}
}

func (f *MaxBytesFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	if resp.ContentLength > f.limit {
		drainAndCloseBody(resp.Body)
		return nil, newErrResponseBodyTooLargeByContentLength(resp.ContentLength, f.limit)
	}

	if resp.Body != nil {
		resp.Body = &cappedBody{ReadCloser: resp.Body, limit: f.limit}
	}
	return resp, nil
}
