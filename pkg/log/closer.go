package log

import (
	"errors"
	"io"
	"sync"
)

// closer Setup이 연 로그 파일들을 한꺼번에 닫습니다. 먼저 hook을 멈춘 뒤 파일을 닫으며, 여러 번 호출해도 됩니다.
type closer struct {
	closers []io.Closer
	hook    *hook

	once sync.Once
}

func (c *closer) Close() error {
	var err error
	c.once.Do(func() {
		if c.hook != nil {
			_ = c.hook.Close()
		}
		for _, f := range c.closers {
			if f == nil {
				continue
			}
			err = errors.Join(err, f.Close())
		}
	})
	return err
}
