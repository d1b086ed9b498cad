package log

import "github.com/sirupsen/logrus"

// silentFormatter 아무 것도 출력하지 않는 포맷터입니다.
// logrus는 io.Discard로 출력하더라도 포맷팅을 수행하므로 이를 생략하기 위해 사용합니다. (실제 포맷팅은 hook에서 수행)
type silentFormatter struct{}

// Format 항상 nil을 반환합니다.
func (f *silentFormatter) Format(_ *logrus.Entry) ([]byte, error) {
	return nil, nil
}
