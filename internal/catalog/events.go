package catalog

import (
	"fmt"
	"sync"

	applog "github.com/darkkaiser/biomac-scraper/pkg/log"
)

const component = "catalog"

// EventKind 데이터 품질 이벤트의 종류입니다.
type EventKind int

const (
	// MissingRequiredField 필수 필드(제목)가 없어 카드를 건너뜀
	MissingRequiredField EventKind = iota + 1

	// UnparsableNumeric 가격 또는 할인율을 숫자로 변환하지 못해 null(0)로 처리함
	UnparsableNumeric

	// PageUnavailable 카테고리 페이지를 가져오지 못해 카테고리 전체를 건너뜀
	PageUnavailable
)

func (k EventKind) String() string {
	switch k {
	case MissingRequiredField:
		return "MissingRequiredField"
	case UnparsableNumeric:
		return "UnparsableNumeric"
	case PageUnavailable:
		return "PageUnavailable"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event 실행을 중단시키지 않는 데이터 품질 문제 한 건입니다.
type Event struct {
	Kind     EventKind
	Category string
	URL      string
	Title    string // 제목을 읽기 전에 발생한 경우 빈 문자열
	Detail   string // 문제가 된 필드 (예: "price", "discount")
	Err      error
}

// EventSink 데이터 품질 이벤트를 전달받습니다.
type EventSink interface {
	Report(e Event)
}

// EventSinkFunc 함수를 EventSink로 사용할 수 있게 합니다.
type EventSinkFunc func(e Event)

// Report f(e)를 호출합니다.
func (f EventSinkFunc) Report(e Event) {
	f(e)
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var (
	_ EventSink = EventSinkFunc(nil)
	_ EventSink = (*EventLog)(nil)
	_ EventSink = logSink{}
	_ EventSink = multiSink(nil)
)

type logSink struct{}

// NewLogSink 이벤트를 Warn 레벨 로그로 기록하는 EventSink를 반환합니다.
func NewLogSink() EventSink {
	return logSink{}
}

func (logSink) Report(e Event) {
	fields := applog.Fields{
		"kind":     e.Kind.String(),
		"category": e.Category,
	}
	if e.URL != "" {
		fields["url"] = e.URL
	}
	if e.Title != "" {
		fields["title"] = e.Title
	}
	if e.Detail != "" {
		fields["field"] = e.Detail
	}

	entry := applog.WithComponentAndFields(component, fields)
	if e.Err != nil {
		entry = entry.WithError(e.Err)
	}

	switch e.Kind {
	case PageUnavailable:
		entry.Warn("카테고리 페이지를 가져오지 못해 카테고리를 건너뜁니다")
	case MissingRequiredField:
		entry.Warn("필수 필드가 없어 상품 카드를 건너뜁니다")
	default:
		entry.Warn("숫자로 변환할 수 없는 값을 null로 처리합니다")
	}
}

// EventLog 발생한 이벤트를 순서대로 모읍니다. 여러 고루틴에서 동시에 사용할 수 있습니다.
type EventLog struct {
	mu     sync.Mutex
	events []Event
}

// Report 이벤트를 추가합니다.
func (l *EventLog) Report(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, e)
}

// Events 지금까지 수집된 이벤트의 복사본을 반환합니다.
func (l *EventLog) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Count 주어진 종류의 이벤트 수를 반환합니다.
func (l *EventLog) Count(kind EventKind) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, e := range l.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Len 수집된 전체 이벤트 수를 반환합니다.
func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.events)
}

type multiSink []EventSink

// Tee 이벤트를 여러 EventSink에 차례로 전달합니다. nil 항목은 무시합니다.
func Tee(sinks ...EventSink) EventSink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multiSink) Report(e Event) {
	for _, s := range m {
		s.Report(e)
	}
}
