package log

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultDir        = "logs"
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 20
)

var (
	setupOnce      sync.Once
	globalCloser   io.Closer
	globalSetupErr error
)

// Setup 전역 로거를 구성합니다. 두 번째 호출부터는 첫 호출의 결과를 그대로 돌려줍니다.
//
// 반환된 Closer는 프로그램 종료 시 닫아야 로테이션 파일의 버퍼가 비워집니다.
func Setup(opts Options) (io.Closer, error) {
	setupOnce.Do(func() {
		globalCloser, globalSetupErr = configure(opts)
	})
	return globalCloser, globalSetupErr
}

// rotation 채널별 로그 파일을 만드는 데 쓰는 로테이션 정책입니다.
type rotation struct {
	dir        string
	name       string
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
}

func newRotation(opts Options) rotation {
	return rotation{
		dir:        cmp.Or(opts.Dir, defaultDir),
		name:       opts.Name,
		maxSizeMB:  cmp.Or(opts.MaxSizeMB, defaultMaxSizeMB),
		maxBackups: cmp.Or(opts.MaxBackups, defaultMaxBackups),
		maxAgeDays: opts.MaxAge,
	}
}

// open channel이 비어 있으면 <name>.log, 아니면 <name>.<channel>.log 파일을 엽니다.
func (r rotation) open(channel string) *lumberjack.Logger {
	base := r.name
	if channel != "" {
		base = base + "." + channel
	}
	return &lumberjack.Logger{
		Filename:   filepath.Join(r.dir, base+".log"),
		MaxSize:    r.maxSizeMB,
		MaxBackups: r.maxBackups,
		MaxAge:     r.maxAgeDays,
		LocalTime:  true,
	}
}

func configure(opts Options) (io.Closer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("유효하지 않은 로그 설정: %w", err)
	}

	rot := newRotation(opts)
	if err := os.MkdirAll(rot.dir, 0o755); err != nil {
		return nil, fmt.Errorf("로그 디렉토리 생성 실패: %w", err)
	}

	logrus.SetLevel(cmp.Or(opts.Level, InfoLevel))
	logrus.SetReportCaller(opts.ReportCaller)

	// 출력은 hook이 담당한다.
	logrus.SetFormatter(&silentFormatter{})
	logrus.SetOutput(io.Discard)

	h, files := routeChannels(opts, rot)
	logrus.AddHook(h)

	c := &closer{closers: files, hook: h}
	logrus.RegisterExitHandler(func() { _ = c.Close() })

	return c, nil
}

// routeChannels 옵션에서 켜진 채널마다 파일을 열어 hook에 연결합니다. 반환되는 파일 목록의 첫 항목은 main 파일입니다.
func routeChannels(opts Options, rot rotation) (*hook, []io.Closer) {
	h := &hook{formatter: newTextFormatter(opts.CallerPathPrefix)}

	mainFile := rot.open("")
	h.mainWriter = mainFile
	files := []io.Closer{mainFile}

	if opts.EnableCriticalLog {
		f := rot.open("critical")
		h.criticalWriter = f
		files = append(files, f)
	}
	if opts.EnableVerboseLog {
		f := rot.open("verbose")
		h.verboseWriter = f
		files = append(files, f)
	}
	if opts.EnableConsoleLog {
		h.consoleWriter = os.Stdout
	}

	return h, files
}

func newTextFormatter(trimPrefix string) *logrus.TextFormatter {
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		CallerPrettyfier: func(frame *runtime.Frame) (string, string) {
			fn := frame.Function
			if trimPrefix != "" {
				if rest, ok := strings.CutPrefix(fn, trimPrefix); ok {
					fn = "..." + rest
				}
			}
			return fn + "(line:" + strconv.Itoa(frame.Line) + ")", ""
		},
	}
}
