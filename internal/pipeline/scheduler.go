package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/darkkaiser/biomac-scraper/pkg/cronx"
	applog "github.com/darkkaiser/biomac-scraper/pkg/log"
	"github.com/robfig/cron/v3"
)

// Job 스케줄러가 주기적으로 실행하는 작업입니다.
type Job interface {
	Run(ctx context.Context) (*Result, error)
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Job = (*Runner)(nil)

// ResultHandler 스케줄 실행이 끝날 때마다 호출됩니다.
type ResultHandler func(result *Result, err error)

// Scheduler Cron 표현식에 맞춰 Job을 실행합니다. 이전 실행이 끝나지 않았으면 다음 실행을 건너뜁니다.
type Scheduler struct {
	job      Job
	timeSpec string
	onResult ResultHandler

	cron *cron.Cron

	running   bool
	runningMu sync.Mutex
}

// NewScheduler 새로운 Scheduler를 생성합니다. onResult는 nil일 수 있습니다.
func NewScheduler(job Job, timeSpec string, onResult ResultHandler) *Scheduler {
	return &Scheduler{
		job:      job,
		timeSpec: timeSpec,
		onResult: onResult,
	}
}

// Start 스케줄러를 시작합니다. ctx가 취소되면 진행 중인 실행을 기다린 뒤 스케줄러를 중지하고 wg.Done()을 호출합니다.
func (s *Scheduler) Start(ctx context.Context, wg *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if s.job == nil {
		wg.Done()
		return ErrRunnerNotInitialized
	}

	if s.running {
		wg.Done()
		applog.WithComponent(component).Warn("스케줄러가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	logger := cron.PrintfLogger(applog.WithComponent(component))
	c := cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		),
	)

	if _, err := c.AddFunc(s.timeSpec, func() { s.runOnce(ctx) }); err != nil {
		wg.Done()
		return newErrInvalidSchedule(err, s.timeSpec)
	}

	s.cron = c
	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"time_spec": s.timeSpec,
		"next_run":  s.nextLocked().Format(time.RFC3339),
	}).Info("스케줄러가 시작되었습니다")

	go func() {
		defer wg.Done()

		<-ctx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 스케줄러를 중지하고 진행 중인 실행이 끝날 때까지 기다립니다.
func (s *Scheduler) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	if s.cron != nil {
		<-s.cron.Stop().Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("스케줄러가 중지되었습니다")
}

// Next 다음 실행 예정 시각을 반환합니다. 스케줄러가 실행 중이 아니면 zero time을 반환합니다.
func (s *Scheduler) Next() time.Time {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	return s.nextLocked()
}

func (s *Scheduler) nextLocked() time.Time {
	if s.cron == nil {
		return time.Time{}
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Scheduler) runOnce(ctx context.Context) {
	result, err := s.job.Run(ctx)
	if err != nil {
		applog.WithComponent(component).WithError(err).Error("예약된 수집 실행이 실패하였습니다")
	}

	if s.onResult != nil {
		s.onResult(result, err)
	}
}
