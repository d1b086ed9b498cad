package main

import (
	"fmt"
	"sync"

	"github.com/darkkaiser/biomac-scraper/internal/pipeline"
	"github.com/darkkaiser/biomac-scraper/internal/pkg/version"
	applog "github.com/darkkaiser/biomac-scraper/pkg/log"
	"github.com/spf13/cobra"
)

func newRunCommand(flags *globalFlags) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "로그인 후 카테고리 페이지를 수집하여 엑셀 가격표를 생성합니다.",
		Long: "로그인 후 카테고리 페이지를 수집하여 엑셀 가격표를 생성합니다.\n" +
			"설정 파일의 schedule.enabled가 true이면 종료 신호를 받을 때까지 time_spec에 맞춰 반복 실행합니다.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScrape(cmd, flags, once)
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "정기 실행 설정과 관계없이 한 번만 실행합니다")

	return cmd
}

func runScrape(cmd *cobra.Command, flags *globalFlags, once bool) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return fatal("환경설정 로드 실패", err)
	}

	closer, err := setupLogging(cfg)
	if err != nil {
		return fatal("로그 시스템 초기화 실패", err)
	}
	defer closer.Close()

	out := cmd.OutOrStdout()
	buildInfo := version.Get()
	fmt.Fprintf(out, banner, buildInfo.Version)

	applog.WithComponentAndFields(component, applog.Fields(buildInfo.ToMap())).Info("수집기 초기화 시작")

	ctx := cmd.Context()
	runner := pipeline.NewRunner(cfg)

	if !cfg.Schedule.Enabled || once {
		result, err := runner.Run(ctx)
		if err != nil {
			return fatal("수집 실행 실패", err)
		}
		renderSummary(out, result)
		return nil
	}

	var mu sync.Mutex
	scheduler := pipeline.NewScheduler(runner, cfg.Schedule.TimeSpec, func(result *pipeline.Result, err error) {
		if err != nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		renderSummary(out, result)
	})

	var wg sync.WaitGroup
	wg.Add(1)
	if err := scheduler.Start(ctx, &wg); err != nil {
		return fatal("스케줄러 시작 실패", err)
	}

	fmt.Fprintf(out, "다음 실행 예정: %s (종료: Ctrl+C)\n", scheduler.Next().Format("2006-01-02 15:04:05"))

	<-ctx.Done()
	applog.WithComponent(component).Info("종료 신호를 수신하였습니다")
	wg.Wait()

	return nil
}
