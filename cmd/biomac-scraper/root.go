package main

import (
	"fmt"
	"io"

	"github.com/darkkaiser/biomac-scraper/internal/config"
	"github.com/darkkaiser/biomac-scraper/internal/pkg/version"
	"github.com/darkkaiser/biomac-scraper/internal/report"
	applog "github.com/darkkaiser/biomac-scraper/pkg/log"
	"github.com/spf13/cobra"
)

// component 로깅용 컴포넌트 이름
const component = "main"

const banner = `
  ____  _                                  ____
 | __ )(_) ___  _ __ ___   __ _  ___      / ___|  ___ _ __ __ _ _ __   ___ _ __
 |  _ \| |/ _ \| '_ ' _ \ / _' |/ __|_____\___ \ / __| '__/ _' | '_ \ / _ \ '__|
 | |_) | | (_) | | | | | | (_| | (_|_____|___) | (__| | | (_| | |_) |  __/ |
 |____/|_|\___/|_| |_| |_|\__,_|\___|    |____/ \___|_|  \__,_| .__/ \___|_|
                                                              |_|   %s
--------------------------------------------------------------------------------
`

// globalFlags 모든 하위 명령이 공유하는 플래그입니다.
type globalFlags struct {
	configFile string
	mode       string
	outputDir  string
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "reventa.biomac.com.ar 상품 목록을 수집하여 판매가가 포함된 엑셀 가격표를 생성합니다.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScrape(cmd, flags, false)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", config.DefaultFilename, "설정 파일 경로")
	pf.StringVar(&flags.mode, "mode", "", "리포트 모드 (static 또는 formula, 미지정 시 설정 파일 값)")
	pf.StringVarP(&flags.outputDir, "output-dir", "o", "", "엑셀 파일을 저장할 디렉터리 (미지정 시 설정 파일 값)")

	root.AddCommand(
		newRunCommand(flags),
		newHistoryCommand(flags),
		newVersionCommand(),
	)

	return root
}

// loadConfig 설정 파일을 읽고 명령행 플래그 값을 덮어씁니다.
func loadConfig(flags *globalFlags) (*config.AppConfig, error) {
	cfg, err := config.LoadWithFile(flags.configFile)
	if err != nil {
		return nil, err
	}

	if flags.mode != "" {
		mode, err := report.ParseMode(flags.mode)
		if err != nil {
			return nil, err
		}
		cfg.Report.Mode = string(mode)
	}
	if flags.outputDir != "" {
		cfg.Report.OutputDir = flags.outputDir
	}

	return cfg, nil
}

// setupLogging 로그 시스템을 초기화하고 설정 권장 사항을 경고로 남깁니다.
func setupLogging(cfg *config.AppConfig) (io.Closer, error) {
	opts := applog.NewProductionOptions(config.AppName)
	if cfg.Debug {
		opts = applog.NewDevelopmentOptions(config.AppName)
	}

	closer, err := applog.Setup(opts)
	if err != nil {
		return nil, err
	}
	applog.SetDebugMode(cfg.Debug)

	for _, warning := range cfg.VerifyRecommendations() {
		applog.WithComponent(component).Warn(warning)
	}

	return closer, nil
}

// fatal 실패 단계를 에러 메시지 앞에 붙입니다. 출력은 main에서 표준 에러로 합니다.
func fatal(what string, err error) error {
	return fmt.Errorf("%s: %w", what, err)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "버전 정보를 출력합니다.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", config.AppName, version.Get())
		},
	}
}
