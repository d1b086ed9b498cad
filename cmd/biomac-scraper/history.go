package main

import (
	"fmt"
	"io"
	"time"

	"github.com/darkkaiser/biomac-scraper/internal/history"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newHistoryCommand(flags *globalFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "최근 수집 실행 이력을 출력합니다.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return fatal("환경설정 로드 실패", err)
			}

			store, err := history.Open(cmd.Context(), cfg.History.Path)
			if err != nil {
				return fatal("실행 이력 조회 실패", err)
			}
			defer store.Close()

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return fatal("실행 이력 조회 실패", err)
			}

			renderRuns(cmd.OutOrStdout(), runs)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "출력할 최대 실행 수")

	return cmd
}

func renderRuns(w io.Writer, runs []history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "저장된 실행 이력이 없습니다.")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"실행 ID", "시작", "소요", "모드", "상품", "이벤트", "파일"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.ID,
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.FinishedAt.Sub(r.StartedAt).Round(100 * time.Millisecond).String(),
			r.Mode,
			r.Records,
			r.Events,
			r.File,
		})
	}
	t.Render()
}
