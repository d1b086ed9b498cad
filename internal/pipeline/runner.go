// Package pipeline 로그인부터 엑셀 리포트 작성까지 수집 실행 한 번의 전체 흐름을 조립합니다.
package pipeline

import (
	"context"
	"net/http"
	"time"

	"github.com/darkkaiser/biomac-scraper/internal/catalog"
	"github.com/darkkaiser/biomac-scraper/internal/config"
	"github.com/darkkaiser/biomac-scraper/internal/history"
	"github.com/darkkaiser/biomac-scraper/internal/overrides"
	"github.com/darkkaiser/biomac-scraper/internal/report"
	"github.com/darkkaiser/biomac-scraper/internal/scraper"
	"github.com/darkkaiser/biomac-scraper/internal/session"
	applog "github.com/darkkaiser/biomac-scraper/pkg/log"
	"github.com/google/uuid"
)

// component 수집 실행 로깅용 컴포넌트 이름
const component = "pipeline"

// Runner 설정에 따라 수집 실행을 수행합니다.
type Runner struct {
	cfg *config.AppConfig

	transport http.RoundTripper
	now       func() time.Time
	newRunID  func() string
}

// Option Runner 생성 옵션입니다.
type Option func(*Runner)

// WithTransport HTTP 요청에 사용할 RoundTripper를 지정합니다.
func WithTransport(rt http.RoundTripper) Option {
	return func(r *Runner) {
		r.transport = rt
	}
}

// WithClock 실행 시각과 리포트 파일 이름에 사용할 시계를 지정합니다.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// NewRunner 새로운 Runner를 생성합니다. cfg는 검증이 끝난 설정이어야 합니다.
func NewRunner(cfg *config.AppConfig, opts ...Option) *Runner {
	r := &Runner{
		cfg:      cfg,
		now:      time.Now,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run 수집 실행을 한 번 수행합니다.
//
// 마진 오버라이드 로드, 로그인, 카테고리 수집, 리포트 작성, 이력 저장 순서로 진행됩니다.
// 로그인에 실패하거나 수집 도중 ctx가 취소되면 리포트를 작성하지 않고 에러를 반환합니다.
// 개별 카테고리 페이지의 실패는 데이터 품질 이벤트로 기록되며 실행을 중단시키지 않습니다.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		RunID:     r.newRunID(),
		StartedAt: r.now(),
	}

	logger := applog.WithComponentAndFields(component, applog.Fields{
		"run_id": result.RunID,
	})
	logger.Info("수집 실행을 시작합니다")

	margins, err := overrides.Load(r.cfg.Pricing.OverridesFile)
	if err != nil {
		return nil, err
	}

	writer, err := report.NewWriter(report.Options{
		Mode:           report.Mode(r.cfg.Report.Mode),
		OutputDir:      r.cfg.Report.OutputDir,
		FilePrefix:     r.cfg.Report.FilePrefix,
		SheetName:      r.cfg.Report.SheetName,
		CategoryColors: r.cfg.Store.CategoryColors(catalog.CategoryFromURL),
		Now:            r.now,
	})
	if err != nil {
		return nil, err
	}

	sess, err := session.Login(ctx, session.Options{
		BaseURL:         r.cfg.Store.BaseURL,
		LoginPath:       r.cfg.Store.LoginPath,
		Username:        r.cfg.Credentials.Username,
		Password:        r.cfg.Credentials.Password,
		Timeout:         r.cfg.HTTP.Timeout,
		RequestInterval: r.cfg.HTTP.RequestInterval,
		MaxRetries:      r.cfg.HTTPRetry.MaxRetries,
		RetryDelay:      r.cfg.HTTPRetry.RetryDelay,
		MaxBytes:        r.cfg.HTTP.MaxBytes,
		UserAgent:       r.cfg.HTTP.UserAgent,
		Transport:       r.transport,
	})
	if err != nil {
		logger.WithError(err).Error("로그인에 실패하여 수집 실행을 중단합니다")
		return nil, err
	}

	loader, err := scraper.NewCardLoader(scraper.New(sess.Fetcher()), r.cfg.Store.CardSelector, r.cfg.Store.MaxPages)
	if err != nil {
		return nil, newErrCardLoaderFailed(err)
	}

	events := &catalog.EventLog{}
	assembler := catalog.NewAssembler(margins, r.cfg.Pricing.DefaultMargin, catalog.Tee(events, catalog.NewLogSink()))

	urls := r.cfg.Store.CategoryURLs()
	result.Records = assembler.Collect(ctx, loader, urls)
	result.Events = events.Events()

	if err := ctx.Err(); err != nil {
		logger.WithError(err).Warn("수집 도중 실행이 취소되었습니다")
		return nil, newErrRunCanceled(err)
	}

	categories := make([]string, 0, len(urls))
	for _, u := range urls {
		categories = append(categories, catalog.CategoryFromURL(u))
	}
	result.PerCategory = summarize(categories, result.Records)

	if result.File, err = writer.Write(result.Records); err != nil {
		return nil, err
	}

	result.FinishedAt = r.now()

	if r.cfg.History.Enabled {
		result.Changes = r.saveHistory(ctx, result, categories, string(writer.Mode()))
	}

	logger.WithFields(applog.Fields{
		"file":    result.File,
		"records": len(result.Records),
		"events":  len(result.Events),
		"changes": len(result.Changes),
		"elapsed": result.FinishedAt.Sub(result.StartedAt).String(),
	}).Info("수집 실행이 완료되었습니다")

	return result, nil
}

// saveHistory 이전 실행과의 가격 변동을 계산한 뒤 이번 실행을 이력에 저장합니다.
// 리포트는 이미 작성된 상태이므로 이력 저장 실패는 경고로만 남깁니다.
func (r *Runner) saveHistory(ctx context.Context, result *Result, categories []string, mode string) []history.PriceChange {
	logger := applog.WithComponentAndFields(component, applog.Fields{
		"run_id": result.RunID,
		"path":   r.cfg.History.Path,
	})

	store, err := history.Open(ctx, r.cfg.History.Path)
	if err != nil {
		logger.WithError(err).Warn("실행 이력 데이터베이스를 열 수 없어 이력 저장을 건너뜁니다")
		return nil
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.WithError(err).Warn("실행 이력 데이터베이스를 닫는 중 오류가 발생하였습니다")
		}
	}()

	byCategory := make(map[string][]catalog.ProductRecord, len(categories))
	for _, rec := range result.Records {
		byCategory[rec.Category] = append(byCategory[rec.Category], rec)
	}

	var changes []history.PriceChange
	for _, category := range categories {
		previous, err := store.LastPrices(ctx, category)
		if err != nil {
			logger.WithError(err).Warn("이전 실행의 가격을 조회할 수 없습니다")
			continue
		}
		changes = append(changes, history.Changes(previous, byCategory[category])...)
	}

	if err := store.SaveRun(ctx, history.Run{
		ID:         result.RunID,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
		Mode:       mode,
		File:       result.File,
		Events:     len(result.Events),
	}, result.Records); err != nil {
		logger.WithError(err).Warn("실행 이력 저장에 실패하였습니다")
	}

	return changes
}
