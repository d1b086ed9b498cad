// Package history 실행 결과와 상품별 가격을 sqlite 데이터베이스에 보관합니다.
//
// 이전 실행의 가격과 비교하여 가격 변동을 알려주는 용도로 사용됩니다.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"time"

	"github.com/darkkaiser/biomac-scraper/internal/catalog"
	applog "github.com/darkkaiser/biomac-scraper/pkg/log"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// component 실행 이력 저장소 로깅용 컴포넌트 이름
const component = "history"

//go:embed schema.sql
var schema string

// Run 한 번의 수집 실행 정보입니다.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Mode       string
	File       string
	Records    int
	Events     int
}

// Store sqlite 기반 실행 이력 저장소입니다.
type Store struct {
	db *sql.DB
}

// Open 데이터베이스 파일을 열고 테이블이 없으면 생성합니다.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, newErrOpenFailed(err, path)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, newErrOpenFailed(err, path)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, newErrSchemaFailed(err)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"path": path,
	}).Debug("실행 이력 데이터베이스를 열었습니다")

	return &Store{db: db}, nil
}

// Close 데이터베이스 연결을 닫습니다.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun 실행 정보와 레코드 목록을 하나의 트랜잭션으로 저장합니다.
func (s *Store) SaveRun(ctx context.Context, run Run, records []catalog.ProductRecord) (err error) {
	if run.ID == "" {
		return ErrEmptyRunID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return newErrSaveFailed(err, run.ID)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, mode, file, records, events) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UnixMilli(), run.FinishedAt.UnixMilli(), run.Mode, run.File, len(records), run.Events,
	); err != nil {
		return newErrSaveFailed(err, run.ID)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO prices (
			run_id, position, category, title,
			base_price, effective_price, final_price, rounded_price,
			discount_percent, margin_percent, min_purchase_qty, unavailable
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return newErrSaveFailed(err, run.ID)
	}
	defer stmt.Close()

	for i := range records {
		r := &records[i]
		if _, err = stmt.ExecContext(ctx,
			run.ID, i, r.Category, r.Title,
			r.BasePrice, r.EffectivePrice, r.FinalPrice, r.RoundedPrice,
			r.DiscountPercent, r.MarginPercent, r.MinPurchaseQty, r.Unavailable(),
		); err != nil {
			return newErrSaveFailed(err, run.ID)
		}
	}

	if err = tx.Commit(); err != nil {
		return newErrSaveFailed(err, run.ID)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"run_id":  run.ID,
		"records": len(records),
	}).Info("실행 이력 저장이 완료되었습니다")

	return nil
}

// LastPrices 해당 카테고리를 포함한 가장 최근 실행의 상품별 실제 판매가를 반환합니다.
// 같은 제목이 여러 번 나오면 마지막 값을 사용합니다. 이력이 없으면 빈 맵을 반환합니다.
func (s *Store) LastPrices(ctx context.Context, category string) (map[string]decimal.NullDecimal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.title, p.effective_price
		FROM prices p
		WHERE p.category = ?
		  AND p.run_id = (
			SELECT r.id
			FROM runs r
			WHERE EXISTS (SELECT 1 FROM prices q WHERE q.run_id = r.id AND q.category = ?)
			ORDER BY r.started_at DESC, r.rowid DESC
			LIMIT 1
		  )
		ORDER BY p.position`, category, category)
	if err != nil {
		return nil, newErrQueryFailed(err, "last prices")
	}
	defer rows.Close()

	prices := make(map[string]decimal.NullDecimal)
	for rows.Next() {
		var title string
		var price decimal.NullDecimal
		if err := rows.Scan(&title, &price); err != nil {
			return nil, newErrQueryFailed(err, "last prices")
		}
		prices[title] = price
	}
	if err := rows.Err(); err != nil {
		return nil, newErrQueryFailed(err, "last prices")
	}

	return prices, nil
}

// RecentRuns 최근 실행 정보를 최신순으로 최대 limit개 반환합니다.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, mode, file, records, events
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, newErrQueryFailed(err, "recent runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt, finishedAt int64
		if err := rows.Scan(&run.ID, &startedAt, &finishedAt, &run.Mode, &run.File, &run.Records, &run.Events); err != nil {
			return nil, newErrQueryFailed(err, "recent runs")
		}
		run.StartedAt = time.UnixMilli(startedAt)
		run.FinishedAt = time.UnixMilli(finishedAt)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, newErrQueryFailed(err, "recent runs")
	}

	return runs, nil
}
