package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/darkkaiser/biomac-scraper/internal/catalog"
	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func record(category, title string, effective decimal.NullDecimal) catalog.ProductRecord {
	return catalog.ProductRecord{
		Title:          title,
		Category:       category,
		Price:          catalog.Single(effective),
		BasePrice:      effective,
		EffectivePrice: effective,
		MinPurchaseQty: 1,
		MarginPercent:  catalog.DefaultMargin,
	}
}

func openStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func runAt(id string, at time.Time) Run {
	return Run{ID: id, StartedAt: at, FinishedAt: at.Add(time.Minute), Mode: "static", File: id + ".xlsx"}
}

// =============================================================================
// SaveRun / LastPrices
// =============================================================================

func TestStore_SaveAndLastPrices(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openStore(t)
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveRun(ctx, runAt("run-1", base), []catalog.ProductRecord{
		record("frutas", "Manzana Roja", nd("1000")),
		record("frutas", "Pera", nd("800")),
		record("vegetales", "Lechuga", nd("300")),
	}))
	require.NoError(t, s.SaveRun(ctx, runAt("run-2", base.Add(24*time.Hour)), []catalog.ProductRecord{
		record("frutas", "Manzana Roja", nd("1100.50")),
		record("frutas", "Kiwi", decimal.NullDecimal{}),
	}))

	frutas, err := s.LastPrices(ctx, "frutas")
	require.NoError(t, err)
	require.Len(t, frutas, 2, "가장 최근 실행의 가격만 반환해야 합니다")
	assert.True(t, frutas["Manzana Roja"].Decimal.Equal(decimal.RequireFromString("1100.5")))
	assert.False(t, frutas["Kiwi"].Valid)

	vegetales, err := s.LastPrices(ctx, "vegetales")
	require.NoError(t, err)
	require.Len(t, vegetales, 1, "카테고리를 포함한 가장 최근 실행을 사용해야 합니다")
	assert.True(t, vegetales["Lechuga"].Decimal.Equal(decimal.NewFromInt(300)))

	none, err := s.LastPrices(ctx, "helados")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_RecentRuns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openStore(t)
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		run := runAt(id, base.Add(time.Duration(i)*time.Hour))
		run.Events = i
		require.NoError(t, s.SaveRun(ctx, run, []catalog.ProductRecord{record("frutas", "Pera", nd("800"))}))
	}

	runs, err := s.RecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
	assert.Equal(t, 1, runs[0].Records)
	assert.Equal(t, 2, runs[0].Events)
	assert.True(t, runs[0].StartedAt.Equal(base.Add(2*time.Hour)))
}

func TestStore_SaveRunRollsBackOnDuplicate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openStore(t)
	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveRun(ctx, runAt("run-1", at), []catalog.ProductRecord{record("frutas", "Pera", nd("800"))}))

	err := s.SaveRun(ctx, runAt("run-1", at.Add(time.Hour)), []catalog.ProductRecord{record("frutas", "Pera", nd("900"))})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.System))

	prices, err := s.LastPrices(ctx, "frutas")
	require.NoError(t, err)
	assert.True(t, prices["Pera"].Decimal.Equal(decimal.NewFromInt(800)))
}

func TestStore_SaveRunRequiresID(t *testing.T) {
	t.Parallel()

	err := openStore(t).SaveRun(context.Background(), Run{}, nil)
	assert.ErrorIs(t, err, ErrEmptyRunID)
}

func TestOpen_InvalidPath(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "history.db"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.System))
}

// =============================================================================
// Changes
// =============================================================================

func TestChanges(t *testing.T) {
	t.Parallel()

	previous := map[string]decimal.NullDecimal{
		"Manzana Roja": nd("1000"),
		"Pera":         nd("800"),
		"Kiwi":         {},
		"Uva":          nd("500"),
	}
	records := []catalog.ProductRecord{
		record("frutas", "Manzana Roja", nd("1000.00")),
		record("frutas", "Pera", nd("850")),
		record("frutas", "Kiwi", nd("400")),
		record("frutas", "Uva", decimal.NullDecimal{}),
		record("frutas", "Banana", nd("200")),
	}

	changes := Changes(previous, records)
	require.Len(t, changes, 3)

	assert.Equal(t, "Pera", changes[0].Title)
	assert.True(t, changes[0].Previous.Decimal.Equal(decimal.NewFromInt(800)))
	assert.True(t, changes[0].Current.Decimal.Equal(decimal.NewFromInt(850)))
	assert.Equal(t, "Kiwi", changes[1].Title)
	assert.False(t, changes[1].Previous.Valid)
	assert.Equal(t, "Uva", changes[2].Title)
	assert.False(t, changes[2].Current.Valid)

	assert.Empty(t, Changes(nil, records))
}
