package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/XavierBriggs/fortuna/services/riskcourt/pkg/models"
)

func TestBuildPicksQuery_UserOnly(t *testing.T) {
	query, args := buildPicksQuery(models.PickFilters{UserID: "default"})

	assert.Contains(t, query, "WHERE user_id = $1")
	assert.Contains(t, query, "ORDER BY created_at DESC")
	assert.NotContains(t, query, "LIMIT")
	assert.NotContains(t, query, "OFFSET")
	assert.Equal(t, []any{"default"}, args)
}

func TestBuildPicksQuery_AllFilters(t *testing.T) {
	since := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	until := since.Add(24 * time.Hour)

	query, args := buildPicksQuery(models.PickFilters{
		UserID:     "u1",
		Status:     "open",
		MarketType: "spread",
		BookSlug:   "draftkings",
		Since:      &since,
		Until:      &until,
		Limit:      50,
		Offset:     100,
	})

	assert.Contains(t, query, "AND status = $2")
	assert.Contains(t, query, "AND market_type = $3")
	assert.Contains(t, query, "AND book_slug = $4")
	assert.Contains(t, query, "AND created_at >= $5")
	assert.Contains(t, query, "AND created_at <= $6")
	assert.Contains(t, query, "LIMIT $7")
	assert.Contains(t, query, "OFFSET $8")
	assert.Equal(t, []any{"u1", "open", "spread", "draftkings", since, until, 50, 100}, args)
}

func TestBuildPicksQuery_PlaceholdersStayDense(t *testing.T) {
	query, args := buildPicksQuery(models.PickFilters{UserID: "u1", BookSlug: "fanduel", Limit: 10})

	assert.Contains(t, query, "AND book_slug = $2")
	assert.Contains(t, query, "LIMIT $3")
	assert.Len(t, args, 3)
}

func TestSummaryTotals_Summary(t *testing.T) {
	tests := []struct {
		name        string
		totals      summaryTotals
		wantSettled int
		wantROI     float64
		wantWinRate float64
	}{
		{
			name:   "empty ledger",
			totals: summaryTotals{},
		},
		{
			name:        "open picks do not dilute ROI",
			totals:      summaryTotals{total: 10, open: 9, wins: 1, staked: 10, gradedStaked: 1, result: 1},
			wantSettled: 1,
			wantROI:     100,
			wantWinRate: 100,
		},
		{
			name:        "only open picks",
			totals:      summaryTotals{total: 3, open: 3, staked: 3},
			wantSettled: 0,
		},
		{
			name:        "push counts as graded stake",
			totals:      summaryTotals{total: 4, open: 1, wins: 1, losses: 1, staked: 4, gradedStaked: 3, result: 0.5},
			wantSettled: 3,
			wantROI:     0.5 / 3 * 100,
			wantWinRate: 50,
		},
		{
			name:        "cancelled stake excluded",
			totals:      summaryTotals{total: 2, losses: 1, staked: 3, gradedStaked: 1, result: -1},
			wantSettled: 2,
			wantROI:     -100,
			wantWinRate: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.totals.summary()

			assert.Equal(t, tt.totals.total, s.TotalPicks)
			assert.Equal(t, tt.totals.open, s.OpenPicks)
			assert.Equal(t, tt.wantSettled, s.SettledPicks)
			assert.Equal(t, tt.totals.staked, s.UnitsStaked)
			assert.Equal(t, tt.totals.result, s.UnitsResult)
			assert.InDelta(t, tt.wantROI, s.ROIPct, 1e-9)
			assert.InDelta(t, tt.wantWinRate, s.WinRatePct, 1e-9)
		})
	}
}
