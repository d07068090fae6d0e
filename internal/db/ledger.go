package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/settlement"
	"github.com/XavierBriggs/fortuna/services/riskcourt/pkg/models"
)

// LedgerDB defines the interface for pick ledger and preference storage
type LedgerDB interface {
	Ping(ctx context.Context) error
	CreatePick(ctx context.Context, userID string, input *models.CreatePickInput) (*models.Pick, error)
	GetPicks(ctx context.Context, filters models.PickFilters) ([]*models.Pick, error)
	GetPickByID(ctx context.Context, userID string, id uuid.UUID) (*models.Pick, error)
	SettlePick(ctx context.Context, userID string, id uuid.UUID, status models.PickStatus) (*models.Pick, error)
	GetPickSummary(ctx context.Context, userID string) (*models.PickSummary, error)
	GetUserPreferences(ctx context.Context, userID string) (*models.UserPreferences, error)
	UpdateUserPreferences(ctx context.Context, prefs *models.UserPreferences) error
	Close() error
}

// LedgerPostgres implements LedgerDB for PostgreSQL
type LedgerPostgres struct {
	db *sql.DB
}

// NewLedgerPostgres creates a new ledger database client
func NewLedgerPostgres(dsn string) (*LedgerPostgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &LedgerPostgres{db: db}, nil
}

// Ping checks database connectivity
func (l *LedgerPostgres) Ping(ctx context.Context) error {
	return l.db.PingContext(ctx)
}

// EnsureSchema creates the ledger tables if they do not exist
func (l *LedgerPostgres) EnsureSchema(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

const pickColumns = `
	id, user_id, game_id, market_type, selection, line, odds, stake_units,
	book_slug, notes, snapshot, status, result_units, settled_at, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPick(row rowScanner) (*models.Pick, error) {
	pick := &models.Pick{}
	var snapshotJSON []byte

	err := row.Scan(
		&pick.ID, &pick.UserID, &pick.GameID, &pick.MarketType, &pick.Selection, &pick.Line,
		&pick.Odds, &pick.StakeUnits, &pick.BookSlug, &pick.Notes, &snapshotJSON, &pick.Status,
		&pick.ResultUnits, &pick.SettledAt, &pick.CreatedAt, &pick.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(snapshotJSON) > 0 {
		if err := json.Unmarshal(snapshotJSON, &pick.Snapshot); err != nil {
			return nil, fmt.Errorf("parse snapshot JSON: %w", err)
		}
	}

	return pick, nil
}

// CreatePick inserts a new open pick
func (l *LedgerPostgres) CreatePick(ctx context.Context, userID string, input *models.CreatePickInput) (*models.Pick, error) {
	// NULL rather than an empty JSON document when no snapshot was captured
	var snapshot any
	if input.Snapshot != nil {
		snapshotJSON, err := json.Marshal(input.Snapshot)
		if err != nil {
			return nil, fmt.Errorf("marshal snapshot: %w", err)
		}
		snapshot = string(snapshotJSON)
	}

	query := `
		INSERT INTO picks (
			id, user_id, game_id, market_type, selection, line, odds, stake_units,
			book_slug, notes, snapshot, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + pickColumns

	pick, err := scanPick(l.db.QueryRowContext(
		ctx, query,
		uuid.New(),
		userID,
		input.GameID,
		input.MarketType,
		input.Selection,
		input.Line,
		input.Odds,
		input.StakeUnits,
		input.BookSlug,
		input.Notes,
		snapshot,
		models.PickOpen,
	))
	if err != nil {
		return nil, fmt.Errorf("insert pick: %w", err)
	}

	return pick, nil
}

// buildPicksQuery assembles the filtered pick listing query and its arguments
func buildPicksQuery(filters models.PickFilters) (string, []any) {
	query := `SELECT ` + pickColumns + ` FROM picks WHERE user_id = $1`

	args := []any{filters.UserID}
	argPos := 2

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, filters.Status)
		argPos++
	}

	if filters.MarketType != "" {
		query += fmt.Sprintf(" AND market_type = $%d", argPos)
		args = append(args, filters.MarketType)
		argPos++
	}

	if filters.BookSlug != "" {
		query += fmt.Sprintf(" AND book_slug = $%d", argPos)
		args = append(args, filters.BookSlug)
		argPos++
	}

	if filters.Since != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argPos)
		args = append(args, *filters.Since)
		argPos++
	}

	if filters.Until != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argPos)
		args = append(args, *filters.Until)
		argPos++
	}

	query += " ORDER BY created_at DESC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filters.Limit)
		argPos++
	}

	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, filters.Offset)
	}

	return query, args
}

// GetPicks retrieves a user's picks with optional filters
func (l *LedgerPostgres) GetPicks(ctx context.Context, filters models.PickFilters) ([]*models.Pick, error) {
	query, args := buildPicksQuery(filters)

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query picks: %w", err)
	}
	defer rows.Close()

	picks := []*models.Pick{}
	for rows.Next() {
		pick, err := scanPick(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pick: %w", err)
		}
		picks = append(picks, pick)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate picks: %w", err)
	}

	return picks, nil
}

// GetPickByID retrieves a single pick. Returns nil, nil when it does not exist.
func (l *LedgerPostgres) GetPickByID(ctx context.Context, userID string, id uuid.UUID) (*models.Pick, error) {
	query := `SELECT ` + pickColumns + ` FROM picks WHERE id = $1 AND user_id = $2`

	pick, err := scanPick(l.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query pick: %w", err)
	}

	return pick, nil
}

// SettlePick grades an open pick and records its result atomically.
// Returns nil, nil when the pick does not exist.
func (l *LedgerPostgres) SettlePick(ctx context.Context, userID string, id uuid.UUID, status models.PickStatus) (*models.Pick, error) {
	tx, err := l.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 1. Lock the pick
	pick, err := scanPick(tx.QueryRowContext(ctx,
		`SELECT `+pickColumns+` FROM picks WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		id, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pick: %w", err)
	}

	// 2. Grade
	resultUnits, err := settlement.Grade(pick, status)
	if err != nil {
		return nil, err
	}

	// 3. Record result
	settled, err := scanPick(tx.QueryRowContext(ctx,
		`UPDATE picks
		 SET status = $1, result_units = $2, settled_at = NOW(), updated_at = NOW()
		 WHERE id = $3
		 RETURNING `+pickColumns,
		status, resultUnits, id,
	))
	if err != nil {
		return nil, fmt.Errorf("update pick: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return settled, nil
}

// summaryTotals are the raw per-user aggregates behind a PickSummary
type summaryTotals struct {
	total        int
	open         int
	wins         int
	losses       int
	staked       float64
	gradedStaked float64
	result       float64
}

// summary derives the reported statistics. ROI is result units over the stakes
// of graded picks (won, lost, push); open and cancelled stakes are excluded.
// Win rate counts wins over wins plus losses.
func (t summaryTotals) summary() *models.PickSummary {
	s := &models.PickSummary{
		TotalPicks:   t.total,
		OpenPicks:    t.open,
		SettledPicks: t.total - t.open,
		UnitsStaked:  t.staked,
		UnitsResult:  t.result,
	}

	if t.gradedStaked > 0 {
		s.ROIPct = (t.result / t.gradedStaked) * 100
	}
	if decided := t.wins + t.losses; decided > 0 {
		s.WinRatePct = float64(t.wins) / float64(decided) * 100
	}

	return s
}

// GetPickSummary retrieves aggregate ledger statistics for a user
func (l *LedgerPostgres) GetPickSummary(ctx context.Context, userID string) (*models.PickSummary, error) {
	query := `
		SELECT
			COUNT(*) as total_picks,
			COALESCE(SUM(CASE WHEN status = 'open' THEN 1 ELSE 0 END), 0) as open_picks,
			COALESCE(SUM(CASE WHEN status = 'won' THEN 1 ELSE 0 END), 0) as wins,
			COALESCE(SUM(CASE WHEN status = 'lost' THEN 1 ELSE 0 END), 0) as losses,
			COALESCE(SUM(stake_units), 0) as units_staked,
			COALESCE(SUM(CASE WHEN status IN ('won', 'lost', 'push') THEN stake_units ELSE 0 END), 0) as graded_staked,
			COALESCE(SUM(result_units), 0) as units_result
		FROM picks
		WHERE user_id = $1
	`

	var totals summaryTotals
	err := l.db.QueryRowContext(ctx, query, userID).Scan(
		&totals.total,
		&totals.open,
		&totals.wins,
		&totals.losses,
		&totals.staked,
		&totals.gradedStaked,
		&totals.result,
	)
	if err != nil {
		return nil, fmt.Errorf("query summary: %w", err)
	}

	return totals.summary(), nil
}

// GetUserPreferences retrieves a user's sizing preferences. Returns nil, nil when none are stored.
func (l *LedgerPostgres) GetUserPreferences(ctx context.Context, userID string) (*models.UserPreferences, error) {
	query := `
		SELECT user_id, bankroll, kelly_multiplier, max_stake_pct, min_stake, max_stake, updated_at
		FROM user_preferences
		WHERE user_id = $1
	`

	prefs := &models.UserPreferences{}
	err := l.db.QueryRowContext(ctx, query, userID).Scan(
		&prefs.UserID,
		&prefs.Bankroll,
		&prefs.KellyMultiplier,
		&prefs.MaxStakePct,
		&prefs.MinStake,
		&prefs.MaxStake,
		&prefs.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user preferences: %w", err)
	}

	return prefs, nil
}

// UpdateUserPreferences upserts a user's sizing preferences
func (l *LedgerPostgres) UpdateUserPreferences(ctx context.Context, prefs *models.UserPreferences) error {
	query := `
		INSERT INTO user_preferences (user_id, bankroll, kelly_multiplier, max_stake_pct, min_stake, max_stake)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			bankroll = EXCLUDED.bankroll,
			kelly_multiplier = EXCLUDED.kelly_multiplier,
			max_stake_pct = EXCLUDED.max_stake_pct,
			min_stake = EXCLUDED.min_stake,
			max_stake = EXCLUDED.max_stake,
			updated_at = NOW()
	`

	_, err := l.db.ExecContext(
		ctx, query,
		prefs.UserID,
		prefs.Bankroll,
		prefs.KellyMultiplier,
		prefs.MaxStakePct,
		prefs.MinStake,
		prefs.MaxStake,
	)
	if err != nil {
		return fmt.Errorf("update user preferences: %w", err)
	}

	return nil
}

// Close closes the database connection
func (l *LedgerPostgres) Close() error {
	return l.db.Close()
}
