package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/XavierBriggs/fortuna/services/riskcourt/pkg/sizing"
)

// PickStatus is the lifecycle state of a pick
type PickStatus string

const (
	PickOpen      PickStatus = "open"
	PickWon       PickStatus = "won"
	PickLost      PickStatus = "lost"
	PickPush      PickStatus = "push"
	PickCancelled PickStatus = "cancelled"
)

// Valid reports whether s is a known status
func (s PickStatus) Valid() bool {
	switch s {
	case PickOpen, PickWon, PickLost, PickPush, PickCancelled:
		return true
	}
	return false
}

// MarketType identifies the kind of market a pick was made on
type MarketType string

const (
	MarketMoneyline MarketType = "moneyline"
	MarketSpread    MarketType = "spread"
	MarketTotal     MarketType = "total"
	MarketProp      MarketType = "prop"
)

// Valid reports whether m is a known market type
func (m MarketType) Valid() bool {
	switch m {
	case MarketMoneyline, MarketSpread, MarketTotal, MarketProp:
		return true
	}
	return false
}

// Pick represents a wager in the user's ledger
type Pick struct {
	ID          uuid.UUID      `json:"id"`
	UserID      string         `json:"user_id"`
	GameID      string         `json:"game_id"`
	MarketType  MarketType     `json:"market_type"`
	Selection   string         `json:"selection"`
	Line        *float64       `json:"line"`
	Odds        int            `json:"odds"` // American odds
	StakeUnits  float64        `json:"stake_units"`
	BookSlug    *string        `json:"book_slug"`
	Notes       *string        `json:"notes"`
	Snapshot    map[string]any `json:"snapshot"` // Market context captured when the pick was made
	Status      PickStatus     `json:"status"`
	ResultUnits *float64       `json:"result_units"`
	SettledAt   *time.Time     `json:"settled_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CreatePickInput is the request body for adding a pick
type CreatePickInput struct {
	GameID     string         `json:"game_id"`
	MarketType MarketType     `json:"market_type"`
	Selection  string         `json:"selection"`
	Line       *float64       `json:"line,omitempty"`
	Odds       int            `json:"odds"`
	StakeUnits float64        `json:"stake_units"`
	BookSlug   *string        `json:"book_slug,omitempty"`
	Notes      *string        `json:"notes,omitempty"`
	Snapshot   map[string]any `json:"snapshot,omitempty"`
}

// SettlePickInput is the request body for grading a pick
type SettlePickInput struct {
	Status PickStatus `json:"status"`
}

// PickFilters defines filters for pick queries
type PickFilters struct {
	UserID     string
	Status     string
	MarketType string
	BookSlug   string
	Since      *time.Time
	Until      *time.Time
	Limit      int
	Offset     int
}

// PickSummary provides aggregate ledger statistics in units
type PickSummary struct {
	TotalPicks   int     `json:"total_picks"`
	OpenPicks    int     `json:"open_picks"`
	SettledPicks int     `json:"settled_picks"`
	UnitsStaked  float64 `json:"units_staked"` // All picks, open included
	UnitsResult  float64 `json:"units_result"`
	ROIPct       float64 `json:"roi_pct"`      // Result over graded (won, lost, push) stakes
	WinRatePct   float64 `json:"win_rate_pct"`
}

// UserPreferences holds the per-user risk parameters used for stake sizing
type UserPreferences struct {
	UserID          string    `json:"user_id"`
	Bankroll        float64   `json:"bankroll"`
	KellyMultiplier float64   `json:"kelly_multiplier"`
	MaxStakePct     float64   `json:"max_stake_pct"`
	MinStake        float64   `json:"min_stake"`
	MaxStake        *float64  `json:"max_stake"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// StakeRequest sizes one bet under these preferences
func (p *UserPreferences) StakeRequest(modelProb, americanOdds float64) sizing.StakeSizeRequest {
	return sizing.StakeSizeRequest{
		Bankroll:        p.Bankroll,
		ModelProb:       modelProb,
		AmericanOdds:    americanOdds,
		KellyMultiplier: p.KellyMultiplier,
		MaxStakePct:     p.MaxStakePct,
		MinStake:        p.MinStake,
		MaxStake:        p.MaxStake,
	}
}

// Validate applies the bounds stake sizing enforces on these fields.
// The bet itself is a fixed valid placeholder.
func (p *UserPreferences) Validate() error {
	return p.StakeRequest(0.5, 100).Validate()
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
