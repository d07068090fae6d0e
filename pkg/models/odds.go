package models

// ConvertRequest carries exactly one of American or Decimal
type ConvertRequest struct {
	American *float64 `json:"american,omitempty"`
	Decimal  *float64 `json:"decimal,omitempty"`
}

// ConvertResponse shows a price in every representation
type ConvertResponse struct {
	American    float64 `json:"american"`
	Decimal     float64 `json:"decimal"`
	ImpliedProb float64 `json:"implied_prob"`
}

// DevigRequest carries either a pair of American prices or a pair of implied probabilities
type DevigRequest struct {
	American1 *float64 `json:"american1,omitempty"`
	American2 *float64 `json:"american2,omitempty"`
	P1        *float64 `json:"p1,omitempty"`
	P2        *float64 `json:"p2,omitempty"`
}

// DevigResponse holds fair probabilities; fair odds are only set for American input
type DevigResponse struct {
	Fair1             float64  `json:"fair1"`
	Fair2             float64  `json:"fair2"`
	FairOddsAmerican1 *float64 `json:"fair_odds_american1,omitempty"`
	FairOddsAmerican2 *float64 `json:"fair_odds_american2,omitempty"`
}

// ExpectedValueRequest prices a model probability against one market price.
// MarketProb is optional; when set the response includes the edge.
type ExpectedValueRequest struct {
	ModelProb    float64  `json:"model_prob"`
	AmericanOdds *float64 `json:"american_odds,omitempty"`
	DecimalOdds  *float64 `json:"decimal_odds,omitempty"`
	MarketProb   *float64 `json:"market_prob,omitempty"`
}

// ExpectedValueResponse is the EV per unit staked and, if requested, the probability edge
type ExpectedValueResponse struct {
	ExpectedValue float64  `json:"expected_value"`
	Edge          *float64 `json:"edge,omitempty"`
}

// StakeSizeInput is the HTTP form of a sizing request. Risk parameters left
// out fall back to the caller's stored preferences.
type StakeSizeInput struct {
	ModelProb       float64  `json:"model_prob"`
	AmericanOdds    float64  `json:"american_odds"`
	Bankroll        *float64 `json:"bankroll,omitempty"`
	KellyMultiplier *float64 `json:"kelly_multiplier,omitempty"`
	MaxStakePct     *float64 `json:"max_stake_pct,omitempty"`
	MinStake        *float64 `json:"min_stake,omitempty"`
	MaxStake        *float64 `json:"max_stake,omitempty"`
}

// HasRiskParams reports whether every risk parameter, max_stake included, is set
func (in StakeSizeInput) HasRiskParams() bool {
	return in.Bankroll != nil && in.KellyMultiplier != nil && in.MaxStakePct != nil &&
		in.MinStake != nil && in.MaxStake != nil
}
