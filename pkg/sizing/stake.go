package sizing

import "github.com/XavierBriggs/fortuna/services/riskcourt/pkg/oddsmath"

// Reason tags reported when sizing alters or short-circuits the Kelly stake
const (
	ReasonNoEdge      = "kelly<=0"
	ReasonMaxStakePct = "maxStakePct"
	ReasonMaxStake    = "maxStake"
	ReasonMinStake    = "minStake"
)

// StakeSizeRequest is everything needed to size one bet.
// MaxStake is the only optional field.
type StakeSizeRequest struct {
	Bankroll        float64  `json:"bankroll"`
	ModelProb       float64  `json:"model_prob"`
	AmericanOdds    float64  `json:"american_odds"`
	KellyMultiplier float64  `json:"kelly_multiplier"`
	MaxStakePct     float64  `json:"max_stake_pct"`
	MinStake        float64  `json:"min_stake"`
	MaxStake        *float64 `json:"max_stake,omitempty"`
}

// StakeSizeResult is the recommendation. Kelly is the uncapped full-Kelly
// fraction; Reasons lists the caps that fired in evaluation order.
type StakeSizeResult struct {
	Stake   float64  `json:"stake"`
	Kelly   float64  `json:"kelly"`
	Capped  bool     `json:"capped"`
	Reasons []string `json:"reasons"`
}

// Validate checks the request fields in a fixed order and returns the first violation.
// American odds are checked later by the conversion itself.
func (r StakeSizeRequest) Validate() error {
	if err := oddsmath.RequireNonNegative("bankroll", r.Bankroll); err != nil {
		return err
	}
	if err := oddsmath.RequireProbability("model_prob", r.ModelProb); err != nil {
		return err
	}
	if err := oddsmath.RequireNonNegative("kelly_multiplier", r.KellyMultiplier); err != nil {
		return err
	}
	if err := oddsmath.RequireUnitInterval("max_stake_pct", r.MaxStakePct); err != nil {
		return err
	}
	if err := oddsmath.RequireNonNegative("min_stake", r.MinStake); err != nil {
		return err
	}
	if r.MaxStake != nil {
		if err := oddsmath.RequireNonNegative("max_stake", *r.MaxStake); err != nil {
			return err
		}
	}
	return nil
}

// StakeSize turns a model probability and a market price into a bounded stake
// using fractional Kelly. Caps are applied in the order
// percentage of bankroll → absolute maximum → minimum stake.
//
// The "kelly<=0" reason is reported only when the Kelly fraction itself is 0.
// A positive edge sized to 0 by a zero bankroll or zero multiplier returns
// stake 0 with no reasons, and the minimum-stake floor does not apply to it.
func StakeSize(req StakeSizeRequest) (*StakeSizeResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	decimalOdds, err := oddsmath.AmericanToDecimal(req.AmericanOdds)
	if err != nil {
		return nil, err
	}

	kelly, err := KellyFraction(req.ModelProb, decimalOdds)
	if err != nil {
		return nil, err
	}

	if kelly == 0 {
		return &StakeSizeResult{
			Stake:   0,
			Kelly:   kelly,
			Capped:  false,
			Reasons: []string{ReasonNoEdge},
		}, nil
	}

	result := &StakeSizeResult{
		Stake:   req.Bankroll * kelly * req.KellyMultiplier,
		Kelly:   kelly,
		Reasons: []string{},
	}

	// Cap at maximum percentage of bankroll
	maxStakeByPct := req.Bankroll * req.MaxStakePct
	if result.Stake > maxStakeByPct {
		result.clamp(maxStakeByPct, ReasonMaxStakePct)
	}

	if req.MaxStake != nil && result.Stake > *req.MaxStake {
		result.clamp(*req.MaxStake, ReasonMaxStake)
	}

	// Floor only applies to a bet we are actually placing
	if result.Stake > 0 && result.Stake < req.MinStake {
		result.clamp(req.MinStake, ReasonMinStake)
	}

	return result, nil
}

func (r *StakeSizeResult) clamp(stake float64, reason string) {
	r.Stake = stake
	r.Capped = true
	r.Reasons = append(r.Reasons, reason)
}
