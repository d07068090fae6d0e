package sizing

import "github.com/XavierBriggs/fortuna/services/riskcourt/pkg/oddsmath"

// KellyFraction returns the full-Kelly bankroll fraction for a bet.
// It never goes negative: a bet without edge sizes to zero.
//
// f* = (d × p - 1) / (d - 1)
func KellyFraction(modelProb, decimalOdds float64) (float64, error) {
	if err := oddsmath.RequireProbability("model_prob", modelProb); err != nil {
		return 0, err
	}
	if err := oddsmath.RequireDecimalOdds("decimal_odds", decimalOdds); err != nil {
		return 0, err
	}

	b := decimalOdds - 1 // Net odds
	raw := (decimalOdds*modelProb - 1) / b

	if raw < 0 {
		return 0, nil
	}
	return raw, nil
}
