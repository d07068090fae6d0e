package oddsmath

import "math"

// AmericanToDecimal converts American odds to decimal odds
// American +150 → Decimal 2.50
// American -200 → Decimal 1.50
func AmericanToDecimal(american float64) (float64, error) {
	if err := RequireNonZero("american", american); err != nil {
		return 0, err
	}

	if american > 0 {
		return 1 + american/100, nil
	}

	return 1 + 100/math.Abs(american), nil
}

// DecimalToAmerican converts decimal odds to American odds.
// The result is not rounded; callers display it however they like.
// Decimal 2.50 → American +150
// Decimal 1.50 → American -200
func DecimalToAmerican(decimal float64) (float64, error) {
	if err := RequireDecimalOdds("decimal", decimal); err != nil {
		return 0, err
	}

	if decimal >= 2 {
		return (decimal - 1) * 100, nil
	}

	return -100 / (decimal - 1), nil
}

// AmericanToImpliedProb converts American odds to the implied probability,
// vig included
// American +150 → 0.40
// American -200 → 0.667
func AmericanToImpliedProb(american float64) (float64, error) {
	if err := RequireNonZero("american", american); err != nil {
		return 0, err
	}

	abs := math.Abs(american)
	if american > 0 {
		return 100 / (abs + 100), nil
	}

	return abs / (abs + 100), nil
}

// DecimalToImpliedProb converts decimal odds to the implied probability
// Decimal 2.50 → 0.40
func DecimalToImpliedProb(decimal float64) (float64, error) {
	if err := RequireDecimalOdds("decimal", decimal); err != nil {
		return 0, err
	}

	return 1 / decimal, nil
}
