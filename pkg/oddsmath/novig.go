package oddsmath

// TwoWayFair is the vig-free view of a two-outcome market
type TwoWayFair struct {
	Fair1             float64 `json:"fair1"`
	Fair2             float64 `json:"fair2"`
	FairOddsAmerican1 float64 `json:"fair_odds_american1"`
	FairOddsAmerican2 float64 `json:"fair_odds_american2"`
}

// DevigTwoWayProportional removes vig from a two-way market by normalizing
// the implied probabilities so they sum to 1
//
// Example:
// Side A: -110 (52.38% implied) | Side B: -110 (52.38% implied)
// Overround: 104.76%
// Fair: 50% / 50%
func DevigTwoWayProportional(p1, p2 float64) (fair1, fair2 float64, err error) {
	if err := RequireProbability("p1", p1); err != nil {
		return 0, 0, err
	}
	if err := RequireProbability("p2", p2); err != nil {
		return 0, 0, err
	}

	total := p1 + p2
	// Unreachable once both sides pass the range check; kept so the
	// division below never sees a zero denominator.
	if total <= 0 {
		return 0, 0, Invalid("probability sum", "be greater than 0")
	}

	return p1 / total, p2 / total, nil
}

// DevigFromAmericanTwoWay devigs a pair of American prices and returns the
// fair probabilities together with their fair American odds
func DevigFromAmericanTwoWay(a1, a2 float64) (*TwoWayFair, error) {
	p1, err := AmericanToImpliedProb(a1)
	if err != nil {
		return nil, err
	}

	p2, err := AmericanToImpliedProb(a2)
	if err != nil {
		return nil, err
	}

	fair1, fair2, err := DevigTwoWayProportional(p1, p2)
	if err != nil {
		return nil, err
	}

	fairOdds1, err := DecimalToAmerican(1 / fair1)
	if err != nil {
		return nil, err
	}

	fairOdds2, err := DecimalToAmerican(1 / fair2)
	if err != nil {
		return nil, err
	}

	return &TwoWayFair{
		Fair1:             fair1,
		Fair2:             fair2,
		FairOddsAmerican1: fairOdds1,
		FairOddsAmerican2: fairOdds2,
	}, nil
}
