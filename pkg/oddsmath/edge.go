package oddsmath

// EdgeProb is the signed probability edge of a model over the market.
// Positive means the model rates the outcome more likely than the price does.
func EdgeProb(modelProb, marketProb float64) (float64, error) {
	if err := RequireProbability("model_prob", modelProb); err != nil {
		return 0, err
	}
	if err := RequireProbability("market_prob", marketProb); err != nil {
		return 0, err
	}

	return modelProb - marketProb, nil
}

// ExpectedValueDecimal is the expected profit per unit staked
// EV = P(win) × (decimal - 1) - P(lose)
func ExpectedValueDecimal(modelProb, decimalOdds float64) (float64, error) {
	if err := RequireProbability("model_prob", modelProb); err != nil {
		return 0, err
	}
	if err := RequireDecimalOdds("decimal_odds", decimalOdds); err != nil {
		return 0, err
	}

	return modelProb*(decimalOdds-1) - (1 - modelProb), nil
}

// ExpectedValueAmerican is ExpectedValueDecimal for an American price
func ExpectedValueAmerican(modelProb, americanOdds float64) (float64, error) {
	if err := RequireProbability("model_prob", modelProb); err != nil {
		return 0, err
	}

	decimalOdds, err := AmericanToDecimal(americanOdds)
	if err != nil {
		return 0, err
	}

	return ExpectedValueDecimal(modelProb, decimalOdds)
}
