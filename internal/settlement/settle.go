package settlement

import (
	"errors"
	"fmt"

	"github.com/XavierBriggs/fortuna/services/riskcourt/pkg/models"
	"github.com/XavierBriggs/fortuna/services/riskcourt/pkg/oddsmath"
)

// ErrAlreadySettled is returned when grading a pick that is no longer open
var ErrAlreadySettled = errors.New("pick already settled")

// ResultUnits computes the profit or loss, in units, of a graded pick
// Win:  stake × (decimal - 1)
// Loss: -stake
// Push / cancelled: 0
func ResultUnits(status models.PickStatus, americanOdds int, stakeUnits float64) (float64, error) {
	if err := oddsmath.RequireNonNegative("stake_units", stakeUnits); err != nil {
		return 0, err
	}

	switch status {
	case models.PickWon:
		decimal, err := oddsmath.AmericanToDecimal(float64(americanOdds))
		if err != nil {
			return 0, err
		}
		return stakeUnits * (decimal - 1), nil

	case models.PickLost:
		return -stakeUnits, nil

	case models.PickPush, models.PickCancelled:
		return 0, nil

	default:
		return 0, oddsmath.Invalid("status", "be one of won, lost, push, cancelled")
	}
}

// Grade validates the transition and returns the result units for the pick
func Grade(pick *models.Pick, status models.PickStatus) (float64, error) {
	if pick.Status != models.PickOpen {
		return 0, fmt.Errorf("%w: %s is %s", ErrAlreadySettled, pick.ID, pick.Status)
	}

	return ResultUnits(status, pick.Odds, pick.StakeUnits)
}
