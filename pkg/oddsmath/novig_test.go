package oddsmath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierBriggs/fortuna/services/riskcourt/pkg/oddsmath"
)

func TestDevigTwoWayProportional(t *testing.T) {
	tests := []struct {
		name      string
		p1        float64
		p2        float64
		wantFair1 float64
		wantFair2 float64
	}{
		{"Standard -110/-110", 0.5238095, 0.5238095, 0.5, 0.5},
		{"Asymmetric 0.55/0.50", 0.55, 0.5, 0.5238095, 0.4761905},
		{"Heavy favorite -200/+170", 0.6666667, 0.3703704, 0.6428571, 0.3571429},
		{"Under-round market", 0.45, 0.45, 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fair1, fair2, err := oddsmath.DevigTwoWayProportional(tt.p1, tt.p2)
			require.NoError(t, err)

			assert.InDelta(t, tt.wantFair1, fair1, 1e-6)
			assert.InDelta(t, tt.wantFair2, fair2, 1e-6)
			assert.InDelta(t, 1.0, fair1+fair2, 1e-12)
		})
	}
}

func TestDevigTwoWayProportional_OutputsStayInRange(t *testing.T) {
	for p1 := 0.01; p1 < 1; p1 += 0.07 {
		for p2 := 0.01; p2 < 1; p2 += 0.07 {
			fair1, fair2, err := oddsmath.DevigTwoWayProportional(p1, p2)
			require.NoError(t, err)

			assert.InDelta(t, 1.0, fair1+fair2, 1e-12)
			assert.Greater(t, fair1, 0.0)
			assert.Less(t, fair1, 1.0)
			assert.Greater(t, fair2, 0.0)
			assert.Less(t, fair2, 1.0)
		}
	}
}

func TestDevigTwoWayProportional_InvalidInputs(t *testing.T) {
	_, _, err := oddsmath.DevigTwoWayProportional(1, 0.5)
	assert.EqualError(t, err, "p1 must be between 0 and 1 (exclusive)")
	assert.ErrorIs(t, err, oddsmath.ErrInvalidArgument)

	_, _, err = oddsmath.DevigTwoWayProportional(0.5, 0)
	assert.EqualError(t, err, "p2 must be between 0 and 1 (exclusive)")

	_, _, err = oddsmath.DevigTwoWayProportional(-0.2, 0.5)
	assert.EqualError(t, err, "p1 must be between 0 and 1 (exclusive)")
}

func TestDevigFromAmericanTwoWay(t *testing.T) {
	t.Run("Standard -110/-110", func(t *testing.T) {
		result, err := oddsmath.DevigFromAmericanTwoWay(-110, -110)
		require.NoError(t, err)

		assert.InDelta(t, 0.5, result.Fair1, 1e-8)
		assert.InDelta(t, 0.5, result.Fair2, 1e-8)
		assert.InDelta(t, 100, result.FairOddsAmerican1, 1e-8)
		assert.InDelta(t, 100, result.FairOddsAmerican2, 1e-8)
	})

	t.Run("Favorite -200 / underdog +170", func(t *testing.T) {
		result, err := oddsmath.DevigFromAmericanTwoWay(-200, 170)
		require.NoError(t, err)

		assert.InDelta(t, 0.6428571, result.Fair1, 1e-6)
		assert.InDelta(t, 0.3571429, result.Fair2, 1e-6)
		assert.InDelta(t, -180, result.FairOddsAmerican1, 1e-6)
		assert.InDelta(t, 180, result.FairOddsAmerican2, 1e-6)
	})

	t.Run("Zero price", func(t *testing.T) {
		_, err := oddsmath.DevigFromAmericanTwoWay(-110, 0)
		assert.EqualError(t, err, "american must be non-zero")
	})
}
