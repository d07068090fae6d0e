package oddsmath_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierBriggs/fortuna/services/riskcourt/pkg/oddsmath"
)

func TestAmericanToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		american float64
		want     float64
	}{
		{"Even odds +100", 100, 2.0},
		{"Underdog +150", 150, 2.5},
		{"Underdog +200", 200, 3.0},
		{"Favorite -110", -110, 1.909090909},
		{"Favorite -150", -150, 1.666666667},
		{"Favorite -200", -200, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oddsmath.AmericanToDecimal(tt.american)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-8)
		})
	}
}

func TestDecimalToAmerican(t *testing.T) {
	tests := []struct {
		name    string
		decimal float64
		want    float64
	}{
		{"Even odds 2.0", 2.0, 100},
		{"Underdog 2.5", 2.5, 150},
		{"Underdog 3.0", 3.0, 200},
		{"Favorite 1.5", 1.5, -200},
		{"Favorite 1.25", 1.25, -400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oddsmath.DecimalToAmerican(tt.decimal)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-8)
		})
	}
}

func TestImpliedProbability(t *testing.T) {
	tests := []struct {
		name     string
		american float64
		want     float64
	}{
		{"Even odds +100", 100, 0.5},
		{"Underdog +150", 150, 0.4},
		{"Heavy underdog +300", 300, 0.25},
		{"Favorite -110", -110, 0.5238095},
		{"Heavy favorite -200", -200, 0.6666667},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oddsmath.AmericanToImpliedProb(tt.american)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-6)

			// Both paths to the implied probability agree
			decimal, err := oddsmath.AmericanToDecimal(tt.american)
			require.NoError(t, err)
			viaDecimal, err := oddsmath.DecimalToImpliedProb(decimal)
			require.NoError(t, err)
			assert.InDelta(t, got, viaDecimal, 1e-12)
		})
	}
}

func TestDecimalToImpliedProb(t *testing.T) {
	got, err := oddsmath.DecimalToImpliedProb(2.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, got, 1e-8)
}

func TestRoundTripConversion(t *testing.T) {
	// Canonical American prices have |odds| >= 100
	for _, american := range []float64{-1000, -250, -200, -150, -110, -105, -100, 100, 105, 150, 200, 250, 300, 1200} {
		decimal, err := oddsmath.AmericanToDecimal(american)
		require.NoError(t, err)

		got, err := oddsmath.DecimalToAmerican(decimal)
		require.NoError(t, err)

		if math.Abs(math.Abs(american)-100) < 1e-12 {
			// ±100 are the same price and come back as +100
			assert.InDelta(t, 100, got, 1e-9, "round trip %v", american)
			continue
		}
		assert.InDelta(t, american, got, 1e-9, "round trip %v", american)
	}
}

func TestConversionInvalidInputs(t *testing.T) {
	_, err := oddsmath.AmericanToDecimal(0)
	require.Error(t, err)
	assert.EqualError(t, err, "american must be non-zero")
	assert.True(t, errors.Is(err, oddsmath.ErrInvalidArgument))

	_, err = oddsmath.AmericanToImpliedProb(0)
	assert.EqualError(t, err, "american must be non-zero")

	_, err = oddsmath.AmericanToDecimal(math.NaN())
	assert.EqualError(t, err, "american must be a finite number")

	_, err = oddsmath.AmericanToDecimal(math.Inf(-1))
	assert.ErrorIs(t, err, oddsmath.ErrInvalidArgument)

	_, err = oddsmath.DecimalToAmerican(1)
	assert.EqualError(t, err, "decimal must be greater than 1")

	_, err = oddsmath.DecimalToImpliedProb(0.9)
	assert.EqualError(t, err, "decimal must be greater than 1")

	_, err = oddsmath.DecimalToImpliedProb(math.Inf(1))
	assert.EqualError(t, err, "decimal must be a finite number")
}

func TestArgumentErrorFields(t *testing.T) {
	_, err := oddsmath.DecimalToAmerican(0.5)

	var argErr *oddsmath.ArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "decimal", argErr.Field)
	assert.Equal(t, "be greater than 1", argErr.Constraint)
}
