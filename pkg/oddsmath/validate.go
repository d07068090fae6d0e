package oddsmath

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is the single failure kind of the odds and sizing math.
// Every validation error matches it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError names the offending input and the constraint it violated
type ArgumentError struct {
	Field      string
	Constraint string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s must %s", e.Field, e.Constraint)
}

// Is reports ErrInvalidArgument as the kind of every ArgumentError
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// Invalid builds an ArgumentError. Exported so sibling packages share one error shape.
func Invalid(field, constraint string) error {
	return &ArgumentError{Field: field, Constraint: constraint}
}

// RequireFinite rejects NaN and ±Inf
func RequireFinite(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Invalid(name, "be a finite number")
	}
	return nil
}

// RequireProbability accepts values in the open interval (0, 1)
func RequireProbability(name string, value float64) error {
	if err := RequireFinite(name, value); err != nil {
		return err
	}
	if value <= 0 || value >= 1 {
		return Invalid(name, "be between 0 and 1 (exclusive)")
	}
	return nil
}

// RequireNonZero rejects zero
func RequireNonZero(name string, value float64) error {
	if err := RequireFinite(name, value); err != nil {
		return err
	}
	if value == 0 {
		return Invalid(name, "be non-zero")
	}
	return nil
}

// RequireDecimalOdds accepts decimal odds strictly greater than 1
func RequireDecimalOdds(name string, value float64) error {
	if err := RequireFinite(name, value); err != nil {
		return err
	}
	if value <= 1 {
		return Invalid(name, "be greater than 1")
	}
	return nil
}

// RequireNonNegative accepts values >= 0
func RequireNonNegative(name string, value float64) error {
	if err := RequireFinite(name, value); err != nil {
		return err
	}
	if value < 0 {
		return Invalid(name, "be greater than or equal to 0")
	}
	return nil
}

// RequireUnitInterval accepts values in the closed interval [0, 1]
func RequireUnitInterval(name string, value float64) error {
	if err := RequireFinite(name, value); err != nil {
		return err
	}
	if value < 0 || value > 1 {
		return Invalid(name, "be between 0 and 1")
	}
	return nil
}
