// Package money represents a non-negative monetary amount in the system.
// Values are held in cents to avoid floating point drift in sums.
package money

import (
	"fmt"
	"math"
)

// Money represents a monetary amount in the system.
type Money struct {
	cents int64
}

// Parse converts a float amount (as decoded from JSON) into a Money value.
func Parse(value float64) (Money, error) {
	if value < 0 {
		return Money{}, fmt.Errorf("invalid money value %.2f", value)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Money{}, fmt.Errorf("invalid money value")
	}

	return Money{cents: int64(math.Round(value * 100))}, nil
}

// MustParse converts a float amount into a Money value. If an error occurs
// the function panics.
func MustParse(value float64) Money {
	m, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return m
}

// FromCents constructs a Money value from a cents amount as stored in the
// database.
func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float returns the amount as a float for JSON responses.
func (m Money) Float() float64 {
	return float64(m.cents) / 100
}

// String returns the formatted amount.
func (m Money) String() string {
	return fmt.Sprintf("%.2f", m.Float())
}

// Equal provides support for the go-cmp package and testing.
func (m Money) Equal(m2 Money) bool {
	return m.cents == m2.cents
}

// MarshalText provides support for logging and any marshal needs.
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
