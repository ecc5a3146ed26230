package chips

import (
	"encoding/json"
	"fmt"
)

// Chips is a non-negative amount of tournament or cash chips
// Chips values are never mutated in place, every operation returns a new value
type Chips int64

// Zero is an empty amount
const Zero Chips = 0

// NegativeChipsError is returned when an operation would produce a negative amount
type NegativeChipsError struct {
	Amount int64
}

func (n *NegativeChipsError) Error() string {
	return fmt.Sprintf("chips cannot be negative: %d", n.Amount)
}

// New returns a Chips value, rejecting negative input
func New(amount int64) (Chips, error) {
	if amount < 0 {
		return Zero, &NegativeChipsError{Amount: amount}
	}

	return Chips(amount), nil
}

// MustNew is like New, but panics on a negative amount
func MustNew(amount int64) Chips {
	c, err := New(amount)
	if err != nil {
		panic(err)
	}

	return c
}

// Validate returns a NegativeChipsError if c was converted from a negative number without New
func (c Chips) Validate() error {
	if c < 0 {
		return &NegativeChipsError{Amount: int64(c)}
	}

	return nil
}

// Validate checks every amount, returning the first error
func Validate(amounts ...Chips) error {
	for _, a := range amounts {
		if err := a.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Int64 returns the raw amount
func (c Chips) Int64() int64 {
	return int64(c)
}

// Add returns c + o
func (c Chips) Add(o Chips) Chips {
	return c + o
}

// Subtract returns c - o, or a NegativeChipsError if o is greater than c
func (c Chips) Subtract(o Chips) (Chips, error) {
	if o > c {
		return c, &NegativeChipsError{Amount: int64(c) - int64(o)}
	}

	return c - o, nil
}

// SubtractOrZero returns c - o, clamped at zero
func (c Chips) SubtractOrZero(o Chips) Chips {
	if o > c {
		return Zero
	}

	return c - o
}

// Multiply returns c * n
func (c Chips) Multiply(n int64) (Chips, error) {
	return New(int64(c) * n)
}

// Percentage returns pct percent of c, rounded down
func (c Chips) Percentage(pct int64) (Chips, error) {
	return New(int64(c) * pct / 100)
}

// IsZero returns true if there are no chips
func (c Chips) IsZero() bool {
	return c == 0
}

// IsGreaterThan returns true if c > o
func (c Chips) IsGreaterThan(o Chips) bool {
	return c > o
}

// CanAfford returns true if c covers the cost
func (c Chips) CanAfford(cost Chips) bool {
	return c >= cost
}

// Min returns the smaller of two amounts
func Min(a, b Chips) Chips {
	if a < b {
		return a
	}

	return b
}

// Max returns the larger of two amounts
func Max(a, b Chips) Chips {
	if a > b {
		return a
	}

	return b
}

// Sum adds every amount
func Sum(amounts ...Chips) Chips {
	total := Zero
	for _, a := range amounts {
		total += a
	}

	return total
}

// UnmarshalJSON decodes an amount and rejects negative values
func (c *Chips) UnmarshalJSON(b []byte) error {
	var i int64
	if err := json.Unmarshal(b, &i); err != nil {
		return err
	}

	v, err := New(i)
	if err != nil {
		return err
	}

	*c = v
	return nil
}
