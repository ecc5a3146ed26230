package chips

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	a := assert.New(t)

	c, err := New(100)
	a.NoError(err)
	a.Equal(Chips(100), c)

	c, err = New(-1)
	a.Equal(Zero, c)
	var nce *NegativeChipsError
	a.ErrorAs(err, &nce)
	a.Equal(int64(-1), nce.Amount)
	a.EqualError(err, "chips cannot be negative: -1")

	a.Panics(func() { MustNew(-5) })
}

func TestValidate(t *testing.T) {
	a := assert.New(t)

	a.NoError(MustNew(10).Validate())
	a.NoError(Zero.Validate())
	a.EqualError(Chips(-5).Validate(), "chips cannot be negative: -5")

	a.NoError(Validate(1, 2, 3))
	a.EqualError(Validate(1, Chips(-2), Chips(-3)), "chips cannot be negative: -2")
}

func TestChips_Subtract(t *testing.T) {
	a := assert.New(t)

	c := MustNew(100)
	res, err := c.Subtract(40)
	a.NoError(err)
	a.Equal(Chips(60), res)
	a.Equal(Chips(100), c, "original value must not change")

	res, err = c.Subtract(101)
	a.EqualError(err, "chips cannot be negative: -1")
	a.Equal(Chips(100), res)

	a.Equal(Zero, c.SubtractOrZero(500))
	a.Equal(Chips(1), c.SubtractOrZero(99))
}

func TestChips_Arithmetic(t *testing.T) {
	a := assert.New(t)

	c := MustNew(250)
	a.Equal(Chips(300), c.Add(50))

	m, err := c.Multiply(3)
	a.NoError(err)
	a.Equal(Chips(750), m)

	_, err = c.Multiply(-1)
	a.Error(err)

	p, err := MustNew(1001).Percentage(50)
	a.NoError(err)
	a.Equal(Chips(500), p, "percentage rounds down")

	p, err = MustNew(999).Percentage(33)
	a.NoError(err)
	a.Equal(Chips(329), p)
}

func TestChips_Comparisons(t *testing.T) {
	a := assert.New(t)

	a.True(Chips(10).IsGreaterThan(9))
	a.False(Chips(10).IsGreaterThan(10))
	a.True(Chips(10).CanAfford(10))
	a.False(Chips(9).CanAfford(10))
	a.True(Zero.IsZero())

	a.Equal(Chips(3), Min(3, 7))
	a.Equal(Chips(7), Max(3, 7))
	a.Equal(Chips(15), Sum(1, 2, 3, 4, 5))
	a.Equal(Zero, Sum())
}

func TestChips_UnmarshalJSON(t *testing.T) {
	var c Chips
	assert.NoError(t, json.Unmarshal([]byte("42"), &c))
	assert.Equal(t, Chips(42), c)
	assert.Error(t, json.Unmarshal([]byte("-42"), &c))
}
