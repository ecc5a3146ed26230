package handanalyzer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"tourneypoker-server/internal/rng"
	"tourneypoker-server/pkg/deck"
)

func evaluate(t *testing.T, cards string) Ranking {
	t.Helper()

	r, err := Evaluate(deck.CardsFromString(cards))
	if err != nil {
		t.Fatalf("could not evaluate %s: %v", cards, err)
	}

	return r
}

func TestEvaluate_HandTypes(t *testing.T) {
	tests := []struct {
		cards   string
		hand    Hand
		primary []int
		kickers []int
	}{
		{"As,Ks,Qs,Js,Ts,2c,3d", RoyalFlush, []int{14}, []int{}},
		{"9h,8h,7h,6h,5h,Ac,Ad", StraightFlush, []int{9}, []int{}},
		{"Ad,2d,3d,4d,5d,Kc,Kh", StraightFlush, []int{5}, []int{}},
		{"8c,8d,8h,8s,Kc,2d,3d", FourOfAKind, []int{8}, []int{13}},
		{"Qc,Qd,Qh,9s,9c,9d,2h", FullHouse, []int{12, 9}, []int{}},
		{"2h,7h,9h,Jh,Kh,Ks,Kd", Flush, []int{13}, []int{11, 9, 7, 2}},
		{"Ac,2d,3h,4s,5c,Kd,9h", Straight, []int{5}, []int{}},
		{"Tc,Jd,Qh,Ks,Ac,Ad,Ah", Straight, []int{14}, []int{}},
		{"7c,7d,7h,Ks,2c,4d,9h", ThreeOfAKind, []int{7}, []int{13, 9}},
		{"Jc,Jd,4h,4s,2c,2d,Ah", TwoPair, []int{11, 4}, []int{14}},
		{"Tc,Td,4h,8s,2c,Kd,Ah", OnePair, []int{10}, []int{14, 13, 8}},
		{"2c,4d,6h,8s,Tc,Qd,Ah", HighCard, []int{14}, []int{12, 10, 8, 6}},
	}

	for _, test := range tests {
		t.Run(test.cards, func(t *testing.T) {
			a := assert.New(t)

			r := evaluate(t, test.cards)
			a.Equal(test.hand, r.Hand)
			a.Equal(test.primary, r.Primary)
			a.Equal(test.kickers, r.Kickers)
			a.Len(r.Cards, 5)
		})
	}
}

func TestEvaluate_CardCount(t *testing.T) {
	a := assert.New(t)

	_, err := Evaluate(deck.CardsFromString("2c,3c,4c,5c"))
	a.Equal(InvalidCardCountError(4), err)
	a.EqualError(err, "expected 5-7 cards, got 4")

	_, err = Evaluate(deck.CardsFromString("2c,3c,4c,5c,6c,7c,8c,9c"))
	a.Equal(InvalidCardCountError(8), err)

	_, err = Evaluate(deck.CardsFromString("2c,3c,4c,5c,2c"))
	a.True(errors.Is(err, ErrDuplicateCard))

	r, err := Evaluate(deck.CardsFromString("2c,3c,4c,5c,6c"))
	a.NoError(err)
	a.Equal(StraightFlush, r.Hand)
}

func TestRanking_Compare(t *testing.T) {
	a := assert.New(t)

	wheel := evaluate(t, "Ac,2d,3h,4s,5c")
	sixHigh := evaluate(t, "2d,3h,4s,5c,6c")
	a.True(sixHigh.Beats(wheel))
	a.False(wheel.Beats(sixHigh))

	// kicker decides
	aceKicker := evaluate(t, "Kc,Kd,Ah,7s,2c")
	queenKicker := evaluate(t, "Kh,Ks,Qh,7c,2d")
	a.Equal(1, aceKicker.Compare(queenKicker))
	a.Equal(-1, queenKicker.Compare(aceKicker))

	// same ranks in different suits split
	h1 := evaluate(t, "Kc,Kd,Ah,7s,2c")
	h2 := evaluate(t, "Kh,Ks,Ac,7d,2d")
	a.True(h1.Equal(h2))
	a.Equal(0, h1.Compare(h2))

	// full house compares trips before pair
	a.True(evaluate(t, "3c,3d,3h,2s,2c").Beats(evaluate(t, "2h,2d,2s,Ac,Ad")))

	// flush beats straight
	a.True(evaluate(t, "2h,5h,7h,9h,Jh").Beats(evaluate(t, "Tc,Jd,Qh,Ks,Ac")))
}

func TestRanking_String(t *testing.T) {
	a := assert.New(t)

	a.Equal("Royal flush", evaluate(t, "As,Ks,Qs,Js,Ts").String())
	a.Equal("Full house (Q over 9)", evaluate(t, "Qc,Qd,Qh,9s,9c").String())
	a.Equal("Straight (5 high)", evaluate(t, "Ac,2d,3h,4s,5c").String())
	a.Equal("Pair (10)", evaluate(t, "Tc,Td,4h,8s,2c").String())
	a.Equal("Two pair (J over 4)", evaluate(t, "Jc,Jd,4h,4s,2c").String())
}

// every pair of rankings is ordered one way, the other, or tied, and the order is antisymmetric
func TestRanking_Totality(t *testing.T) {
	a := assert.New(t)

	d := deck.New(rng.NewSeeded(99))
	rankings := make([]Ranking, 0, 60)
	for i := 0; i < 60; i++ {
		cards := make([]deck.Card, 0, 7)
		seen := make(map[deck.Card]bool)
		for len(cards) < 7 {
			c := d.Draw()
			if seen[c] {
				continue
			}

			seen[c] = true
			cards = append(cards, c)
		}

		rankings = append(rankings, MustEvaluate(cards))
	}

	for _, r1 := range rankings {
		a.Equal(0, r1.Compare(r1))
		for _, r2 := range rankings {
			a.Equal(-r1.Compare(r2), r2.Compare(r1))
			if r1.Beats(r2) {
				a.False(r2.Beats(r1))
				a.False(r1.Equal(r2))
			}
		}
	}
}

func TestHand_String(t *testing.T) {
	a := assert.New(t)

	a.Equal("High card", HighCard.String())
	a.Equal("Royal flush", RoyalFlush.String())
	a.Panics(func() {
		_ = Hand(42).String()
	})

	b, err := FullHouse.MarshalJSON()
	a.NoError(err)
	a.Equal(`"Full house"`, string(b))
}
