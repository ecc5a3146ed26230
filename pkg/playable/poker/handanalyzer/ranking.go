package handanalyzer

import (
	"fmt"
	"strings"

	"tourneypoker-server/pkg/deck"
)

// Ranking is the value of the best five cards a player can make
// Two rankings are compared by hand type, then the primary ranks, then the kickers
type Ranking struct {
	Hand Hand `json:"hand"`

	// Primary are the ranks that define the hand, e.g., [trips, pair] for a full house
	// For straights this is the high card of the straight, a wheel is 5-high
	Primary []int `json:"primary"`

	// Kickers are the remaining ranks in descending order
	Kickers []int `json:"kickers"`

	// Cards are the five cards that make the hand
	Cards deck.Hand `json:"cards"`
}

// Compare returns 1 if r beats other, -1 if other beats r, and 0 on a tie
func (r Ranking) Compare(other Ranking) int {
	if r.Hand != other.Hand {
		if r.Hand > other.Hand {
			return 1
		}

		return -1
	}

	if cmp := compareRanks(r.Primary, other.Primary); cmp != 0 {
		return cmp
	}

	return compareRanks(r.Kickers, other.Kickers)
}

// Beats returns true if r is strictly stronger than other
func (r Ranking) Beats(other Ranking) bool {
	return r.Compare(other) > 0
}

// Equal returns true if both rankings split the pot
func (r Ranking) Equal(other Ranking) bool {
	return r.Compare(other) == 0
}

// String returns a description such as "Full house (Q over 9)"
func (r Ranking) String() string {
	names := make([]string, len(r.Primary))
	for i, rank := range r.Primary {
		names[i] = rankName(rank)
	}

	switch r.Hand {
	case RoyalFlush:
		return r.Hand.String()
	case FullHouse, TwoPair:
		return fmt.Sprintf("%s (%s)", r.Hand, strings.Join(names, " over "))
	case Straight, StraightFlush, Flush, HighCard:
		return fmt.Sprintf("%s (%s high)", r.Hand, names[0])
	default:
		return fmt.Sprintf("%s (%s)", r.Hand, names[0])
	}
}

func compareRanks(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] > b[i] {
			return 1
		} else if a[i] < b[i] {
			return -1
		}
	}

	switch {
	case len(a) > len(b):
		return 1
	case len(a) < len(b):
		return -1
	}

	return 0
}

func rankName(rank int) string {
	switch rank {
	case deck.Jack:
		return "J"
	case deck.Queen:
		return "Q"
	case deck.King:
		return "K"
	case deck.Ace:
		return "A"
	default:
		return fmt.Sprintf("%d", rank)
	}
}
