package handanalyzer

import (
	"errors"
	"fmt"
	"sort"

	"tourneypoker-server/pkg/deck"
)

// card count limits
const (
	minCards  = 5
	maxCards  = 7
	handCards = 5
)

// ErrDuplicateCard is returned when the same card appears twice
var ErrDuplicateCard = errors.New("duplicate card")

// InvalidCardCountError is returned when there are fewer than five or more than seven cards
type InvalidCardCountError int

func (i InvalidCardCountError) Error() string {
	return fmt.Sprintf("expected %d-%d cards, got %d", minCards, maxCards, int(i))
}

// Evaluate returns the best five-card ranking out of 5 to 7 cards
func Evaluate(cards []deck.Card) (Ranking, error) {
	if len(cards) < minCards || len(cards) > maxCards {
		return Ranking{}, InvalidCardCountError(len(cards))
	}

	seen := make(map[deck.Card]bool, len(cards))
	for _, card := range cards {
		if !card.IsValid() {
			return Ranking{}, fmt.Errorf("invalid card: %+v", card)
		}

		if seen[card] {
			return Ranking{}, fmt.Errorf("%w: %s", ErrDuplicateCard, card)
		}

		seen[card] = true
	}

	var best Ranking
	first := true
	eachCombination(cards, handCards, func(five []deck.Card) {
		r := evaluateFive(five)
		if first || r.Beats(best) {
			best = r
			first = false
		}
	})

	return best, nil
}

// MustEvaluate is like Evaluate but panics on error
func MustEvaluate(cards []deck.Card) Ranking {
	r, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}

	return r
}

// eachCombination calls fn with every k-sized subset of cards
// The slice passed to fn is reused between calls
func eachCombination(cards []deck.Card, k int, fn func([]deck.Card)) {
	subset := make([]deck.Card, k)

	var recurse func(start, depth int)
	recurse = func(start, depth int) {
		if depth == k {
			fn(subset)
			return
		}

		for i := start; i <= len(cards)-(k-depth); i++ {
			subset[depth] = cards[i]
			recurse(i+1, depth+1)
		}
	}

	recurse(0, 0)
}

// rankGroup is a set of cards sharing a rank
type rankGroup struct {
	rank  int
	cards []deck.Card
}

// evaluateFive ranks exactly five cards
func evaluateFive(five []deck.Card) Ranking {
	cards := make(deck.Hand, len(five))
	copy(cards, five)
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Rank > cards[j].Rank
	})

	isFlush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			isFlush = false
			break
		}
	}

	straightHigh, straightCards := straightOf(cards)

	switch {
	case isFlush && straightHigh == deck.Ace:
		return Ranking{Hand: RoyalFlush, Primary: []int{deck.Ace}, Kickers: []int{}, Cards: straightCards}
	case isFlush && straightHigh > 0:
		return Ranking{Hand: StraightFlush, Primary: []int{straightHigh}, Kickers: []int{}, Cards: straightCards}
	}

	groups := groupByRank(cards)

	switch {
	case len(groups[0].cards) == 4:
		return fromGroups(FourOfAKind, groups, 1)
	case len(groups[0].cards) == 3 && len(groups[1].cards) == 2:
		return fromGroups(FullHouse, groups, 2)
	case isFlush:
		return fromGroups(Flush, groups, 1)
	case straightHigh > 0:
		return Ranking{Hand: Straight, Primary: []int{straightHigh}, Kickers: []int{}, Cards: straightCards}
	case len(groups[0].cards) == 3:
		return fromGroups(ThreeOfAKind, groups, 1)
	case len(groups[0].cards) == 2 && len(groups[1].cards) == 2:
		return fromGroups(TwoPair, groups, 2)
	case len(groups[0].cards) == 2:
		return fromGroups(OnePair, groups, 1)
	default:
		return fromGroups(HighCard, groups, 1)
	}
}

// groupByRank groups cards by rank, largest groups first, then highest rank
func groupByRank(cards deck.Hand) []rankGroup {
	groups := make([]rankGroup, 0, len(cards))
	for _, c := range cards {
		if n := len(groups); n > 0 && groups[n-1].rank == c.Rank {
			groups[n-1].cards = append(groups[n-1].cards, c)
			continue
		}

		groups = append(groups, rankGroup{rank: c.Rank, cards: []deck.Card{c}})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if len(groups[i].cards) != len(groups[j].cards) {
			return len(groups[i].cards) > len(groups[j].cards)
		}

		return groups[i].rank > groups[j].rank
	})

	return groups
}

// fromGroups builds a ranking whose first nPrimary groups are the primary ranks
func fromGroups(hand Hand, groups []rankGroup, nPrimary int) Ranking {
	r := Ranking{
		Hand:    hand,
		Primary: make([]int, 0, nPrimary),
		Kickers: make([]int, 0, handCards),
		Cards:   make(deck.Hand, 0, handCards),
	}

	for i, g := range groups {
		r.Cards = append(r.Cards, g.cards...)
		if i < nPrimary {
			r.Primary = append(r.Primary, g.rank)
			continue
		}

		for range g.cards {
			r.Kickers = append(r.Kickers, g.rank)
		}
	}

	return r
}

// straightOf returns the high card of the straight (5 for a wheel) and the cards ordered high to low
// cards must be sorted by rank descending. Returns 0 if the cards are not a straight
func straightOf(cards deck.Hand) (int, deck.Hand) {
	for i := 1; i < len(cards); i++ {
		if cards[i].Rank == cards[i-1].Rank {
			return 0, nil
		}
	}

	if cards[0].Rank-cards[len(cards)-1].Rank == len(cards)-1 {
		return cards[0].Rank, cards
	}

	// A-5-4-3-2
	if cards[0].Rank == deck.Ace && cards[1].Rank == 5 && cards[len(cards)-1].Rank == 2 {
		wheel := make(deck.Hand, 0, len(cards))
		wheel = append(wheel, cards[1:]...)
		wheel = append(wheel, cards[0])
		return 5, wheel
	}

	return 0, nil
}
