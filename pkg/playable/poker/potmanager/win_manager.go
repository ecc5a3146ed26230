package potmanager

import (
	"errors"
	"fmt"
	"sort"

	"tourneypoker-server/pkg/chips"
	"tourneypoker-server/pkg/playable/poker/handanalyzer"
)

// ErrNoContestant is returned when a pot has no player who can win it
var ErrNoContestant = errors.New("pot has no eligible player with a hand")

// Result is the outcome of a single pot
type Result struct {
	PotIndex int                    `json:"potIndex"`
	Pot      Pot                    `json:"pot"`
	Winners  []string               `json:"winners"`
	Amounts  map[string]chips.Chips `json:"amounts"`
	Ranking  *handanalyzer.Ranking  `json:"ranking,omitempty"`
}

// SplitCount returns how many players share the pot
func (r Result) SplitCount() int {
	return len(r.Winners)
}

// Award decides who wins each pot
// A pot with a single eligible player goes to that player, with or without a ranking.
// Otherwise the best ranking among eligible players wins; ties split evenly and odd chips go
// one at a time to the winners in the order they appear in seatOrder.
// seatOrder should start with the first seat to the left of the button.
func Award(pots Pots, rankings map[string]handanalyzer.Ranking, seatOrder []string) ([]Result, error) {
	position := make(map[string]int, len(seatOrder))
	for i, id := range seatOrder {
		position[id] = i
	}

	results := make([]Result, 0, len(pots))
	for i, pot := range pots {
		result := Result{
			PotIndex: i,
			Pot:      pot,
			Amounts:  make(map[string]chips.Chips),
		}

		if len(pot.Eligible) == 1 {
			result.Winners = []string{pot.Eligible[0]}
			if r, ok := rankings[pot.Eligible[0]]; ok {
				r := r
				result.Ranking = &r
			}
		} else {
			var best *handanalyzer.Ranking
			for _, id := range pot.Eligible {
				r, ok := rankings[id]
				if !ok {
					continue
				}

				switch {
				case best == nil || r.Beats(*best):
					r := r
					best = &r
					result.Winners = []string{id}
				case r.Equal(*best):
					result.Winners = append(result.Winners, id)
				}
			}

			if best == nil {
				return nil, fmt.Errorf("pot %d: %w", i, ErrNoContestant)
			}

			result.Ranking = best
		}

		sort.SliceStable(result.Winners, func(a, b int) bool {
			return seatPosition(position, result.Winners[a]) < seatPosition(position, result.Winners[b])
		})

		share, oddChips := splitPot(pot.Amount, len(result.Winners))
		for j, id := range result.Winners {
			amount := share
			if int64(j) < oddChips {
				amount = amount.Add(chips.MustNew(1))
			}

			result.Amounts[id] = result.Amounts[id].Add(amount)
		}

		results = append(results, result)
	}

	return results, nil
}

// Winnings totals every result by player
func Winnings(results []Result) map[string]chips.Chips {
	totals := make(map[string]chips.Chips)
	for _, r := range results {
		for id, amount := range r.Amounts {
			totals[id] = totals[id].Add(amount)
		}
	}

	return totals
}

func splitPot(amount chips.Chips, n int) (chips.Chips, int64) {
	share := amount.Int64() / int64(n)
	return chips.MustNew(share), amount.Int64() % int64(n)
}

// seatPosition returns where the player sits relative to seatOrder, unknown players sort last
func seatPosition(position map[string]int, id string) int {
	if p, ok := position[id]; ok {
		return p
	}

	return len(position)
}
