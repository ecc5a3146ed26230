package potmanager

import (
	"sort"

	"tourneypoker-server/pkg/chips"
)

// PotType distinguishes the main pot from side pots
type PotType string

// pot types
const (
	MainPot PotType = "main"
	SidePot PotType = "side"
)

// Pot is an amount of chips and the players who can win it
type Pot struct {
	Amount   chips.Chips `json:"amount"`
	Type     PotType     `json:"type"`
	Eligible []string    `json:"eligible"`
}

// IsEligible returns true if the player can win the pot
func (p Pot) IsEligible(playerID string) bool {
	for _, id := range p.Eligible {
		if id == playerID {
			return true
		}
	}

	return false
}

// Pots is the main pot followed by any side pots
type Pots []Pot

// Total returns the sum of every pot
func (p Pots) Total() chips.Chips {
	total := chips.Zero
	for _, pot := range p {
		total = total.Add(pot.Amount)
	}

	return total
}

// Allocate splits the contributions into a main pot and side pots
// Every distinct all-in amount of a live player caps a pot, the largest live contribution caps the last one.
// Chips from folded players are dead money in every pot they reach, anything above the largest live
// contribution goes to the last pot.
// Every pot returned has at least one eligible player unless nobody is left in the hand.
func Allocate(contributions []Contribution) Pots {
	levels := potLevels(contributions)
	if len(levels) == 0 {
		return uncappedPot(contributions)
	}

	pots := make(Pots, 0, len(levels))
	prev := chips.Zero
	for i, level := range levels {
		last := i == len(levels)-1
		amount := chips.Zero
		eligible := make([]string, 0, len(contributions))
		for _, c := range contributions {
			upper := chips.Min(c.Amount, level)
			if last {
				upper = c.Amount
			}

			amount = amount.Add(upper.SubtractOrZero(chips.Min(c.Amount, prev)))
			if !c.Folded && c.Amount >= level {
				eligible = append(eligible, c.PlayerID)
			}
		}

		prev = level

		potType := SidePot
		if len(pots) == 0 {
			potType = MainPot
		}

		pots = append(pots, Pot{
			Amount:   amount,
			Type:     potType,
			Eligible: eligible,
		})
	}

	return pots
}

// uncappedPot puts everything in a single pot when no live player contributed
func uncappedPot(contributions []Contribution) Pots {
	total := chips.Zero
	eligible := make([]string, 0, len(contributions))
	for _, c := range contributions {
		total = total.Add(c.Amount)
		if !c.Folded {
			eligible = append(eligible, c.PlayerID)
		}
	}

	if total.IsZero() {
		return nil
	}

	return Pots{{Amount: total, Type: MainPot, Eligible: eligible}}
}

// potLevels returns the ascending caps of each pot, only live players set a cap
func potLevels(contributions []Contribution) []chips.Chips {
	seen := make(map[chips.Chips]bool)
	levels := make([]chips.Chips, 0, len(contributions))
	highest := chips.Zero

	for _, c := range contributions {
		if c.Folded || c.Amount.IsZero() {
			continue
		}

		highest = chips.Max(highest, c.Amount)
		if c.AllIn && !seen[c.Amount] {
			seen[c.Amount] = true
			levels = append(levels, c.Amount)
		}
	}

	if highest.IsZero() {
		return nil
	}

	if !seen[highest] {
		levels = append(levels, highest)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i] < levels[j]
	})

	return levels
}
