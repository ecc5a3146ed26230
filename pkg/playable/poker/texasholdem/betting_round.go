package texasholdem

import (
	"tourneypoker-server/pkg/chips"
)

// BettingRound is the betting state of a single street
// It is a value: every transition returns a new BettingRound and leaves the receiver alone
type BettingRound struct {
	Phase         Phase       `json:"phase"`
	CurrentBet    chips.Chips `json:"currentBet"`
	MinRaise      chips.Chips `json:"minRaise"`
	ActionCount   int         `json:"actionCount"`
	LastAggressor string      `json:"lastAggressor,omitempty"`
}

// NewPreFlopRound starts pre-flop betting with the big blind as the bet to match
func NewPreFlopRound(bigBlind chips.Chips) BettingRound {
	return BettingRound{
		Phase:      PhasePreFlop,
		CurrentBet: bigBlind,
		MinRaise:   bigBlind,
	}
}

// StartPostFlop starts an unopened round for the flop, turn, or river
func StartPostFlop(phase Phase, bigBlind chips.Chips) BettingRound {
	return BettingRound{
		Phase:      phase,
		CurrentBet: chips.Zero,
		MinRaise:   bigBlind,
	}
}

// WithBet opens the betting, minRaise is the smallest increment a raise can add
func (b BettingRound) WithBet(amount, minRaise chips.Chips, actor string) BettingRound {
	b.CurrentBet = amount
	b.MinRaise = minRaise
	b.LastAggressor = actor
	b.ActionCount++
	return b
}

// WithRaise raises the bet to newTotal
func (b BettingRound) WithRaise(newTotal, increment chips.Chips, actor string) BettingRound {
	b.CurrentBet = newTotal
	b.MinRaise = increment
	b.LastAggressor = actor
	b.ActionCount++
	return b
}

// WithAction records a check, call, or fold
func (b BettingRound) WithAction() BettingRound {
	b.ActionCount++
	return b
}

// AmountToCall returns how much more a player who has committed playerBet must put in
func (b BettingRound) AmountToCall(playerBet chips.Chips) chips.Chips {
	return b.CurrentBet.SubtractOrZero(playerBet)
}

// MinimumRaiseTotal is the smallest total a full raise can be
func (b BettingRound) MinimumRaiseTotal() chips.Chips {
	return b.CurrentBet.Add(b.MinRaise)
}

// IsValidRaise returns true if raising to proposedTotal is a full raise
func (b BettingRound) IsValidRaise(proposedTotal chips.Chips) bool {
	return proposedTotal >= b.MinimumRaiseTotal()
}

// IsComplete returns true once enough actions were taken for every active player to have acted
// Game does not rely on this count alone, it tracks who has acted since the last raise
func (b BettingRound) IsComplete(activePlayers, actionsThisRound int) bool {
	return actionsThisRound >= activePlayers
}
