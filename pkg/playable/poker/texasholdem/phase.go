package texasholdem

import (
	"encoding/json"
	"fmt"
)

// Phase is where a hand is in its lifecycle
type Phase int

// constants for Phase
const (
	PhaseWaiting Phase = iota
	PhasePreFlop
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseShowdown
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhasePreFlop:
		return "pre-flop"
	case PhaseFlop:
		return "flop"
	case PhaseTurn:
		return "turn"
	case PhaseRiver:
		return "river"
	case PhaseShowdown:
		return "showdown"
	case PhaseFinished:
		return "finished"
	}

	return fmt.Sprintf("phase(%d)", int(p))
}

// MarshalJSON encodes JSON
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(p),
		Name: p.String(),
	})
}

// IsBettingRound returns true if players can act in the phase
func (p Phase) IsBettingRound() bool {
	return p >= PhasePreFlop && p <= PhaseRiver
}

// IsHandInProgress returns true from the deal until the pots are awarded
func (p Phase) IsHandInProgress() bool {
	return p >= PhasePreFlop && p <= PhaseShowdown
}

// next returns the following street
func (p Phase) next() Phase {
	if p >= PhaseFinished {
		return PhaseFinished
	}

	return p + 1
}

// cardsToDeal is how many community cards are turned at the start of the phase
func (p Phase) cardsToDeal() int {
	switch p {
	case PhaseFlop:
		return 3
	case PhaseTurn, PhaseRiver:
		return 1
	}

	return 0
}
