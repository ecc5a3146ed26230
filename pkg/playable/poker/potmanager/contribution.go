package potmanager

import "tourneypoker-server/pkg/chips"

// Contribution is everything a player put into the pot during a hand
type Contribution struct {
	PlayerID string
	Amount   chips.Chips
	Folded   bool
	AllIn    bool
}
