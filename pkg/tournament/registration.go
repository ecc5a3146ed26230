package tournament

import (
	"time"

	"tourneypoker-server/pkg/chips"
)

// RegistrationStatus is where a player is in the tournament
type RegistrationStatus string

// RegistrationStatus constants
const (
	RegistrationRegistered RegistrationStatus = "registered"
	RegistrationPlaying    RegistrationStatus = "playing"
	RegistrationEliminated RegistrationStatus = "eliminated"
	RegistrationFinished   RegistrationStatus = "finished"
	RegistrationWithdrawn  RegistrationStatus = "withdrawn"
)

// IsTerminal returns true for eliminated, finished, and withdrawn
func (r RegistrationStatus) IsTerminal() bool {
	switch r {
	case RegistrationEliminated, RegistrationFinished, RegistrationWithdrawn:
		return true
	}

	return false
}

// Registration is a player's entry in the tournament
type Registration struct {
	PlayerID       string             `json:"playerId"`
	Name           string             `json:"name"`
	Chips          chips.Chips        `json:"chips"`
	Status         RegistrationStatus `json:"status"`
	TableID        string             `json:"tableId,omitempty"`
	Rebuys         int                `json:"rebuys"`
	AddOns         int                `json:"addOns"`
	Bounties       int                `json:"bounties"`
	BountyWinnings chips.Chips        `json:"bountyWinnings"`
	FinishPosition int                `json:"finishPosition,omitempty"`
	Prize          chips.Chips        `json:"prize"`
	EliminatedBy   string             `json:"eliminatedBy,omitempty"`
	RegisteredAt   time.Time          `json:"registeredAt"`
	Late           bool               `json:"late,omitempty"`
}

// IsActive returns true if the player is still in the tournament
func (r *Registration) IsActive() bool {
	return r.Status == RegistrationRegistered || r.Status == RegistrationPlaying
}
