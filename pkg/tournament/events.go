package tournament

import (
	"time"

	"tourneypoker-server/pkg/chips"
)

// TournamentCreated is published when a tournament is configured
type TournamentCreated struct {
	TournamentID  string      `json:"tournamentId"`
	Name          string      `json:"name"`
	Type          Type        `json:"type"`
	BuyIn         chips.Chips `json:"buyIn"`
	StartingStack chips.Chips `json:"startingStack"`
	MaxPlayers    int         `json:"maxPlayers"`
}

// EventName implements event.Event
func (TournamentCreated) EventName() string { return "tournament-created" }

// TournamentStarted is published when the tables are drawn
type TournamentStarted struct {
	TournamentID string      `json:"tournamentId"`
	PlayerCount  int         `json:"playerCount"`
	TableCount   int         `json:"tableCount"`
	PrizePool    chips.Chips `json:"prizePool"`
}

// EventName implements event.Event
func (TournamentStarted) EventName() string { return "tournament-started" }

// LevelAdvanced is published when the blinds go up
type LevelAdvanced struct {
	TournamentID string        `json:"tournamentId"`
	Level        int           `json:"level"`
	SmallBlind   chips.Chips   `json:"smallBlind"`
	BigBlind     chips.Chips   `json:"bigBlind"`
	Ante         chips.Chips   `json:"ante"`
	Duration     time.Duration `json:"duration"`
}

// EventName implements event.Event
func (LevelAdvanced) EventName() string { return "level-advanced" }

// PlayerRegistered is published for every new entry
type PlayerRegistered struct {
	TournamentID    string `json:"tournamentId"`
	PlayerID        string `json:"playerId"`
	Name            string `json:"name"`
	Late            bool   `json:"late"`
	TableID         string `json:"tableId,omitempty"`
	RegisteredCount int    `json:"registeredCount"`
}

// EventName implements event.Event
func (PlayerRegistered) EventName() string { return "player-registered" }

// TournamentPlayerEliminated is published when a player is out of the tournament
type TournamentPlayerEliminated struct {
	TournamentID   string      `json:"tournamentId"`
	PlayerID       string      `json:"playerId"`
	EliminatedBy   string      `json:"eliminatedBy,omitempty"`
	FinishPosition int         `json:"finishPosition"`
	Prize          chips.Chips `json:"prize"`
	Remaining      int         `json:"remaining"`
}

// EventName implements event.Event
func (TournamentPlayerEliminated) EventName() string { return "tournament-player-eliminated" }

// TableCreated is published for each table drawn at the start or opened for late registrants
type TableCreated struct {
	TournamentID string   `json:"tournamentId"`
	TableID      string   `json:"tableId"`
	Number       int      `json:"number"`
	PlayerIDs    []string `json:"playerIds"`
}

// EventName implements event.Event
func (TableCreated) EventName() string { return "table-created" }

// Move is one player changing tables
type Move struct {
	PlayerID  string `json:"playerId"`
	FromTable string `json:"fromTable"`
	ToTable   string `json:"toTable"`
	ToSeat    int    `json:"toSeat"`
}

// TablesRebalanced is published after players are moved
type TablesRebalanced struct {
	TournamentID string   `json:"tournamentId"`
	Moves        []Move   `json:"moves"`
	ClosedTables []string `json:"closedTables,omitempty"`
	FinalTable   string   `json:"finalTable,omitempty"`
}

// EventName implements event.Event
func (TablesRebalanced) EventName() string { return "tables-rebalanced" }

// TournamentCompleted is published when one player is left
type TournamentCompleted struct {
	TournamentID string        `json:"tournamentId"`
	WinnerID     string        `json:"winnerId"`
	Prize        chips.Chips   `json:"prize"`
	PrizePool    chips.Chips   `json:"prizePool"`
	Duration     time.Duration `json:"duration"`
}

// EventName implements event.Event
func (TournamentCompleted) EventName() string { return "tournament-completed" }

// TournamentStatusChanged is published on every status transition
type TournamentStatusChanged struct {
	TournamentID string `json:"tournamentId"`
	Previous     Status `json:"previous"`
	Status       Status `json:"status"`
}

// EventName implements event.Event
func (TournamentStatusChanged) EventName() string { return "tournament-status-changed" }
