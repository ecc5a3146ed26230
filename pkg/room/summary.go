package room

import (
	"time"

	"tourneypoker-server/pkg/chips"
	"tourneypoker-server/pkg/tournament"
)

// TableSummary is a table as listed in a Summary
type TableSummary struct {
	ID             string   `json:"id"`
	Number         int      `json:"number"`
	Players        []string `json:"players"`
	Final          bool     `json:"final"`
	HandInProgress bool     `json:"handInProgress"`
}

// Summary is the public view of a tournament
type Summary struct {
	ID                 string                    `json:"id"`
	Name               string                    `json:"name"`
	Type               tournament.Type           `json:"type"`
	Status             tournament.Status         `json:"status"`
	Level              int                       `json:"level"`
	Blinds             tournament.BlindLevel     `json:"blinds"`
	LevelTimeRemaining time.Duration             `json:"levelTimeRemaining"`
	PrizePool          chips.Chips               `json:"prizePool"`
	Remaining          int                       `json:"remaining"`
	Tables             []TableSummary            `json:"tables"`
	Standings          []tournament.Registration `json:"standings"`
	Revision           int64                     `json:"revision"`
}

// NewSummary summarizes the tournament
// NOTE: must only be called from the run loop of the tournament's dealer
func NewSummary(t *tournament.Tournament) *Summary {
	cfg := t.Config()
	tables := make([]TableSummary, 0)
	for _, table := range t.Tables() {
		tables = append(tables, TableSummary{
			ID:             table.ID,
			Number:         table.Number,
			Players:        table.PlayerIDs(),
			Final:          table.Final,
			HandInProgress: table.IsHandInProgress(),
		})
	}

	return &Summary{
		ID:                 t.ID(),
		Name:               cfg.Name,
		Type:               cfg.Type,
		Status:             t.Status(),
		Level:              t.Level(),
		Blinds:             t.CurrentBlinds(),
		LevelTimeRemaining: t.LevelTimeRemaining(),
		PrizePool:          t.PrizePool(),
		Remaining:          t.ActivePlayerCount(),
		Tables:             tables,
		Standings:          t.Standings(),
		Revision:           t.Revision(),
	}
}
