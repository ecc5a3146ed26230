package tournament

import (
	"errors"

	"tourneypoker-server/pkg/playable/poker/texasholdem"
)

var errTableFull = errors.New("table is full")

// Table is one table of the tournament
// Seats holds player ids by seat number, an empty string is an empty seat
type Table struct {
	ID     string   `json:"id"`
	Number int      `json:"number"`
	Seats  []string `json:"seats"`
	Active bool     `json:"active"`
	Final  bool     `json:"final"`

	game *texasholdem.Game
}

func newTable(id string, number, size int) *Table {
	return &Table{
		ID:     id,
		Number: number,
		Seats:  make([]string, size),
		Active: true,
	}
}

// Game returns the hand engine for the table, nil until the first hand
func (t *Table) Game() *texasholdem.Game {
	return t.game
}

// PlayerCount returns how many seats are taken
func (t *Table) PlayerCount() int {
	n := 0
	for _, id := range t.Seats {
		if id != "" {
			n++
		}
	}

	return n
}

// PlayerIDs returns the seated players in seat order
func (t *Table) PlayerIDs() []string {
	ids := make([]string, 0, len(t.Seats))
	for _, id := range t.Seats {
		if id != "" {
			ids = append(ids, id)
		}
	}

	return ids
}

// SeatOf returns the player's seat or -1
func (t *Table) SeatOf(playerID string) int {
	for i, id := range t.Seats {
		if id == playerID {
			return i
		}
	}

	return -1
}

// HasPlayer returns true if the player is seated here
func (t *Table) HasPlayer(playerID string) bool {
	return t.SeatOf(playerID) >= 0
}

// IsHandInProgress returns true while cards are in the air
func (t *Table) IsHandInProgress() bool {
	return t.game != nil && t.game.IsHandInProgress()
}

// isInLiveHand returns true if the player holds cards in the current hand
func (t *Table) isInLiveHand(playerID string) bool {
	if !t.IsHandInProgress() {
		return false
	}

	p, err := t.game.Player(playerID)
	return err == nil && p.IsInHand()
}

// seat puts the player in the first empty seat
func (t *Table) seat(playerID string) (int, error) {
	for i, id := range t.Seats {
		if id == "" {
			t.Seats[i] = playerID
			return i, nil
		}
	}

	return -1, errTableFull
}

func (t *Table) unseat(playerID string) {
	if i := t.SeatOf(playerID); i >= 0 {
		t.Seats[i] = ""
	}
}

// lastMovablePlayer picks the player in the highest seat who is not in a live hand
func (t *Table) lastMovablePlayer() string {
	for i := len(t.Seats) - 1; i >= 0; i-- {
		id := t.Seats[i]
		if id != "" && !t.isInLiveHand(id) {
			return id
		}
	}

	return ""
}
