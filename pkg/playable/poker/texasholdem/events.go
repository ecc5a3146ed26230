package texasholdem

import (
	"time"

	"tourneypoker-server/pkg/chips"
	"tourneypoker-server/pkg/deck"
	"tourneypoker-server/pkg/playable/poker/action"
	"tourneypoker-server/pkg/playable/poker/potmanager"
)

// GameCreated is published when a game is created
type GameCreated struct {
	GameID         string                 `json:"gameId"`
	PlayerIDs      []string               `json:"playerIds"`
	StartingStacks map[string]chips.Chips `json:"startingStacks"`
	SmallBlind     chips.Chips            `json:"smallBlind"`
	BigBlind       chips.Chips            `json:"bigBlind"`
	Ante           chips.Chips            `json:"ante"`
}

// EventName implements event.Event
func (GameCreated) EventName() string { return "game-created" }

// GameStarted is published when a hand is dealt
type GameStarted struct {
	GameID           string `json:"gameId"`
	HandNumber       int    `json:"handNumber"`
	ButtonSeat       int    `json:"buttonSeat"`
	DealerSeat       int    `json:"dealerSeat"`
	DeadButton       bool   `json:"deadButton"`
	SmallBlindPlayer string `json:"smallBlindPlayer"`
	BigBlindPlayer   string `json:"bigBlindPlayer"`
}

// EventName implements event.Event
func (GameStarted) EventName() string { return "game-started" }

// PlayerActed is published for every action, including forced bets
type PlayerActed struct {
	GameID     string        `json:"gameId"`
	HandNumber int           `json:"handNumber"`
	PlayerID   string        `json:"playerId"`
	Action     action.Action `json:"action"`
	// Amount is how many chips moved from the player's stack
	Amount     chips.Chips `json:"amount"`
	BetTotal   chips.Chips `json:"betTotal"`
	Phase      Phase       `json:"phase"`
	PotAfter   chips.Chips `json:"potAfter"`
	ChipsAfter chips.Chips `json:"chipsAfter"`
	IsAllIn    bool        `json:"isAllIn"`
}

// EventName implements event.Event
func (PlayerActed) EventName() string { return "player-acted" }

// PhaseChanged is published when the hand moves to a new street or showdown
type PhaseChanged struct {
	GameID            string      `json:"gameId"`
	HandNumber        int         `json:"handNumber"`
	PreviousPhase     Phase       `json:"previousPhase"`
	NewPhase          Phase       `json:"newPhase"`
	NewCards          deck.Hand   `json:"newCards"`
	Community         deck.Hand   `json:"community"`
	PotSize           chips.Chips `json:"potSize"`
	ActivePlayerCount int         `json:"activePlayerCount"`
}

// EventName implements event.Event
func (PhaseChanged) EventName() string { return "phase-changed" }

// PotAwarded is published once per winner per pot
type PotAwarded struct {
	GameID          string             `json:"gameId"`
	HandNumber      int                `json:"handNumber"`
	PotIndex        int                `json:"potIndex"`
	WinnerID        string             `json:"winnerId"`
	Amount          chips.Chips        `json:"amount"`
	HandDescription string             `json:"handDescription"`
	PotType         potmanager.PotType `json:"potType"`
	IsSplit         bool               `json:"isSplit"`
	SplitCount      int                `json:"splitCount"`
}

// EventName implements event.Event
func (PotAwarded) EventName() string { return "pot-awarded" }

// HandCompleted is published after every pot is awarded
type HandCompleted struct {
	GameID         string                 `json:"gameId"`
	HandNumber     int                    `json:"handNumber"`
	PotResults     []potmanager.Result    `json:"potResults"`
	ChipsAfter     map[string]chips.Chips `json:"chipsAfter"`
	Duration       time.Duration          `json:"duration"`
	TotalActions   int                    `json:"totalActions"`
	WentToShowdown bool                   `json:"wentToShowdown"`
}

// EventName implements event.Event
func (HandCompleted) EventName() string { return "hand-completed" }

// PlayerEliminated is published when a player finishes a hand with no chips
type PlayerEliminated struct {
	GameID     string `json:"gameId"`
	HandNumber int    `json:"handNumber"`
	PlayerID   string `json:"playerId"`
	Seat       int    `json:"seat"`
}

// EventName implements event.Event
func (PlayerEliminated) EventName() string { return "player-eliminated" }
