package texasholdem

import (
	"errors"
	"fmt"

	"tourneypoker-server/pkg/chips"
)

// ErrHandInProgress is returned when an operation requires no hand to be in progress
var ErrHandInProgress = errors.New("a hand is in progress")

// ErrNotEnoughPlayers is returned when a hand cannot start
var ErrNotEnoughPlayers = errors.New("at least two players with chips are required")

// error codes for InvalidActionError
const (
	CodeNoHandInProgress  = "no-hand-in-progress"
	CodeNotYourTurn       = "not-your-turn"
	CodePlayerFolded      = "player-folded"
	CodePlayerAllIn       = "player-all-in"
	CodeNotInHand         = "not-in-hand"
	CodeUnknownAction     = "unknown-action"
	CodeCannotCheck       = "cannot-check"
	CodeNothingToCall     = "nothing-to-call"
	CodeBetExists         = "bet-exists"
	CodeNoBetToRaise      = "no-bet-to-raise"
	CodeBetTooSmall       = "bet-too-small"
	CodeRaiseTooSmall     = "raise-too-small"
	CodeInsufficientChips = "insufficient-chips"
	CodeNoOpponent        = "no-opponent-can-act"
	CodeActionNotReopened = "action-not-reopened"
)

// InvalidActionError is returned when a player attempts an action the rules do not allow
// The message is safe to show to the player
type InvalidActionError struct {
	Code         string      `json:"code"`
	Message      string      `json:"message"`
	CurrentBet   chips.Chips `json:"currentBet"`
	MinRaise     chips.Chips `json:"minRaise"`
	AmountToCall chips.Chips `json:"amountToCall"`
}

func (i *InvalidActionError) Error() string {
	return i.Message
}

// PlayerNotFoundError is returned when a player id is not at the table
type PlayerNotFoundError struct {
	PlayerID string
}

func (p *PlayerNotFoundError) Error() string {
	return fmt.Sprintf("player not found: %s", p.PlayerID)
}

// GameConfigurationError is returned when a game cannot be created or changed as requested
type GameConfigurationError struct {
	Reason string
}

func (g *GameConfigurationError) Error() string {
	return fmt.Sprintf("invalid game configuration: %s", g.Reason)
}

func newGameConfigurationError(format string, a ...interface{}) *GameConfigurationError {
	return &GameConfigurationError{
		Reason: fmt.Sprintf(format, a...),
	}
}

func (g *Game) newInvalidActionError(p *Player, code, format string, a ...interface{}) *InvalidActionError {
	toCall := chips.Zero
	if p != nil {
		toCall = g.round.AmountToCall(p.bet)
	}

	return &InvalidActionError{
		Code:         code,
		Message:      fmt.Sprintf(format, a...),
		CurrentBet:   g.round.CurrentBet,
		MinRaise:     g.round.MinRaise,
		AmountToCall: toCall,
	}
}
