package action

import (
	"encoding/json"
	"fmt"
)

// Action represents an action a player can take
type Action string

// action constants
const (
	Fold  Action = "fold"
	Check Action = "check"
	Call  Action = "call"
	Bet   Action = "bet"
	Raise Action = "raise"
	AllIn Action = "all-in"

	// forced bets, posted by the engine and never submitted by a player
	PostAnte       Action = "post-ante"
	PostSmallBlind Action = "post-small-blind"
	PostBigBlind   Action = "post-big-blind"
	PostDeadBlind  Action = "post-dead-blind"
)

var allowedActions = map[Action]bool{
	Fold:  true,
	Check: true,
	Call:  true,
	Bet:   true,
	Raise: true,
	AllIn: true,
}

var forcedActions = map[Action]bool{
	PostAnte:       true,
	PostSmallBlind: true,
	PostBigBlind:   true,
	PostDeadBlind:  true,
}

// FromString returns an action for the given string
// Only actions a player can submit are accepted
func FromString(s string) (Action, error) {
	if _, ok := allowedActions[Action(s)]; ok {
		return Action(s), nil
	}

	return "", fmt.Errorf("unknown action for identifier: %s", s)
}

func (a Action) String() string {
	switch a {
	case Fold:
		return "Fold"
	case Check:
		return "Check"
	case Call:
		return "Call"
	case Bet:
		return "Bet"
	case Raise:
		return "Raise"
	case AllIn:
		return "All-In"
	case PostAnte:
		return "Ante"
	case PostSmallBlind:
		return "Small Blind"
	case PostBigBlind:
		return "Big Blind"
	case PostDeadBlind:
		return "Dead Blind"
	}

	panic("unknown action")
}

// MarshalJSON encodes the action into JSON
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{
		ID:   string(a),
		Name: a.String(),
	})
}

// IsValid returns true if a player may submit the action
func (a Action) IsValid() bool {
	_, ok := allowedActions[a]
	return ok
}

// IsForced returns true if the action is a forced bet
func (a Action) IsForced() bool {
	_, ok := forcedActions[a]
	return ok
}

// IsAggressive returns true if the action can open or raise the betting
func (a Action) IsAggressive() bool {
	return a == Bet || a == Raise || a == AllIn
}

// LogMessage returns a message formatted for the log
func (a Action) LogMessage(amount int64) string {
	switch a {
	case Fold:
		return "folded"
	case Check:
		return "checked"
	case Call:
		return fmt.Sprintf("called %d", amount)
	case Bet:
		return fmt.Sprintf("bet %d", amount)
	case Raise:
		return fmt.Sprintf("raised to %d", amount)
	case AllIn:
		return fmt.Sprintf("is all-in for %d", amount)
	case PostAnte:
		return fmt.Sprintf("posted an ante of %d", amount)
	case PostSmallBlind:
		return fmt.Sprintf("posted the small blind of %d", amount)
	case PostBigBlind:
		return fmt.Sprintf("posted the big blind of %d", amount)
	case PostDeadBlind:
		return fmt.Sprintf("posted %d in missed blinds", amount)
	}

	return ""
}
