package texasholdem

import (
	"tourneypoker-server/pkg/chips"
	"tourneypoker-server/pkg/deck"
	"tourneypoker-server/pkg/playable/poker/action"
	"tourneypoker-server/pkg/playable/poker/handanalyzer"
	"tourneypoker-server/pkg/playable/poker/potmanager"
)

// PlayerState is a player as seen by a given viewer
type PlayerState struct {
	PlayerID   string        `json:"playerId"`
	Seat       int           `json:"seat"`
	Stack      chips.Chips   `json:"stack"`
	Bet        chips.Chips   `json:"bet"`
	TotalBet   chips.Chips   `json:"totalBet"`
	Cards      deck.Hand     `json:"cards,omitempty"`
	Hand       string        `json:"hand,omitempty"`
	Folded     bool          `json:"folded"`
	AllIn      bool          `json:"allIn"`
	SittingOut bool          `json:"sittingOut"`
	InHand     bool          `json:"inHand"`
	LastAction action.Action `json:"lastAction,omitempty"`
	Winnings   chips.Chips   `json:"winnings"`
}

// GameState is the table as seen by a given viewer
type GameState struct {
	GameID        string              `json:"gameId"`
	HandNumber    int                 `json:"handNumber"`
	Phase         Phase               `json:"phase"`
	Community     deck.Hand           `json:"community"`
	ButtonSeat    int                 `json:"buttonSeat"`
	DealerSeat    int                 `json:"dealerSeat"`
	DeadButton    bool                `json:"deadButton"`
	CurrentPlayer string              `json:"currentPlayer,omitempty"`
	Round         BettingRound        `json:"round"`
	Pots          potmanager.Pots     `json:"pots"`
	PotTotal      chips.Chips         `json:"potTotal"`
	Players       []PlayerState       `json:"players"`
	Actions       []action.Action     `json:"actions"`
	Results       []potmanager.Result `json:"results,omitempty"`
	SmallBlind    chips.Chips         `json:"smallBlind"`
	BigBlind      chips.Chips         `json:"bigBlind"`
	Ante          chips.Chips         `json:"ante"`
	Revision      int64               `json:"revision"`
}

// StateForPlayer returns the table as viewerID sees it
// Hole cards are visible to their owner, and to everyone for hands shown down
func (g *Game) StateForPlayer(viewerID string) *GameState {
	players := make([]PlayerState, 0, len(g.players))
	for _, p := range g.Players() {
		ps := PlayerState{
			PlayerID:   p.id,
			Seat:       p.seat,
			Stack:      p.stack,
			Bet:        p.bet,
			TotalBet:   p.totalBet,
			Folded:     p.folded,
			AllIn:      p.allIn,
			SittingOut: p.sittingOut,
			InHand:     p.inHand,
			LastAction: p.lastAction,
			Winnings:   p.winnings,
		}

		if p.id == viewerID || g.isRevealed(p) {
			ps.Cards = p.holeCards.Clone()
			if len(g.community) >= 3 && len(p.holeCards) == 2 {
				if r, err := handanalyzer.Evaluate(append(p.holeCards.Clone(), g.community...)); err == nil {
					ps.Hand = r.String()
				}
			}
		}

		players = append(players, ps)
	}

	var current string
	if p := g.CurrentPlayer(); p != nil {
		current = p.id
	}

	var results []potmanager.Result
	if g.phase == PhaseFinished {
		results = g.results
	}

	return &GameState{
		GameID:        g.id,
		HandNumber:    g.handNumber,
		Phase:         g.phase,
		Community:     g.community.Clone(),
		ButtonSeat:    g.buttonSeat,
		DealerSeat:    g.dealerSeat,
		DeadButton:    g.deadButton,
		CurrentPlayer: current,
		Round:         g.round,
		Pots:          g.Pots(),
		PotTotal:      g.PotTotal(),
		Players:       players,
		Actions:       g.ActionsForPlayer(viewerID),
		Results:       results,
		SmallBlind:    g.options.SmallBlind,
		BigBlind:      g.options.BigBlind,
		Ante:          g.options.Ante,
		Revision:      g.revision,
	}
}

// isRevealed returns true if the player's cards were shown down
func (g *Game) isRevealed(p *Player) bool {
	return g.wentToShowdown && p.inHand && !p.folded
}
