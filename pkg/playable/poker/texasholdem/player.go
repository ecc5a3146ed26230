package texasholdem

import (
	"tourneypoker-server/pkg/chips"
	"tourneypoker-server/pkg/deck"
	"tourneypoker-server/pkg/playable/poker/action"
)

// Player is a player seated at the table
// The stack carries over between hands, everything else is reset when a hand starts
type Player struct {
	id         string
	seat       int
	stack      chips.Chips
	sittingOut bool

	// hand-scoped
	inHand    bool
	holeCards deck.Hand
	folded    bool
	allIn     bool
	hasActed  bool
	// raiseClosed is set when the player already acted and then faced a short all-in raise
	raiseClosed bool
	bet         chips.Chips
	totalBet    chips.Chips
	lastAction  action.Action
	winnings    chips.Chips
}

func newPlayer(id string, seat int, stack chips.Chips) *Player {
	return &Player{
		id:        id,
		seat:      seat,
		stack:     stack,
		holeCards: make(deck.Hand, 0, 2),
	}
}

// ID returns the player's id
func (p *Player) ID() string {
	return p.id
}

// Seat returns the seat number
func (p *Player) Seat() int {
	return p.seat
}

// Stack returns the chips the player has behind
func (p *Player) Stack() chips.Chips {
	return p.stack
}

// HoleCards returns a copy of the player's two cards
func (p *Player) HoleCards() deck.Hand {
	return p.holeCards.Clone()
}

// IsSittingOut returns true if the player will not be dealt in
func (p *Player) IsSittingOut() bool {
	return p.sittingOut
}

// IsInHand returns true if the player was dealt into the current hand
func (p *Player) IsInHand() bool {
	return p.inHand
}

// IsFolded returns true if the player folded this hand
func (p *Player) IsFolded() bool {
	return p.folded
}

// IsAllIn returns true if the player has no chips behind and is still in the hand
func (p *Player) IsAllIn() bool {
	return p.allIn
}

// HasActed returns true if the player acted since the betting was last opened or raised
func (p *Player) HasActed() bool {
	return p.hasActed
}

// Bet returns what the player has committed on the current street
func (p *Player) Bet() chips.Chips {
	return p.bet
}

// TotalBet returns what the player has committed this hand, including antes and dead blinds
func (p *Player) TotalBet() chips.Chips {
	return p.totalBet
}

// LastAction returns the player's most recent action this hand
func (p *Player) LastAction() action.Action {
	return p.lastAction
}

// Winnings returns what the player won in the last settled hand
func (p *Player) Winnings() chips.Chips {
	return p.winnings
}

// isLive returns true if the player will be dealt into the next hand
func (p *Player) isLive() bool {
	return !p.sittingOut && !p.stack.IsZero()
}

// canAct returns true if the player can still make decisions this hand
func (p *Player) canAct() bool {
	return p.inHand && !p.folded && !p.allIn
}

// isContesting returns true if the player can still win a pot
func (p *Player) isContesting() bool {
	return p.inHand && !p.folded
}

func (p *Player) resetForNewHand() {
	p.inHand = false
	p.holeCards = make(deck.Hand, 0, 2)
	p.folded = false
	p.allIn = false
	p.hasActed = false
	p.raiseClosed = false
	p.bet = chips.Zero
	p.totalBet = chips.Zero
	p.lastAction = ""
	p.winnings = chips.Zero
}

// commit moves up to amount from the stack into the current street's bet
// Returns the chips actually moved
func (p *Player) commit(amount chips.Chips) chips.Chips {
	amount = chips.Min(amount, p.stack)
	p.stack = p.stack.SubtractOrZero(amount)
	p.bet = p.bet.Add(amount)
	p.totalBet = p.totalBet.Add(amount)
	if p.stack.IsZero() {
		p.allIn = true
	}

	return amount
}

// commitDead moves up to amount from the stack into the pot without counting toward the street's bet
func (p *Player) commitDead(amount chips.Chips) chips.Chips {
	amount = chips.Min(amount, p.stack)
	p.stack = p.stack.SubtractOrZero(amount)
	p.totalBet = p.totalBet.Add(amount)
	if p.stack.IsZero() {
		p.allIn = true
	}

	return amount
}
