package texasholdem

import (
	"github.com/sirupsen/logrus"

	"tourneypoker-server/pkg/chips"
	"tourneypoker-server/pkg/playable/poker/action"
)

// ExecuteAction performs an action for the player whose turn it is
// For bet and raise, amount is the total the player's bet is raised to this street. Other actions ignore it.
func (g *Game) ExecuteAction(playerID string, a action.Action, amount chips.Chips) error {
	p, ok := g.players[playerID]
	if !ok {
		return &PlayerNotFoundError{PlayerID: playerID}
	}

	if !g.phase.IsBettingRound() {
		return g.newInvalidActionError(p, CodeNoHandInProgress, "there is no betting round in progress")
	}

	if !p.inHand {
		return g.newInvalidActionError(p, CodeNotInHand, "you are not in this hand")
	}

	if p.folded {
		return g.newInvalidActionError(p, CodePlayerFolded, "you have already folded")
	}

	if p.allIn {
		return g.newInvalidActionError(p, CodePlayerAllIn, "you are all-in")
	}

	if g.currentSeat != p.seat {
		return g.newInvalidActionError(p, CodeNotYourTurn, "it is not your turn")
	}

	toCall := g.round.AmountToCall(p.bet)
	previousMinRaise := g.round.MinRaise
	previousBet := g.round.CurrentBet
	var moved chips.Chips
	var aggressive bool

	switch a {
	case action.Fold:
		p.folded = true
		g.round = g.round.WithAction()

	case action.Check:
		if !toCall.IsZero() {
			return g.newInvalidActionError(p, CodeCannotCheck, "you cannot check, %d to call", toCall)
		}

		g.round = g.round.WithAction()

	case action.Call:
		if toCall.IsZero() {
			return g.newInvalidActionError(p, CodeNothingToCall, "there is nothing to call")
		}

		moved = p.commit(toCall)
		g.round = g.round.WithAction()

	case action.Bet:
		if !g.round.CurrentBet.IsZero() {
			return g.newInvalidActionError(p, CodeBetExists, "there is already a bet, you must raise")
		}

		if err := g.checkAggression(p, amount); err != nil {
			return err
		}

		if amount < g.options.BigBlind && amount != p.stack {
			return g.newInvalidActionError(p, CodeBetTooSmall, "your bet must be at least %d", g.options.BigBlind)
		}

		moved = p.commit(amount)
		g.round = g.round.WithBet(amount, chips.Max(amount, g.options.BigBlind), p.id)
		aggressive = true

	case action.Raise:
		if g.round.CurrentBet.IsZero() {
			return g.newInvalidActionError(p, CodeNoBetToRaise, "there is no bet to raise")
		}

		if err := g.checkAggression(p, amount); err != nil {
			return err
		}

		allIn := amount == p.bet.Add(p.stack)
		if amount <= g.round.CurrentBet || (!g.round.IsValidRaise(amount) && !allIn) {
			return g.newInvalidActionError(p, CodeRaiseTooSmall, "you must raise to at least %d", g.round.MinimumRaiseTotal())
		}

		moved = p.commit(amount.SubtractOrZero(p.bet))
		g.applyRaise(p, amount)
		aggressive = true

	case action.AllIn:
		total := p.bet.Add(p.stack)
		if total > g.round.CurrentBet && g.otherActionableCount(p) == 0 {
			return g.newInvalidActionError(p, CodeNoOpponent, "no other player can act, you can only call or fold")
		}

		if total > g.round.CurrentBet && p.raiseClosed {
			return g.newInvalidActionError(p, CodeActionNotReopened, "the last raise was not a full raise, you can only call or fold")
		}

		moved = p.commit(p.stack)
		switch {
		case total <= g.round.CurrentBet:
			g.round = g.round.WithAction()
		case g.round.CurrentBet.IsZero() && total >= g.options.BigBlind:
			g.round = g.round.WithBet(total, total, p.id)
			aggressive = true
		default:
			g.applyRaise(p, total)
			aggressive = true
		}

	default:
		return g.newInvalidActionError(p, CodeUnknownAction, "unknown action: %s", a)
	}

	p.hasActed = true
	p.lastAction = a
	g.totalActions++
	if aggressive {
		g.lastAggressor = p.id
		if previousBet.IsZero() || g.round.CurrentBet.SubtractOrZero(previousBet) >= previousMinRaise {
			g.reopenAction(p)
		} else {
			g.requireCall(p)
		}
	}

	g.publishAction(p, a, moved)
	g.revision++

	g.advance(p.seat)
	return nil
}

// checkAggression validates a bet or raise to amount
func (g *Game) checkAggression(p *Player, amount chips.Chips) error {
	if amount > p.bet.Add(p.stack) {
		return g.newInvalidActionError(p, CodeInsufficientChips, "you only have %d", p.bet.Add(p.stack))
	}

	if g.otherActionableCount(p) == 0 {
		return g.newInvalidActionError(p, CodeNoOpponent, "no other player can act, you can only call or fold")
	}

	if p.raiseClosed {
		return g.newInvalidActionError(p, CodeActionNotReopened, "the last raise was not a full raise, you can only call or fold")
	}

	return nil
}

// applyRaise raises the current bet to total
// A raise smaller than the minimum (only possible all-in) does not change the minimum raise
func (g *Game) applyRaise(p *Player, total chips.Chips) {
	increment := total.SubtractOrZero(g.round.CurrentBet)
	if increment < g.round.MinRaise {
		increment = g.round.MinRaise
	}

	g.round = g.round.WithRaise(total, increment, p.id)
}

// reopenAction requires every other player who can act to act again, with raising allowed
func (g *Game) reopenAction(aggressor *Player) {
	for _, p := range g.players {
		if p != aggressor && p.canAct() {
			p.hasActed = false
			p.raiseClosed = false
		}
	}
}

// requireCall handles an all-in raise smaller than a full raise
// Players who already acted must act again but can only call or fold
func (g *Game) requireCall(aggressor *Player) {
	for _, p := range g.players {
		if p == aggressor || !p.canAct() || p.bet >= g.round.CurrentBet {
			continue
		}

		if p.hasActed {
			p.raiseClosed = true
		}

		p.hasActed = false
	}
}

// advance moves the action after a player acted from seat
func (g *Game) advance(seat int) {
	if g.contestingCount() == 1 {
		g.finishUncontested()
		return
	}

	if g.isRoundSettled() {
		g.endRound()
		return
	}

	g.currentSeat = g.nextActionableSeat(seat)
}

// isRoundSettled returns true when nobody has a decision left on this street
// Every player who can act must have acted since the last bet or raise and matched it.
// A lone player who can act only needs to act when facing a bet.
func (g *Game) isRoundSettled() bool {
	actionable := make([]*Player, 0, len(g.players))
	highest := chips.Zero
	for _, p := range g.players {
		if !p.isContesting() {
			continue
		}

		highest = chips.Max(highest, p.bet)
		if p.canAct() {
			actionable = append(actionable, p)
		}
	}

	switch len(actionable) {
	case 0:
		return true
	case 1:
		p := actionable[0]
		if p.hasActed {
			return p.bet >= g.round.CurrentBet || p.bet >= highest
		}

		return p.bet >= highest
	}

	for _, p := range actionable {
		if !p.hasActed || p.bet < g.round.CurrentBet {
			return false
		}
	}

	return true
}

// nextActionableSeat returns the first seat after seat with a player who can act, or -1
func (g *Game) nextActionableSeat(seat int) int {
	n := len(g.seats)
	for i := 1; i <= n; i++ {
		index := (seat + i) % n
		if p := g.seats[index]; p != nil && p.canAct() {
			return index
		}
	}

	return -1
}

// contestingCount returns how many players have not folded
func (g *Game) contestingCount() int {
	n := 0
	for _, p := range g.players {
		if p.isContesting() {
			n++
		}
	}

	return n
}

// actionableCount returns how many players can still make decisions
func (g *Game) actionableCount() int {
	n := 0
	for _, p := range g.players {
		if p.canAct() {
			n++
		}
	}

	return n
}

func (g *Game) otherActionableCount(p *Player) int {
	n := g.actionableCount()
	if p.canAct() {
		n--
	}

	return n
}

// ActionsForPlayer returns the actions the player can take right now
// Players who are not on the clock get nothing
func (g *Game) ActionsForPlayer(id string) []action.Action {
	p, ok := g.players[id]
	if !ok || !g.phase.IsBettingRound() || g.currentSeat != p.seat || !p.canAct() {
		return nil
	}

	toCall := g.round.AmountToCall(p.bet)
	canAggress := g.otherActionableCount(p) > 0 && p.stack > toCall && !p.raiseClosed

	actions := []action.Action{action.Fold}
	if toCall.IsZero() {
		actions = append(actions, action.Check)
	} else {
		actions = append(actions, action.Call)
	}

	if canAggress {
		if g.round.CurrentBet.IsZero() {
			actions = append(actions, action.Bet)
		} else {
			actions = append(actions, action.Raise)
		}
	}

	if canAggress || (!toCall.IsZero() && p.stack <= toCall) {
		actions = append(actions, action.AllIn)
	}

	g.logger.WithFields(logrus.Fields{
		"player":  id,
		"actions": len(actions),
	}).Trace("listing actions")

	return actions
}
