package texasholdem

import (
	"github.com/sirupsen/logrus"

	"tourneypoker-server/pkg/chips"
	"tourneypoker-server/pkg/deck"
	"tourneypoker-server/pkg/playable/poker/action"
)

// StartNewHand deals the next hand
// The button moves, forced bets are posted, hole cards are dealt and pre-flop betting begins
func (g *Game) StartNewHand() error {
	if g.phase.IsHandInProgress() {
		return ErrHandInProgress
	}

	if g.liveCount() < MinPlayers {
		return ErrNotEnoughPlayers
	}

	g.resetForNewHand()
	g.moveButton()
	g.markDealtSeats()

	live := g.liveFrom(g.dealerSeat)
	for _, p := range live {
		p.inHand = true
	}

	if len(live) == 2 {
		// heads-up: the dealer posts the small blind
		g.smallBlindSeat = g.dealerSeat
		g.bigBlindSeat = g.nextLiveSeat(g.dealerSeat, g.options.BigBlind)
	} else {
		g.smallBlindSeat = g.nextLiveSeat(g.dealerSeat, g.options.SmallBlind)
		g.bigBlindSeat = g.nextLiveSeat(g.smallBlindSeat, g.options.BigBlind)
	}

	g.publisher.Publish(GameStarted{
		GameID:           g.id,
		HandNumber:       g.handNumber,
		ButtonSeat:       g.buttonSeat,
		DealerSeat:       g.dealerSeat,
		DeadButton:       g.deadButton,
		SmallBlindPlayer: g.seats[g.smallBlindSeat].id,
		BigBlindPlayer:   g.seats[g.bigBlindSeat].id,
	})

	g.logger.WithFields(logrus.Fields{
		"hand":        g.handNumber,
		"button":      g.buttonSeat,
		"dealer":      g.dealerSeat,
		"dead_button": g.deadButton,
	}).Info("starting hand")

	g.phase = PhasePreFlop
	g.round = NewPreFlopRound(g.options.BigBlind)
	g.postForcedBets(live)

	// two cards each, one at a time, starting left of the dealer
	for i := 0; i < 2; i++ {
		for _, p := range live {
			p.holeCards.AddCard(g.deck.Draw())
		}
	}

	// heads-up this is the dealer, who posted the small blind
	g.currentSeat = g.nextActionableSeat(g.bigBlindSeat)
	g.revision++

	if g.isRoundSettled() {
		g.endRound()
	}

	return nil
}

// resetForNewHand clears everything scoped to a single hand and bumps the hand number
func (g *Game) resetForNewHand() {
	for _, p := range g.players {
		p.resetForNewHand()
	}

	g.handNumber++
	g.phase = PhaseWaiting
	g.community = make(deck.Hand, 0, 5)
	g.round = BettingRound{}
	g.currentSeat = -1
	g.lastAggressor = ""
	g.totalActions = 0
	g.wentToShowdown = false
	g.pots = nil
	g.results = nil
	g.deck = deck.New(g.generator)
	g.handStartedAt = g.clock.Now()
}

// moveButton advances the button using the dead button rule
// The button moves one seat clockwise from last hand's dealer. Seats that were empty last hand and still are
// are passed over. If the seat it lands on has no live player the button is dead and the next live seat
// clockwise takes dealer duty.
func (g *Game) moveButton() {
	if g.buttonSeat < 0 {
		g.buttonSeat = g.nextLiveSeatAfter(len(g.seats) - 1)
		g.dealerSeat = g.buttonSeat
		g.deadButton = false
		return
	}

	due := g.nextButtonSeat(g.dealerSeat)
	g.buttonSeat = due
	if p := g.seats[due]; p != nil && p.isLive() {
		g.dealerSeat = due
		g.deadButton = false
		return
	}

	g.deadButton = true
	g.dealerSeat = g.nextLiveSeatAfter(due)
}

// nextButtonSeat returns the first seat clockwise after seat that has a player or had one last hand
func (g *Game) nextButtonSeat(seat int) int {
	n := len(g.seats)
	for i := 1; i <= n; i++ {
		index := (seat + i) % n
		if g.seats[index] != nil || (index < len(g.dealtSeats) && g.dealtSeats[index]) {
			return index
		}
	}

	return (seat + 1) % n
}

func (g *Game) markDealtSeats() {
	g.dealtSeats = make([]bool, len(g.seats))
	for i, p := range g.seats {
		g.dealtSeats[i] = p != nil
	}
}

// postForcedBets posts antes, collects missed blinds, and posts both blinds
func (g *Game) postForcedBets(live []*Player) {
	if !g.options.Ante.IsZero() {
		for _, p := range live {
			amount := p.commitDead(g.options.Ante)
			g.publishAction(p, action.PostAnte, amount)
		}
	}

	for _, p := range live {
		owed, ok := g.missedBlinds[p.seat]
		if !ok {
			continue
		}

		delete(g.missedBlinds, p.seat)
		if amount := p.commitDead(owed); !amount.IsZero() {
			g.publishAction(p, action.PostDeadBlind, amount)
		}
	}

	sb := g.seats[g.smallBlindSeat]
	g.publishAction(sb, action.PostSmallBlind, sb.commit(g.options.SmallBlind))

	bb := g.seats[g.bigBlindSeat]
	g.publishAction(bb, action.PostBigBlind, bb.commit(g.options.BigBlind))
}

// liveCount returns how many players would be dealt in
func (g *Game) liveCount() int {
	n := 0
	for _, p := range g.players {
		if p.isLive() {
			n++
		}
	}

	return n
}

// liveFrom returns the live players clockwise starting left of seat
func (g *Game) liveFrom(seat int) []*Player {
	players := make([]*Player, 0, len(g.players))
	n := len(g.seats)
	for i := 1; i <= n; i++ {
		if p := g.seats[(seat+i)%n]; p != nil && p.isLive() {
			players = append(players, p)
		}
	}

	return players
}

// nextLiveSeatAfter returns the first seat clockwise after seat with a live player
func (g *Game) nextLiveSeatAfter(seat int) int {
	n := len(g.seats)
	for i := 1; i <= n; i++ {
		index := (seat + i) % n
		if p := g.seats[index]; p != nil && p.isLive() {
			return index
		}
	}

	return seat
}

// nextLiveSeat is like nextLiveSeatAfter, but sitting-out players passed over owe the blind
func (g *Game) nextLiveSeat(seat int, blind chips.Chips) int {
	n := len(g.seats)
	limit := g.options.SmallBlind.Add(g.options.BigBlind)
	for i := 1; i <= n; i++ {
		index := (seat + i) % n
		p := g.seats[index]
		if p == nil {
			continue
		}

		if p.isLive() {
			return index
		}

		if p.sittingOut && !p.stack.IsZero() {
			g.missedBlinds[index] = chips.Min(g.missedBlinds[index].Add(blind), limit)
		}
	}

	return seat
}

func (g *Game) publishAction(p *Player, a action.Action, amount chips.Chips) {
	g.logger.WithFields(logrus.Fields{
		"hand":   g.handNumber,
		"player": p.id,
	}).Debug(a.LogMessage(amount.Int64()))

	g.publisher.Publish(PlayerActed{
		GameID:     g.id,
		HandNumber: g.handNumber,
		PlayerID:   p.id,
		Action:     a,
		Amount:     amount,
		BetTotal:   p.bet,
		Phase:      g.phase,
		PotAfter:   g.PotTotal(),
		ChipsAfter: p.stack,
		IsAllIn:    p.allIn,
	})
}
