package texasholdem

import (
	"github.com/sirupsen/logrus"

	"tourneypoker-server/pkg/chips"
	"tourneypoker-server/pkg/deck"
	"tourneypoker-server/pkg/playable/poker/handanalyzer"
	"tourneypoker-server/pkg/playable/poker/potmanager"
)

// endRound closes the current street and deals the next one
// When fewer than two players can act, the remaining board is dealt straight through to showdown
func (g *Game) endRound() {
	for {
		for _, p := range g.players {
			p.bet = chips.Zero
			p.hasActed = false
			p.raiseClosed = false
		}

		if g.phase == PhaseRiver {
			g.showdown()
			return
		}

		g.dealStreet(g.phase.next())

		if g.actionableCount() >= 2 {
			g.currentSeat = g.nextActionableSeat(g.dealerSeat)
			return
		}
	}
}

// dealStreet burns a card and turns the community cards for the phase
func (g *Game) dealStreet(phase Phase) {
	g.deck.Burn()

	newCards := make(deck.Hand, 0, 3)
	for i := 0; i < phase.cardsToDeal(); i++ {
		card := g.deck.Draw()
		newCards = append(newCards, card)
		g.community.AddCard(card)
	}

	previous := g.phase
	g.phase = phase
	g.round = StartPostFlop(phase, g.options.BigBlind)
	g.currentSeat = -1

	g.logger.WithFields(logrus.Fields{
		"hand":      g.handNumber,
		"phase":     phase.String(),
		"community": g.community.String(),
	}).Debug("dealt street")

	g.publisher.Publish(PhaseChanged{
		GameID:            g.id,
		HandNumber:        g.handNumber,
		PreviousPhase:     previous,
		NewPhase:          phase,
		NewCards:          newCards,
		Community:         g.community.Clone(),
		PotSize:           g.PotTotal(),
		ActivePlayerCount: g.contestingCount(),
	})
}

// showdown ranks every remaining hand and awards the pots
func (g *Game) showdown() {
	previous := g.phase
	g.phase = PhaseShowdown
	g.currentSeat = -1
	g.wentToShowdown = true

	g.publisher.Publish(PhaseChanged{
		GameID:            g.id,
		HandNumber:        g.handNumber,
		PreviousPhase:     previous,
		NewPhase:          PhaseShowdown,
		NewCards:          deck.Hand{},
		Community:         g.community.Clone(),
		PotSize:           g.PotTotal(),
		ActivePlayerCount: g.contestingCount(),
	})

	rankings := make(map[string]handanalyzer.Ranking)
	for _, p := range g.players {
		if !p.isContesting() {
			continue
		}

		cards := append(p.holeCards.Clone(), g.community...)
		r, err := handanalyzer.Evaluate(cards)
		if err != nil {
			// seven unique cards from one deck always evaluate
			panic(err)
		}

		rankings[p.id] = r
	}

	g.settle(rankings)
}

// finishUncontested awards everything to the last player standing without turning more cards
func (g *Game) finishUncontested() {
	g.currentSeat = -1
	g.settle(nil)
}

// refund gives every player back what they put in this hand
func (g *Game) refund() {
	for _, p := range g.handPlayersFromButton() {
		p.stack = p.stack.Add(p.totalBet)
	}
}

// settle allocates and awards the pots, then finishes the hand
func (g *Game) settle(rankings map[string]handanalyzer.Ranking) {
	potTotal := g.PotTotal()
	pots := potmanager.Allocate(g.contributions())

	seatOrder := make([]string, 0, len(g.players))
	for _, p := range g.handPlayersFromButton() {
		seatOrder = append(seatOrder, p.id)
	}

	results, err := potmanager.Award(pots, rankings, seatOrder)
	if err != nil {
		g.logger.WithError(err).WithField("hand", g.handNumber).Error("could not award pots, returning contributions")
		g.refund()
		pots = potmanager.Pots{}
		results = []potmanager.Result{}
	}

	for _, result := range results {
		description := ""
		if result.Ranking != nil && g.wentToShowdown {
			description = result.Ranking.String()
		}

		for _, id := range result.Winners {
			amount := result.Amounts[id]
			p := g.players[id]
			p.stack = p.stack.Add(amount)
			p.winnings = p.winnings.Add(amount)

			g.publisher.Publish(PotAwarded{
				GameID:          g.id,
				HandNumber:      g.handNumber,
				PotIndex:        result.PotIndex,
				WinnerID:        id,
				Amount:          amount,
				HandDescription: description,
				PotType:         result.Pot.Type,
				IsSplit:         result.SplitCount() > 1,
				SplitCount:      result.SplitCount(),
			})
		}
	}

	g.pots = pots
	g.results = results
	g.phase = PhaseFinished
	g.round = BettingRound{Phase: PhaseFinished}
	for _, p := range g.players {
		p.bet = chips.Zero
	}

	chipsAfter := make(map[string]chips.Chips, len(g.players))
	for id, p := range g.players {
		chipsAfter[id] = p.stack
	}

	g.logger.WithFields(logrus.Fields{
		"hand":     g.handNumber,
		"pot":      potTotal.Int64(),
		"showdown": g.wentToShowdown,
	}).Info("hand completed")

	g.publisher.Publish(HandCompleted{
		GameID:         g.id,
		HandNumber:     g.handNumber,
		PotResults:     results,
		ChipsAfter:     chipsAfter,
		Duration:       g.clock.Since(g.handStartedAt),
		TotalActions:   g.totalActions,
		WentToShowdown: g.wentToShowdown,
	})

	for _, p := range g.handPlayersFromButton() {
		if p.stack.IsZero() {
			g.publisher.Publish(PlayerEliminated{
				GameID:     g.id,
				HandNumber: g.handNumber,
				PlayerID:   p.id,
				Seat:       p.seat,
			})
		}
	}
}
