package tournament

import (
	"sort"

	"tourneypoker-server/pkg/chips"
	"tourneypoker-server/pkg/playable/poker/action"
	"tourneypoker-server/pkg/playable/poker/potmanager"
	"tourneypoker-server/pkg/playable/poker/texasholdem"
)

// StartHand deals the next hand at a table
func (t *Tournament) StartHand(tableID string) error {
	if !t.status.IsPlayable() {
		return t.newStateError("deal", "the tournament is not in play")
	}

	table, ok := t.Table(tableID)
	if !ok || !table.Active {
		return t.newStateError("deal", "table %s is not active", tableID)
	}

	if table.IsHandInProgress() {
		return t.newStateError("deal", "a hand is in progress at table %d", table.Number)
	}

	if table.PlayerCount() < texasholdem.MinPlayers {
		return t.newStateError("deal", "table %d needs at least %d players", table.Number, texasholdem.MinPlayers)
	}

	if err := t.syncGame(table); err != nil {
		return err
	}

	for _, p := range table.game.Players() {
		t.handStartStacks[p.ID()] = p.Stack()
	}

	if err := table.game.StartNewHand(); err != nil {
		return err
	}

	t.revision++
	if !table.IsHandInProgress() {
		t.afterHand(table)
	}

	return nil
}

// ExecuteAction applies a player's action at a table
// Hands already dealt can be played out while the tournament is paused
func (t *Tournament) ExecuteAction(tableID, playerID string, a action.Action, amount chips.Chips) error {
	if !t.status.IsPlayable() && t.status != StatusPaused {
		return t.newStateError("act", "the tournament is not in play")
	}

	table, ok := t.Table(tableID)
	if !ok {
		return t.newStateError("act", "table %s does not exist", tableID)
	}

	if !table.IsHandInProgress() {
		return t.newStateError("act", "no hand in progress at table %d", table.Number)
	}

	if err := table.game.ExecuteAction(playerID, a, amount); err != nil {
		return err
	}

	t.revision++
	if !table.IsHandInProgress() {
		t.afterHand(table)
	}

	return nil
}

// StateForPlayer returns the table as the player sees it
func (t *Tournament) StateForPlayer(tableID, playerID string) (*texasholdem.GameState, error) {
	table, ok := t.Table(tableID)
	if !ok {
		return nil, t.newStateError("view", "table %s does not exist", tableID)
	}

	if table.game == nil {
		return nil, t.newStateError("view", "no hand has been dealt at table %d", table.Number)
	}

	return table.game.StateForPlayer(playerID), nil
}

// syncGame brings the table's hand engine in line with the seating chart and the current blinds
func (t *Tournament) syncGame(table *Table) error {
	blinds := t.CurrentBlinds()
	if table.game == nil {
		seats := make([]texasholdem.Seat, 0, len(table.Seats))
		for i, id := range table.Seats {
			if id != "" {
				seats = append(seats, texasholdem.Seat{PlayerID: id, Seat: i, Stack: t.registrations[id].Chips})
			}
		}

		game, err := texasholdem.NewGame(t.logger.WithField("table", table.Number), t.publisher, seats, texasholdem.Options{
			SmallBlind: blinds.SmallBlind,
			BigBlind:   blinds.BigBlind,
			Ante:       blinds.Ante,
			MaxSeats:   len(table.Seats),
			ID:         table.ID,
			Generator:  t.generator,
			Clock:      t.clock,
		})

		if err != nil {
			return err
		}

		table.game = game
		return nil
	}

	game := table.game
	for _, p := range game.Players() {
		if table.SeatOf(p.ID()) != p.Seat() {
			if err := game.RemovePlayer(p.ID()); err != nil {
				return err
			}
		}
	}

	for i, id := range table.Seats {
		if id == "" {
			continue
		}

		reg := t.registrations[id]
		p, err := game.Player(id)
		if err != nil {
			if err := game.AddPlayer(texasholdem.Seat{PlayerID: id, Seat: i, Stack: reg.Chips}); err != nil {
				return err
			}

			continue
		}

		if reg.Chips.IsGreaterThan(p.Stack()) {
			if err := game.AddChips(id, reg.Chips.SubtractOrZero(p.Stack())); err != nil {
				return err
			}
		}
	}

	return game.SetBlinds(blinds.SmallBlind, blinds.BigBlind, blinds.Ante)
}

// afterHand copies stacks into the registrations and knocks out busted players
// Players who bust in the same hand finish in order of their stacks at the start of it
func (t *Tournament) afterHand(table *Table) {
	game := table.game
	busted := make([]*Registration, 0)
	for _, p := range game.Players() {
		reg, ok := t.registrations[p.ID()]
		if !ok || !reg.IsActive() {
			continue
		}

		reg.Chips = p.Stack()
		if p.Stack().IsZero() {
			busted = append(busted, reg)
		}
	}

	sort.SliceStable(busted, func(i, j int) bool {
		return t.handStartStacks[busted[i].PlayerID] < t.handStartStacks[busted[j].PlayerID]
	})

	for _, p := range game.Players() {
		delete(t.handStartStacks, p.ID())
	}

	results := game.Results()
	for _, reg := range busted {
		t.eliminate(reg, knockedOutBy(results, reg.PlayerID))
	}

	if t.needsConsolidation && !t.status.IsTerminal() {
		t.updateStage()
	}
}

// knockedOutBy returns the first winner of the last pot the player was in
func knockedOutBy(results []potmanager.Result, playerID string) string {
	for i := len(results) - 1; i >= 0; i-- {
		r := results[i]
		if r.Pot.IsEligible(playerID) && len(r.Winners) > 0 && r.Winners[0] != playerID {
			return r.Winners[0]
		}
	}

	return ""
}
