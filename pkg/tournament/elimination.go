package tournament

import (
	"tourneypoker-server/pkg/chips"
)

// EliminatePlayer knocks a player out of the tournament
// eliminatedBy is credited with the bounty in bounty tournaments and may be empty
func (t *Tournament) EliminatePlayer(playerID, eliminatedBy string) error {
	if !t.status.IsPlayable() && t.status != StatusPaused {
		return t.newStateError("eliminate", "the tournament is not in play")
	}

	reg, ok := t.registrations[playerID]
	if !ok {
		return t.newStateError("eliminate", "player %s is not registered", playerID)
	}

	if !reg.IsActive() {
		return t.newStateError("eliminate", "player %s is already %s", playerID, reg.Status)
	}

	if table, ok := t.Table(reg.TableID); ok && table.isInLiveHand(playerID) {
		return t.newStateError("eliminate", "player %s is in a hand", playerID)
	}

	t.eliminate(reg, eliminatedBy)
	t.revision++
	return nil
}

// eliminate finishes the player in the worst open position
func (t *Tournament) eliminate(reg *Registration, eliminatedBy string) {
	position := t.ActivePlayerCount()

	reg.Status = RegistrationEliminated
	reg.FinishPosition = position
	reg.Prize = t.CalculatePrizeForPosition(position)
	reg.Chips = chips.Zero
	reg.EliminatedBy = eliminatedBy

	if t.config.Type == TypeBounty && eliminatedBy != "" && eliminatedBy != reg.PlayerID {
		if hunter, ok := t.registrations[eliminatedBy]; ok {
			hunter.Bounties++
			hunter.BountyWinnings = hunter.BountyWinnings.Add(t.config.BountyAmount)
		}
	}

	if table, ok := t.Table(reg.TableID); ok {
		table.unseat(reg.PlayerID)
		if table.game != nil && !table.IsHandInProgress() {
			_ = table.game.RemovePlayer(reg.PlayerID)
		}
	}

	reg.TableID = ""

	t.publisher.Publish(TournamentPlayerEliminated{
		TournamentID:   t.id,
		PlayerID:       reg.PlayerID,
		EliminatedBy:   eliminatedBy,
		FinishPosition: position,
		Prize:          reg.Prize,
		Remaining:      position - 1,
	})

	t.logger.WithField("player", reg.PlayerID).Infof("eliminated in position %d", position)
	t.updateStage()
}

// updateStage completes the tournament, consolidates tables, or moves to the final table or heads-up
func (t *Tournament) updateStage() {
	active := t.ActivePlayerCount()
	if active <= 1 && t.status != StatusLateRegistration {
		t.complete()
		return
	}

	t.closeEmptyTables()

	current := t.status
	if current == StatusPaused {
		current = t.pausedFrom
	}

	switch current {
	case StatusRunning, StatusFinalTable, StatusHeadsUp:
	default:
		return
	}

	if len(t.Tables()) > 1 && active <= t.config.TableSize {
		t.consolidate()
	}

	next := current
	if active == 2 {
		next = StatusHeadsUp
	} else if len(t.Tables()) == 1 {
		next = StatusFinalTable
	}

	if t.status == StatusPaused {
		t.pausedFrom = next
	} else {
		t.setStatus(next)
	}
}

// consolidate moves everyone to one final table once no hand is in progress
func (t *Tournament) consolidate() []Move {
	tables := t.Tables()
	for _, table := range tables {
		if table.IsHandInProgress() {
			t.needsConsolidation = true
			return nil
		}
	}

	final := tables[0]
	for _, table := range tables[1:] {
		if table.PlayerCount() > final.PlayerCount() {
			final = table
		}
	}

	moves := make([]Move, 0)
	closed := make([]string, 0)
	for _, table := range tables {
		if table == final {
			continue
		}

		for _, playerID := range table.PlayerIDs() {
			seat, err := final.seat(playerID)
			if err != nil {
				// consolidation only happens when everyone fits
				panic(err)
			}

			table.unseat(playerID)
			t.registrations[playerID].TableID = final.ID
			if table.game != nil {
				_ = table.game.RemovePlayer(playerID)
			}

			moves = append(moves, Move{
				PlayerID:  playerID,
				FromTable: table.ID,
				ToTable:   final.ID,
				ToSeat:    seat,
			})
		}

		table.Active = false
		closed = append(closed, table.ID)
	}

	final.Final = true
	t.needsConsolidation = false

	t.publisher.Publish(TablesRebalanced{
		TournamentID: t.id,
		Moves:        moves,
		ClosedTables: closed,
		FinalTable:   final.ID,
	})

	t.logger.WithField("table", final.Number).Infof("consolidated %d players to the final table", final.PlayerCount())
	return moves
}

// closeEmptyTables deactivates tables nobody sits at
func (t *Tournament) closeEmptyTables() []string {
	closed := make([]string, 0)
	for _, table := range t.tables {
		if table.Active && table.PlayerCount() == 0 {
			table.Active = false
			closed = append(closed, table.ID)
		}
	}

	return closed
}

// complete crowns the last player standing
func (t *Tournament) complete() {
	var winner *Registration
	for _, id := range t.order {
		if reg := t.registrations[id]; reg.IsActive() {
			winner = reg
			break
		}
	}

	if winner != nil {
		winner.Status = RegistrationFinished
		winner.FinishPosition = 1
		winner.Prize = t.CalculatePrizeForPosition(1)
	}

	for _, table := range t.tables {
		table.Active = false
	}

	t.completedAt = t.clock.Now()
	t.pausedFrom = ""
	t.setStatus(StatusCompleted)

	completed := TournamentCompleted{
		TournamentID: t.id,
		PrizePool:    t.PrizePool(),
		Duration:     t.completedAt.Sub(t.startedAt),
	}

	if winner != nil {
		completed.WinnerID = winner.PlayerID
		completed.Prize = winner.Prize
		t.logger.WithField("player", winner.PlayerID).Info("won the tournament")
	}

	t.publisher.Publish(completed)
}
