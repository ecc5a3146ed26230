package tournament

// RebalanceTables evens out the tables one player at a time
// Tables with a hand in progress do not give up players, so the result can be
// uneven until those hands finish. Once everyone fits at one table the field
// is consolidated to the final table instead.
func (t *Tournament) RebalanceTables() ([]Move, error) {
	if !t.status.IsPlayable() && t.status != StatusPaused {
		return nil, t.newStateError("rebalance", "the tournament is not in play")
	}

	moves := t.rebalance()
	t.revision++
	return moves, nil
}

func (t *Tournament) rebalance() []Move {
	closed := t.closeEmptyTables()

	if len(t.Tables()) > 1 && t.ActivePlayerCount() <= t.config.TableSize {
		moves := t.consolidate()
		t.updateStage()
		return moves
	}

	moves := make([]Move, 0)
	for {
		tables := t.Tables()
		if len(tables) < 2 {
			break
		}

		receiver := tables[0]
		for _, table := range tables[1:] {
			if table.PlayerCount() < receiver.PlayerCount() {
				receiver = table
			}
		}

		var donor *Table
		for _, table := range tables {
			if table.IsHandInProgress() || table.PlayerCount() < receiver.PlayerCount()+2 {
				continue
			}

			if donor == nil || table.PlayerCount() > donor.PlayerCount() {
				donor = table
			}
		}

		if donor == nil {
			break
		}

		playerID := donor.lastMovablePlayer()
		seat, err := receiver.seat(playerID)
		if err != nil {
			// the receiver holds at least two fewer players than the donor
			panic(err)
		}

		donor.unseat(playerID)
		if donor.game != nil {
			_ = donor.game.RemovePlayer(playerID)
		}

		t.registrations[playerID].TableID = receiver.ID
		moves = append(moves, Move{
			PlayerID:  playerID,
			FromTable: donor.ID,
			ToTable:   receiver.ID,
			ToSeat:    seat,
		})
	}

	if len(moves) > 0 || len(closed) > 0 {
		t.publisher.Publish(TablesRebalanced{
			TournamentID: t.id,
			Moves:        moves,
			ClosedTables: closed,
		})

		t.logger.Infof("rebalanced %d players", len(moves))
	}

	return moves
}
