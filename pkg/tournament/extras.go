package tournament

import (
	"sort"

	"tourneypoker-server/pkg/chips"
)

// Rebuy buys a player more chips while the rebuy period is open
// A player can rebuy when their stack is no bigger than the starting stack
func (t *Tournament) Rebuy(playerID string) error {
	if !t.config.rebuysAllowed() {
		return t.newStateError("rebuy", "rebuys are not offered")
	}

	if !t.status.IsPlayable() {
		return t.newStateError("rebuy", "the tournament is not in play")
	}

	if t.level > t.config.RebuyUntilLevel {
		return t.newStateError("rebuy", "the rebuy period ended after level %d", t.config.RebuyUntilLevel)
	}

	reg, err := t.playingRegistration("rebuy", playerID)
	if err != nil {
		return err
	}

	if reg.Rebuys >= t.config.MaxRebuys {
		return t.newStateError("rebuy", "player %s has used all %d rebuys", playerID, t.config.MaxRebuys)
	}

	if reg.Chips.IsGreaterThan(t.config.StartingStack) {
		return t.newStateError("rebuy", "player %s has more than the starting stack", playerID)
	}

	reg.Chips = reg.Chips.Add(t.config.RebuyChips)
	reg.Rebuys++
	t.totalRebuys++
	t.revision++

	t.logger.WithField("player", playerID).Infof("rebuy %d of %d", reg.Rebuys, t.config.MaxRebuys)
	return nil
}

// AddOn sells each player one add-on while the add-on period is open
func (t *Tournament) AddOn(playerID string) error {
	if !t.config.addOnsAllowed() {
		return t.newStateError("add on", "add-ons are not offered")
	}

	if !t.status.IsPlayable() {
		return t.newStateError("add on", "the tournament is not in play")
	}

	if t.level > t.config.AddOnUntilLevel {
		return t.newStateError("add on", "the add-on period ended after level %d", t.config.AddOnUntilLevel)
	}

	reg, err := t.playingRegistration("add on", playerID)
	if err != nil {
		return err
	}

	if reg.AddOns > 0 {
		return t.newStateError("add on", "player %s already took the add-on", playerID)
	}

	reg.Chips = reg.Chips.Add(t.config.AddOnChips)
	reg.AddOns++
	t.totalAddOns++
	t.revision++

	t.logger.WithField("player", playerID).Info("took the add-on")
	return nil
}

// playingRegistration returns the registration of a seated player who is between hands
func (t *Tournament) playingRegistration(op, playerID string) (*Registration, error) {
	reg, ok := t.registrations[playerID]
	if !ok || reg.Status != RegistrationPlaying {
		return nil, t.newStateError(op, "player %s is not playing", playerID)
	}

	if table, ok := t.Table(reg.TableID); ok && table.isInLiveHand(playerID) {
		return nil, t.newStateError(op, "player %s is in a hand", playerID)
	}

	return reg, nil
}

// Cancel stops the tournament and withdraws everyone still in it
func (t *Tournament) Cancel() error {
	if t.status.IsTerminal() {
		return t.newStateError("cancel", "the tournament is over")
	}

	for _, reg := range t.registrations {
		if !reg.Status.IsTerminal() {
			reg.Status = RegistrationWithdrawn
			reg.TableID = ""
		}
	}

	for _, table := range t.tables {
		table.Active = false
	}

	t.completedAt = t.clock.Now()
	t.pausedFrom = ""
	t.setStatus(StatusCancelled)
	t.revision++
	return nil
}

// Standings ranks the field: players still in by chips, then the rest by finish position
// Withdrawn players are left out
func (t *Tournament) Standings() []Registration {
	standings := make([]Registration, 0, len(t.registrations))
	for _, id := range t.order {
		reg := t.registrations[id]
		if reg.Status != RegistrationWithdrawn {
			standings = append(standings, *reg)
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.IsActive() != b.IsActive() {
			return a.IsActive()
		}

		if a.IsActive() {
			return a.Chips.IsGreaterThan(b.Chips)
		}

		return a.FinishPosition < b.FinishPosition
	})

	return standings
}

// TotalChips returns every chip still in play
func (t *Tournament) TotalChips() chips.Chips {
	total := chips.Zero
	for _, reg := range t.registrations {
		if reg.IsActive() {
			total = total.Add(reg.Chips)
		}
	}

	return total
}
