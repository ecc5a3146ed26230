package tournament

import (
	"time"

	"github.com/sirupsen/logrus"
)

// tickDelay is how often the level clock is checked
const tickDelay = time.Second

// LevelTimeRemaining returns how long until the blinds go up
func (t *Tournament) LevelTimeRemaining() time.Duration {
	if t.status == StatusPaused {
		return t.pausedRemaining
	}

	if !t.status.IsPlayable() {
		return 0
	}

	remaining := t.CurrentBlinds().Duration - t.clock.Since(t.levelStartedAt)
	if remaining < 0 {
		return 0
	}

	return remaining
}

// ShouldAdvanceLevel returns true once the current level has run its duration
func (t *Tournament) ShouldAdvanceLevel() bool {
	if !t.status.IsPlayable() || t.level >= t.config.Blinds.Len() {
		return false
	}

	duration := t.CurrentBlinds().Duration
	if duration <= 0 {
		return false
	}

	return t.clock.Since(t.levelStartedAt) >= duration
}

// AdvanceLevel moves to the next blind level
// New blinds take effect at each table's next hand
func (t *Tournament) AdvanceLevel() error {
	if !t.status.IsPlayable() {
		return t.newStateError("advance the level", "the tournament is not in play")
	}

	if t.level >= t.config.Blinds.Len() {
		return t.newStateError("advance the level", "already at the last level")
	}

	t.level++
	t.levelStartedAt = t.clock.Now()

	blinds := t.CurrentBlinds()
	t.publisher.Publish(LevelAdvanced{
		TournamentID: t.id,
		Level:        blinds.Level,
		SmallBlind:   blinds.SmallBlind,
		BigBlind:     blinds.BigBlind,
		Ante:         blinds.Ante,
		Duration:     blinds.Duration,
	})

	t.logger.WithFields(logrus.Fields{
		"smallBlind": blinds.SmallBlind,
		"bigBlind":   blinds.BigBlind,
		"ante":       blinds.Ante,
	}).Infof("level %d", blinds.Level)

	if t.status == StatusLateRegistration && t.level > t.config.LateRegistrationLevels {
		t.setStatus(StatusRunning)
		t.updateStage()
	}

	t.revision++
	return nil
}

// Delay implements playable.Tickable
func (t *Tournament) Delay() time.Duration {
	return tickDelay
}

// Tick implements playable.Tickable, it advances the level when its time is up
func (t *Tournament) Tick() (bool, error) {
	if !t.ShouldAdvanceLevel() {
		return false, nil
	}

	if err := t.AdvanceLevel(); err != nil {
		return false, err
	}

	return true, nil
}

// Pause stops the level clock
func (t *Tournament) Pause() error {
	if !t.status.IsPlayable() {
		return t.newStateError("pause", "the tournament is not in play")
	}

	t.pausedRemaining = t.LevelTimeRemaining()
	t.pausedFrom = t.status
	t.setStatus(StatusPaused)
	t.revision++
	return nil
}

// Resume restarts the level clock with the time that was left
func (t *Tournament) Resume() error {
	if t.status != StatusPaused {
		return t.newStateError("resume", "the tournament is not paused")
	}

	elapsed := t.CurrentBlinds().Duration - t.pausedRemaining
	t.levelStartedAt = t.clock.Now().Add(-elapsed)
	t.pausedRemaining = 0

	status := t.pausedFrom
	t.pausedFrom = ""
	t.setStatus(status)
	t.revision++
	return nil
}
