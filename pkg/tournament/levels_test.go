package tournament

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTournament_LevelClock(t *testing.T) {
	a := assert.New(t)

	tt := newTestTournament(t, testConfig())
	a.False(tt.ShouldAdvanceLevel())
	a.Equal(time.Duration(0), tt.LevelTimeRemaining())

	tt.register(t, 12)
	a.NoError(tt.Start())
	a.Equal(15*time.Minute, tt.LevelTimeRemaining())

	tt.advance(14 * time.Minute)
	a.False(tt.ShouldAdvanceLevel())
	advanced, err := tt.Tick()
	a.NoError(err)
	a.False(advanced)
	a.Equal(time.Minute, tt.LevelTimeRemaining())

	tt.advance(time.Minute)
	a.True(tt.ShouldAdvanceLevel())
	advanced, err = tt.Tick()
	a.NoError(err)
	a.True(advanced)
	a.Equal(2, tt.Level())
	a.Equal(15*time.Minute, tt.LevelTimeRemaining())

	levels := tt.eventsNamed("level-advanced")
	if a.Len(levels, 1) {
		e := levels[0].(LevelAdvanced)
		a.Equal(2, e.Level)
		a.EqualValues(15, e.SmallBlind)
		a.EqualValues(30, e.BigBlind)
	}

	advanced, err = tt.Tick()
	a.NoError(err)
	a.False(advanced)
}

func TestTournament_AdvanceLevelLimits(t *testing.T) {
	a := assert.New(t)

	cfg := testConfig()
	cfg.Blinds = MustBlindStructure(
		BlindLevel{Level: 1, SmallBlind: 10, BigBlind: 20, Duration: time.Minute},
		BlindLevel{Level: 2, SmallBlind: 20, BigBlind: 40, Duration: time.Minute},
	)

	tt := newTestTournament(t, cfg)
	a.EqualError(tt.AdvanceLevel(), "cannot advance the level while registering: the tournament is not in play")

	tt.register(t, 12)
	a.NoError(tt.Start())
	a.NoError(tt.AdvanceLevel())
	a.EqualError(tt.AdvanceLevel(), "cannot advance the level while running: already at the last level")

	// the last level never expires
	tt.advance(time.Hour)
	a.False(tt.ShouldAdvanceLevel())
	a.EqualValues(40, tt.CurrentBlinds().BigBlind)
}

func TestTournament_PauseResume(t *testing.T) {
	a := assert.New(t)

	tt := newTestTournament(t, testConfig())
	a.EqualError(tt.Pause(), "cannot pause while registering: the tournament is not in play")
	a.EqualError(tt.Resume(), "cannot resume while registering: the tournament is not paused")

	tt.register(t, 12)
	a.NoError(tt.Start())

	tt.advance(5 * time.Minute)
	a.NoError(tt.Pause())
	a.Equal(StatusPaused, tt.Status())
	a.Equal(10*time.Minute, tt.LevelTimeRemaining())

	tt.advance(time.Hour)
	a.Equal(10*time.Minute, tt.LevelTimeRemaining())
	a.False(tt.ShouldAdvanceLevel())
	advanced, err := tt.Tick()
	a.NoError(err)
	a.False(advanced)
	a.EqualError(tt.StartHand(tt.Tables()[0].ID), "cannot deal while paused: the tournament is not in play")

	a.NoError(tt.Resume())
	a.Equal(StatusRunning, tt.Status())
	a.Equal(10*time.Minute, tt.LevelTimeRemaining())

	tt.advance(10 * time.Minute)
	a.True(tt.ShouldAdvanceLevel())

	changes := tt.eventsNamed("tournament-status-changed")
	a.Equal(TournamentStatusChanged{TournamentID: tt.ID(), Previous: StatusRunning, Status: StatusPaused}, changes[len(changes)-2])
	a.Equal(TournamentStatusChanged{TournamentID: tt.ID(), Previous: StatusPaused, Status: StatusRunning}, changes[len(changes)-1])
}
