package tournament

import (
	"errors"
	"testing"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourneypoker-server/pkg/event"
)

func TestNew(t *testing.T) {
	a := assert.New(t)

	tt := newTestTournament(t, testConfig())
	a.NotEmpty(tt.ID())
	a.Equal(StatusRegistering, tt.Status())
	a.Equal(0, tt.Level())
	a.Equal([]string{"tournament-created"}, tt.recorder.Names())

	cfg := testConfig()
	cfg.TableSize = 1
	_, err := New(logrus.StandardLogger(), event.Discard, quartz.NewMock(t), cfg)
	a.EqualError(err, "table size must be between 2 and 10, got 1")
}

func TestTournament_RegisterPlayer(t *testing.T) {
	a := assert.New(t)

	cfg := testConfig()
	cfg.MaxPlayers = 3
	tt := newTestTournament(t, cfg)
	tt.register(t, 2)

	err := tt.RegisterPlayer("p01", "again")
	var stateErr *StateError
	a.True(errors.As(err, &stateErr))
	a.Equal("register", stateErr.Op)
	a.EqualError(err, "cannot register while registering: player p01 is already registered")

	a.NoError(tt.RegisterPlayer("p03", ""))
	reg, ok := tt.Registration("p03")
	a.True(ok)
	a.Equal("p03", reg.Name)
	a.Equal(RegistrationRegistered, reg.Status)

	a.EqualError(tt.RegisterPlayer("p04", "Four"), "cannot register while registering: the field is full at 3 players")
	a.EqualError(tt.RegisterPlayer("", "Nobody"), "cannot register while registering: player id is required")

	a.Len(tt.eventsNamed("player-registered"), 3)
	a.Equal(3, tt.ActivePlayerCount())
}

func TestTournament_Unregister(t *testing.T) {
	a := assert.New(t)

	cfg := testConfig()
	cfg.MaxPlayers = 2
	tt := newTestTournament(t, cfg)
	tt.register(t, 2)

	a.NoError(tt.Unregister("p01"))
	reg, _ := tt.Registration("p01")
	a.Equal(RegistrationWithdrawn, reg.Status)
	a.EqualError(tt.Unregister("p01"), "cannot unregister while registering: player p01 is not registered")

	// a withdrawn player frees up a spot and can come back
	a.NoError(tt.RegisterPlayer("p01", "Back again"))
	a.Len(tt.Registrations(), 2)

	require.NoError(t, tt.Start())
	a.EqualError(tt.Unregister("p02"), "cannot unregister while heads-up: the tournament has started")
}

func TestTournament_Start(t *testing.T) {
	a := assert.New(t)

	tt := newTestTournament(t, testConfig())
	tt.register(t, 1)
	a.EqualError(tt.Start(), "cannot start while registering: need 2 players, have 1")

	tt.register(t, 19)
	tt.recorder.Reset()
	a.NoError(tt.Start())

	a.Equal(StatusRunning, tt.Status())
	a.Equal(1, tt.Level())
	a.Equal([]int{7, 7, 6}, tableSizes(tt.Tables()))
	a.Equal(tt.TotalChips(), mustChips(20*1500))

	for _, reg := range tt.Registrations() {
		a.Equal(RegistrationPlaying, reg.Status)
		a.EqualValues(1500, reg.Chips)

		table, ok := tt.Table(reg.TableID)
		a.True(ok)
		a.True(table.HasPlayer(reg.PlayerID))
	}

	for _, count := range seatedCount(tt.Tables()) {
		a.Equal(1, count)
	}

	// round-robin: p01 -> table 1, p02 -> table 2, p03 -> table 3, p04 -> table 1
	a.Equal([]string{"p01", "p04", "p07", "p10", "p13", "p16", "p19"}, tt.Tables()[0].PlayerIDs())

	a.Equal([]string{
		"table-created",
		"table-created",
		"table-created",
		"tournament-status-changed",
		"tournament-started",
	}, tt.recorder.Names())

	started := tt.eventsNamed("tournament-started")[0].(TournamentStarted)
	a.Equal(20, started.PlayerCount)
	a.Equal(3, started.TableCount)
	a.EqualValues(2000, started.PrizePool)

	a.EqualError(tt.Start(), "cannot start while running: the tournament is not registering")
	a.EqualError(tt.RegisterPlayer("late", "Late"), "cannot register while running: registration is closed")
}

func TestTournament_StartSingleTable(t *testing.T) {
	a := assert.New(t)

	tt := startWith(t, testConfig(), 5)
	a.Equal(StatusFinalTable, tt.Status())
	a.Len(tt.Tables(), 1)

	changes := tt.eventsNamed("tournament-status-changed")
	if a.Len(changes, 1) {
		a.Equal(TournamentStatusChanged{TournamentID: tt.ID(), Previous: StatusRegistering, Status: StatusFinalTable}, changes[0])
	}

	tt = startWith(t, testConfig(), 2)
	a.Equal(StatusHeadsUp, tt.Status())
	a.Len(tt.eventsNamed("tournament-status-changed"), 1)
}

func TestTournament_LateRegistration(t *testing.T) {
	a := assert.New(t)

	cfg := testConfig()
	cfg.LateRegistrationLevels = 2
	tt := startWith(t, cfg, 12)
	a.Equal(StatusLateRegistration, tt.Status())
	a.Equal([]int{6, 6}, tableSizes(tt.Tables()))

	// make the second table the smallest
	second := tt.Tables()[1]
	a.NoError(tt.EliminatePlayer(second.PlayerIDs()[0], ""))
	a.Equal(StatusLateRegistration, tt.Status())

	a.NoError(tt.RegisterPlayer("late", "Late Larry"))
	reg, _ := tt.Registration("late")
	a.Equal(RegistrationPlaying, reg.Status)
	a.True(reg.Late)
	a.Equal(second.ID, reg.TableID)
	a.EqualValues(1500, reg.Chips)
	a.True(second.HasPlayer("late"))

	registered := tt.eventsNamed("player-registered")
	a.True(registered[len(registered)-1].(PlayerRegistered).Late)

	a.NoError(tt.AdvanceLevel())
	a.Equal(StatusLateRegistration, tt.Status())
	a.NoError(tt.AdvanceLevel())
	a.Equal(StatusRunning, tt.Status())
	a.EqualError(tt.RegisterPlayer("later", "Too Late"), "cannot register while running: registration is closed")
}

func TestTournament_LateRegistrationOpensTable(t *testing.T) {
	a := assert.New(t)

	cfg := testConfig()
	cfg.TableSize = 2
	cfg.LateRegistrationLevels = 1
	tt := startWith(t, cfg, 2)
	a.Len(tt.Tables(), 1)

	a.NoError(tt.RegisterPlayer("late", "Late"))
	a.Len(tt.Tables(), 2)
	a.Len(tt.eventsNamed("table-created"), 2)
	a.Equal([]string{"late"}, tt.Tables()[1].PlayerIDs())
}

func TestTournament_PrizePool(t *testing.T) {
	a := assert.New(t)

	tt := newTestTournament(t, testConfig())
	tt.register(t, 10)
	a.NoError(tt.Unregister("p10"))

	a.EqualValues(900, tt.PrizePool())
	a.EqualValues(450, tt.CalculatePrizeForPosition(1))
	a.EqualValues(270, tt.CalculatePrizeForPosition(2))
	a.EqualValues(180, tt.CalculatePrizeForPosition(3))
	a.EqualValues(0, tt.CalculatePrizeForPosition(4))
	a.EqualValues(0, tt.CalculatePrizeForPosition(0))

	cfg := testConfig()
	cfg.Type = TypeBounty
	cfg.BountyAmount = 25
	tt = newTestTournament(t, cfg)
	tt.register(t, 4)
	a.EqualValues(300, tt.PrizePool())
}
