package tournament

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"tourneypoker-server/internal/rng"
	"tourneypoker-server/pkg/chips"
	"tourneypoker-server/pkg/event"
	"tourneypoker-server/pkg/playable/poker/action"
)

func testConfig() Config {
	return Config{
		Name:          "Monday Night Freezeout",
		Type:          TypeFreezeout,
		BuyIn:         100,
		StartingStack: 1500,
		MinPlayers:    2,
		MaxPlayers:    100,
		TableSize:     DefaultTableSize,
		Blinds:        DefaultBlindStructure(15 * time.Minute),
		Payouts:       []int64{50, 30, 20},
		Generator:     rng.NewSeeded(1),
	}
}

type testTournament struct {
	*Tournament
	recorder *event.Recorder
	clock    *quartz.Mock
}

func newTestTournament(t *testing.T, cfg Config) *testTournament {
	t.Helper()

	recorder := event.NewRecorder()
	clock := quartz.NewMock(t)
	tourney, err := New(logrus.StandardLogger(), recorder, clock, cfg)
	require.NoError(t, err)

	return &testTournament{
		Tournament: tourney,
		recorder:   recorder,
		clock:      clock,
	}
}

// register adds players p01, p02, ...
func (tt *testTournament) register(t *testing.T, n int) []string {
	t.Helper()

	ids := make([]string, n)
	offset := len(tt.order)
	for i := range ids {
		ids[i] = playerID(offset + i + 1)
		require.NoError(t, tt.RegisterPlayer(ids[i], fmt.Sprintf("Player %d", offset+i+1)))
	}

	return ids
}

// startWith registers n players and starts the tournament
func startWith(t *testing.T, cfg Config, n int) *testTournament {
	t.Helper()

	tt := newTestTournament(t, cfg)
	tt.register(t, n)
	require.NoError(t, tt.Start())
	return tt
}

func playerID(n int) string {
	return fmt.Sprintf("p%02d", n)
}

func tableSizes(tables []*Table) []int {
	sizes := make([]int, len(tables))
	for i, table := range tables {
		sizes[i] = table.PlayerCount()
	}

	return sizes
}

func (tt *testTournament) eventsNamed(name string) []event.Event {
	events := make([]event.Event, 0)
	for _, e := range tt.recorder.Events() {
		if e.EventName() == name {
			events = append(events, e)
		}
	}

	return events
}

// seatedCount returns how many times each player appears across the active tables
func seatedCount(tables []*Table) map[string]int {
	count := make(map[string]int)
	for _, table := range tables {
		for _, id := range table.PlayerIDs() {
			count[id]++
		}
	}

	return count
}

func mustChips(n int64) chips.Chips {
	return chips.MustNew(n)
}

func (tt *testTournament) advance(d time.Duration) {
	tt.clock.Advance(d).MustWait(context.Background())
}

// foldAround has every player fold in turn until the hand is over
func (tt *testTournament) foldAround(t *testing.T, table *Table) {
	t.Helper()

	for i := 0; table.IsHandInProgress(); i++ {
		require.Less(t, i, 20, "hand did not finish")
		p := table.Game().CurrentPlayer()
		require.NotNil(t, p)
		require.NoError(t, tt.ExecuteAction(table.ID, p.ID(), action.Fold, chips.Zero))
	}
}
