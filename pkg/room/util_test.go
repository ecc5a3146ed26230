package room

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"tourneypoker-server/internal/rng"
	"tourneypoker-server/pkg/db"
	"tourneypoker-server/pkg/playable"
	"tourneypoker-server/pkg/tournament"
)

type testPitBoss struct {
	*PitBoss
	store *db.MemoryStore
	clock *quartz.Mock
}

func newTestPitBoss(t *testing.T, store *db.MemoryStore, clock *quartz.Mock) *testPitBoss {
	t.Helper()

	p := NewPitBoss(logrus.StandardLogger(), store, clock, Options{TickInterval: time.Second})
	t.Cleanup(p.EndShift)

	return &testPitBoss{
		PitBoss: p,
		store:   store,
		clock:   clock,
	}
}

func testConfig() tournament.Config {
	return tournament.Config{
		Name:          "Room Test",
		Type:          tournament.TypeFreezeout,
		BuyIn:         100,
		StartingStack: 1500,
		MinPlayers:    2,
		MaxPlayers:    20,
		TableSize:     tournament.DefaultTableSize,
		Blinds:        tournament.DefaultBlindStructure(2 * time.Second),
		Payouts:       []int64{65, 35},
		Generator:     rng.NewSeeded(7),
	}
}

func (p *testPitBoss) create(t *testing.T) *Dealer {
	t.Helper()

	d, err := p.CreateTournament(context.Background(), testConfig())
	require.NoError(t, err)
	return d
}

func register(t *testing.T, d *Dealer, n int) {
	t.Helper()

	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("p%02d", i)
		require.NoError(t, d.Exec(context.Background(), func(tt *tournament.Tournament) error {
			return tt.RegisterPlayer(id, "")
		}))
	}
}

func storedVersion(t *testing.T, store db.Store, id string) int64 {
	t.Helper()

	doc, err := store.Load(context.Background(), id)
	require.NoError(t, err)
	return doc.Version
}

// waitFor reads messages from the client until one has the key
func waitFor(t *testing.T, c *Client, key string) *playable.Response {
	t.Helper()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case msg := <-c.SendChan():
			if res, ok := msg.(*playable.Response); ok && res.Key == key {
				return res
			}
		case <-timeout:
			require.FailNow(t, "timed out waiting for message", key)
			return nil
		}
	}
}
