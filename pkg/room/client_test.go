package room

import (
	"context"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourneypoker-server/pkg/db"
	"tourneypoker-server/pkg/playable"
	"tourneypoker-server/pkg/playable/poker/action"
	"tourneypoker-server/pkg/tournament"
)

func TestClient_Send(t *testing.T) {
	a := assert.New(t)

	c := NewClient(nil, "p01", "t1", 1)
	a.True(c.Send("one"))
	a.False(c.Send("two"))
	a.Equal("one", <-c.SendChan())
	a.Equal("p01:t1", c.String())
	a.Equal("p01", c.PlayerID())
}

func TestClient_WithoutDealer(t *testing.T) {
	c := NewClient(nil, "p01", "t1", 0)
	c.ReceivedMessage(&playable.PayloadIn{Action: "state", Context: "ctx"})

	res := waitFor(t, c, "error")
	assert.Equal(t, ErrShiftEnded.Error(), res.Value)
	assert.Equal(t, "ctx", res.Context)
}

func TestPitBoss_ClientConnected(t *testing.T) {
	a := assert.New(t)

	p := newTestPitBoss(t, db.NewMemoryStore(), quartz.NewMock(t))
	d := p.create(t)

	a.Error(p.ClientConnected(NewClient(nil, "p01", "missing", 0)))

	c := NewClient(nil, "p01", d.ID(), 0)
	require.NoError(t, p.ClientConnected(c))
	a.Len(d.Clients(), 1)

	summary := waitFor(t, c, "tournament").Data.(*Summary)
	a.Equal(tournament.StatusRegistering, summary.Status)

	c.ReceivedMessage(&playable.PayloadIn{
		Action:         "register",
		AdditionalData: playable.AdditionalData{"name": "Player One"},
		Context:        "r1",
	})
	a.Equal("r1", waitFor(t, c, "status").Context)
	a.Equal("player-registered", (<-c.Events).EventName())

	c.ReceivedMessage(&playable.PayloadIn{Action: "register", Context: "r2"})
	res := waitFor(t, c, "error")
	a.Equal("r2", res.Context)
	a.Equal("cannot register while registering: player p01 is already registered", res.Value)

	c.ReceivedMessage(&playable.PayloadIn{Action: "shuffle"})
	a.Equal("unknown action: shuffle", waitFor(t, c, "error").Value)

	p.ClientDisconnected(c)
	a.Len(d.Clients(), 0)
	_, open := <-c.Events
	a.False(open)
}

func TestClient_PlayerAction(t *testing.T) {
	a := assert.New(t)

	p := newTestPitBoss(t, db.NewMemoryStore(), quartz.NewMock(t))
	d := p.create(t)
	register(t, d, 2)

	ctx := context.Background()
	var current, tableID string
	require.NoError(t, d.Exec(ctx, func(tt *tournament.Tournament) error {
		if err := tt.Start(); err != nil {
			return err
		}

		tableID = tt.Tables()[0].ID
		if err := tt.StartHand(tableID); err != nil {
			return err
		}

		table, _ := tt.Table(tableID)
		current = table.Game().CurrentPlayer().ID()
		return nil
	}))

	c := NewClient(nil, current, d.ID(), 0)
	require.NoError(t, p.ClientConnected(c))
	game := waitFor(t, c, "game")
	a.Equal(tableID, game.Value)

	c.ReceivedMessage(&playable.PayloadIn{Action: "action", Subject: "dance"})
	a.Equal("unknown action for identifier: dance", waitFor(t, c, "error").Value)

	c.ReceivedMessage(&playable.PayloadIn{
		Action:         "action",
		Subject:        "raise",
		AdditionalData: playable.AdditionalData{"amount": float64(60)},
		Context:        "a1",
	})
	a.Equal("a1", waitFor(t, c, "status").Context)

	var lastAction action.Action
	require.NoError(t, d.View(ctx, func(tt *tournament.Tournament) error {
		table, _ := tt.Table(tableID)
		player, err := table.Game().Player(current)
		if err != nil {
			return err
		}

		lastAction = player.LastAction()
		return nil
	}))
	a.Equal(action.Raise, lastAction)

	outsider := NewClient(nil, "nobody", d.ID(), 0)
	require.NoError(t, p.ClientConnected(outsider))
	outsider.ReceivedMessage(&playable.PayloadIn{Action: "action", Subject: "fold"})
	a.Equal("player nobody is not seated", waitFor(t, outsider, "error").Value)
}
