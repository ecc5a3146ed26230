package texasholdem

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"tourneypoker-server/internal/rng"
	"tourneypoker-server/pkg/chips"
	"tourneypoker-server/pkg/deck"
	"tourneypoker-server/pkg/event"
	"tourneypoker-server/pkg/playable/poker/action"
)

var testNames = []string{"alice", "bob", "carol", "dave", "erin", "frank", "grace", "heidi", "ivan", "judy"}

// newTestGame seats one player per stack, starting at seat 0
func newTestGame(t *testing.T, opts Options, stacks ...int64) (*Game, *event.Recorder) {
	t.Helper()

	seats := make([]Seat, len(stacks))
	for i, stack := range stacks {
		seats[i] = Seat{
			PlayerID: testNames[i],
			Seat:     i,
			Stack:    chips.MustNew(stack),
		}
	}

	if opts.Generator == nil {
		opts.Generator = rng.NewSeeded(1)
	}

	recorder := event.NewRecorder()
	g, err := NewGame(logrus.StandardLogger(), recorder, seats, opts)
	require.NoError(t, err)

	return g, recorder
}

func act(t *testing.T, g *Game, playerID string, a action.Action, amount int64) {
	t.Helper()

	require.NoError(t, g.ExecuteAction(playerID, a, chips.MustNew(amount)))
}

func currentPlayerID(t *testing.T, g *Game) string {
	t.Helper()

	p := g.CurrentPlayer()
	require.NotNil(t, p, "expected a player to act")
	return p.ID()
}

// tableChips returns every chip at the table, behind or in the pot
func tableChips(g *Game) chips.Chips {
	total := g.PotTotal()
	for _, p := range g.Players() {
		total = total.Add(p.Stack())
	}

	return total
}

// rigHand replaces the dealt hole cards and stacks the deck so the board comes out as given
// Burn cards are taken from the end of the fake deck so they never collide with the board
func rigHand(t *testing.T, g *Game, holeCards map[string]string, board string) {
	t.Helper()

	for id, cards := range holeCards {
		p, err := g.Player(id)
		require.NoError(t, err)
		p.holeCards = deck.CardsFromString(cards)
	}

	b := deck.CardsFromString(board)
	require.Len(t, b, 5)

	burns := deck.CardsFromString("2s,3s,4s")
	g.deck.Cards = deck.Hand{
		burns[0], b[0], b[1], b[2],
		burns[1], b[3],
		burns[2], b[4],
	}
}

func eventsNamed(r *event.Recorder, name string) []event.Event {
	events := make([]event.Event, 0)
	for _, e := range r.Events() {
		if e.EventName() == name {
			events = append(events, e)
		}
	}

	return events
}
