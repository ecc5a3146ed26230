package mux

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourneypoker-server/pkg/room"
	"tourneypoker-server/pkg/tournament"
)

func testTournamentPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":          "Monday Night Freezeout",
		"buyIn":         100,
		"startingStack": 1500,
		"minPlayers":    2,
		"maxPlayers":    10,
		"payouts":       []int{65, 35},
	}
}

func createTournament(t *testing.T, ts *httptest.Server) *room.Summary {
	t.Helper()

	var summary room.Summary
	assertPost(t, ts, "/tournament", testTournamentPayload(), &summary, 201, token(t, adminID))
	require.NotEmpty(t, summary.ID)
	return &summary
}

func Test_postTournament(t *testing.T) {
	a := assert.New(t)
	_, ts := newTestMux(t)

	assertPost(t, ts, "/tournament", testTournamentPayload(), nil, 403, token(t, "p1"))

	summary := createTournament(t, ts)
	a.Equal("Monday Night Freezeout", summary.Name)
	a.Equal(tournament.TypeFreezeout, summary.Type)
	a.Equal(tournament.StatusRegistering, summary.Status)

	payload := testTournamentPayload()
	payload["name"] = ""
	var errObj errorResponse
	assertPost(t, ts, "/tournament", payload, &errObj, 400, token(t, adminID))
	a.Equal("name is required", errObj.Message)

	assertPost(t, ts, "/tournament", "{", &errObj, 400, token(t, adminID))
}

func Test_getTournament(t *testing.T) {
	a := assert.New(t)
	_, ts := newTestMux(t)

	for i := 0; i < 3; i++ {
		createTournament(t, ts)
	}

	var summaries []*room.Summary
	assertGet(t, ts, "/tournament", &summaries, 200, token(t, "p1"))
	a.Len(summaries, 3)

	assertGet(t, ts, "/tournament?start=1&rows=1", &summaries, 200, token(t, "p1"))
	a.Len(summaries, 1)

	assertGet(t, ts, "/tournament?start=10", &summaries, 200, token(t, "p1"))
	a.Len(summaries, 0)

	var errObj errorResponse
	assertGet(t, ts, "/tournament?start=-1", &errObj, 400, token(t, "p1"))
	a.Equal("start cannot be less than zero", errObj.Message)

	assertGet(t, ts, "/tournament/00000000-0000-0000-0000-000000000000", &errObj, 404, token(t, "p1"))
}

func Test_tournamentFlow(t *testing.T) {
	a := assert.New(t)
	_, ts := newTestMux(t)

	summary := createTournament(t, ts)
	base := "/tournament/" + summary.ID
	admin := token(t, adminID)

	assertPost(t, ts, base+"/register", map[string]string{"name": "Player One"}, summary, 200, token(t, "p1"))
	assertPost(t, ts, base+"/register", nil, summary, 200, token(t, "p2"))
	a.Len(summary.Standings, 2)

	var errObj errorResponse
	assertPost(t, ts, base+"/register", nil, &errObj, 409, token(t, "p1"))
	a.Equal("cannot register while registering: player p1 is already registered", errObj.Message)

	assertPost(t, ts, base+"/start", nil, &errObj, 403, token(t, "p1"))
	assertPost(t, ts, base+"/start", nil, summary, 200, admin)
	a.Equal(tournament.StatusHeadsUp, summary.Status)
	require.Len(t, summary.Tables, 1)
	tableID := summary.Tables[0].ID
	tableBase := fmt.Sprintf("%s/table/%s", base, tableID)

	assertGet(t, ts, tableBase, &errObj, 409, token(t, "p1"))

	var state struct {
		CurrentPlayer string `json:"currentPlayer"`
		HandNumber    int    `json:"handNumber"`
		Actions       []string
	}
	assertPost(t, ts, tableBase+"/hand", nil, &state, 200, admin)
	a.Equal(1, state.HandNumber)
	require.NotEmpty(t, state.CurrentPlayer)

	current := token(t, state.CurrentPlayer)
	assertGet(t, ts, tableBase, &state, 200, current)
	a.Contains(state.Actions, "fold")

	assertPost(t, ts, tableBase+"/action", map[string]interface{}{"action": "check"}, &errObj, 400, current)
	a.Equal("cannot-check", errObj.Code)

	assertPost(t, ts, tableBase+"/action", map[string]interface{}{"action": "juggle"}, &errObj, 400, current)
	assertPost(t, ts, tableBase+"/action", map[string]interface{}{"action": "raise", "amount": -5}, &errObj, 400, current)

	assertPost(t, ts, tableBase+"/action", map[string]interface{}{"action": "fold"}, &state, 200, current)

	assertPost(t, ts, base+"/pause", nil, summary, 200, admin)
	a.Equal(tournament.StatusPaused, summary.Status)
	assertPost(t, ts, base+"/pause", nil, &errObj, 409, admin)
	assertPost(t, ts, base+"/resume", nil, summary, 200, admin)
	a.Equal(tournament.StatusHeadsUp, summary.Status)

	assertPost(t, ts, base+"/level", nil, summary, 200, admin)
	a.Equal(2, summary.Level)

	var moves rebalanceResponse
	assertPost(t, ts, base+"/rebalance", nil, &moves, 200, admin)
	a.Len(moves.Moves, 0)

	assertGet(t, ts, base, summary, 200, token(t, "p3"))
	a.Equal(3000, int(summary.Standings[0].Chips+summary.Standings[1].Chips))

	assertPost(t, ts, base+"/player/p2/eliminate", map[string]string{"eliminatedBy": "p1"}, summary, 200, admin)
	a.Equal(tournament.StatusCompleted, summary.Status)

	assertPost(t, ts, base+"/cancel", nil, &errObj, 409, admin)
}

func Test_tournamentExtras(t *testing.T) {
	a := assert.New(t)
	_, ts := newTestMux(t)

	payload := testTournamentPayload()
	payload["type"] = "rebuy"
	payload["rebuyAmount"] = 100
	payload["rebuyChips"] = 1500
	payload["maxRebuys"] = 1
	payload["rebuyUntilLevel"] = 3
	payload["addOnAmount"] = 100
	payload["addOnChips"] = 2000
	payload["addOnUntilLevel"] = 3

	var summary room.Summary
	assertPost(t, ts, "/tournament", payload, &summary, 201, token(t, adminID))
	base := "/tournament/" + summary.ID

	for _, id := range []string{"p1", "p2", "p3"} {
		assertPost(t, ts, base+"/register", nil, &summary, 200, token(t, id))
	}

	assertPost(t, ts, base+"/unregister", nil, &summary, 200, token(t, "p3"))
	a.Len(summary.Standings, 2)

	var errObj errorResponse
	assertPost(t, ts, base+"/rebuy", nil, &errObj, 409, token(t, "p1"))

	assertPost(t, ts, base+"/start", nil, &summary, 200, token(t, adminID))

	assertPost(t, ts, base+"/rebuy", nil, &summary, 200, token(t, "p1"))
	assertPost(t, ts, base+"/addon", nil, &summary, 200, token(t, "p2"))
	assertPost(t, ts, base+"/addon", nil, &errObj, 409, token(t, "p2"))

	chips := make(map[string]int64)
	for _, reg := range summary.Standings {
		chips[reg.PlayerID] = reg.Chips.Int64()
	}
	a.Equal(int64(3000), chips["p1"])
	a.Equal(int64(3500), chips["p2"])

	assertPost(t, ts, base+"/cancel", nil, &summary, 200, token(t, adminID))
	a.Equal(tournament.StatusCancelled, summary.Status)
}
