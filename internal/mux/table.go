package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"

	"tourneypoker-server/pkg/chips"
	"tourneypoker-server/pkg/playable/poker/action"
	"tourneypoker-server/pkg/playable/poker/texasholdem"
	"tourneypoker-server/pkg/tournament"
)

func (m *Mux) getTournamentIDTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID := gmux.Vars(r)["table"]
		playerID := playerFromContext(r)

		var state *texasholdem.GameState
		err := dealerFromContext(r).View(r.Context(), func(t *tournament.Tournament) error {
			var err error
			state, err = t.StateForPlayer(tableID, playerID)
			return err
		})

		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}

type postActionPayload struct {
	Action string `json:"action"`
	Amount int64  `json:"amount"`
}

func (m *Mux) postTournamentIDTableAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postActionPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		a, err := action.FromString(payload.Action)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		amount, err := chips.New(payload.Amount)
		if err != nil {
			writeError(w, err)
			return
		}

		tableID := gmux.Vars(r)["table"]
		playerID := playerFromContext(r)

		var state *texasholdem.GameState
		err = dealerFromContext(r).Exec(r.Context(), func(t *tournament.Tournament) error {
			if err := t.ExecuteAction(tableID, playerID, a, amount); err != nil {
				return err
			}

			var err error
			state, err = t.StateForPlayer(tableID, playerID)
			return err
		})

		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}

func (m *Mux) postTournamentIDTableHand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID := gmux.Vars(r)["table"]
		playerID := playerFromContext(r)

		var state *texasholdem.GameState
		err := dealerFromContext(r).Exec(r.Context(), func(t *tournament.Tournament) error {
			if err := t.StartHand(tableID); err != nil {
				return err
			}

			var err error
			state, err = t.StateForPlayer(tableID, playerID)
			return err
		})

		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}
