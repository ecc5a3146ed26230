package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"

	"tourneypoker-server/internal/util"
	"tourneypoker-server/pkg/room"
	"tourneypoker-server/pkg/tournament"
)

func (m *Mux) postTournament() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cfg tournament.Config
		if !decodeRequest(w, r, &cfg) {
			return
		}

		cfg.ID = ""
		if cfg.Type == "" {
			cfg.Type = tournament.TypeFreezeout
		}

		if cfg.TableSize == 0 {
			cfg.TableSize = tournament.DefaultTableSize
		}

		if cfg.Blinds.Len() == 0 {
			cfg.Blinds = tournament.DefaultBlindStructure(m.config.levelDuration)
		}

		if err := cfg.Validate(); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		dealer, err := m.pitBoss.CreateTournament(r.Context(), cfg)
		if err != nil {
			writeError(w, err)
			return
		}

		summary, err := summarize(r, dealer)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, summary)
	}
}

func (m *Mux) getTournament() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		dealers := m.pitBoss.Dealers()
		if start > len(dealers) {
			start = len(dealers)
		}

		dealers = dealers[start:]
		if len(dealers) > rows {
			dealers = dealers[:rows]
		}

		summaries := make([]*room.Summary, 0, len(dealers))
		for _, dealer := range dealers {
			summary, err := summarize(r, dealer)
			if err != nil {
				writeError(w, err)
				return
			}

			summaries = append(summaries, summary)
		}

		writeJSON(w, http.StatusOK, summaries)
	}
}

func (m *Mux) getTournamentID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := summarize(r, dealerFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

type postRegisterPayload struct {
	Name string `json:"name"`
}

func (m *Mux) postTournamentIDRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postRegisterPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.Name == "" {
			payload.Name = util.GetRandomName()
		}

		playerID := playerFromContext(r)
		execAndSummarize(w, r, func(t *tournament.Tournament) error {
			return t.RegisterPlayer(playerID, payload.Name)
		})
	}
}

func (m *Mux) postTournamentIDUnregister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := playerFromContext(r)
		execAndSummarize(w, r, func(t *tournament.Tournament) error {
			return t.Unregister(playerID)
		})
	}
}

func (m *Mux) postTournamentIDRebuy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := playerFromContext(r)
		execAndSummarize(w, r, func(t *tournament.Tournament) error {
			return t.Rebuy(playerID)
		})
	}
}

func (m *Mux) postTournamentIDAddOn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := playerFromContext(r)
		execAndSummarize(w, r, func(t *tournament.Tournament) error {
			return t.AddOn(playerID)
		})
	}
}

func (m *Mux) postTournamentIDStart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		execAndSummarize(w, r, (*tournament.Tournament).Start)
	}
}

func (m *Mux) postTournamentIDPause() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		execAndSummarize(w, r, (*tournament.Tournament).Pause)
	}
}

func (m *Mux) postTournamentIDResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		execAndSummarize(w, r, (*tournament.Tournament).Resume)
	}
}

func (m *Mux) postTournamentIDCancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		execAndSummarize(w, r, (*tournament.Tournament).Cancel)
	}
}

func (m *Mux) postTournamentIDLevel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		execAndSummarize(w, r, (*tournament.Tournament).AdvanceLevel)
	}
}

type rebalanceResponse struct {
	Moves []tournament.Move `json:"moves"`
}

func (m *Mux) postTournamentIDRebalance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var moves []tournament.Move
		err := dealerFromContext(r).Exec(r.Context(), func(t *tournament.Tournament) error {
			var err error
			moves, err = t.RebalanceTables()
			return err
		})

		if err != nil {
			writeError(w, err)
			return
		}

		if moves == nil {
			moves = []tournament.Move{}
		}

		writeJSON(w, http.StatusOK, rebalanceResponse{Moves: moves})
	}
}

type postEliminatePayload struct {
	EliminatedBy string `json:"eliminatedBy"`
}

func (m *Mux) postTournamentIDPlayerEliminate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postEliminatePayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		playerID := gmux.Vars(r)["player"]
		execAndSummarize(w, r, func(t *tournament.Tournament) error {
			return t.EliminatePlayer(playerID, payload.EliminatedBy)
		})
	}
}

// summarize reads the summary on the dealer's run loop
func summarize(r *http.Request, dealer *room.Dealer) (*room.Summary, error) {
	var summary *room.Summary
	err := dealer.View(r.Context(), func(t *tournament.Tournament) error {
		summary = room.NewSummary(t)
		return nil
	})

	return summary, err
}

// execAndSummarize runs fn on the tournament's dealer and responds with the new summary
func execAndSummarize(w http.ResponseWriter, r *http.Request, fn func(t *tournament.Tournament) error) {
	var summary *room.Summary
	err := dealerFromContext(r).Exec(r.Context(), func(t *tournament.Tournament) error {
		if err := fn(t); err != nil {
			return err
		}

		summary = room.NewSummary(t)
		return nil
	})

	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
