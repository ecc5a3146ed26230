package mux

import (
	"context"
	"net/http"
	"strings"
	"time"

	gmux "github.com/gorilla/mux"

	"tourneypoker-server/internal/config"
	"tourneypoker-server/internal/jwt"
	"tourneypoker-server/pkg/room"
)

type ctxKey int

const (
	ctxPlayerKey ctxKey = iota
	ctxDealerKey
)

const uuidPattern = "(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}"

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config  muxConfig
	version string
	pitBoss *room.PitBoss

	// store for testing purposes
	authRouter  *gmux.Router
	adminRouter *gmux.Router
}

type muxConfig struct {
	// admins can create and run tournaments
	admins map[string]bool

	// levelDuration is used for tournaments created without a blind structure
	levelDuration time.Duration

	// clientBufferSize is the number of messages buffered per websocket client
	clientBufferSize int
}

// NewMux returns a new HTTP mux
func NewMux(version string, pitBoss *room.PitBoss) *Mux {
	cfg := config.Instance()
	admins := make(map[string]bool)
	for _, id := range cfg.Admins {
		admins[id] = true
	}

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
		config: muxConfig{
			admins:           admins,
			levelDuration:    cfg.Tournament.LevelDuration,
			clientBufferSize: cfg.Tournament.ClientBufferSize,
		},
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	this.adminRouter = this.authRouter.NewRoute().Subrouter()
	this.adminRouter.Use(this.adminMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	}

	// requires bearer authorization
	{
		r := this.authRouter
		r.Methods(http.MethodGet).Path("/tournament").Handler(this.getTournament())

		tr := r.PathPrefix("/tournament/{id:" + uuidPattern + "}").Subrouter()
		tr.Use(this.tournamentMiddleware)

		tr.Methods(http.MethodGet).Path("").Handler(this.getTournamentID())
		tr.Methods(http.MethodGet).Path("/ws").Handler(this.getTournamentIDWS())
		tr.Methods(http.MethodPost).Path("/register").Handler(this.postTournamentIDRegister())
		tr.Methods(http.MethodPost).Path("/unregister").Handler(this.postTournamentIDUnregister())
		tr.Methods(http.MethodPost).Path("/rebuy").Handler(this.postTournamentIDRebuy())
		tr.Methods(http.MethodPost).Path("/addon").Handler(this.postTournamentIDAddOn())
		tr.Methods(http.MethodGet).Path("/table/{table}").Handler(this.getTournamentIDTable())
		tr.Methods(http.MethodPost).Path("/table/{table}/action").Handler(this.postTournamentIDTableAction())

		// requires admin access
		ar := tr.NewRoute().Subrouter()
		ar.Use(this.adminMiddleware)
		ar.Methods(http.MethodPost).Path("/start").Handler(this.postTournamentIDStart())
		ar.Methods(http.MethodPost).Path("/pause").Handler(this.postTournamentIDPause())
		ar.Methods(http.MethodPost).Path("/resume").Handler(this.postTournamentIDResume())
		ar.Methods(http.MethodPost).Path("/cancel").Handler(this.postTournamentIDCancel())
		ar.Methods(http.MethodPost).Path("/level").Handler(this.postTournamentIDLevel())
		ar.Methods(http.MethodPost).Path("/rebalance").Handler(this.postTournamentIDRebalance())
		ar.Methods(http.MethodPost).Path("/player/{player}/eliminate").Handler(this.postTournamentIDPlayerEliminate())
		ar.Methods(http.MethodPost).Path("/table/{table}/hand").Handler(this.postTournamentIDTableHand())
	}

	// requires admin access
	// depends on authMiddleware
	{
		r := this.adminRouter
		r.Methods(http.MethodPost).Path("/tournament").Handler(this.postTournament())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		playerID, err := jwt.ValidPlayerID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerKey, playerID)
		w.Header().Set("TourneyPoker-PlayerID", playerID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// adminMiddleware requires authMiddleware to execute first
func (m *Mux) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.config.admins[playerFromContext(r)] {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Mux) tournamentMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dealer, ok := m.pitBoss.Dealer(strings.ToLower(gmux.Vars(r)["id"]))
		if !ok {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxDealerKey, dealer)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func playerFromContext(r *http.Request) string {
	id, _ := r.Context().Value(ctxPlayerKey).(string)
	return id
}

func dealerFromContext(r *http.Request) *room.Dealer {
	return r.Context().Value(ctxDealerKey).(*room.Dealer)
}
