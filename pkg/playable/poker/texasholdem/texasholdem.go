package texasholdem

import (
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tourneypoker-server/internal/rng"
	"tourneypoker-server/pkg/chips"
	"tourneypoker-server/pkg/deck"
	"tourneypoker-server/pkg/event"
	"tourneypoker-server/pkg/playable/poker/potmanager"
)

// Game is a table of no-limit Texas Hold'em
// A Game is not safe for concurrent use, callers must serialize access
type Game struct {
	id        string
	logger    logrus.FieldLogger
	publisher event.Publisher
	options   Options
	generator rng.Generator
	clock     quartz.Clock

	deck    *deck.Deck
	players map[string]*Player
	// seats is indexed by seat number, nil is an empty seat
	seats []*Player

	phase      Phase
	handNumber int
	community  deck.Hand
	round      BettingRound

	// buttonSeat can point to an empty seat when the button is dead
	buttonSeat     int
	dealerSeat     int
	deadButton     bool
	smallBlindSeat int
	bigBlindSeat   int
	// dealtSeats marks the seats that had a player when the last hand was dealt
	dealtSeats []bool
	// missedBlinds is what a sitting-out seat owes when it returns
	missedBlinds map[int]chips.Chips

	// currentSeat is the seat to act, -1 when nobody is to act
	currentSeat    int
	lastAggressor  string
	totalActions   int
	wentToShowdown bool
	handStartedAt  time.Time

	// pots and results of the last settled hand
	pots    potmanager.Pots
	results []potmanager.Result

	revision int64
}

// NewGame returns a new game of Texas Hold'em
// No hand is dealt until StartNewHand is called
func NewGame(logger logrus.FieldLogger, publisher event.Publisher, seats []Seat, opts Options) (*Game, error) {
	if opts.MaxSeats == 0 {
		opts.MaxSeats = DefaultMaxSeats
	}

	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	if len(seats) < MinPlayers || len(seats) > MaxPlayers {
		return nil, newGameConfigurationError("expected %d-%d players, got %d", MinPlayers, MaxPlayers, len(seats))
	}

	if opts.ID == "" {
		opts.ID = uuid.New().String()
	}

	if publisher == nil {
		publisher = event.Discard
	}

	generator := opts.Generator
	if generator == nil {
		generator = rng.Crypto{}
	}

	clock := opts.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	g := &Game{
		id:             opts.ID,
		logger:         logger.WithField("game", opts.ID),
		publisher:      publisher,
		options:        opts,
		generator:      generator,
		clock:          clock,
		players:        make(map[string]*Player),
		seats:          make([]*Player, opts.MaxSeats),
		phase:          PhaseWaiting,
		community:      make(deck.Hand, 0, 5),
		buttonSeat:     -1,
		dealerSeat:     -1,
		smallBlindSeat: -1,
		bigBlindSeat:   -1,
		missedBlinds:   make(map[int]chips.Chips),
		currentSeat:    -1,
	}

	playerIDs := make([]string, 0, len(seats))
	stacks := make(map[string]chips.Chips, len(seats))
	for _, s := range seats {
		if err := g.seatPlayer(s); err != nil {
			return nil, err
		}

		playerIDs = append(playerIDs, s.PlayerID)
		stacks[s.PlayerID] = s.Stack
	}

	g.publisher.Publish(GameCreated{
		GameID:         g.id,
		PlayerIDs:      playerIDs,
		StartingStacks: stacks,
		SmallBlind:     opts.SmallBlind,
		BigBlind:       opts.BigBlind,
		Ante:           opts.Ante,
	})

	return g, nil
}

func (g *Game) seatPlayer(s Seat) error {
	if s.PlayerID == "" {
		return newGameConfigurationError("player id is required")
	}

	if _, ok := g.players[s.PlayerID]; ok {
		return newGameConfigurationError("player %s is already seated", s.PlayerID)
	}

	if s.Seat < 0 || s.Seat >= len(g.seats) {
		return newGameConfigurationError("seat %d does not exist", s.Seat)
	}

	if g.seats[s.Seat] != nil {
		return newGameConfigurationError("seat %d is taken", s.Seat)
	}

	if err := s.Stack.Validate(); err != nil {
		return newGameConfigurationError("player %s: %s", s.PlayerID, err)
	}

	if s.Stack.IsZero() {
		return newGameConfigurationError("player %s has no chips", s.PlayerID)
	}

	if len(g.players) >= MaxPlayers {
		return newGameConfigurationError("table is full")
	}

	p := newPlayer(s.PlayerID, s.Seat, s.Stack)
	g.players[p.id] = p
	g.seats[p.seat] = p
	return nil
}

// ID returns the game's id
func (g *Game) ID() string {
	return g.id
}

// Options returns the current options
func (g *Game) Options() Options {
	return g.options
}

// Phase returns the phase of the current or last hand
func (g *Game) Phase() Phase {
	return g.phase
}

// HandNumber returns how many hands have been dealt
func (g *Game) HandNumber() int {
	return g.handNumber
}

// IsHandInProgress returns true from the deal until the pots are awarded
func (g *Game) IsHandInProgress() bool {
	return g.phase.IsHandInProgress()
}

// Revision increases with every successful mutation
func (g *Game) Revision() int64 {
	return g.revision
}

// Community returns a copy of the board
func (g *Game) Community() deck.Hand {
	return g.community.Clone()
}

// Round returns the current betting round
func (g *Game) Round() BettingRound {
	return g.round
}

// ButtonSeat returns the seat of the button, which may be empty when the button is dead
func (g *Game) ButtonSeat() int {
	return g.buttonSeat
}

// DealerSeat returns the seat with dealer duty for blind posting and action order
func (g *Game) DealerSeat() int {
	return g.dealerSeat
}

// IsDeadButton returns true if the button is on a seat without a live player
func (g *Game) IsDeadButton() bool {
	return g.deadButton
}

// SmallBlindSeat returns the seat that posted the small blind this hand
func (g *Game) SmallBlindSeat() int {
	return g.smallBlindSeat
}

// BigBlindSeat returns the seat that posted the big blind this hand
func (g *Game) BigBlindSeat() int {
	return g.bigBlindSeat
}

// MissedBlind returns what the seat owes for blinds missed while sitting out
func (g *Game) MissedBlind(seat int) chips.Chips {
	return g.missedBlinds[seat]
}

// LastAggressor returns the id of the last player to bet or raise this hand
func (g *Game) LastAggressor() string {
	return g.lastAggressor
}

// Player returns the player with the id
func (g *Game) Player(id string) (*Player, error) {
	p, ok := g.players[id]
	if !ok {
		return nil, &PlayerNotFoundError{PlayerID: id}
	}

	return p, nil
}

// Players returns every seated player in seat order
func (g *Game) Players() []*Player {
	players := make([]*Player, 0, len(g.players))
	for _, p := range g.seats {
		if p != nil {
			players = append(players, p)
		}
	}

	return players
}

// CurrentPlayer returns the player to act, or nil
func (g *Game) CurrentPlayer() *Player {
	if g.currentSeat < 0 || !g.phase.IsBettingRound() {
		return nil
	}

	return g.seats[g.currentSeat]
}

// PotTotal returns the chips committed to the hand in progress
func (g *Game) PotTotal() chips.Chips {
	if !g.phase.IsHandInProgress() {
		return chips.Zero
	}

	total := chips.Zero
	for _, p := range g.players {
		total = total.Add(p.totalBet)
	}

	return total
}

// Pots returns the pots of the hand in progress, or the settled pots of the last hand
func (g *Game) Pots() potmanager.Pots {
	if g.phase.IsHandInProgress() {
		return potmanager.Allocate(g.contributions())
	}

	return g.pots
}

// Results returns how the pots of the last hand were awarded
func (g *Game) Results() []potmanager.Result {
	return g.results
}

// AddPlayer seats a new player between hands
func (g *Game) AddPlayer(s Seat) error {
	if g.phase.IsHandInProgress() {
		return ErrHandInProgress
	}

	if err := g.seatPlayer(s); err != nil {
		return err
	}

	g.logger.WithField("player", s.PlayerID).Infof("seated at %d with %d", s.Seat, s.Stack)
	g.revision++
	return nil
}

// RemovePlayer removes a player between hands
func (g *Game) RemovePlayer(id string) error {
	if g.phase.IsHandInProgress() {
		return ErrHandInProgress
	}

	p, err := g.Player(id)
	if err != nil {
		return err
	}

	delete(g.players, id)
	g.seats[p.seat] = nil
	delete(g.missedBlinds, p.seat)

	g.logger.WithField("player", id).Info("left the table")
	g.revision++
	return nil
}

// SitOut stops the player from being dealt into future hands
func (g *Game) SitOut(id string) error {
	p, err := g.Player(id)
	if err != nil {
		return err
	}

	p.sittingOut = true
	g.revision++
	return nil
}

// SitIn deals the player back in from the next hand, missed blinds are collected then
func (g *Game) SitIn(id string) error {
	p, err := g.Player(id)
	if err != nil {
		return err
	}

	p.sittingOut = false
	g.revision++
	return nil
}

// AddChips adds to a player's stack between hands
func (g *Game) AddChips(id string, amount chips.Chips) error {
	if g.phase.IsHandInProgress() {
		return ErrHandInProgress
	}

	if err := amount.Validate(); err != nil {
		return err
	}

	p, err := g.Player(id)
	if err != nil {
		return err
	}

	p.stack = p.stack.Add(amount)
	g.revision++
	return nil
}

// SetBlinds changes the forced bets from the next hand
func (g *Game) SetBlinds(smallBlind, bigBlind, ante chips.Chips) error {
	if g.phase.IsHandInProgress() {
		return ErrHandInProgress
	}

	if err := validateBlinds(smallBlind, bigBlind); err != nil {
		return err
	}

	if err := ante.Validate(); err != nil {
		return err
	}

	g.options.SmallBlind = smallBlind
	g.options.BigBlind = bigBlind
	g.options.Ante = ante
	g.revision++
	return nil
}

// contributions returns what every player dealt in has committed, in seat order from the left of the button
func (g *Game) contributions() []potmanager.Contribution {
	contributions := make([]potmanager.Contribution, 0, len(g.players))
	for _, p := range g.handPlayersFromButton() {
		contributions = append(contributions, potmanager.Contribution{
			PlayerID: p.id,
			Amount:   p.totalBet,
			Folded:   p.folded,
			AllIn:    p.allIn,
		})
	}

	return contributions
}

// handPlayersFromButton returns the players dealt in, clockwise starting left of the button
func (g *Game) handPlayersFromButton() []*Player {
	players := make([]*Player, 0, len(g.players))
	n := len(g.seats)
	start := g.buttonSeat
	if start < 0 {
		start = n - 1
	}

	for i := 1; i <= n; i++ {
		p := g.seats[(start+i)%n]
		if p != nil && p.inHand {
			players = append(players, p)
		}
	}

	return players
}
