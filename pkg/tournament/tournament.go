package tournament

import (
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tourneypoker-server/internal/rng"
	"tourneypoker-server/pkg/chips"
	"tourneypoker-server/pkg/event"
)

// Status is where the tournament is in its lifecycle
type Status string

// Status constants
const (
	StatusRegistering      Status = "registering"
	StatusLateRegistration Status = "late-registration"
	StatusRunning          Status = "running"
	StatusPaused           Status = "paused"
	StatusFinalTable       Status = "final-table"
	StatusHeadsUp          Status = "heads-up"
	StatusCompleted        Status = "completed"
	StatusCancelled        Status = "cancelled"
)

// IsPlayable returns true if hands can be dealt
func (s Status) IsPlayable() bool {
	switch s {
	case StatusLateRegistration, StatusRunning, StatusFinalTable, StatusHeadsUp:
		return true
	}

	return false
}

// IsTerminal returns true for completed and cancelled
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Tournament runs a multi-table tournament
// A Tournament is not safe for concurrent use, callers serialize access
type Tournament struct {
	id        string
	logger    logrus.FieldLogger
	publisher event.Publisher
	clock     quartz.Clock
	config    Config
	generator rng.Generator

	status     Status
	pausedFrom Status

	level           int
	levelStartedAt  time.Time
	pausedRemaining time.Duration

	registrations map[string]*Registration
	order         []string

	tables          []*Table
	nextTableNumber int

	totalRebuys        int
	totalAddOns        int
	needsConsolidation bool

	// stack of every player when the table's current hand began
	handStartStacks map[string]chips.Chips

	createdAt   time.Time
	startedAt   time.Time
	completedAt time.Time

	revision int64
}

// New configures a tournament that is open for registration
func New(logger logrus.FieldLogger, publisher event.Publisher, clock quartz.Clock, cfg Config) (*Tournament, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
	}

	if publisher == nil {
		publisher = event.Discard
	}

	if clock == nil {
		clock = quartz.NewReal()
	}

	generator := cfg.Generator
	if generator == nil {
		generator = rng.Crypto{}
	}

	t := &Tournament{
		id:              cfg.ID,
		logger:          logger.WithField("tournament", cfg.ID),
		publisher:       publisher,
		clock:           clock,
		config:          cfg,
		generator:       generator,
		status:          StatusRegistering,
		registrations:   make(map[string]*Registration),
		order:           make([]string, 0, cfg.MaxPlayers),
		tables:          make([]*Table, 0),
		handStartStacks: make(map[string]chips.Chips),
		createdAt:       clock.Now(),
	}

	t.publisher.Publish(TournamentCreated{
		TournamentID:  t.id,
		Name:          cfg.Name,
		Type:          cfg.Type,
		BuyIn:         cfg.BuyIn,
		StartingStack: cfg.StartingStack,
		MaxPlayers:    cfg.MaxPlayers,
	})

	t.logger.WithField("type", cfg.Type).Infof("created %s", cfg.Name)
	return t, nil
}

// ID returns the tournament id
func (t *Tournament) ID() string {
	return t.id
}

// Config returns the configuration
func (t *Tournament) Config() Config {
	return t.config
}

// Status returns the current status
func (t *Tournament) Status() Status {
	return t.status
}

// Revision increases on every successful mutation
func (t *Tournament) Revision() int64 {
	return t.revision
}

// Level returns the current blind level number, 0 before the start
func (t *Tournament) Level() int {
	return t.level
}

// CurrentBlinds returns the blind level in effect
func (t *Tournament) CurrentBlinds() BlindLevel {
	return t.config.Blinds.Level(t.level)
}

// Registration returns a player's registration
func (t *Tournament) Registration(playerID string) (*Registration, bool) {
	r, ok := t.registrations[playerID]
	return r, ok
}

// Registrations returns every registration in the order players registered
func (t *Tournament) Registrations() []*Registration {
	regs := make([]*Registration, 0, len(t.order))
	for _, id := range t.order {
		regs = append(regs, t.registrations[id])
	}

	return regs
}

// Tables returns the active tables
func (t *Tournament) Tables() []*Table {
	tables := make([]*Table, 0, len(t.tables))
	for _, table := range t.tables {
		if table.Active {
			tables = append(tables, table)
		}
	}

	return tables
}

// Table returns a table by id, including closed tables
func (t *Tournament) Table(id string) (*Table, bool) {
	for _, table := range t.tables {
		if table.ID == id {
			return table, true
		}
	}

	return nil, false
}

// ActivePlayerCount returns how many players are still registered or playing
func (t *Tournament) ActivePlayerCount() int {
	n := 0
	for _, r := range t.registrations {
		if r.IsActive() {
			n++
		}
	}

	return n
}

// entrantCount returns every registration that paid in
func (t *Tournament) entrantCount() int {
	n := 0
	for _, r := range t.registrations {
		if r.Status != RegistrationWithdrawn {
			n++
		}
	}

	return n
}

// PrizePool returns the chips paid out by finish position
func (t *Tournament) PrizePool() chips.Chips {
	entrants := int64(t.entrantCount())
	pool := t.config.BuyIn.Int64()*entrants +
		t.config.RebuyAmount.Int64()*int64(t.totalRebuys) +
		t.config.AddOnAmount.Int64()*int64(t.totalAddOns)

	if t.config.Type == TypeBounty {
		pool -= t.config.BountyAmount.Int64() * entrants
	}

	if pool < 0 {
		return chips.Zero
	}

	return chips.MustNew(pool)
}

// CalculatePrizeForPosition returns the prize for a finish position, zero outside the payouts
func (t *Tournament) CalculatePrizeForPosition(position int) chips.Chips {
	if position < 1 || position > len(t.config.Payouts) {
		return chips.Zero
	}

	prize, err := t.PrizePool().Percentage(t.config.Payouts[position-1])
	if err != nil {
		// payouts are validated as non-negative
		panic(err)
	}

	return prize
}

// RegisterPlayer enters a player
func (t *Tournament) RegisterPlayer(playerID, name string) error {
	if t.status != StatusRegistering && t.status != StatusLateRegistration {
		return t.newStateError("register", "registration is closed")
	}

	if playerID == "" {
		return t.newStateError("register", "player id is required")
	}

	existing, exists := t.registrations[playerID]
	if exists && existing.Status != RegistrationWithdrawn {
		return t.newStateError("register", "player %s is already registered", playerID)
	}

	if t.ActivePlayerCount() >= t.config.MaxPlayers {
		return t.newStateError("register", "the field is full at %d players", t.config.MaxPlayers)
	}

	if name == "" {
		name = playerID
	}

	reg := &Registration{
		PlayerID:     playerID,
		Name:         name,
		Status:       RegistrationRegistered,
		RegisteredAt: t.clock.Now(),
	}

	late := t.status == StatusLateRegistration
	if late {
		table := t.tableForLateRegistrant()
		if _, err := table.seat(playerID); err != nil {
			return t.newStateError("register", "%v", err)
		}

		reg.Status = RegistrationPlaying
		reg.Chips = t.config.StartingStack
		reg.TableID = table.ID
		reg.Late = true
	}

	t.registrations[playerID] = reg
	if !exists {
		t.order = append(t.order, playerID)
	}

	t.revision++
	t.publisher.Publish(PlayerRegistered{
		TournamentID:    t.id,
		PlayerID:        playerID,
		Name:            name,
		Late:            late,
		TableID:         reg.TableID,
		RegisteredCount: t.ActivePlayerCount(),
	})

	t.logger.WithField("player", playerID).Info("registered")
	return nil
}

// tableForLateRegistrant returns the smallest active table with an open seat, opening one if needed
func (t *Tournament) tableForLateRegistrant() *Table {
	var smallest *Table
	for _, table := range t.Tables() {
		if table.PlayerCount() >= t.config.TableSize {
			continue
		}

		if smallest == nil || table.PlayerCount() < smallest.PlayerCount() {
			smallest = table
		}
	}

	if smallest != nil {
		return smallest
	}

	table := t.openTable()
	t.publishTableCreated(table)
	return table
}

// Unregister withdraws a player before the start
func (t *Tournament) Unregister(playerID string) error {
	if t.status != StatusRegistering {
		return t.newStateError("unregister", "the tournament has started")
	}

	reg, ok := t.registrations[playerID]
	if !ok || reg.Status != RegistrationRegistered {
		return t.newStateError("unregister", "player %s is not registered", playerID)
	}

	reg.Status = RegistrationWithdrawn
	t.revision++
	t.logger.WithField("player", playerID).Info("unregistered")
	return nil
}

// Start draws the tables and starts the clock
func (t *Tournament) Start() error {
	if t.status != StatusRegistering {
		return t.newStateError("start", "the tournament is not registering")
	}

	players := make([]*Registration, 0, len(t.order))
	for _, id := range t.order {
		if reg := t.registrations[id]; reg.IsActive() {
			players = append(players, reg)
		}
	}

	if len(players) < t.config.MinPlayers {
		return t.newStateError("start", "need %d players, have %d", t.config.MinPlayers, len(players))
	}

	tableCount := (len(players) + t.config.TableSize - 1) / t.config.TableSize
	tables := make([]*Table, tableCount)
	for i := range tables {
		tables[i] = t.openTable()
	}

	for i, reg := range players {
		table := tables[i%tableCount]
		if _, err := table.seat(reg.PlayerID); err != nil {
			// tableCount fits every player
			panic(err)
		}

		reg.Status = RegistrationPlaying
		reg.Chips = t.config.StartingStack
		reg.TableID = table.ID
	}

	for _, table := range tables {
		t.publishTableCreated(table)
	}

	t.level = 1
	t.levelStartedAt = t.clock.Now()
	t.startedAt = t.levelStartedAt

	// a single table skips straight to its stage so one status change is published
	next := StatusRunning
	switch {
	case t.config.LateRegistrationLevels > 0:
		next = StatusLateRegistration
	case len(players) == 2:
		next = StatusHeadsUp
	case tableCount == 1:
		next = StatusFinalTable
	}

	t.setStatus(next)

	t.revision++
	t.publisher.Publish(TournamentStarted{
		TournamentID: t.id,
		PlayerCount:  len(players),
		TableCount:   tableCount,
		PrizePool:    t.PrizePool(),
	})

	t.logger.WithFields(logrus.Fields{
		"players": len(players),
		"tables":  tableCount,
	}).Info("started")

	return nil
}

func (t *Tournament) openTable() *Table {
	t.nextTableNumber++
	table := newTable(uuid.New().String(), t.nextTableNumber, t.config.TableSize)
	t.tables = append(t.tables, table)
	return table
}

func (t *Tournament) publishTableCreated(table *Table) {
	t.publisher.Publish(TableCreated{
		TournamentID: t.id,
		TableID:      table.ID,
		Number:       table.Number,
		PlayerIDs:    table.PlayerIDs(),
	})
}

func (t *Tournament) setStatus(status Status) {
	if t.status == status {
		return
	}

	previous := t.status
	t.status = status
	t.publisher.Publish(TournamentStatusChanged{
		TournamentID: t.id,
		Previous:     previous,
		Status:       status,
	})

	t.logger.WithField("previous", previous).Infof("status is now %s", status)
}
