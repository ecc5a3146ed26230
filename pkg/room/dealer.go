package room

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"

	"tourneypoker-server/pkg/db"
	"tourneypoker-server/pkg/event"
	"tourneypoker-server/pkg/playable"
	"tourneypoker-server/pkg/playable/poker/texasholdem"
	"tourneypoker-server/pkg/tournament"
)

// Kind is the document kind tournaments are stored under
const Kind = "tournament"

// ErrShiftEnded is returned when a command reaches a dealer that has stopped
var ErrShiftEnded = errors.New("the dealer is no longer running")

// Dealer owns a single tournament
// Every read and write of the tournament happens on the dealer's run loop
type Dealer struct {
	id      string
	logger  logrus.FieldLogger
	clock   quartz.Clock
	store   db.Store
	options Options

	tournament *tournament.Tournament
	version    int64
	handEnded  bool

	broadcaster *event.Broadcaster
	clients     map[*Client]bool
	lock        sync.RWMutex

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
	stopTicker    context.CancelFunc
}

func newDealer(id string, logger logrus.FieldLogger, clock quartz.Clock, store db.Store, options Options) *Dealer {
	return &Dealer{
		id:            id,
		logger:        logger,
		clock:         clock,
		store:         store,
		options:       options,
		broadcaster:   event.NewBroadcaster(logger),
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// NOTE: the tournament calls the publisher from the run loop
func (d *Dealer) publisher() event.Publisher {
	return event.Multi{
		event.NewLogPublisher(d.logger),
		d.broadcaster,
		event.PublisherFunc(d.watch),
	}
}

func (d *Dealer) watch(e event.Event) {
	if _, ok := e.(texasholdem.HandCompleted); ok {
		d.handEnded = true
	}
}

// ID returns the id of the tournament
func (d *Dealer) ID() string {
	return d.id
}

// Version returns the stored version of the tournament
// NOTE: must only be called from the run loop
func (d *Dealer) Version() int64 {
	return d.version
}

// StartShift starts the run loop and the level clock
func (d *Dealer) StartShift() {
	ctx, cancel := context.WithCancel(context.Background())
	d.stopTicker = cancel

	go d.runLoop()

	delay := d.options.TickInterval
	if delay <= 0 {
		delay = d.tournament.Delay()
	}

	d.clock.TickerFunc(ctx, delay, func() error {
		if err := d.run(ctx, false, func(t *tournament.Tournament) error { return d.tick(t) }); err != nil && !errors.Is(err, ErrShiftEnded) && !errors.Is(err, context.Canceled) {
			d.logger.WithError(err).Error("could not tick")
		}

		return nil
	}, "dealer", "tick")
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			d.broadcaster.Close()
			return
		}
	}
}

// EndShift stops the run loop
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		if d.stopTicker != nil {
			d.stopTicker()
		}

		close(d.close)
	})
}

// Exec runs fn on the run loop
// If fn changes the tournament, the change is saved before Exec returns
func (d *Dealer) Exec(ctx context.Context, fn func(t *tournament.Tournament) error) error {
	return d.run(ctx, true, fn)
}

// View runs fn on the run loop without saving
// fn must not change the tournament
func (d *Dealer) View(ctx context.Context, fn func(t *tournament.Tournament) error) error {
	return d.run(ctx, false, fn)
}

func (d *Dealer) run(ctx context.Context, mutates bool, fn func(t *tournament.Tournament) error) error {
	result := make(chan error, 1)
	job := func() {
		if !mutates {
			result <- fn(d.tournament)
			return
		}

		result <- d.apply(ctx, fn)
	}

	select {
	case d.execInRunLoop <- job:
	case <-d.close:
		return ErrShiftEnded
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) apply(ctx context.Context, fn func(t *tournament.Tournament) error) error {
	revision := d.tournament.Revision()
	err := fn(d.tournament)

	if d.handEnded {
		d.handEnded = false
		if d.tournament.Status().IsPlayable() {
			if _, rebalanceErr := d.tournament.RebalanceTables(); rebalanceErr != nil {
				d.logger.WithError(rebalanceErr).Warn("could not rebalance tables")
			}
		}
	}

	if d.tournament.Revision() == revision {
		return err
	}

	if saveErr := d.save(ctx); saveErr != nil && err == nil {
		err = saveErr
	}

	d.sendGameData()
	return err
}

// NOTE: must only be called from the run loop
func (d *Dealer) tick(tickable playable.Tickable) error {
	changed, err := tickable.Tick()
	if err != nil {
		return err
	}

	if !changed {
		return nil
	}

	err = d.save(context.Background())
	d.sendGameData()
	return err
}

// NOTE: must only be called from the run loop
func (d *Dealer) save(ctx context.Context) error {
	data, err := d.tournament.Snapshot()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, d.options.saveTimeout())
	defer cancel()

	version, err := d.store.Save(ctx, d.id, Kind, data, d.version)
	if err != nil {
		d.logger.WithError(err).WithField("version", d.version).Error("could not save tournament")
		d.reload()
		return fmt.Errorf("could not save tournament: %w", err)
	}

	d.version = version
	return nil
}

// reload replaces the tournament with the stored copy after a failed save
// If the store cannot be read the unsaved tournament is kept and saved again by the next change
// NOTE: must only be called from the run loop
func (d *Dealer) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), d.options.saveTimeout())
	defer cancel()

	doc, err := d.store.Load(ctx, d.id)
	if err != nil {
		d.logger.WithError(err).Error("could not reload tournament")
		return
	}

	t, err := tournament.Restore(d.logger, d.publisher(), d.clock, doc.Data)
	if err != nil {
		d.logger.WithError(err).Error("could not restore stored tournament")
		return
	}

	d.tournament = t
	d.version = doc.Version
	d.handEnded = false
	d.logger.WithField("version", doc.Version).Warn("reloaded tournament from the store")
}

// Subscribe returns the tournament's event stream
func (d *Dealer) Subscribe() (<-chan event.Event, func()) {
	return d.broadcaster.Subscribe(d.options.clientBufferSize())
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// AddClient adds a client and sends it the current state
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	select {
	case d.execInRunLoop <- func() { d.sendClientData(client) }:
	case <-d.close:
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	return nClients == 0
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	for _, client := range d.Clients() {
		d.sendClientData(client)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendClientData(client *Client) {
	if !client.Send(&playable.Response{Key: "tournament", Data: NewSummary(d.tournament)}) {
		d.logger.WithField("client", client.String()).Warn("client buffer is full")
		return
	}

	reg, ok := d.tournament.Registration(client.playerID)
	if !ok || reg.TableID == "" {
		return
	}

	gs, err := d.tournament.StateForPlayer(reg.TableID, client.playerID)
	if err != nil {
		// the table has no game until its first hand
		return
	}

	client.Send(&playable.Response{Key: "game", Value: reg.TableID, Data: gs})
}

// Options control the dealers of a pit boss
type Options struct {
	// TickInterval is how often the level clock is checked
	TickInterval time.Duration

	// ClientBufferSize is the number of messages buffered per client
	ClientBufferSize int

	// SaveTimeout bounds each write to the store
	SaveTimeout time.Duration
}

func (o Options) clientBufferSize() int {
	if o.ClientBufferSize <= 0 {
		return 64
	}

	return o.ClientBufferSize
}

func (o Options) saveTimeout() time.Duration {
	if o.SaveTimeout <= 0 {
		return 5 * time.Second
	}

	return o.SaveTimeout
}
