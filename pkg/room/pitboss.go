package room

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tourneypoker-server/pkg/db"
	"tourneypoker-server/pkg/tournament"
)

// PitBoss is responsible for the dealers of every tournament
type PitBoss struct {
	logger  logrus.FieldLogger
	clock   quartz.Clock
	store   db.Store
	options Options

	dealers map[string]*Dealer
	lock    sync.RWMutex
}

// NewPitBoss returns a new pit boss
func NewPitBoss(logger logrus.FieldLogger, store db.Store, clock quartz.Clock, options Options) *PitBoss {
	if clock == nil {
		clock = quartz.NewReal()
	}

	return &PitBoss{
		logger:  logger,
		clock:   clock,
		store:   store,
		options: options,
		dealers: make(map[string]*Dealer),
	}
}

// StartShift restores every stored tournament and starts its dealer
// A tournament that cannot be restored is logged and skipped
func (p *PitBoss) StartShift(ctx context.Context) error {
	docs, err := p.store.List(ctx, Kind)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		d := p.newDealer(doc.ID)
		t, err := tournament.Restore(d.logger, d.publisher(), p.clock, doc.Data)
		if err != nil {
			d.logger.WithError(err).Error("could not restore tournament")
			continue
		}

		d.tournament = t
		d.version = doc.Version
		if err := p.add(d); err != nil {
			d.logger.WithError(err).Error("could not add dealer")
			continue
		}

		d.StartShift()
	}

	p.logger.WithField("tournaments", len(docs)).Info("pit boss started shift")
	return nil
}

// EndShift stops every dealer
func (p *PitBoss) EndShift() {
	p.lock.Lock()
	defer p.lock.Unlock()

	for id, d := range p.dealers {
		d.EndShift()
		delete(p.dealers, id)
	}
}

// CreateTournament creates, saves, and deals a new tournament
func (p *PitBoss) CreateTournament(ctx context.Context, cfg tournament.Config) (*Dealer, error) {
	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
	}

	d := p.newDealer(cfg.ID)
	t, err := tournament.New(d.logger, d.publisher(), p.clock, cfg)
	if err != nil {
		return nil, err
	}

	d.tournament = t

	// the run loop has not started, so it is safe to save here
	if err := d.save(ctx); err != nil {
		return nil, err
	}

	if err := p.add(d); err != nil {
		return nil, err
	}

	d.StartShift()
	return d, nil
}

// Dealer returns the dealer of a tournament
func (p *PitBoss) Dealer(id string) (*Dealer, bool) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	d, ok := p.dealers[id]
	return d, ok
}

// Dealers returns every dealer, ordered by tournament id
func (p *PitBoss) Dealers() []*Dealer {
	p.lock.RLock()
	dealers := make([]*Dealer, 0, len(p.dealers))
	for _, d := range p.dealers {
		dealers = append(dealers, d)
	}
	p.lock.RUnlock()

	sort.Slice(dealers, func(i, j int) bool {
		return dealers[i].ID() < dealers[j].ID()
	})

	return dealers
}

// ClientConnected subscribes the client to its tournament
func (p *PitBoss) ClientConnected(client *Client) error {
	d, ok := p.Dealer(client.tournamentID)
	if !ok {
		return fmt.Errorf("tournament %s not found", client.tournamentID)
	}

	p.logger.WithField("client", client.String()).Debug("client connected")
	client.Events, client.unsubscribe = d.Subscribe()
	d.AddClient(client)
	return nil
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.logger.WithField("client", client.String()).Debug("client disconnected")
	if client.unsubscribe != nil {
		client.unsubscribe()
	}

	if client.dealer != nil {
		client.dealer.RemoveClient(client)
	}
}

func (p *PitBoss) newDealer(id string) *Dealer {
	return newDealer(id, p.logger.WithField("tournament", id), p.clock, p.store, p.options)
}

func (p *PitBoss) add(d *Dealer) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if _, found := p.dealers[d.ID()]; found {
		return fmt.Errorf("tournament %s already exists", d.ID())
	}

	p.dealers[d.ID()] = d
	return nil
}
