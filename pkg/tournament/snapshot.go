package tournament

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"

	"tourneypoker-server/internal/rng"
	"tourneypoker-server/pkg/chips"
	"tourneypoker-server/pkg/event"
)

// snapshotVersion is bumped whenever the snapshot layout changes
const snapshotVersion = 1

type snapshot struct {
	Version            int             `json:"version"`
	Config             Config          `json:"config"`
	Status             Status          `json:"status"`
	PausedFrom         Status          `json:"pausedFrom,omitempty"`
	Level              int             `json:"level"`
	LevelStartedAt     time.Time       `json:"levelStartedAt"`
	PausedRemaining    time.Duration   `json:"pausedRemaining"`
	Registrations      []*Registration `json:"registrations"`
	Tables             []*Table        `json:"tables"`
	NextTableNumber    int             `json:"nextTableNumber"`
	TotalRebuys        int             `json:"totalRebuys"`
	TotalAddOns        int             `json:"totalAddOns"`
	NeedsConsolidation bool            `json:"needsConsolidation"`
	CreatedAt          time.Time       `json:"createdAt"`
	StartedAt          time.Time       `json:"startedAt"`
	CompletedAt        time.Time       `json:"completedAt"`
	Revision           int64           `json:"revision"`
}

// Snapshot serializes the tournament between hands
// Hands in progress are not included, stacks are as of each table's last finished hand
func (t *Tournament) Snapshot() ([]byte, error) {
	return json.Marshal(snapshot{
		Version:            snapshotVersion,
		Config:             t.config,
		Status:             t.status,
		PausedFrom:         t.pausedFrom,
		Level:              t.level,
		LevelStartedAt:     t.levelStartedAt,
		PausedRemaining:    t.pausedRemaining,
		Registrations:      t.Registrations(),
		Tables:             t.tables,
		NextTableNumber:    t.nextTableNumber,
		TotalRebuys:        t.totalRebuys,
		TotalAddOns:        t.totalAddOns,
		NeedsConsolidation: t.needsConsolidation,
		CreatedAt:          t.createdAt,
		StartedAt:          t.startedAt,
		CompletedAt:        t.completedAt,
		Revision:           t.revision,
	})
}

// Restore rebuilds a tournament from Snapshot output
// No events are published, tables get a new hand engine at their next hand
func Restore(logger logrus.FieldLogger, publisher event.Publisher, clock quartz.Clock, data []byte) (*Tournament, error) {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}

	if s.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version: %d", s.Version)
	}

	if err := s.Config.Validate(); err != nil {
		return nil, err
	}

	if publisher == nil {
		publisher = event.Discard
	}

	if clock == nil {
		clock = quartz.NewReal()
	}

	t := &Tournament{
		id:                 s.Config.ID,
		logger:             logger.WithField("tournament", s.Config.ID),
		publisher:          publisher,
		clock:              clock,
		config:             s.Config,
		generator:          rng.Crypto{},
		status:             s.Status,
		pausedFrom:         s.PausedFrom,
		level:              s.Level,
		levelStartedAt:     s.LevelStartedAt,
		pausedRemaining:    s.PausedRemaining,
		registrations:      make(map[string]*Registration, len(s.Registrations)),
		order:              make([]string, 0, len(s.Registrations)),
		tables:             s.Tables,
		nextTableNumber:    s.NextTableNumber,
		totalRebuys:        s.TotalRebuys,
		totalAddOns:        s.TotalAddOns,
		needsConsolidation: s.NeedsConsolidation,
		handStartStacks:    make(map[string]chips.Chips),
		createdAt:          s.CreatedAt,
		startedAt:          s.StartedAt,
		completedAt:        s.CompletedAt,
		revision:           s.Revision,
	}

	if t.tables == nil {
		t.tables = make([]*Table, 0)
	}

	for _, reg := range s.Registrations {
		if _, ok := t.registrations[reg.PlayerID]; ok {
			return nil, fmt.Errorf("player %s is registered twice", reg.PlayerID)
		}

		t.registrations[reg.PlayerID] = reg
		t.order = append(t.order, reg.PlayerID)
	}

	for _, table := range t.tables {
		for _, id := range table.PlayerIDs() {
			if _, ok := t.registrations[id]; !ok {
				return nil, fmt.Errorf("table %d seats unknown player %s", table.Number, id)
			}
		}
	}

	t.logger.WithField("revision", t.revision).Info("restored")
	return t, nil
}
