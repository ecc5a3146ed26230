package event

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Event is something that happened in a hand or a tournament
type Event interface {
	// EventName is a stable, kebab-cased identifier such as "player-acted"
	EventName() string
}

// Publisher accepts events one at a time
// Publish must not block the caller for long and has no result
type Publisher interface {
	Publish(e Event)
}

// PublisherFunc adapts a function to a Publisher
type PublisherFunc func(e Event)

// Publish calls f(e)
func (f PublisherFunc) Publish(e Event) {
	f(e)
}

// Discard is a publisher that drops every event
var Discard Publisher = PublisherFunc(func(Event) {})

// Multi publishes every event to each publisher in order
type Multi []Publisher

// Publish sends e to every publisher
func (m Multi) Publish(e Event) {
	for _, p := range m {
		p.Publish(e)
	}
}

// Recorder keeps every published event in memory
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder returns an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{
		events: make([]Event, 0),
	}
}

// Publish records the event
func (r *Recorder) Publish(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]Event, len(r.events))
	copy(events, r.events)
	return events
}

// Names returns the name of each recorded event
func (r *Recorder) Names() []string {
	events := r.Events()
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.EventName()
	}

	return names
}

// Reset clears the recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = r.events[:0]
}

// LogPublisher logs each event
type LogPublisher struct {
	logger logrus.FieldLogger
}

// NewLogPublisher returns a publisher that logs events at debug level
func NewLogPublisher(logger logrus.FieldLogger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event
func (l *LogPublisher) Publish(e Event) {
	l.logger.WithField("event", e.EventName()).Debugf("%+v", e)
}
