package event

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Broadcaster fans events out to any number of subscribers
// A subscriber whose buffer is full misses the event, publishing never blocks
type Broadcaster struct {
	logger logrus.FieldLogger

	mu          sync.Mutex
	nextID      int
	subscribers map[int]chan Event
	closed      bool
}

// NewBroadcaster returns a new broadcaster
func NewBroadcaster(logger logrus.FieldLogger) *Broadcaster {
	return &Broadcaster{
		logger:      logger,
		subscribers: make(map[int]chan Event),
	}
}

// Subscribe returns a channel of events and a function to stop the subscription
// The channel is closed when the subscription ends or the broadcaster closes
func (b *Broadcaster) Subscribe(buffer int) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			if sub, ok := b.subscribers[id]; ok {
				delete(b.subscribers, id)
				close(sub)
			}
		})
	}
}

// Publish sends the event to every subscriber
func (b *Broadcaster) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- e:
		default:
			b.logger.WithFields(logrus.Fields{
				"subscriber": id,
				"event":      e.EventName(),
			}).Warn("subscriber is full, dropping event")
		}
	}
}

// SubscriberCount returns how many subscribers are listening
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.subscribers)
}

// Close ends every subscription
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	for id, ch := range b.subscribers {
		delete(b.subscribers, id)
		close(ch)
	}
}
