package playable

import "time"

// Tickable is an interface that allows a periodic tick to update its state
type Tickable interface {
	// Delay is how long the wait between each tick should be
	Delay() time.Duration

	// Tick will be called periodically
	// Return true if the state changed and listeners should get updated data
	Tick() (bool, error)
}
