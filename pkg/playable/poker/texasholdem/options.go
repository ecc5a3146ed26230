package texasholdem

import (
	"github.com/coder/quartz"

	"tourneypoker-server/internal/rng"
	"tourneypoker-server/pkg/chips"
)

// player and seat limits
const (
	MinPlayers      = 2
	MaxPlayers      = 10
	DefaultMaxSeats = 10
)

// Options configures a game of no-limit Texas Hold'em
type Options struct {
	SmallBlind chips.Chips `json:"smallBlind"`
	BigBlind   chips.Chips `json:"bigBlind"`
	Ante       chips.Chips `json:"ante"`

	// MaxSeats is how many seats the table has, seat numbers are 0..MaxSeats-1
	MaxSeats int `json:"maxSeats"`

	// ID identifies the game in events, a random UUID is used if empty
	ID string `json:"-"`

	// Generator shuffles the deck, defaults to rng.Crypto
	Generator rng.Generator `json:"-"`

	// Clock times hands, defaults to the real clock
	Clock quartz.Clock `json:"-"`
}

// DefaultOptions returns the default options for Texas Hold'em
func DefaultOptions() Options {
	return Options{
		SmallBlind: 10,
		BigBlind:   20,
		Ante:       0,
		MaxSeats:   DefaultMaxSeats,
	}
}

// Seat places a player at the table
type Seat struct {
	PlayerID string      `json:"playerId"`
	Seat     int         `json:"seat"`
	Stack    chips.Chips `json:"stack"`
}

func validateBlinds(smallBlind, bigBlind chips.Chips) error {
	if err := chips.Validate(smallBlind, bigBlind); err != nil {
		return newGameConfigurationError("invalid blinds: %s", err)
	}

	if smallBlind.IsZero() || bigBlind.IsZero() {
		return newGameConfigurationError("blinds must be positive")
	}

	if smallBlind.IsGreaterThan(bigBlind) {
		return newGameConfigurationError("big blind of %d must be at least the small blind of %d", bigBlind, smallBlind)
	}

	return nil
}

func validateOptions(opts Options) error {
	if err := validateBlinds(opts.SmallBlind, opts.BigBlind); err != nil {
		return err
	}

	if err := opts.Ante.Validate(); err != nil {
		return newGameConfigurationError("invalid ante: %s", err)
	}

	if opts.MaxSeats < MinPlayers || opts.MaxSeats > MaxPlayers {
		return newGameConfigurationError("max seats must be between %d and %d", MinPlayers, MaxPlayers)
	}

	return nil
}
