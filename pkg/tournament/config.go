package tournament

import (
	"errors"
	"fmt"

	"tourneypoker-server/internal/rng"
	"tourneypoker-server/pkg/chips"
	"tourneypoker-server/pkg/playable/poker/texasholdem"
)

// Type is the kind of tournament
type Type string

// Type constants
const (
	TypeFreezeout Type = "freezeout"
	TypeRebuy     Type = "rebuy"
	TypeBounty    Type = "bounty"
)

// IsValid returns true if the type is known
func (t Type) IsValid() bool {
	switch t {
	case TypeFreezeout, TypeRebuy, TypeBounty:
		return true
	}

	return false
}

// DefaultTableSize is the number of seats at each table
const DefaultTableSize = 9

// Config describes a tournament
type Config struct {
	ID            string         `json:"id,omitempty"`
	Name          string         `json:"name"`
	Type          Type           `json:"type"`
	BuyIn         chips.Chips    `json:"buyIn"`
	StartingStack chips.Chips    `json:"startingStack"`
	MinPlayers    int            `json:"minPlayers"`
	MaxPlayers    int            `json:"maxPlayers"`
	TableSize     int            `json:"tableSize"`
	Blinds        BlindStructure `json:"blinds"`

	// Payouts are percentages of the prize pool, first place first
	Payouts []int64 `json:"payouts"`

	// LateRegistrationLevels keeps registration open through this level
	LateRegistrationLevels int `json:"lateRegistrationLevels"`

	RebuyAmount     chips.Chips `json:"rebuyAmount"`
	RebuyChips      chips.Chips `json:"rebuyChips"`
	MaxRebuys       int         `json:"maxRebuys"`
	RebuyUntilLevel int         `json:"rebuyUntilLevel"`

	AddOnAmount     chips.Chips `json:"addOnAmount"`
	AddOnChips      chips.Chips `json:"addOnChips"`
	AddOnUntilLevel int         `json:"addOnUntilLevel"`

	BountyAmount chips.Chips `json:"bountyAmount"`

	// Generator shuffles the decks. Defaults to rng.Crypto
	Generator rng.Generator `json:"-"`
}

// Validate checks the configuration for internal consistency
func (c Config) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}

	if !c.Type.IsValid() {
		return fmt.Errorf("unknown tournament type: %s", c.Type)
	}

	if err := chips.Validate(c.BuyIn, c.StartingStack, c.RebuyAmount, c.RebuyChips, c.AddOnAmount, c.AddOnChips, c.BountyAmount); err != nil {
		return err
	}

	if c.StartingStack.IsZero() {
		return errors.New("starting stack must be positive")
	}

	if c.MinPlayers < 2 {
		return fmt.Errorf("min players must be at least 2, got %d", c.MinPlayers)
	}

	if c.MaxPlayers < c.MinPlayers {
		return fmt.Errorf("max players of %d is less than min players of %d", c.MaxPlayers, c.MinPlayers)
	}

	if c.TableSize < texasholdem.MinPlayers || c.TableSize > texasholdem.MaxPlayers {
		return fmt.Errorf("table size must be between %d and %d, got %d", texasholdem.MinPlayers, texasholdem.MaxPlayers, c.TableSize)
	}

	if c.Blinds.Len() == 0 {
		return errors.New("blind structure is required")
	}

	if len(c.Payouts) == 0 {
		return errors.New("at least one payout is required")
	}

	var total int64
	for i, p := range c.Payouts {
		if p < 0 {
			return fmt.Errorf("payout for position %d cannot be negative", i+1)
		}

		total += p
	}

	if total > 100 {
		return fmt.Errorf("payouts add up to %d%%", total)
	}

	if c.LateRegistrationLevels < 0 {
		return errors.New("late registration levels cannot be negative")
	}

	switch c.Type {
	case TypeRebuy:
		if c.RebuyChips.IsZero() {
			return errors.New("rebuy tournaments need rebuy chips")
		}

		if c.MaxRebuys < 1 {
			return errors.New("rebuy tournaments need at least one rebuy")
		}
	case TypeBounty:
		if c.BountyAmount.IsZero() {
			return errors.New("bounty tournaments need a bounty amount")
		}

		if c.BountyAmount.IsGreaterThan(c.BuyIn) {
			return fmt.Errorf("bounty of %d exceeds the buy-in of %d", c.BountyAmount, c.BuyIn)
		}
	}

	return nil
}

// rebuysAllowed returns true if the tournament sells rebuys
func (c Config) rebuysAllowed() bool {
	return c.Type == TypeRebuy && c.MaxRebuys > 0 && !c.RebuyChips.IsZero()
}

// addOnsAllowed returns true if the tournament sells an add-on
func (c Config) addOnsAllowed() bool {
	return !c.AddOnChips.IsZero()
}
