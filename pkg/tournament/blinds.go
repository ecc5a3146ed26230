package tournament

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"tourneypoker-server/pkg/chips"
)

// BlindLevel is one step of the blind schedule
type BlindLevel struct {
	Level      int           `json:"level"`
	SmallBlind chips.Chips   `json:"smallBlind"`
	BigBlind   chips.Chips   `json:"bigBlind"`
	Ante       chips.Chips   `json:"ante"`
	Duration   time.Duration `json:"duration"`
}

// Validate checks the blinds are positive and the big blind is at least the small blind
func (b BlindLevel) Validate() error {
	if b.Level < 1 {
		return fmt.Errorf("level must be at least 1, got %d", b.Level)
	}

	if err := chips.Validate(b.SmallBlind, b.BigBlind, b.Ante); err != nil {
		return fmt.Errorf("level %d: %w", b.Level, err)
	}

	if b.SmallBlind.IsZero() || b.BigBlind.IsZero() {
		return fmt.Errorf("level %d: blinds must be positive", b.Level)
	}

	if b.SmallBlind.IsGreaterThan(b.BigBlind) {
		return fmt.Errorf("level %d: big blind of %d is less than the small blind of %d", b.Level, b.BigBlind, b.SmallBlind)
	}

	if b.Duration < 0 {
		return fmt.Errorf("level %d: duration cannot be negative", b.Level)
	}

	return nil
}

// BlindStructure is an ordered, read-only list of blind levels
type BlindStructure struct {
	levels []BlindLevel
}

// NewBlindStructure validates the levels and orders them by level number
// Level numbers must run 1, 2, 3, ... without gaps
func NewBlindStructure(levels ...BlindLevel) (BlindStructure, error) {
	if len(levels) == 0 {
		return BlindStructure{}, errors.New("blind structure needs at least one level")
	}

	sorted := make([]BlindLevel, len(levels))
	copy(sorted, levels)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Level < sorted[j].Level
	})

	for i, level := range sorted {
		if err := level.Validate(); err != nil {
			return BlindStructure{}, err
		}

		if level.Level != i+1 {
			return BlindStructure{}, fmt.Errorf("expected level %d, got %d", i+1, level.Level)
		}
	}

	return BlindStructure{levels: sorted}, nil
}

// MustBlindStructure is like NewBlindStructure, but panics on error
func MustBlindStructure(levels ...BlindLevel) BlindStructure {
	b, err := NewBlindStructure(levels...)
	if err != nil {
		panic(err)
	}

	return b
}

// DefaultBlindStructure returns a standard schedule where every level lasts for duration
func DefaultBlindStructure(duration time.Duration) BlindStructure {
	schedule := [][3]int64{
		{10, 20, 0},
		{15, 30, 0},
		{25, 50, 0},
		{50, 100, 10},
		{75, 150, 15},
		{100, 200, 25},
		{150, 300, 25},
		{200, 400, 50},
		{300, 600, 75},
		{400, 800, 100},
		{500, 1000, 100},
		{700, 1400, 200},
		{1000, 2000, 300},
	}

	levels := make([]BlindLevel, len(schedule))
	for i, s := range schedule {
		levels[i] = BlindLevel{
			Level:      i + 1,
			SmallBlind: chips.MustNew(s[0]),
			BigBlind:   chips.MustNew(s[1]),
			Ante:       chips.MustNew(s[2]),
			Duration:   duration,
		}
	}

	return MustBlindStructure(levels...)
}

// Len returns the number of levels
func (b BlindStructure) Len() int {
	return len(b.levels)
}

// Level returns the given level, clamped to the first and last levels
func (b BlindStructure) Level(n int) BlindLevel {
	if len(b.levels) == 0 {
		return BlindLevel{}
	}

	if n < 1 {
		n = 1
	}

	if n > len(b.levels) {
		n = len(b.levels)
	}

	return b.levels[n-1]
}

// Levels returns a copy of every level
func (b BlindStructure) Levels() []BlindLevel {
	levels := make([]BlindLevel, len(b.levels))
	copy(levels, b.levels)
	return levels
}

// MarshalJSON encodes the levels as an array
func (b BlindStructure) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.levels)
}

// UnmarshalJSON decodes and validates an array of levels
func (b *BlindStructure) UnmarshalJSON(data []byte) error {
	var levels []BlindLevel
	if err := json.Unmarshal(data, &levels); err != nil {
		return err
	}

	structure, err := NewBlindStructure(levels...)
	if err != nil {
		return err
	}

	*b = structure
	return nil
}
