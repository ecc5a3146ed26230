package texasholdem

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tourneypoker-server/pkg/chips"
)

func TestBettingRound_PreFlop(t *testing.T) {
	a := assert.New(t)

	r := NewPreFlopRound(20)
	a.Equal(PhasePreFlop, r.Phase)
	a.Equal(chips.Chips(20), r.CurrentBet)
	a.Equal(chips.Chips(20), r.MinRaise)
	a.Equal(chips.Chips(40), r.MinimumRaiseTotal())
	a.Equal(chips.Chips(10), r.AmountToCall(10))
	a.Equal(chips.Zero, r.AmountToCall(30))

	a.False(r.IsValidRaise(39))
	a.True(r.IsValidRaise(40))
}

func TestBettingRound_Transitions(t *testing.T) {
	a := assert.New(t)

	r := StartPostFlop(PhaseFlop, 20)
	a.Equal(chips.Zero, r.CurrentBet)
	a.Equal(chips.Chips(20), r.MinimumRaiseTotal())

	bet := r.WithBet(50, 50, "alice")
	a.Equal(chips.Chips(50), bet.CurrentBet)
	a.Equal(chips.Chips(50), bet.MinRaise)
	a.Equal("alice", bet.LastAggressor)
	a.Equal(1, bet.ActionCount)

	// the original is left alone
	a.Equal(chips.Zero, r.CurrentBet)
	a.Equal(0, r.ActionCount)

	raise := bet.WithRaise(150, 100, "bob")
	a.Equal(chips.Chips(150), raise.CurrentBet)
	a.Equal(chips.Chips(100), raise.MinRaise)
	a.Equal(chips.Chips(250), raise.MinimumRaiseTotal())
	a.Equal("bob", raise.LastAggressor)
	a.Equal(2, raise.ActionCount)

	called := raise.WithAction()
	a.Equal(3, called.ActionCount)
	a.Equal(raise.CurrentBet, called.CurrentBet)
}

func TestBettingRound_IsComplete(t *testing.T) {
	a := assert.New(t)

	r := StartPostFlop(PhaseTurn, 20)
	a.False(r.IsComplete(3, 2))
	a.True(r.IsComplete(3, 3))
	a.True(r.IsComplete(2, 3))
}

func TestPhase(t *testing.T) {
	a := assert.New(t)

	a.Equal("pre-flop", PhasePreFlop.String())
	a.Equal("phase(42)", Phase(42).String())
	a.True(PhaseRiver.IsBettingRound())
	a.False(PhaseShowdown.IsBettingRound())
	a.True(PhaseShowdown.IsHandInProgress())
	a.False(PhaseFinished.IsHandInProgress())
	a.Equal(PhaseFlop, PhasePreFlop.next())
	a.Equal(3, PhaseFlop.cardsToDeal())
	a.Equal(1, PhaseRiver.cardsToDeal())

	b, err := PhaseTurn.MarshalJSON()
	a.NoError(err)
	a.Equal(`{"id":3,"name":"turn"}`, string(b))
}
