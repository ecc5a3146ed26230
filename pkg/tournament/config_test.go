package tournament

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	a := assert.New(t)
	a.NoError(testConfig().Validate())

	tests := []struct {
		name   string
		modify func(c *Config)
		err    string
	}{
		{"name", func(c *Config) { c.Name = "" }, "name is required"},
		{"type", func(c *Config) { c.Type = "shootout" }, "unknown tournament type: shootout"},
		{"stack", func(c *Config) { c.StartingStack = 0 }, "starting stack must be positive"},
		{"negative stack", func(c *Config) { c.StartingStack = -1500 }, "chips cannot be negative: -1500"},
		{"negative buy-in", func(c *Config) { c.BuyIn = -100 }, "chips cannot be negative: -100"},
		{"min players", func(c *Config) { c.MinPlayers = 1 }, "min players must be at least 2, got 1"},
		{"max players", func(c *Config) { c.MaxPlayers = 1 }, "max players of 1 is less than min players of 2"},
		{"table size", func(c *Config) { c.TableSize = 11 }, "table size must be between 2 and 10, got 11"},
		{"blinds", func(c *Config) { c.Blinds = BlindStructure{} }, "blind structure is required"},
		{"no payouts", func(c *Config) { c.Payouts = nil }, "at least one payout is required"},
		{"negative payout", func(c *Config) { c.Payouts = []int64{110, -10} }, "payout for position 2 cannot be negative"},
		{"payout total", func(c *Config) { c.Payouts = []int64{60, 50} }, "payouts add up to 110%"},
		{"late registration", func(c *Config) { c.LateRegistrationLevels = -1 }, "late registration levels cannot be negative"},
		{"rebuy chips", func(c *Config) { c.Type = TypeRebuy }, "rebuy tournaments need rebuy chips"},
		{"rebuy count", func(c *Config) {
			c.Type = TypeRebuy
			c.RebuyChips = 1500
		}, "rebuy tournaments need at least one rebuy"},
		{"bounty", func(c *Config) { c.Type = TypeBounty }, "bounty tournaments need a bounty amount"},
		{"bounty too big", func(c *Config) {
			c.Type = TypeBounty
			c.BountyAmount = 200
		}, "bounty of 200 exceeds the buy-in of 100"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := testConfig()
			test.modify(&c)
			assert.EqualError(t, c.Validate(), test.err)
		})
	}
}
