package main

import (
	"os"

	"gopkg.in/yaml.v2"

	"tourneypoker-server/internal/config"
)

// ConfigCmd prints the defaults as a starting config.yaml
type ConfigCmd struct{}

// Run prints the default configuration
func (c *ConfigCmd) Run() error {
	return yaml.NewEncoder(os.Stdout).Encode(config.DefaultConfig())
}
