package config

import (
	"errors"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// StoreMemory keeps tournaments in memory only
const StoreMemory = "memory"

// StorePostgres keeps tournaments in Postgres
const StorePostgres = "postgres"

// Config provides configuration for the tournament server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Store          string `yaml:"store" envconfig:"store"`
	JWT            struct {
		PublicKey  string        `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string        `yaml:"privateKey" envconfig:"private_key"`
		TTL        time.Duration `yaml:"ttl" envconfig:"ttl"`
	} `yaml:"jwt"`
	Admins []string `yaml:"admins" envconfig:"admins"`
	Log    struct {
		Level             string `yaml:"level" envconfig:"level"`
		Format            string `yaml:"format" envconfig:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Tournament struct {
		TickInterval     time.Duration `yaml:"tickInterval" envconfig:"tick_interval"`
		LevelDuration    time.Duration `yaml:"levelDuration" envconfig:"level_duration"`
		ClientBufferSize int           `yaml:"clientBufferSize" envconfig:"client_buffer_size"`
	} `yaml:"tournament"`
}

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	cfg := Config{
		PGDSN:          "postgres://postgres@localhost:5432/postgres?sslmode=disable",
		MigrationsPath: "./sql",
		Store:          StoreMemory,
		Admins:         []string{},
	}

	cfg.JWT.PublicKey = "public.pem"
	cfg.JWT.PrivateKey = "private.key"
	cfg.JWT.TTL = 24 * time.Hour
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Tournament.TickInterval = time.Second
	cfg.Tournament.LevelDuration = 15 * time.Minute
	cfg.Tournament.ClientBufferSize = 64

	return cfg
}

// IsAdmin returns true if the player can run tournaments
func (c Config) IsAdmin(playerID string) bool {
	for _, admin := range c.Admins {
		if admin == playerID {
			return true
		}
	}

	return false
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config.yaml is fine, a missing TOURNEY_CONFIG_FILE is not
func Load() error {
	configFile, explicit := os.LookupEnv("TOURNEY_CONFIG_FILE")
	if !explicit {
		configFile = "config.yaml"
	}

	cfg := DefaultConfig()
	file, err := os.Open(configFile)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return err
	}

	if err := envconfig.Process("tourney", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
