package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	Observability ObservabilityConfig `yaml:"observability"`
	Match         MatchConfig         `yaml:"match"`
	Rating        RatingConfig        `yaml:"rating"`
	Queue         QueueConfig         `yaml:"queue"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the address of the health, metrics and rating API server.
type HTTPConfig struct {
	Address string `yaml:"address"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
}

// MatchConfig holds the match timeouts and the per-player command limit.
type MatchConfig struct {
	SuggestionTimeout   time.Duration `yaml:"suggestion_timeout"`
	ConfirmationTimeout time.Duration `yaml:"confirmation_timeout"`
	CommandsPerSecond   float64       `yaml:"commands_per_second"`
	CommandBurst        int           `yaml:"command_burst"`
}

// RatingConfig holds the Glicko-2 system constants.
type RatingConfig struct {
	Mu      float64 `yaml:"mu"`
	Phi     float64 `yaml:"phi"`
	Sigma   float64 `yaml:"sigma"`
	Tau     float64 `yaml:"tau"`
	Epsilon float64 `yaml:"epsilon"`
	// HistoryLimit bounds how many past results feed a rating period. 0 means all.
	HistoryLimit     int `yaml:"history_limit"`
	LeaderboardLimit int `yaml:"leaderboard_limit"`
}

// QueueConfig holds River worker settings.
type QueueConfig struct {
	MaxWorkers int `yaml:"max_workers"`
}

// LoadConfig loads the configuration from a YAML file. A .env file next to
// the process is loaded first when present. Environment variables override
// the file; without a file the configuration comes from the environment alone.
func LoadConfig(filename string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS_URL environment variable not set")
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("MATCH_SUGGESTION_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid MATCH_SUGGESTION_TIMEOUT value: %w", err)
		}
		cfg.Match.SuggestionTimeout = d
	}
	if v := os.Getenv("MATCH_CONFIRMATION_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid MATCH_CONFIRMATION_TIMEOUT value: %w", err)
		}
		cfg.Match.ConfirmationTimeout = d
	}
	if v := os.Getenv("MATCH_COMMANDS_PER_SECOND"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid MATCH_COMMANDS_PER_SECOND value: %w", err)
		}
		cfg.Match.CommandsPerSecond = f
	}
	if v := os.Getenv("RATING_HISTORY_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATING_HISTORY_LIMIT value: %w", err)
		}
		cfg.Rating.HistoryLimit = n
	}
	if v := os.Getenv("QUEUE_MAX_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid QUEUE_MAX_WORKERS value: %w", err)
		}
		cfg.Queue.MaxWorkers = n
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = "development"
	}
	if c.Observability.LogLevel == "" {
		c.Observability.LogLevel = "info"
	}
	if c.Match.SuggestionTimeout == 0 {
		c.Match.SuggestionTimeout = 5 * time.Minute
	}
	if c.Match.ConfirmationTimeout == 0 {
		c.Match.ConfirmationTimeout = 10 * time.Minute
	}
	if c.Match.CommandsPerSecond == 0 {
		c.Match.CommandsPerSecond = 2
	}
	if c.Match.CommandBurst == 0 {
		c.Match.CommandBurst = 5
	}
	if c.Rating.Mu == 0 {
		c.Rating.Mu = 1500
	}
	if c.Rating.Phi == 0 {
		c.Rating.Phi = 350
	}
	if c.Rating.Sigma == 0 {
		c.Rating.Sigma = 0.06
	}
	if c.Rating.Tau == 0 {
		c.Rating.Tau = 0.5
	}
	if c.Rating.Epsilon == 0 {
		c.Rating.Epsilon = 1e-6
	}
	if c.Rating.LeaderboardLimit == 0 {
		c.Rating.LeaderboardLimit = 25
	}
	if c.Queue.MaxWorkers == 0 {
		c.Queue.MaxWorkers = 10
	}
}
