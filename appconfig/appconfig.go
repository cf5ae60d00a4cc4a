package appconfig

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/isaacvp2/pokerproj/holdem"
)

type AppConfig struct {
	Trials   int    `yaml:"trials" toml:"trials" env:"POKER_TRIALS" env-default:"100000" env-description:"Monte Carlo trials per equity estimate"`
	Workers  int    `yaml:"workers" toml:"workers" env:"POKER_WORKERS" env-default:"1" env-description:"Goroutines sharing the trials"`
	Seed     int64  `yaml:"seed" toml:"seed" env:"POKER_SEED" env-default:"0" env-description:"Random seed, 0 picks one from the clock"`
	LogLevel string `yaml:"log-level" toml:"log-level" env:"POKER_LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`

	Dataset DatasetConfig `yaml:"dataset" toml:"dataset" env-prefix:"POKER_DATASET_"`
}

type DatasetConfig struct {
	Simulations  int                `yaml:"simulations" toml:"simulations" env:"SIMULATIONS" env-default:"100000" env-description:"Random scenarios to generate"`
	Trials       int                `yaml:"trials" toml:"trials" env:"TRIALS" env-default:"100" env-description:"Trials per generated scenario"`
	StageWeights map[string]float32 `yaml:"stage-weights" toml:"stage-weights" env:"STAGE_WEIGHTS" env-default:"preflop:1,flop:1,turn:1,river:1" env-description:"Relative weight of each stage"`
	Output       string             `yaml:"output" toml:"output" env:"OUTPUT" env-default:"PokerOddsDataset.csv" env-description:"CSV output path, empty disables"`
	DBDriver     string             `yaml:"db-driver" toml:"db-driver" env:"DB_DRIVER" env-description:"sqlite or pgx, empty disables"`
	DBDSN        string             `yaml:"db-dsn" toml:"db-dsn" env:"DB_DSN" env-description:"Database connection string"`
}

// Load environment variables to AppConfig instance. A non-empty path reads a yaml, toml or env
// file first; environment variables override it.
func LoadAppConfig(path string) (*AppConfig, error) {
	cfg := &AppConfig{}
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Usage() string {
	desc, err := cleanenv.GetDescription(&AppConfig{}, nil)
	if err != nil {
		return ""
	}
	return desc
}

func (c *AppConfig) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", c.Trials)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Dataset.Simulations < 0 || c.Dataset.Trials <= 0 {
		return fmt.Errorf("dataset needs simulations >= 0 and trials > 0")
	}
	if _, err := c.Dataset.Stages(); err != nil {
		return err
	}
	switch c.Dataset.DBDriver {
	case "", "sqlite", "pgx":
	default:
		return fmt.Errorf("unsupported db driver %q", c.Dataset.DBDriver)
	}
	return nil
}

// RandSeed returns the configured seed or a clock based one.
func (c *AppConfig) RandSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

func (c *AppConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
}

// Stages maps the configured weights onto game stages.
func (d DatasetConfig) Stages() (map[holdem.GameStage]float32, error) {
	out := make(map[holdem.GameStage]float32, len(d.StageWeights))
	for name, w := range d.StageWeights {
		stage, err := holdem.ParseStage(name)
		if err != nil {
			return nil, fmt.Errorf("stage weights: %w", err)
		}
		out[stage] = w
	}
	return out, nil
}
