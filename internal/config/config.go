package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	Port          int    `env:"PORT" envDefault:"8080"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv        string `env:"APP_ENV" envDefault:"production"`
	CurrencyLabel string `env:"CURRENCY_LABEL" envDefault:"RM"`
	MaxBatchSize  int    `env:"MAX_BATCH_SIZE" envDefault:"500"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.MaxBatchSize <= 0 {
		return nil, fmt.Errorf("config.Load: MAX_BATCH_SIZE must be positive, got %d", cfg.MaxBatchSize)
	}
	return &cfg, nil
}
