package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"bitbucket.org/sotavant/dolly-skill/internal/gadget"
)

var flagRunAddr string
var flagLogLevel string
var flagSkillID string
var flagDiscoveryTimeout time.Duration

// envConfig перекрывает значения флагов, если переменные окружения заданы.
type envConfig struct {
	RunAddr          string        `env:"RUN_ADDR"`
	LogLevel         string        `env:"LOG_LEVEL"`
	SkillID          string        `env:"SKILL_ID"`
	DiscoveryTimeout time.Duration `env:"DISCOVERY_TIMEOUT"`
}

func parseFlags() error {
	flag.StringVar(&flagRunAddr, "a", ":8080", "address and port")
	flag.StringVar(&flagLogLevel, "l", "debug", "log level")
	flag.StringVar(&flagSkillID, "s", "", "skill id to accept requests for, empty accepts any")
	flag.DurationVar(&flagDiscoveryTimeout, "t", gadget.DefaultTimeout, "gadget discovery timeout")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if cfg.RunAddr != "" {
		flagRunAddr = cfg.RunAddr
	}

	if cfg.LogLevel != "" {
		flagLogLevel = cfg.LogLevel
	}

	if cfg.SkillID != "" {
		flagSkillID = cfg.SkillID
	}

	if cfg.DiscoveryTimeout > 0 {
		flagDiscoveryTimeout = cfg.DiscoveryTimeout
	}

	return nil
}
