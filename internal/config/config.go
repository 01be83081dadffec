// Package config reads server settings from the environment.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/soumaysikchi/portfolio/internal/game"
	"github.com/soumaysikchi/portfolio/internal/lifecycle"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	GinMode  string `env:"GIN_MODE" envDefault:"debug"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// LogPretty switches between console output and JSON lines.
	LogPretty bool `env:"LOG_PRETTY" envDefault:"true"`

	DBPath         string   `env:"DB_PATH" envDefault:"portfolio.db"`
	BasePath       string   `env:"BASE_PATH" envDefault:"/"`
	StaticDir      string   `env:"STATIC_DIR" envDefault:"./static"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	LoadingDelay   time.Duration `env:"LOADING_DELAY" envDefault:"4s"`
	IntroEnabled   bool          `env:"INTRO_ENABLED" envDefault:"true"`
	IntroDuration  time.Duration `env:"INTRO_DURATION" envDefault:"6s"`
	IntroSkipAfter time.Duration `env:"INTRO_SKIP_AFTER" envDefault:"3s"`
	TickInterval   time.Duration `env:"TICK_INTERVAL" envDefault:"50ms"`

	AdminUsername     string        `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword     string        `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	AdminTokenTTL     time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"24h"`
	JWTKey            string        `env:"JWT_KEY"`
	HashSalt          string        `env:"HASH_SALT"`

	VisitorRetention time.Duration `env:"VISITOR_RETENTION" envDefault:"8760h"`
	CommandRate      float64       `env:"COMMAND_RATE" envDefault:"30"`
	CommandBurst     int           `env:"COMMAND_BURST" envDefault:"10"`
}

// Load parses the environment into a Config, filling secrets that were
// left unset with random values.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.JWTKey == "" {
		cfg.JWTKey = randomHex(32)
	}
	if cfg.HashSalt == "" {
		cfg.HashSalt = randomHex(16)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.LoadingDelay < 0:
		return fmt.Errorf("LOADING_DELAY must not be negative")
	case c.IntroDuration <= 0:
		return fmt.Errorf("INTRO_DURATION must be positive")
	case c.IntroSkipAfter < 0 || c.IntroSkipAfter > c.IntroDuration:
		return fmt.Errorf("INTRO_SKIP_AFTER must be within INTRO_DURATION")
	case c.TickInterval <= 0:
		return fmt.Errorf("TICK_INTERVAL must be positive")
	case c.CommandRate <= 0 || c.CommandBurst <= 0:
		return fmt.Errorf("COMMAND_RATE and COMMAND_BURST must be positive")
	case c.VisitorRetention <= 0:
		return fmt.Errorf("VISITOR_RETENTION must be positive")
	}
	return nil
}

// Lifecycle maps the timing settings onto an orchestrator config. The
// subtitle cue keeps its place three quarters into the intro.
func (c Config) Lifecycle() lifecycle.Config {
	cfg := lifecycle.DefaultConfig()
	cfg.LoadingDelay = c.LoadingDelay
	cfg.IntroEnabled = c.IntroEnabled
	cfg.Intro.Duration = c.IntroDuration
	for i, cue := range cfg.Intro.Script {
		switch cue.Name {
		case lifecycle.CueSkipOffered:
			cfg.Intro.Script[i].At = c.IntroSkipAfter
		case lifecycle.CueSubtitle:
			cfg.Intro.Script[i].At = c.IntroDuration * 3 / 4
		}
	}
	return cfg
}

func (c Config) Rules() game.Rules {
	r := game.DefaultRules()
	r.TickInterval = c.TickInterval
	return r
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
