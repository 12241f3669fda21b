package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dmitrijs2005/gophsocial/internal/common"
)

// LogToStderr as LogFile sends logs to stderr instead of a file.
const LogToStderr = "-"

// Config holds runtime settings for the CLI.
type Config struct {
	APIBaseURL          string
	DBPath              string
	TokenBackend        string
	PageSize            int
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	LogLevel            string
	LogFile             string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080/v1"
	c.DBPath = "social.db"
	c.TokenBackend = "sqlite"
	c.PageSize = common.DefaultPageSize
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "info"
	c.LogFile = "gophsocial.log"
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.APIBaseURL, validation.Required, is.RequestURL),
		validation.Field(&c.DBPath, validation.By(func(v any) error {
			if c.TokenBackend != "memory" && v.(string) == "" {
				return errors.New("cannot be blank")
			}
			return nil
		})),
		validation.Field(&c.TokenBackend, validation.Required, validation.In("sqlite", "bolt", "memory")),
		validation.Field(&c.PageSize, validation.Required, validation.Min(1)),
		validation.Field(&c.RequestTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.OnlineCheckInterval, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	)
}

// LoadConfig builds a Config from defaults, dotenv/environment, JSON and
// flags, in that order. args are the command-line arguments without the
// program name.
func LoadConfig(args []string) (*Config, error) {
	return load(args, os.LookupEnv)
}

func load(args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, args, lookup); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
