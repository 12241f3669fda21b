package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/gophsocial/internal/flagx"
)

const (
	envPrefix       = "GOPHSOCIAL_"
	defaultEnvFile  = ".env"
	envAPIBaseURL   = envPrefix + "API_URL"
	envDBPath       = envPrefix + "DB_PATH"
	envTokenBackend = envPrefix + "TOKEN_BACKEND"
	envPageSize     = envPrefix + "PAGE_SIZE"
	envTimeout      = envPrefix + "REQUEST_TIMEOUT"
	envInterval     = envPrefix + "ONLINE_CHECK_INTERVAL"
	envLogLevel     = envPrefix + "LOG_LEVEL"
	envLogFile      = envPrefix + "LOG_FILE"
)

// parseEnv overlays cfg with GOPHSOCIAL_* values. A dotenv file named by
// -e/-env must exist; the default ./.env is optional.
func parseEnv(cfg *Config, args []string, lookup func(string) (string, bool)) error {
	file, required := flagx.EnvFileFlag(args), true
	if file == "" {
		file, required = defaultEnvFile, false
	}

	fromFile, err := godotenv.Read(file)
	if err != nil {
		if required || !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		fromFile = map[string]string{}
	}

	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := fromFile[key]
		return v, ok
	}

	if v, ok := get(envAPIBaseURL); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := get(envDBPath); ok {
		cfg.DBPath = v
	}
	if v, ok := get(envTokenBackend); ok {
		cfg.TokenBackend = v
	}
	if v, ok := get(envLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := get(envLogFile); ok {
		cfg.LogFile = v
	}
	if v, ok := get(envPageSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envPageSize, err)
		}
		cfg.PageSize = n
	}
	if v, ok := get(envTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := get(envInterval); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envInterval, err)
		}
		cfg.OnlineCheckInterval = d
	}
	return nil
}
