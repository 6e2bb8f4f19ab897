package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/hybridauth/internal/flagx"
)

// loadDotenv copies KEY=value pairs from a dotenv file into the process
// environment without overriding variables that are already set. The file
// comes from -e/-env-file; without the flag ".env" is tried and may be absent.
func loadDotenv() error {
	path := flagx.EnvFileFlags()
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// parseEnv overlays cfg with environment variables, e.g. DB_HOST, MONGO_URI,
// HASH_ALGORITHM. Unset variables leave the current values alone.
func parseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
