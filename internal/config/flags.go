package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/hybridauth/internal/flagx"
)

// KnownFlags lists every value-taking flag the loader understands, so callers
// can tell flags apart from positional arguments.
var KnownFlags = []string{"-r", "-s", "-m", "-n", "-a", "-l", "-c", "-config", "-e", "-env-file"}

// parseFlags overlays cfg with command-line flags:
//
//	-r string   relational driver: postgres | sqlite
//	-s string   SQLite database file
//	-m string   MongoDB connection URI
//	-n string   MongoDB database name
//	-a string   password hash algorithm: bcrypt | argon2id
//	-l string   log level: debug | info | warn | error
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-r", "-s", "-m", "-n", "-a", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Relational.Driver, "r", cfg.Relational.Driver, "relational driver (postgres|sqlite)")
	fs.StringVar(&cfg.Relational.SQLitePath, "s", cfg.Relational.SQLitePath, "sqlite database file")
	fs.StringVar(&cfg.Document.URI, "m", cfg.Document.URI, "mongodb connection uri")
	fs.StringVar(&cfg.Document.Database, "n", cfg.Document.Database, "mongodb database name")
	fs.StringVar(&cfg.Hash.Algorithm, "a", cfg.Hash.Algorithm, "password hash algorithm (bcrypt|argon2id)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
