// Package config assembles runtime settings for the hybridauth CLI.
//
// Sources are applied in order, later ones overriding earlier ones:
// built-in defaults, a dotenv file, process environment, an optional JSON
// file (-c/-config) and finally command-line flags.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"

	defaultEnvFile = ".env"
)

// Relational describes the SQL store holding the authoritative user table.
// Host, Port, User, Password, Name and SSLMode apply to PostgreSQL;
// SQLitePath applies to the sqlite driver.
type Relational struct {
	Driver     string `env:"DRIVER"`
	Host       string `env:"HOST"`
	Port       int    `env:"PORT"`
	User       string `env:"USER"`
	Password   string `env:"PASSWORD"`
	Name       string `env:"NAME"`
	SSLMode    string `env:"SSLMODE"`
	SQLitePath string `env:"SQLITE_PATH"`
}

// Document describes the MongoDB deployment holding mirrors and activity logs.
type Document struct {
	URI            string        `env:"URI"`
	Database       string        `env:"DATABASE"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT"`
}

// Hash selects the algorithm used for new password hashes.
type Hash struct {
	Algorithm  string `env:"ALGORITHM"`
	BcryptCost int    `env:"BCRYPT_COST"`
}

// Config holds runtime settings for the CLI.
type Config struct {
	Relational Relational `envPrefix:"DB_"`
	Document   Document   `envPrefix:"MONGO_"`
	Hash       Hash       `envPrefix:"HASH_"`
	// Origin is stamped on every activity log entry.
	Origin   string `env:"ACTIVITY_ORIGIN"`
	LogLevel string `env:"LOG_LEVEL"`
}

// LoadDefaults populates c with settings suitable for a local development
// setup (PostgreSQL and MongoDB on localhost).
func (c *Config) LoadDefaults() {
	c.Relational = Relational{
		Driver:     DriverPostgres,
		Host:       "localhost",
		Port:       5432,
		User:       "postgres",
		Password:   "postgres",
		Name:       "hybridauth",
		SSLMode:    "disable",
		SQLitePath: "data/hybridauth.db",
	}
	c.Document = Document{
		URI:            "mongodb://localhost:27017",
		Database:       "hybridauth",
		ConnectTimeout: 10 * time.Second,
	}
	c.Hash = Hash{
		Algorithm:  AlgorithmBcrypt,
		BcryptCost: 10,
	}
	c.Origin = "127.0.0.1"
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, dotenv, environment, JSON and
// flags, then validates it.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := loadDotenv(); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the bootstrap cannot act on.
func (c *Config) Validate() error {
	var errs []error

	switch c.Relational.Driver {
	case DriverPostgres:
		if c.Relational.Host == "" || c.Relational.Name == "" {
			errs = append(errs, errors.New("postgres host and database name are required"))
		}
	case DriverSQLite:
		if c.Relational.SQLitePath == "" {
			errs = append(errs, errors.New("sqlite path is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown relational driver %q", c.Relational.Driver))
	}

	if c.Document.URI == "" || c.Document.Database == "" {
		errs = append(errs, errors.New("mongo uri and database are required"))
	}

	switch c.Hash.Algorithm {
	case AlgorithmBcrypt:
		if c.Hash.BcryptCost < 4 || c.Hash.BcryptCost > 31 {
			errs = append(errs, fmt.Errorf("bcrypt cost %d out of range [4, 31]", c.Hash.BcryptCost))
		}
	case AlgorithmArgon2id:
	default:
		errs = append(errs, fmt.Errorf("unknown hash algorithm %q", c.Hash.Algorithm))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// RelationalDSN returns the data source name for the configured driver: a
// postgres:// URL or the SQLite file path.
func (c *Config) RelationalDSN() string {
	r := c.Relational
	if r.Driver == DriverSQLite {
		return r.SQLitePath
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(r.User, r.Password),
		Host:   net.JoinHostPort(r.Host, strconv.Itoa(r.Port)),
		Path:   "/" + r.Name,
	}
	if r.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{r.SSLMode}}.Encode()
	}
	return u.String()
}
