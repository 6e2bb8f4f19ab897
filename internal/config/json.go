package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/hybridauth/internal/flagx"
	"github.com/dmitrijs2005/hybridauth/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file. Missing
// or zero-valued keys keep whatever earlier stages set.
type JsonConfig struct {
	RelationalDriver    string         `json:"relational_driver"`
	RelationalHost      string         `json:"relational_host"`
	RelationalPort      int            `json:"relational_port"`
	RelationalUser      string         `json:"relational_user"`
	RelationalPassword  string         `json:"relational_password"`
	RelationalName      string         `json:"relational_name"`
	RelationalSSLMode   string         `json:"relational_sslmode"`
	SQLitePath          string         `json:"sqlite_path"`
	MongoURI            string         `json:"mongo_uri"`
	MongoDatabase       string         `json:"mongo_database"`
	MongoConnectTimeout timex.Duration `json:"mongo_connect_timeout"`
	HashAlgorithm       string         `json:"hash_algorithm"`
	HashBcryptCost      int            `json:"hash_bcrypt_cost"`
	ActivityOrigin      string         `json:"activity_origin"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config. Without the flag
// nothing is read.
func parseJson(cfg *Config) error {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.Relational.Driver, jc.RelationalDriver)
	setString(&cfg.Relational.Host, jc.RelationalHost)
	setInt(&cfg.Relational.Port, jc.RelationalPort)
	setString(&cfg.Relational.User, jc.RelationalUser)
	setString(&cfg.Relational.Password, jc.RelationalPassword)
	setString(&cfg.Relational.Name, jc.RelationalName)
	setString(&cfg.Relational.SSLMode, jc.RelationalSSLMode)
	setString(&cfg.Relational.SQLitePath, jc.SQLitePath)
	setString(&cfg.Document.URI, jc.MongoURI)
	setString(&cfg.Document.Database, jc.MongoDatabase)
	if jc.MongoConnectTimeout.Duration > 0 {
		cfg.Document.ConnectTimeout = jc.MongoConnectTimeout.Duration
	}
	setString(&cfg.Hash.Algorithm, jc.HashAlgorithm)
	setInt(&cfg.Hash.BcryptCost, jc.HashBcryptCost)
	setString(&cfg.Origin, jc.ActivityOrigin)
	setString(&cfg.LogLevel, jc.LogLevel)

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
