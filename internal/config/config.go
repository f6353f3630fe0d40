package config

import (
	"time"

	"github.com/spf13/viper"
)

const DefaultDatabasePath = "./libruary.db"

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		Catalog
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Auth struct {
		Secret     string        // HMAC signing secret for session tokens
		TokenTTL   time.Duration // how long an issued token stays valid
		BcryptCost int
	}
	Catalog struct {
		BaseURL string
		Timeout time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_secret", "")
	v.SetDefault("auth_token_ttl", "1h")
	v.SetDefault("auth_bcrypt_cost", 12)

	// External book catalog defaults
	v.SetDefault("catalog_base_url", "https://www.googleapis.com/books/v1")
	v.SetDefault("catalog_timeout", "10s")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			Secret:     v.GetString("AUTH_SECRET"),
			TokenTTL:   v.GetDuration("AUTH_TOKEN_TTL"),
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
		Catalog: Catalog{
			BaseURL: v.GetString("CATALOG_BASE_URL"),
			Timeout: v.GetDuration("CATALOG_TIMEOUT"),
		},
	}
}
