package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	BackendFile     = "file"
	BackendBadger   = "badger"
	BackendPostgres = "postgres"

	PolicyFail  = "fail"
	PolicyReset = "reset"
)

type Config struct {
	Env       string
	Server    Server
	Store     Store
	Session   Session
	Search    Search
	RateLimit RateLimit
}

type Server struct {
	RunAddress      string `env:"RUN_ADDRESS"`
	ShutdownTimeout time.Duration
}

type Store struct {
	Backend       string `env:"STORE_BACKEND"`
	DataDir       string `env:"DATA_DIR"`
	DatabaseURI   string `env:"DATABASE_URI"`
	Migrations    string `env:"MIGRATIONS_PATH"`
	CorruptPolicy string `env:"STORE_CORRUPT_POLICY"`
}

type Session struct {
	TTL time.Duration `env:"SESSION_TTL"`
}

type Search struct {
	Timeout        time.Duration `env:"SEARCH_TIMEOUT"`
	TMDBKey        string        `env:"TMDB_API_KEY"`
	GoogleBooksKey string        `env:"GOOGLE_BOOKS_API_KEY"`
	Language       string        `env:"SEARCH_LANGUAGE"`
}

type RateLimit struct {
	UnlockRequests int           `env:"UNLOCK_RATE_LIMIT"`
	UnlockWindow   time.Duration `env:"UNLOCK_RATE_WINDOW"`
}

// MustLoad is Load for main: a broken configuration stops the process.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func Load() (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			log.Printf("load %s: %v", envPath, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", ":8080")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("store_backend", BackendFile)
	v.SetDefault("data_dir", "./data")
	v.SetDefault("migrations_path", "./migrations")
	v.SetDefault("store_corrupt_policy", PolicyFail)
	v.SetDefault("session_ttl", 24*time.Hour)
	v.SetDefault("search_timeout", 5*time.Second)
	v.SetDefault("search_language", "en-US")
	v.SetDefault("unlock_rate_limit", 10)
	v.SetDefault("unlock_rate_window", time.Minute)

	cfg := &Config{
		Env: v.GetString("app_env"),
		Server: Server{
			RunAddress:      v.GetString("run_address"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Store: Store{
			Backend:       v.GetString("store_backend"),
			DataDir:       v.GetString("data_dir"),
			DatabaseURI:   v.GetString("database_uri"),
			Migrations:    v.GetString("migrations_path"),
			CorruptPolicy: v.GetString("store_corrupt_policy"),
		},
		Session: Session{TTL: v.GetDuration("session_ttl")},
		Search: Search{
			Timeout:        v.GetDuration("search_timeout"),
			TMDBKey:        v.GetString("tmdb_api_key"),
			GoogleBooksKey: v.GetString("google_books_api_key"),
			Language:       v.GetString("search_language"),
		},
		RateLimit: RateLimit{
			UnlockRequests: v.GetInt("unlock_rate_limit"),
			UnlockWindow:   v.GetDuration("unlock_rate_window"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendBadger:
		if c.Store.DataDir == "" {
			return errors.New("data_dir must not be empty")
		}
	case BackendPostgres:
		if c.Store.DatabaseURI == "" {
			return errors.New("database_uri is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown store_backend %q", c.Store.Backend)
	}

	if c.Store.CorruptPolicy != PolicyFail && c.Store.CorruptPolicy != PolicyReset {
		return fmt.Errorf("unknown store_corrupt_policy %q", c.Store.CorruptPolicy)
	}
	if c.Session.TTL <= 0 {
		return errors.New("session_ttl must be positive")
	}
	if c.Search.Timeout <= 0 {
		return errors.New("search_timeout must be positive")
	}
	return nil
}
