package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultJWTSecret is only accepted when Env is "development".
	DefaultJWTSecret = "supersecretkey"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	envPrefix = "JOBBOARD_"
)

type Config struct {
	Addr           string        `yaml:"addr"`
	Env            string        `yaml:"env"`
	JWTSecret      string        `yaml:"jwt_secret"`
	APITimeout     time.Duration `yaml:"timeout"`
	TokenDuration  time.Duration `yaml:"token_duration"`
	DatabaseDriver string        `yaml:"database_driver"`
	DatabasePath   string        `yaml:"database_path"`
	DatabaseURL    string        `yaml:"database_url"`
	MigrateOnStart bool          `yaml:"migrate_on_start"`
	CookieName     string        `yaml:"cookie_name"`
	CookieSecure   bool          `yaml:"cookie_secure"`
	CORSOrigin     string        `yaml:"cors_origin"`
	LogLevel       string        `yaml:"log_level"`
}

// LoadConfig builds the configuration from defaults, the environment (a .env
// file in the working directory is loaded first when present) and, if path is
// not empty, the YAML file at path. File values win over the environment.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	apiTimeout, err := getDuration("TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	tokenDuration, err := getDuration("TOKEN_DURATION", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Addr:           getEnv("ADDR", ":4000"),
		Env:            getEnv("ENV", "production"),
		JWTSecret:      getEnv("JWT_SECRET", DefaultJWTSecret),
		APITimeout:     apiTimeout,
		TokenDuration:  tokenDuration,
		DatabaseDriver: getEnv("DATABASE_DRIVER", DriverSQLite),
		DatabasePath:   getEnv("DATABASE_PATH", "jobboard.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrateOnStart: getBool("MIGRATE_ON_START", true),
		CookieName:     getEnv("COOKIE_NAME", "token"),
		CookieSecure:   getBool("COOKIE_SECURE", false),
		CORSOrigin:     getEnv("CORS_ORIGIN", "http://localhost:5173"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.JWTSecret == "" {
		return errors.New("jwt_secret is required")
	}
	if c.JWTSecret == DefaultJWTSecret && !c.IsDevelopment() {
		return errors.New("jwt_secret uses the insecure default; set JOBBOARD_JWT_SECRET or env: development")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.APITimeout)
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("token_duration must be positive, got %s", c.TokenDuration)
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			return errors.New("database_path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("database_url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown database_driver %q", c.DatabaseDriver)
	}

	if c.CookieName == "" {
		c.CookieName = "token"
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func getEnv(key, def string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}

	return def
}

func getBool(key string, def bool) bool {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}

	return b
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}

	return d, nil
}
