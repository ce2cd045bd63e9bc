package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Supported session stores.
const (
	SessionStoreRedis  = "redis"
	SessionStoreCookie = "cookie"
)

type Config struct {
	DBDriver          string `yaml:"db_driver"`
	DBHost            string `yaml:"db_host"`
	DBPort            string `yaml:"db_port"`
	DBUser            string `yaml:"db_user"`
	DBPassword        string `yaml:"db_password"`
	DBName            string `yaml:"db_name"`
	DBPath            string `yaml:"db_path"`
	RedisHost         string `yaml:"redis_host"`
	RedisPort         string `yaml:"redis_port"`
	SessionStore      string `yaml:"session_store"`
	SessionSecret     string `yaml:"session_secret"`
	GinMode           string `yaml:"gin_mode"`
	Port              string `yaml:"port"`
	LogLevel          string `yaml:"log_level"`
	OpenAIAPIKey      string `yaml:"openai_api_key"`
	Timezone          string `yaml:"timezone"`
	AutoMaterialize   bool   `yaml:"auto_materialize"`
	AutoMaterializeAt string `yaml:"auto_materialize_at"`
}

func defaults() *Config {
	return &Config{
		DBDriver:          DriverMySQL,
		DBHost:            "localhost",
		DBPort:            "3306",
		DBUser:            "planner",
		DBPassword:        "plannerpassword",
		DBName:            "daily_planner",
		DBPath:            "daily_planner.db",
		RedisHost:         "localhost",
		RedisPort:         "6379",
		SessionStore:      SessionStoreRedis,
		SessionSecret:     "default-secret-key-change-me",
		GinMode:           "debug",
		Port:              "8080",
		LogLevel:          "info",
		Timezone:          "Local",
		AutoMaterializeAt: "00:05",
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.DBDriver = getEnv("DB_DRIVER", cfg.DBDriver)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPassword = getEnv("DB_PASSWORD", cfg.DBPassword)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.RedisHost = getEnv("REDIS_HOST", cfg.RedisHost)
	cfg.RedisPort = getEnv("REDIS_PORT", cfg.RedisPort)
	cfg.SessionStore = getEnv("SESSION_STORE", cfg.SessionStore)
	cfg.SessionSecret = getEnv("SESSION_SECRET", cfg.SessionSecret)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.OpenAIAPIKey = getEnv("OPENAI_API_KEY", cfg.OpenAIAPIKey)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
	cfg.AutoMaterializeAt = getEnv("AUTO_MATERIALIZE_AT", cfg.AutoMaterializeAt)

	if raw := os.Getenv("AUTO_MATERIALIZE"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTO_MATERIALIZE %q: %w", raw, err)
		}
		cfg.AutoMaterialize = enabled
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unsupported driver, session store and timezone values.
func (c *Config) Validate() error {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	c.SessionStore = strings.ToLower(strings.TrimSpace(c.SessionStore))
	switch c.SessionStore {
	case SessionStoreRedis, SessionStoreCookie:
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.SessionStore)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone used to decide what "today" is.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// IsProduction reports whether the server runs in gin release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
