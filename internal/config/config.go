package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host                 string
	Port                 string
	UseTLS               bool
	TLSCert              string
	TLSKey               string
	FrontendURL          string
	LogLevel             string
	LogFormat            string
	TickRate             int
	MapSeed              int64
	TuningFile           string
	SweptBullets         bool
	MaxMessagesPerSecond int
}

// Load reads configuration from environment variables, loading a .env file first when present.
// The returned bool reports whether a .env file was found.
func Load() (*Config, bool, error) {
	envLoaded := godotenv.Load() == nil

	tickRate, err := getEnvInt("TICK_RATE", 30)
	if err != nil {
		return nil, envLoaded, err
	}
	maxMessages, err := getEnvInt("MAX_MESSAGES_PER_SECOND", 120)
	if err != nil {
		return nil, envLoaded, err
	}

	seed := time.Now().UnixNano()
	if seedStr := os.Getenv("MAP_SEED"); seedStr != "" {
		val, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			return nil, envLoaded, fmt.Errorf("parsing MAP_SEED: %w", err)
		}
		seed = val
	}

	cfg := &Config{
		Host:                 getEnvOrDefault("HOST", "localhost"),
		Port:                 getEnvOrDefault("PORT", "3000"),
		UseTLS:               os.Getenv("USE_TLS") == "true",
		TLSCert:              getEnvOrDefault("TLS_CERT", ""),
		TLSKey:               getEnvOrDefault("TLS_KEY", ""),
		FrontendURL:          getEnvOrDefault("FRONTEND_URL", "*"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		TickRate:             tickRate,
		MapSeed:              seed,
		TuningFile:           getEnvOrDefault("TUNING_FILE", ""),
		SweptBullets:         os.Getenv("SWEPT_BULLETS") == "true",
		MaxMessagesPerSecond: maxMessages,
	}

	if cfg.TickRate <= 0 {
		return nil, envLoaded, fmt.Errorf("TICK_RATE must be positive, got %d", cfg.TickRate)
	}
	if cfg.MaxMessagesPerSecond <= 0 {
		return nil, envLoaded, fmt.Errorf("MAX_MESSAGES_PER_SECOND must be positive, got %d", cfg.MaxMessagesPerSecond)
	}

	return cfg, envLoaded, nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	val, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return val, nil
}
