package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds server process configuration, sourced from the environment.
type Config struct {
	Server ServerConfig
	Jobs   JobConfig
}

type ServerConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type JobConfig struct {
	MaxWorkers      int
	CleanupInterval time.Duration
	ResultTTL       time.Duration
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Address:      getEnv("SERVER_ADDRESS", ":8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Jobs: JobConfig{
			MaxWorkers:      getInt("JOB_MAX_WORKERS", 4),
			CleanupInterval: getDuration("JOB_CLEANUP_INTERVAL", 5*time.Minute),
			ResultTTL:       getDuration("JOB_RESULT_TTL", time.Hour),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
