package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	Port        string
	Environment string
	MaxFileSize int64 // in bytes
	// Workers bounds Huffman frequency counting; 0 means one per CPU.
	Workers int
	// StrictDecode rejects truncated compressed input.
	StrictDecode bool
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("GO_ENV", "development"),
		MaxFileSize:  getEnvInt64("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		Workers:      int(getEnvInt64("FREQ_WORKERS", 0)),
		StrictDecode: getEnvBool("STRICT_DECODE", false),
	}

	return cfg
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil && n >= 0 {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
