package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP
	HTTPPort string

	// Storage: "sqlite" (default), "postgres" or "memory".
	DBDriver string
	// DSN for postgres, file path for sqlite.
	DBDSN string

	// Reports
	ExportsDir   string
	HistoryLimit int

	// Background fleet snapshot; 0 disables it.
	SnapshotIntervalHours int
}

// Load reads configuration from the environment. A local .env is applied
// first when present (dev convenience, never required).
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		DBDriver:              strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:                 getEnv("DB_DSN", "manutencao.db"),
		ExportsDir:            getEnv("EXPORTS_DIR", "exports"),
		HistoryLimit:          getEnvInt("HISTORY_LIMIT", 100),
		SnapshotIntervalHours: getEnvInt("SNAPSHOT_INTERVAL_HOURS", 24),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
