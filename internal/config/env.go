package config

import (
	"os"
	"strconv"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKER_FILE"); v != "" {
		cfg.TasksFile = v
	}
	if v := os.Getenv("TASKER_SCHEMA"); v != "" {
		cfg.SchemaFile = v
	}
	if v := os.Getenv("TASKER_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("TASKER_HISTORY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.History = b
		}
	}
}
