package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.tasker/tasker.toml or OS-specific config dir)
// 3. Project config file (tasker.toml or .tasker.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Try to load from user config file
	userConfigFile := findUserConfigFile()
	if userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	projectConfigFile := findProjectConfigFile()
	if projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	finalizeConfig(cfg)

	return cfg, nil
}

// parseFlags defines and parses CLI flags.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasker", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.TasksFile, "file", cfg.TasksFile, "Path to tasks file")
	fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "Path to schema file")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "History log directory")
	fs.BoolVar(&cfg.History, "history", cfg.History, "Record mutations to the history log")

	return fs.Parse(args)
}

// loadConfigFile loads configuration from a TOML file.
func loadConfigFile(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("decode toml: %w", err)
	}
	return nil
}

// finalizeConfig expands paths after all sources have been merged.
func finalizeConfig(cfg *Config) {
	cfg.TasksFile = expandPath(cfg.TasksFile)
	cfg.SchemaFile = expandPath(cfg.SchemaFile)
	cfg.LogDir = expandPath(cfg.LogDir)
}

// findUserConfigFile returns the path of the user-level config file, or
// "" if none exists.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err == nil {
		preferred := filepath.Join(home, ".tasker", "tasker.toml")
		if fileExists(preferred) {
			return preferred
		}
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	candidate := filepath.Join(configDir, "tasker", "tasker.toml")
	if fileExists(candidate) {
		return candidate
	}

	// Linux/BSD fallback when XDG_CONFIG_HOME is unset but ~/.config exists
	if runtime.GOOS != "windows" && home != "" {
		candidate = filepath.Join(home, ".config", "tasker", "tasker.toml")
		if fileExists(candidate) {
			return candidate
		}
	}

	return ""
}

// findProjectConfigFile returns the path of the project-level config
// file in the current directory, or "" if none exists.
func findProjectConfigFile() string {
	for _, name := range []string{"tasker.toml", ".tasker.toml"} {
		if fileExists(name) {
			return name
		}
	}
	return ""
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
