package config

// Default values.
const (
	DefaultTasksFile  = "tasks.json"
	DefaultSchemaFile = "tasks.schema.json"
	DefaultLogDir     = "~/.tasker"
	DefaultHistory    = true
)

// Config holds the full configuration for tasker.
type Config struct {
	// Paths
	TasksFile  string `toml:"tasks_file"`
	SchemaFile string `toml:"schema_file"`
	LogDir     string `toml:"log_dir"`

	// History controls whether mutations are appended to the JSONL
	// history log under LogDir.
	History bool `toml:"history"`
}

// setDefaults fills cfg with built-in defaults.
func setDefaults(cfg *Config) {
	cfg.TasksFile = DefaultTasksFile
	cfg.SchemaFile = ""
	cfg.LogDir = DefaultLogDir
	cfg.History = DefaultHistory
}
