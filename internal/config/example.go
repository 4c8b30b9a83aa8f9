package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Tasker configuration file
# Values can be overridden by TASKER_* environment variables or CLI flags

# Tasks file (relative to the working directory)
tasks_file = "tasks.json"

# JSON Schema used by "tasker validate" (minimal checks when unset)
schema_file = "tasks.schema.json"

# History log directory (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.tasker"

# Record add/remove mutations to the history log
history = true
`
}
