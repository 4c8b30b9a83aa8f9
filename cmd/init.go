package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/nibzard/tasker-go/internal/config"
)

// defaultSchema is the JSON Schema seeded by init and consumed by the
// validate command.
const defaultSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Tasker task list",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["task"],
    "properties": {
      "task": { "type": "string" }
    },
    "additionalProperties": false
  }
}
`

// initCommand seeds the working directory with an empty tasks file, the
// schema, and an example config. Existing files are left alone.
func initCommand(cfg *config.Config, out io.Writer) error {
	seeds := []struct {
		path    string
		content string
	}{
		{path: cfg.TasksFile, content: "[]\n"},
		{path: config.DefaultSchemaFile, content: defaultSchema},
		{path: "tasker.toml", content: config.ExampleConfig()},
	}

	for _, seed := range seeds {
		if _, err := os.Stat(seed.path); err == nil {
			fmt.Fprintf(out, "Exists  %s\n", seed.path)
			continue
		}
		if err := os.WriteFile(seed.path, []byte(seed.content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", seed.path, err)
		}
		fmt.Fprintf(out, "Created %s\n", seed.path)
	}

	return nil
}
