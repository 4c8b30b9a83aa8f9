package cmd

import (
	"fmt"
	"io"

	"github.com/nibzard/tasker-go/internal/config"
	"github.com/nibzard/tasker-go/internal/task"
)

// validateCommand checks the tasks file against the configured schema,
// falling back to minimal structural checks when no schema is set. An
// invalid file is the one core outcome that exits non-zero.
func validateCommand(cfg *config.Config, out io.Writer) error {
	store := task.NewStore(cfg.TasksFile)

	result := store.Validate(task.ValidationOptions{SchemaPath: cfg.SchemaFile})

	diag := diagLogger()
	for _, warning := range result.Warnings {
		diag.Warn(warning)
	}
	for _, err := range result.Errors {
		diag.Error(err.Error())
	}

	if !result.Valid {
		return fmt.Errorf("tasks file %s is invalid (%d errors)", cfg.TasksFile, len(result.Errors))
	}

	mode := "minimal checks"
	if result.UsedSchema {
		mode = "schema"
	}
	fmt.Fprintf(out, "%s is valid (%s)\n", cfg.TasksFile, mode)
	return nil
}
