package cmd

import (
	"context"

	"github.com/nibzard/tasker-go/internal/config"
	"github.com/nibzard/tasker-go/internal/history"
	"github.com/nibzard/tasker-go/internal/task"
	"github.com/nibzard/tasker-go/internal/ui"
)

// tuiCommand launches the interactive task list. Deletions made in the
// TUI are recorded to the history log like CLI removes.
func tuiCommand(ctx context.Context, cfg *config.Config) error {
	store := task.NewStore(cfg.TasksFile)

	var hlog *history.Log
	if cfg.History {
		var err error
		hlog, err = history.Open(cfg.LogDir, ".")
		if err != nil {
			diagLogger().Warn("history disabled", "err", err)
			hlog = nil
		}
	}

	return ui.RunTUI(ctx, store, hlog)
}
