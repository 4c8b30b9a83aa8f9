package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nibzard/tasker-go/internal/config"
	"github.com/nibzard/tasker-go/internal/history"
)

const defaultHistoryCount = 20

// historyCommand prints the most recent mutation records for this
// project, oldest first.
func historyCommand(cfg *config.Config, out io.Writer, arg string) error {
	count := defaultHistoryCount
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid history count %q", arg)
		}
		count = n
	}

	hlog, err := history.Open(cfg.LogDir, ".")
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}

	records, err := hlog.Tail(count)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No history.")
		return nil
	}

	for _, rec := range records {
		fmt.Fprintf(out, "%s  %-6s  %d - %s\n",
			rec.Time.Format("2006-01-02 15:04:05"), rec.Op, rec.Index, rec.Description)
	}
	return nil
}
