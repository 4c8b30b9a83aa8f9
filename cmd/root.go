// Package cmd implements the CLI command structure for tasker.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasker-go/internal/config"
	"github.com/nibzard/tasker-go/internal/history"
	"github.com/nibzard/tasker-go/internal/task"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the tasker CLI, writing user output to stdout.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout)
}

func run(ctx context.Context, args []string, out io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasker", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, out)
		return nil
	}
	if *showVersion {
		return versionCommand(out)
	}

	// Two tokens drive the dispatch: the command name and one argument
	subcommand := ""
	arg := ""
	remaining := fs.Args()
	if len(remaining) > 0 {
		subcommand = remaining[0]
	}
	if len(remaining) > 1 {
		arg = remaining[1]
	}

	switch subcommand {
	case "add":
		return addCommand(cfg, out, arg)
	case "list":
		return listCommand(cfg, out)
	case "remove":
		return removeCommand(cfg, out, arg)
	case "init":
		return initCommand(cfg, out)
	case "validate":
		return validateCommand(cfg, out)
	case "tui":
		return tuiCommand(ctx, cfg)
	case "history":
		return historyCommand(cfg, out, arg)
	case "version":
		return versionCommand(out)
	case "help", "--help", "-h":
		printUsage(fs, out)
		return nil
	default:
		// Unknown and missing commands are not errors; the process
		// reports the fallback message and exits 0.
		fmt.Fprintln(out, "command not found !")
		return nil
	}
}

// addCommand appends one task. The description may be empty when the
// caller omitted it; no duplicate or length validation is performed.
func addCommand(cfg *config.Config, out io.Writer, description string) error {
	store := task.NewStore(cfg.TasksFile)

	index, err := store.Add(description)
	if err != nil {
		return fmt.Errorf("adding task: %w", err)
	}

	fmt.Fprintf(out, "Task Added %s\n", description)
	recordMutation(cfg, history.Record{Op: "add", Index: index, Description: description})
	return nil
}

// listCommand prints every task with its 1-based index. An empty list
// prints nothing at all.
func listCommand(cfg *config.Config, out io.Writer) error {
	store := task.NewStore(cfg.TasksFile)

	for i, t := range store.LoadOrEmpty() {
		fmt.Fprintf(out, "%d - %s\n", i+1, t.Description)
	}
	return nil
}

// removeCommand deletes the task at a 1-based index. A non-numeric
// argument becomes an invalid index; out-of-range indexes warn and
// mutate nothing.
func removeCommand(cfg *config.Config, out io.Writer, arg string) error {
	store := task.NewStore(cfg.TasksFile)

	index, err := strconv.Atoi(arg)
	if err != nil {
		index = 0
	}

	removed, err := store.Remove(index)
	if err != nil {
		var oor *task.OutOfRangeError
		if errors.As(err, &oor) {
			fmt.Fprintf(out, "Invalid task number %s\n", arg)
			return nil
		}
		return fmt.Errorf("removing task: %w", err)
	}

	fmt.Fprintf(out, "Task Removed %s\n", removed.Description)
	recordMutation(cfg, history.Record{Op: "remove", Index: index, Description: removed.Description})
	return nil
}

func versionCommand(out io.Writer) error {
	fmt.Fprintf(out, "tasker version %s\n", Version)
	return nil
}

// recordMutation appends to the history log when enabled. History is
// best-effort: failures warn on stderr and never undo the mutation.
func recordMutation(cfg *config.Config, rec history.Record) {
	if !cfg.History {
		return
	}

	hlog, err := history.Open(cfg.LogDir, ".")
	if err != nil {
		diagLogger().Warn("history disabled", "err", err)
		return
	}
	if err := hlog.Append(rec); err != nil {
		diagLogger().Warn("history append failed", "err", err)
	}
}

// diagLogger returns the leveled console logger for diagnostics. User
// output goes to stdout via fmt; diagnostics go to stderr.
func diagLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.InfoLevel,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		Prefix:          "tasker",
	})
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tasker - A task list manager backed by a JSON file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasker [options] <command> [argument]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <description>  Append a task")
	fmt.Fprintln(w, "  list               List tasks with 1-based indexes")
	fmt.Fprintln(w, "  remove <index>     Remove the task at a 1-based index")
	fmt.Fprintln(w, "  init               Seed tasks.json, a schema, and an example config")
	fmt.Fprintln(w, "  validate           Validate the tasks file against the schema")
	fmt.Fprintln(w, "  tui                Launch the terminal UI")
	fmt.Fprintln(w, "  history [n]        Show the last n mutations (default 20)")
	fmt.Fprintln(w, "  version            Show version information")
	fmt.Fprintln(w, "  help               Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
