// Package ui provides an optional terminal interface for the task list.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasker-go/internal/history"
	"github.com/nibzard/tasker-go/internal/task"
)

// RunTUI starts the interactive task list over the given store. The
// history log may be nil, in which case deletions are not recorded.
func RunTUI(ctx context.Context, store *task.Store, log *history.Log) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(store, log)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*tuiModel); ok && m.fatalErr != nil {
		return m.fatalErr
	}
	return nil
}

type tuiModel struct {
	store        *task.Store
	log          *history.Log
	tasks        task.List
	cursor       int
	status       string
	fatalErr     error
	tickInterval time.Duration
}

type tickMsg time.Time

func newTUIModel(store *task.Store, log *history.Log) *tuiModel {
	return &tuiModel{
		store:        store,
		log:          log,
		tickInterval: time.Second,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
			return m, nil
		case "g":
			m.cursor = 0
			return m, nil
		case "G":
			if len(m.tasks) > 0 {
				m.cursor = len(m.tasks) - 1
			}
			return m, nil
		case "d":
			m.deleteUnderCursor()
			return m, nil
		case "r", "f5":
			m.refresh()
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}

	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if len(m.tasks) == 0 {
		b.WriteString("  No tasks.\n")
	}
	for i, t := range m.tasks {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%d - %s\n", marker, i+1, t.Description))
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	writeFooter(&b)
	return b.String()
}

// refresh re-reads the tasks file and clamps the cursor. The file may
// have been rewritten by another invocation between ticks.
func (m *tuiModel) refresh() {
	m.tasks = m.store.LoadOrEmpty()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) deleteUnderCursor() {
	if len(m.tasks) == 0 {
		return
	}

	index := m.cursor + 1
	removed, err := m.store.Remove(index)
	if err != nil {
		m.status = fmt.Sprintf("Remove failed: %v", err)
		m.refresh()
		return
	}

	m.status = fmt.Sprintf("Removed %d - %s", index, removed.Description)
	if m.log != nil {
		// Best-effort: a history failure never undoes the removal.
		m.log.Append(history.Record{Op: "remove", Index: index, Description: removed.Description})
	}
	m.refresh()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func writeTitle(b *strings.Builder) {
	title := "Tasker"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString("\nj/k move | d delete | r refresh | q quit\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
