package controller

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	m "github.com/cluttercut/cluttercut/internal/model"
)

// TUI implements UI with a live Bubble Tea progress view for terminals.
// The final report is printed as plain text after the live view quits.
type TUI struct {
	cmd       *cobra.Command
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{cmd: cmd, done: make(chan struct{})}
}

// Start launches the live view in its own goroutine. Input is disabled:
// cancellation arrives via SIGINT and the command's context, not key presses.
func (t *TUI) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.program = tea.NewProgram(
		newScanModel(),
		tea.WithOutput(t.cmd.OutOrStdout()),
		tea.WithInput(nil),
	)

	go func() {
		defer close(t.done)

		if _, err := t.program.Run(); err != nil {
			slog.Error("Progress view failed", "error", err)
		}
	}()

	return nil
}

// Close quits the live view and waits for it to release the terminal.
// Safe to call more than once.
func (t *TUI) Close(_ context.Context) {
	if t.program == nil {
		return
	}

	t.closeOnce.Do(func() {
		t.program.Send(finishMsg{})
		<-t.done
	})
}

// DisplayScanInfo forwards run parameters to the live view.
func (t *TUI) DisplayScanInfo(ctx context.Context, info ScanInfo) {
	if err := ctx.Err(); err != nil {
		return
	}

	if t.program != nil {
		t.program.Send(infoMsg{info: info})
	}
}

// Progress forwards completion counts to the live view.
func (t *TUI) Progress(completed, total int) {
	if t.program != nil {
		t.program.Send(progressMsg{completed: completed, total: total})
	}
}

// DisplayOutcome stops the live view and prints the final report below it.
func (t *TUI) DisplayOutcome(ctx context.Context, outcome m.ScanOutcome) error {
	t.Close(ctx)

	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprint(t.cmd.OutOrStdout(), renderOutcome(outcome))

	return err
}

type progressMsg struct {
	completed int
	total     int
}

type infoMsg struct {
	info ScanInfo
}

type finishMsg struct{}

// scanModel is the Bubble Tea model for the live scan view.
type scanModel struct {
	info      *ScanInfo
	completed int
	total     int
	bar       progress.Model
}

func newScanModel() scanModel {
	return scanModel{bar: progress.New(progress.WithDefaultGradient())}
}

func (sm scanModel) Init() tea.Cmd {
	return nil
}

func (sm scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width := msg.Width - 4
		if width > 0 {
			sm.bar.Width = width
		}

		return sm, nil

	case infoMsg:
		info := msg.info
		sm.info = &info

		return sm, nil

	case progressMsg:
		sm.completed = msg.completed
		sm.total = msg.total

		return sm, nil

	case finishMsg:
		return sm, tea.Quit
	}

	return sm, nil
}

func (sm scanModel) View() string {
	var b strings.Builder

	b.WriteString(renderBanner())

	if sm.info == nil {
		b.WriteString("\n  Collecting assets to check...\n")
		return b.String()
	}

	fmt.Fprintf(&b, "\n  Assets root: %s\n", sm.info.AssetsRoot)
	fmt.Fprintf(&b, "  Checking %d assets against %d content files (%d workers)\n\n",
		sm.info.Candidates, sm.info.ContentFiles, sm.info.Workers)

	percent := 0.0
	if sm.total > 0 {
		percent = float64(sm.completed) / float64(sm.total)
	}

	fmt.Fprintf(&b, "  %s %d/%d files\n", sm.bar.ViewAs(percent), sm.completed, sm.total)

	return b.String()
}
