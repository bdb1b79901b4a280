package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	m "github.com/cluttercut/cluttercut/internal/model"
)

// SimpleUI implements UI with plain line output via the cobra Command, for
// pipes and CI logs.
type SimpleUI struct {
	cmd       *cobra.Command
	lastTenth int
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd, lastTenth: -1}
}

// Start prints the banner.
func (s *SimpleUI) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderBanner())

	return nil
}

// Close finalizes the UI (no-op for SimpleUI).
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayScanInfo prints the run parameters before scanning starts.
func (s *SimpleUI) DisplayScanInfo(ctx context.Context, info ScanInfo) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Assets root: %s\n", info.AssetsRoot)
	s.printf("Extensions to check: %s\n", strings.Join(info.Extensions, " "))
	s.printf("Found %d assets to check\n", info.Candidates)
	s.printf("Searching %d content files with %d worker(s)...\n", info.ContentFiles, info.Workers)
}

// Progress prints one line per 10% of files completed, keeping pipe output
// readable for large projects.
func (s *SimpleUI) Progress(completed, total int) {
	if total == 0 {
		return
	}

	tenth := completed * 10 / total
	if tenth == s.lastTenth && completed != total {
		return
	}

	s.lastTenth = tenth
	s.printf("Scanned %d/%d content files (%d%%)\n", completed, total, completed*100/total)
}

// DisplayOutcome prints the report table, summary, conflicts and warnings.
func (s *SimpleUI) DisplayOutcome(ctx context.Context, outcome m.ScanOutcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderOutcome(outcome))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
