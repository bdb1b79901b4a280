// Package controller provides output adapters for displaying scan progress
// and the unused-asset report.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "github.com/cluttercut/cluttercut/internal/model"
)

// ScanInfo describes the run before the reference scan starts.
type ScanInfo struct {
	AssetsRoot   m.Path
	Candidates   int
	ContentFiles int
	Extensions   []string
	Workers      int
}

// UI defines the presentation port for a scan run. Implementations can use
// different output methods (simple text, live TUI).
type UI interface {
	Start(ctx context.Context) error
	Close(ctx context.Context)

	// DisplayScanInfo shows candidate and content-file counts before scanning.
	DisplayScanInfo(ctx context.Context, info ScanInfo)

	// Progress reports files completed out of the total. Called once per
	// completed file, from a single goroutine.
	Progress(completed, total int)

	// DisplayOutcome renders the final report, summary, conflicts and warnings.
	DisplayOutcome(ctx context.Context, outcome m.ScanOutcome) error
}

// NewUI picks the live TUI on terminals and the plain printer otherwise.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
