package domain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cluttercut/cluttercut/internal/adapter"
	"github.com/cluttercut/cluttercut/internal/controller"
	m "github.com/cluttercut/cluttercut/internal/model"
)

// Workflow drives a full unused-asset analysis run.
type Workflow interface {
	Scan(ctx context.Context, cfg ScanConfig) error
}

type workflow struct {
	fs adapter.AssetFS
	ui controller.UI
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(fs adapter.AssetFS, ui controller.UI) Workflow {
	return &workflow{fs: fs, ui: ui}
}

// Scan validates the configuration, collects the candidate universe from
// the requested directory, scans the whole Assets tree for references, and
// hands the resolved outcome to the UI. Phases run strictly in order:
// resolution never starts before both collection and scanning have drained.
func (w *workflow) Scan(ctx context.Context, cfg ScanConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := w.validateRoot(cfg.Root); err != nil {
		return err
	}

	assetsRoot, err := w.fs.FindAssetsRoot(cfg.Root)
	if err != nil {
		return &ConfigError{Field: "dir", Reason: err.Error()}
	}

	if err := w.ui.Start(ctx); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return err
	}
	defer w.ui.Close(ctx)

	collector := NewCollector(w.fs)

	universe, conflicts, collectWarnings, err := collector.Collect(ctx, cfg.Root)
	if err != nil {
		slog.Error("Candidate collection failed", "root", cfg.Root, "error", err)
		return fmt.Errorf("collect candidates: %w", err)
	}

	scanner := NewScanner(w.fs, cfg.Extensions)

	files, err := scanner.CollectFiles(ctx, assetsRoot)
	if err != nil {
		slog.Error("Content file listing failed", "assetsRoot", assetsRoot, "error", err)
		return fmt.Errorf("collect content files: %w", err)
	}

	slog.Info("Starting reference scan",
		"candidates", len(universe), "contentFiles", len(files), "workers", cfg.Workers)
	w.ui.DisplayScanInfo(ctx, controller.ScanInfo{
		AssetsRoot:   assetsRoot,
		Candidates:   len(universe),
		ContentFiles: len(files),
		Extensions:   cfg.Extensions,
		Workers:      cfg.Workers,
	})

	coordinator := NewCoordinator(scanner, cfg.Workers)

	referenced, scanWarnings, err := coordinator.Scan(ctx, files, descriptorOwners(universe), w.ui.Progress)
	if err != nil {
		slog.Error("Reference scan did not complete", "error", err)
		return err
	}

	report := Resolve(universe, referenced)
	outcome := m.ScanOutcome{
		AssetsRoot: assetsRoot,
		Report:     report,
		Stats: m.ScanStats{
			Candidates:       len(universe),
			ContentFiles:     len(files),
			Unused:           len(report),
			ReclaimableBytes: report.ReclaimableBytes(),
		},
		Conflicts: conflicts,
		Warnings:  append(collectWarnings, scanWarnings...),
	}

	slog.Info("Analysis complete",
		"unused", outcome.Stats.Unused, "reclaimableBytes", outcome.Stats.ReclaimableBytes)

	return w.ui.DisplayOutcome(ctx, outcome)
}

func (w *workflow) validateRoot(root m.Path) error {
	info, err := w.fs.FileInfo(root)
	if err != nil {
		return &ConfigError{Field: "dir", Reason: fmt.Sprintf("directory %q does not exist", root)}
	}

	if !info.IsDir() {
		return &ConfigError{Field: "dir", Reason: fmt.Sprintf("%q is not a directory", root)}
	}

	return nil
}

// descriptorOwners maps each descriptor path to the GUID it declares, so
// the coordinator can discount self-references inside descriptors.
func descriptorOwners(universe m.CandidateUniverse) map[m.Path]m.GUID {
	owners := make(map[m.Path]m.GUID, len(universe))
	for guid, record := range universe {
		owners[record.MetaPath] = guid
	}

	return owners
}
