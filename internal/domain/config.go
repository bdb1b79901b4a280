package domain

import (
	"fmt"

	m "github.com/cluttercut/cluttercut/internal/model"
)

// Worker pool bounds for the reference scan.
const (
	MinWorkers     = 1
	MaxWorkers     = 32
	DefaultWorkers = 8
)

// DefaultExtensions lists the content-file extensions scanned for GUID
// references when the user does not override the list.
var DefaultExtensions = []string{
	".asset",
	".prefab",
	".mat",
	".unity",
	".shadergraph",
	".asmdef",
	".controller",
	".overridecontroller",
	".vfx",
}

// ScanConfig holds the validated inputs of a scan run.
type ScanConfig struct {
	// Root is the directory whose assets are judged for references.
	Root m.Path

	// Workers bounds how many content files are scanned concurrently.
	Workers int

	// Extensions is the content-file allow-list, matched case-insensitively.
	Extensions []string
}

// Validate rejects out-of-range values eagerly, before any scanning starts.
// Root existence is checked separately by the workflow, which owns the
// filesystem adapter.
func (c ScanConfig) Validate() error {
	if c.Workers < MinWorkers || c.Workers > MaxWorkers {
		return &ConfigError{
			Field:  "parallel",
			Reason: fmt.Sprintf("worker count %d out of range [%d, %d]", c.Workers, MinWorkers, MaxWorkers),
		}
	}

	if len(c.Extensions) == 0 {
		return &ConfigError{Field: "extensions", Reason: "at least one content-file extension is required"}
	}

	if c.Root == "" {
		return &ConfigError{Field: "dir", Reason: "a directory to scan is required"}
	}

	return nil
}
