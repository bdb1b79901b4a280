// Package domain implements the two-pass unused-asset analysis: GUID
// collection from descriptor files, parallel reference scanning of content
// files, and the final set difference.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cluttercut/cluttercut/internal/adapter"
	m "github.com/cluttercut/cluttercut/internal/model"
)

// metaExtension is the Unity sidecar descriptor suffix.
const metaExtension = ".meta"

// metaDescriptor captures the single field we need from a .meta file.
type metaDescriptor struct {
	GUID string `yaml:"guid"`
}

// guidLinePattern is the fallback for descriptors that strict YAML parsing
// rejects; Unity metas are YAML, but custom importers occasionally emit
// lines that are not.
var guidLinePattern = regexp.MustCompile(`(?mi)^guid:\s*([0-9a-f]{32})\s*$`)

// Collector walks a directory tree and builds the candidate universe from
// the descriptor files it finds.
type Collector struct {
	fs adapter.AssetFS
}

// NewCollector constructs a Collector backed by the provided filesystem adapter.
func NewCollector(fs adapter.AssetFS) *Collector {
	return &Collector{fs: fs}
}

// Collect walks root recursively and returns one AssetRecord per descriptor
// file that names an existing, non-directory sidecar asset. Malformed
// descriptors are skipped with a warning. Two descriptors claiming the same
// GUID produce an IdentifierConflict; the first record is kept.
func (c *Collector) Collect(ctx context.Context, root m.Path) (m.CandidateUniverse, []m.IdentifierConflict, []m.Warning, error) {
	universe := m.CandidateUniverse{}

	var (
		conflicts []m.IdentifierConflict
		warnings  []m.Warning
	)

	err := c.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if info.IsDir() || !strings.HasSuffix(strings.ToLower(path), metaExtension) {
			return nil
		}

		assetPath := path[:len(path)-len(metaExtension)]

		assetInfo, statErr := c.fs.FileInfo(m.Path(assetPath))
		if statErr != nil || assetInfo.IsDir() {
			// Folder metas and dangling descriptors name nothing reclaimable.
			return nil
		}

		guid, parseErr := c.readGUID(m.Path(path))
		if parseErr != nil {
			slog.Warn("Skipping descriptor", "path", path, "error", parseErr)
			warnings = append(warnings, m.Warning{Path: m.Path(path), Reason: parseErr.Error()})

			return nil
		}

		if existing, ok := universe[guid]; ok {
			slog.Warn("Duplicate guid across descriptors",
				"guid", guid, "first", existing.MetaPath, "second", path)
			conflicts = append(conflicts, m.IdentifierConflict{
				GUID:   guid,
				First:  existing.MetaPath,
				Second: m.Path(path),
			})

			return nil
		}

		universe[guid] = m.AssetRecord{
			GUID:      guid,
			AssetPath: m.Path(assetPath),
			MetaPath:  m.Path(path),
			Size:      assetInfo.Size(),
		}

		return nil
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return universe, conflicts, warnings, nil
}

// readGUID extracts the guid field from a descriptor file.
func (c *Collector) readGUID(path m.Path) (m.GUID, error) {
	content, err := c.fs.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read descriptor: %w", err)
	}

	var desc metaDescriptor
	if err := yaml.Unmarshal(content, &desc); err == nil && desc.GUID != "" {
		return m.ParseGUID(desc.GUID)
	}

	if match := guidLinePattern.FindSubmatch(content); match != nil {
		return m.ParseGUID(string(match[1]))
	}

	return "", errors.New("descriptor has no guid field")
}
