package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/cluttercut/cluttercut/internal/adapter"
	m "github.com/cluttercut/cluttercut/internal/model"
)

// hexRunPattern matches maximal runs of hexadecimal digits. Keeping only
// runs of exactly GUIDLength characters enforces the non-hex-boundary rule
// without lookaround.
var hexRunPattern = regexp.MustCompile(`[0-9a-fA-F]+`)

// errBinaryFile marks content files that cannot be treated as text.
var errBinaryFile = errors.New("binary file")

// Scanner extracts GUID references from content files whose extension is on
// the allow-list. ScanFile is read-only and stateless, so it is safe to
// call from any worker.
type Scanner struct {
	fs    adapter.AssetFS
	allow []string
}

// NewScanner constructs a Scanner for the given content-file extensions.
// Extensions are matched case-insensitively as name suffixes, so compound
// extensions work as allow-list entries too.
func NewScanner(fs adapter.AssetFS, extensions []string) *Scanner {
	allow := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		allow = append(allow, strings.ToLower(ext))
	}

	return &Scanner{fs: fs, allow: allow}
}

// Eligible reports whether the file is on the extension allow-list.
func (s *Scanner) Eligible(path m.Path) bool {
	name := strings.ToLower(string(path))
	for _, ext := range s.allow {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}

	return false
}

// CollectFiles walks root and returns every file eligible for scanning.
func (s *Scanner) CollectFiles(ctx context.Context, root m.Path) ([]m.Path, error) {
	var files []m.Path

	err := s.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if info.IsDir() || !s.Eligible(m.Path(path)) {
			return nil
		}

		files = append(files, m.Path(path))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, nil
}

// ScanFile returns the set of GUIDs occurring anywhere in the file's text.
// Files outside the allow-list are never opened and yield an empty set.
// Unreadable or binary files yield an empty set and a recoverable error.
func (s *Scanner) ScanFile(ctx context.Context, path m.Path) (m.ReferencedSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !s.Eligible(path) {
		return m.ReferencedSet{}, nil
	}

	content, err := s.fs.ReadFile(path)
	if err != nil {
		return m.ReferencedSet{}, fmt.Errorf("read content file: %w", err)
	}

	if bytes.IndexByte(content, 0) >= 0 {
		return m.ReferencedSet{}, errBinaryFile
	}

	return extractGUIDs(content), nil
}

// extractGUIDs finds every 32-hex-character run bounded by non-hex characters.
func extractGUIDs(content []byte) m.ReferencedSet {
	refs := m.ReferencedSet{}

	for _, run := range hexRunPattern.FindAll(content, -1) {
		if len(run) != m.GUIDLength {
			continue
		}

		guid, err := m.ParseGUID(string(run))
		if err != nil {
			continue
		}

		refs.Add(guid)
	}

	return refs
}
