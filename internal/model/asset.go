// Package model defines the data structures for unused-asset analysis.
package model

import (
	"fmt"
	"strings"
)

// Path represents a file system path.
type Path string

// GUIDLength is the number of hexadecimal characters in a Unity asset GUID.
const GUIDLength = 32

// GUID is a 32-character hexadecimal token uniquely naming one asset.
// It is normalized to lower case by ParseGUID, so plain string equality on
// GUID values is case-insensitive equality of the original tokens.
type GUID string

// ParseGUID validates a raw token and returns its normalized GUID.
func ParseGUID(raw string) (GUID, error) {
	if len(raw) != GUIDLength {
		return "", fmt.Errorf("guid %q: want %d hex characters, got %d", raw, GUIDLength, len(raw))
	}

	for i := 0; i < len(raw); i++ {
		if !isHexDigit(raw[i]) {
			return "", fmt.Errorf("guid %q: non-hex character %q at position %d", raw, raw[i], i)
		}
	}

	return GUID(strings.ToLower(raw)), nil
}

func isHexDigit(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	}

	return false
}

// AssetRecord ties one asset GUID to the files it was collected from.
// Records are created by the collector and never mutated afterwards.
type AssetRecord struct {
	GUID      GUID
	AssetPath Path // the asset file itself
	MetaPath  Path // the .meta descriptor the GUID was read from
	Size      int64
}

// CandidateUniverse maps every collected GUID to its asset record.
// Built once by the collector and read-only afterwards.
type CandidateUniverse map[GUID]AssetRecord

// ReferencedSet is the set of GUIDs observed inside content files.
type ReferencedSet map[GUID]struct{}

// Add inserts a GUID into the set.
func (s ReferencedSet) Add(guid GUID) {
	s[guid] = struct{}{}
}

// Contains reports whether the GUID is in the set.
func (s ReferencedSet) Contains(guid GUID) bool {
	_, ok := s[guid]
	return ok
}

// Union merges other into s. Union is commutative and associative over the
// final set contents, so merge order never changes the result.
func (s ReferencedSet) Union(other ReferencedSet) {
	for guid := range other {
		s[guid] = struct{}{}
	}
}

// IdentifierConflict records two descriptor files claiming the same GUID.
// The first descriptor keeps its record in the universe; the conflict is
// surfaced instead of silently overwriting it.
type IdentifierConflict struct {
	GUID   GUID
	First  Path // descriptor that owns the record
	Second Path // descriptor whose record was rejected
}

// Warning records a file that was skipped by a recoverable error, such as
// a malformed descriptor or an unreadable content file.
type Warning struct {
	Path   Path
	Reason string
}
