package domain

import "fmt"

// ConfigError reports an invalid configuration value. It is fatal and is
// raised before any scanning starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// ScanIncompleteError reports a run that was cancelled while the reference
// scan was still in flight. The partial referenced set is discarded: a
// report computed from it would under-count references and falsely mark
// used assets as unused.
type ScanIncompleteError struct {
	Completed int
	Total     int
	Cause     error
}

func (e *ScanIncompleteError) Error() string {
	return fmt.Sprintf("scan incomplete: cancelled after %d of %d content files, no report produced: %v",
		e.Completed, e.Total, e.Cause)
}

func (e *ScanIncompleteError) Unwrap() error {
	return e.Cause
}
