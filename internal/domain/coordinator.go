package domain

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	m "github.com/cluttercut/cluttercut/internal/model"
)

// ProgressFunc receives monotonic progress: content files completed so far
// out of the total, independent of file sizes.
type ProgressFunc func(completed, total int)

// fileScan is the immutable per-file result a worker hands back to the
// coordinator. Workers never touch the merged set.
type fileScan struct {
	path    m.Path
	refs    m.ReferencedSet
	warning *m.Warning
}

// Coordinator schedules ScanFile invocations over a bounded worker pool and
// reduces the per-file results into one ReferencedSet. The reduction is
// single-owner: only the coordinating goroutine mutates the merged set, so
// scan tasks need no locks. Set union is commutative and associative, which
// makes the merged set invariant under task completion order.
type Coordinator struct {
	scanner *Scanner
	workers int
}

// NewCoordinator constructs a Coordinator running at most workers scans
// concurrently. The worker count must already be validated to [MinWorkers,
// MaxWorkers].
func NewCoordinator(scanner *Scanner, workers int) *Coordinator {
	return &Coordinator{scanner: scanner, workers: workers}
}

// Scan processes every file and returns the union of their reference sets.
// owners maps descriptor paths to the GUID they declare: an identifier
// occurring inside its own descriptor never counts as a reference, so an
// external occurrence is required for an asset to be considered used.
//
// One file's scan error becomes a Warning and never blocks other tasks.
// If ctx is cancelled, no new tasks are dispatched, in-flight scans drain,
// and the partial set is discarded: Scan fails with ScanIncompleteError
// instead of returning a misleading under-counted set.
func (c *Coordinator) Scan(
	ctx context.Context,
	files []m.Path,
	owners map[m.Path]m.GUID,
	onProgress ProgressFunc,
) (m.ReferencedSet, []m.Warning, error) {
	results := make(chan fileScan, c.workers)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.workers)

	go func() {
		for _, file := range files {
			if groupCtx.Err() != nil {
				break // cancelled: dispatch no new tasks
			}

			file := file

			group.Go(func() error {
				refs, err := c.scanner.ScanFile(groupCtx, file)

				result := fileScan{path: file, refs: refs}
				if err != nil {
					slog.Warn("Content file skipped", "path", file, "error", err)
					result.warning = &m.Warning{Path: file, Reason: err.Error()}
				}

				select {
				case results <- result:
				case <-groupCtx.Done():
				}

				// Individual scan failures are recoverable; returning nil
				// keeps the rest of the pool making forward progress.
				return nil
			})
		}

		_ = group.Wait()
		close(results)
	}()

	merged := m.ReferencedSet{}

	var warnings []m.Warning

	completed := 0

	for result := range results {
		if owner, ok := owners[result.path]; ok {
			delete(result.refs, owner)
		}

		merged.Union(result.refs)

		if result.warning != nil {
			warnings = append(warnings, *result.warning)
		}

		completed++
		if onProgress != nil {
			onProgress(completed, len(files))
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, &ScanIncompleteError{Completed: completed, Total: len(files), Cause: err}
	}

	return merged, warnings, nil
}
