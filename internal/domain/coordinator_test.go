package domain

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cluttercut/cluttercut/internal/adapter"
	m "github.com/cluttercut/cluttercut/internal/model"
)

// scanFixture lays out content files referencing guidA and guidB and
// returns their paths.
func scanFixture(t *testing.T) []m.Path {
	t.Helper()

	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "scene.unity"), "ref "+guidA)
	writeFixture(t, filepath.Join(root, "wood.mat"), "ref "+guidB)
	writeFixture(t, filepath.Join(root, "empty.prefab"), "nothing here")

	return []m.Path{
		m.Path(filepath.Join(root, "scene.unity")),
		m.Path(filepath.Join(root, "wood.mat")),
		m.Path(filepath.Join(root, "empty.prefab")),
	}
}

func newTestScanner() *Scanner {
	return NewScanner(adapter.NewLocalAssetFS(), []string{".unity", ".mat", ".prefab", ".asset", ".meta"})
}

func TestCoordinator_Scan_MergesAllResults(t *testing.T) {
	files := scanFixture(t)

	coordinator := NewCoordinator(newTestScanner(), 4)

	merged, warnings, err := coordinator.Scan(context.Background(), files, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Len(t, merged, 2)
	assert.True(t, merged.Contains(m.GUID(guidA)))
	assert.True(t, merged.Contains(m.GUID(guidB)))
}

func TestCoordinator_Scan_ResultInvariantUnderWorkerCount(t *testing.T) {
	files := scanFixture(t)

	for _, workers := range []int{MinWorkers, 2, MaxWorkers} {
		coordinator := NewCoordinator(newTestScanner(), workers)

		merged, _, err := coordinator.Scan(context.Background(), files, nil, nil)
		require.NoError(t, err)

		assert.Equal(t, m.ReferencedSet{
			m.GUID(guidA): {},
			m.GUID(guidB): {},
		}, merged, "workers=%d", workers)
	}
}

func TestCoordinator_Scan_SelfDescriptorDoesNotCount(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "A.prefab.meta"), metaContent(guidA))
	writeFixture(t, filepath.Join(root, "B.mat.meta"), metaContent(guidB))
	writeFixture(t, filepath.Join(root, "scene.unity"), "uses "+guidB)

	files := []m.Path{
		m.Path(filepath.Join(root, "A.prefab.meta")),
		m.Path(filepath.Join(root, "B.mat.meta")),
		m.Path(filepath.Join(root, "scene.unity")),
	}
	owners := map[m.Path]m.GUID{
		m.Path(filepath.Join(root, "A.prefab.meta")): m.GUID(guidA),
		m.Path(filepath.Join(root, "B.mat.meta")):    m.GUID(guidB),
	}

	coordinator := NewCoordinator(newTestScanner(), 2)

	merged, _, err := coordinator.Scan(context.Background(), files, owners, nil)
	require.NoError(t, err)

	// guidA only occurs in its own descriptor: not a reference. guidB has
	// an external occurrence, so it stays referenced.
	assert.False(t, merged.Contains(m.GUID(guidA)))
	assert.True(t, merged.Contains(m.GUID(guidB)))
}

func TestCoordinator_Scan_FileFailureDoesNotBlockOthers(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, filepath.Join(root, "blob.asset"), "bin\x00ary")
	writeFixture(t, filepath.Join(root, "scene.unity"), "ref "+guidA)

	files := []m.Path{
		m.Path(filepath.Join(root, "blob.asset")),
		m.Path(filepath.Join(root, "scene.unity")),
	}

	coordinator := NewCoordinator(newTestScanner(), 2)

	merged, warnings, err := coordinator.Scan(context.Background(), files, nil, nil)
	require.NoError(t, err)

	assert.True(t, merged.Contains(m.GUID(guidA)))
	require.Len(t, warnings, 1)
	assert.Equal(t, m.Path(filepath.Join(root, "blob.asset")), warnings[0].Path)
}

func TestCoordinator_Scan_ProgressIsMonotonicPerFile(t *testing.T) {
	files := scanFixture(t)

	coordinator := NewCoordinator(newTestScanner(), 2)

	var seen []int

	_, _, err := coordinator.Scan(context.Background(), files, nil, func(completed, total int) {
		assert.Equal(t, len(files), total)
		seen = append(seen, completed)
	})
	require.NoError(t, err)

	require.Len(t, seen, len(files))
	for i, completed := range seen {
		assert.Equal(t, i+1, completed)
	}
}

func TestCoordinator_Scan_CancelledDiscardsPartialSet(t *testing.T) {
	files := scanFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	coordinator := NewCoordinator(newTestScanner(), 2)

	merged, warnings, err := coordinator.Scan(ctx, files, nil, nil)

	var incomplete *ScanIncompleteError

	require.ErrorAs(t, err, &incomplete)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, len(files), incomplete.Total)
	assert.Nil(t, merged)
	assert.Nil(t, warnings)
}
