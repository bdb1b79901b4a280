package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cluttercut/cluttercut/internal/adapter"
	"github.com/cluttercut/cluttercut/internal/controller"
	m "github.com/cluttercut/cluttercut/internal/model"
)

// recordingUI captures everything the workflow hands to the presentation layer.
type recordingUI struct {
	started  bool
	closed   bool
	info     controller.ScanInfo
	progress []int
	outcome  *m.ScanOutcome
}

func (u *recordingUI) Start(_ context.Context) error { u.started = true; return nil }
func (u *recordingUI) Close(_ context.Context)       { u.closed = true }

func (u *recordingUI) DisplayScanInfo(_ context.Context, info controller.ScanInfo) {
	u.info = info
}

func (u *recordingUI) Progress(completed, _ int) {
	u.progress = append(u.progress, completed)
}

func (u *recordingUI) DisplayOutcome(_ context.Context, outcome m.ScanOutcome) error {
	u.outcome = &outcome
	return nil
}

// projectFixture builds a minimal Unity-shaped tree and returns its Assets dir.
//
// A.prefab is referenced by nothing; B.mat is referenced by scene.unity;
// readme.txt mentions A's GUID but its extension is not on the allow-list.
func projectFixture(t *testing.T) string {
	t.Helper()

	proj := filepath.Join(t.TempDir(), "proj")
	assets := filepath.Join(proj, "Assets")
	require.NoError(t, os.MkdirAll(assets, 0o755))

	writeFixture(t, filepath.Join(assets, "A.prefab"), "prefab body with some weight")
	writeFixture(t, filepath.Join(assets, "A.prefab.meta"), metaContent(guidA))
	writeFixture(t, filepath.Join(assets, "B.mat"), "material body")
	writeFixture(t, filepath.Join(assets, "B.mat.meta"), metaContent(guidB))
	writeFixture(t, filepath.Join(assets, "scene.unity"), "m_Material: {guid: "+guidB+"}")
	writeFixture(t, filepath.Join(assets, "readme.txt"), "see asset "+guidA)

	return assets
}

func scanWith(t *testing.T, assets string, workers int) *recordingUI {
	t.Helper()

	ui := &recordingUI{}
	w := NewWorkflow(adapter.NewLocalAssetFS(), ui)

	err := w.Scan(context.Background(), ScanConfig{
		Root:       m.Path(assets),
		Workers:    workers,
		Extensions: DefaultExtensions,
	})
	require.NoError(t, err)
	require.NotNil(t, ui.outcome)

	return ui
}

func TestWorkflow_Scan_EndToEnd(t *testing.T) {
	assets := projectFixture(t)

	ui := scanWith(t, assets, DefaultWorkers)

	assert.True(t, ui.started)
	assert.True(t, ui.closed)
	assert.Equal(t, 2, ui.info.Candidates)
	assert.Equal(t, 3, ui.info.ContentFiles) // A.prefab, B.mat, scene.unity

	outcome := *ui.outcome
	require.Len(t, outcome.Report, 1)
	assert.Equal(t, m.GUID(guidA), outcome.Report[0].GUID)
	assert.Equal(t, m.Path(filepath.Join(assets, "A.prefab")), outcome.Report[0].AssetPath)

	assert.Equal(t, 2, outcome.Stats.Candidates)
	assert.Equal(t, 3, outcome.Stats.ContentFiles)
	assert.Equal(t, 1, outcome.Stats.Unused)
	assert.Equal(t, outcome.Report[0].Size, outcome.Stats.ReclaimableBytes)
	assert.Empty(t, outcome.Conflicts)
	assert.Empty(t, outcome.Warnings)
}

func TestWorkflow_Scan_ReportInvariantUnderWorkerCount(t *testing.T) {
	assets := projectFixture(t)

	one := scanWith(t, assets, MinWorkers)
	many := scanWith(t, assets, MaxWorkers)

	assert.Equal(t, one.outcome.Report, many.outcome.Report)
	assert.Equal(t, one.outcome.Stats, many.outcome.Stats)
}

func TestWorkflow_Scan_DisallowedExtensionIsNotAReference(t *testing.T) {
	assets := projectFixture(t)

	// readme.txt contains guidA, but .txt is not on the allow-list, so A
	// must still be reported unused.
	ui := scanWith(t, assets, DefaultWorkers)

	require.Len(t, ui.outcome.Report, 1)
	assert.Equal(t, m.GUID(guidA), ui.outcome.Report[0].GUID)
}

func TestWorkflow_Scan_SelfDescriptorNeedsExternalReference(t *testing.T) {
	assets := projectFixture(t)

	ui := &recordingUI{}
	w := NewWorkflow(adapter.NewLocalAssetFS(), ui)

	// Scanning descriptors too: each .meta contains its own GUID, which
	// must not count as a reference to itself.
	err := w.Scan(context.Background(), ScanConfig{
		Root:       m.Path(assets),
		Workers:    DefaultWorkers,
		Extensions: append([]string{".meta"}, DefaultExtensions...),
	})
	require.NoError(t, err)
	require.NotNil(t, ui.outcome)

	require.Len(t, ui.outcome.Report, 1)
	assert.Equal(t, m.GUID(guidA), ui.outcome.Report[0].GUID)
}

func TestWorkflow_Scan_ConfigurationErrors(t *testing.T) {
	assets := projectFixture(t)

	tests := []struct {
		name string
		cfg  ScanConfig
	}{
		{
			name: "nonexistent root",
			cfg: ScanConfig{
				Root:       m.Path(filepath.Join(assets, "missing")),
				Workers:    DefaultWorkers,
				Extensions: DefaultExtensions,
			},
		},
		{
			name: "root is a file",
			cfg: ScanConfig{
				Root:       m.Path(filepath.Join(assets, "A.prefab")),
				Workers:    DefaultWorkers,
				Extensions: DefaultExtensions,
			},
		},
		{
			name: "invalid worker count",
			cfg:  ScanConfig{Root: m.Path(assets), Workers: 0, Extensions: DefaultExtensions},
		},
		{
			name: "no Assets directory above root",
			cfg: ScanConfig{
				Root:       "/",
				Workers:    DefaultWorkers,
				Extensions: DefaultExtensions,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := &recordingUI{}
			w := NewWorkflow(adapter.NewLocalAssetFS(), ui)

			err := w.Scan(context.Background(), tt.cfg)

			var cfgErr *ConfigError

			require.ErrorAs(t, err, &cfgErr)
			assert.False(t, ui.started, "no scanning may start on configuration errors")
		})
	}
}

func TestWorkflow_Scan_CancelledRunIsIncomplete(t *testing.T) {
	assets := projectFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui := &recordingUI{}
	w := NewWorkflow(adapter.NewLocalAssetFS(), ui)

	err := w.Scan(ctx, ScanConfig{
		Root:       m.Path(assets),
		Workers:    DefaultWorkers,
		Extensions: DefaultExtensions,
	})

	require.Error(t, err)
	assert.Nil(t, ui.outcome, "a cancelled run must never produce a report")
}
