// Package testing provides fixture helpers for the analysis pipeline tests:
// throwaway trajectory layouts with feature tables, RMSD series and stored
// hypothesis files.
package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DurdagiLab/dynophore-analysis/config"
)

// Trajectory is a temporary on-disk trajectory layout for tests.
type Trajectory struct {
	BaseDir       string
	FeaturesDir   string
	RMSDPath      string
	HypothesesDir string
	OutputDir     string
}

// NewTrajectory creates an empty trajectory layout under a test temp dir.
func NewTrajectory(t *testing.T) *Trajectory {
	t.Helper()
	base := t.TempDir()

	traj := &Trajectory{
		BaseDir:       base,
		FeaturesDir:   filepath.Join(base, "features"),
		RMSDPath:      filepath.Join(base, "trajrmsd.dat"),
		HypothesesDir: filepath.Join(base, "hypotheses"),
		OutputDir:     filepath.Join(base, "results"),
	}
	require.NoError(t, os.MkdirAll(traj.FeaturesDir, 0750))
	require.NoError(t, os.MkdirAll(traj.HypothesesDir, 0750))

	return traj
}

// Config returns an analysis config pointing at the trajectory layout. The
// frame offset is zero: test fixtures write RMSD rows keyed directly by the
// feature-table frame IDs unless a test overrides it.
func (traj *Trajectory) Config() config.AnalysisConfig {
	cfg := config.AnalysisConfig{
		FeaturesDir:   traj.FeaturesDir,
		RMSDPath:      traj.RMSDPath,
		HypothesesDir: traj.HypothesesDir,
		OutputDir:     traj.OutputDir,
	}
	cfg.ApplyDefaults()
	return cfg
}

// WriteFeatureTable writes a comma-delimited feature table for one frame,
// one feature label per row.
func (traj *Trajectory) WriteFeatureTable(t *testing.T, frameID int, labels ...string) {
	t.Helper()
	var b strings.Builder
	b.WriteString("Index,Feature_label,Score\n")
	for i, label := range labels {
		fmt.Fprintf(&b, "%d,%s,0.0\n", i+1, label)
	}
	traj.WriteRawFeatureTable(t, frameID, b.String())
}

// WriteRawFeatureTable writes arbitrary feature-table content for one frame,
// for tests exercising delimiter detection and malformed rows.
func (traj *Trajectory) WriteRawFeatureTable(t *testing.T, frameID int, content string) {
	t.Helper()
	path := filepath.Join(traj.FeaturesDir, fmt.Sprintf("%d_hypo_features_table.csv", frameID))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// WriteRMSD writes the RMSD series file from raw lines.
func (traj *Trajectory) WriteRMSD(t *testing.T, lines ...string) {
	t.Helper()
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(traj.RMSDPath, []byte(content), 0644))
}

// WriteHypoFile writes a stored hypothesis file for one frame and returns its
// path. Content is opaque to the pipeline.
func (traj *Trajectory) WriteHypoFile(t *testing.T, frameID int) string {
	t.Helper()
	path := filepath.Join(traj.HypothesesDir, fmt.Sprintf("%d_hypo.phypo", frameID))
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("phypo frame %d\n", frameID)), 0644))
	return path
}
