package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutil "github.com/DurdagiLab/dynophore-analysis/internal/testing"
	"github.com/DurdagiLab/dynophore-analysis/model"
)

func testResult(hypoFile string) *model.AnalysisResult {
	started := time.Date(2025, 5, 12, 9, 30, 0, 0, time.UTC)
	adrh := model.HypothesisGroup{
		Signature:      model.Signature{"A", "D", "R", "H"},
		Frames:         []int{1, 2, 4},
		Count:          3,
		Percent:        60,
		Representative: model.Representative{FrameID: 4, RMSD: 0.213},
		FirstFrame:     1,
	}
	ab := model.HypothesisGroup{
		Signature:      model.Signature{"A", "B"},
		Frames:         []int{3, 5},
		Count:          2,
		Percent:        40,
		Representative: model.Representative{FrameID: 3, RMSD: 0.722},
		FirstFrame:     3,
	}
	return &model.AnalysisResult{
		Run: model.AnalysisRun{
			RunID:            "run-1234",
			StartedAt:        started,
			CompletedAt:      started.Add(time.Second),
			TotalFrames:      5,
			AggregatedFrames: 5,
		},
		Frames: []model.FrameRecord{
			{FrameID: 1, Signature: adrh.Signature, RMSD: 0.5},
			{FrameID: 2, Signature: adrh.Signature, RMSD: 0.3},
			{FrameID: 3, Signature: ab.Signature, RMSD: 0.722},
			{FrameID: 4, Signature: adrh.Signature, RMSD: 0.213},
			{FrameID: 5, Signature: ab.Signature, RMSD: 0.9},
		},
		Groups: []model.HypothesisGroup{adrh, ab},
		Selection: []model.SelectedHypothesis{
			{HypothesisGroup: adrh, HypoFile: hypoFile},
		},
	}
}

func TestExportWritesAllOutputs(t *testing.T) {
	traj := testutil.NewTrajectory(t)
	hypoFile := traj.WriteHypoFile(t, 4)
	cfg := traj.Config()

	exporter := NewExporter(cfg)
	require.NoError(t, exporter.Export(testResult(hypoFile)))

	for _, name := range []string{ReportFileName, BarChartFileName, PieChartFileName, SummaryFileName} {
		_, err := os.Stat(filepath.Join(cfg.OutputDir, name))
		assert.NoError(t, err, "expected %s to be written", name)
	}

	copied := filepath.Join(cfg.BestHypothesesDir(), "4_hypo.phypo")
	data, err := os.ReadFile(copied)
	require.NoError(t, err, "selected hypothesis file should be copied")
	assert.Contains(t, string(data), "phypo frame 4")
}

func TestExportToleratesMissingHypoFile(t *testing.T) {
	traj := testutil.NewTrajectory(t)
	cfg := traj.Config()

	exporter := NewExporter(cfg)
	require.NoError(t, exporter.Export(testResult("")), "missing hypothesis file must not fail the export")

	_, err := os.Stat(filepath.Join(cfg.BestHypothesesDir(), "4_hypo.phypo"))
	assert.True(t, os.IsNotExist(err))
}

func TestHTMLReportContent(t *testing.T) {
	var b strings.Builder
	require.NoError(t, writeHTMLReport(&b, testResult(""), 4))
	html := b.String()

	assert.Contains(t, html, "4-Feature Combinations")
	assert.Contains(t, html, "<b>ADRH</b>: 3 frames (60.0%), Lowest RMSD = 0.213 at frame 4.")
	assert.NotContains(t, html, "2-Feature Combinations",
		"signatures below the minimum length stay out of the summary")
	assert.Contains(t, html, "<td>3</td><td>0.722</td><td>AB</td>",
		"short signatures still appear in the frame mapping")
	assert.Contains(t, html, "run-1234")
}

func TestChartEntriesFilterAndTruncate(t *testing.T) {
	groups := []model.HypothesisGroup{
		{Signature: model.Signature{"A", "B"}, Percent: 50},
		{Signature: model.Signature{"A", "D", "R", "H"}, Percent: 30},
		{Signature: model.Signature{"A", "D", "R", "N"}, Percent: 12},
		{Signature: model.Signature{"A", "D", "H", "N"}, Percent: 8},
	}

	entries := chartEntries(groups, 4, 2)
	require.Len(t, entries, 2)
	assert.Equal(t, "ADRH", entries[0].Label)
	assert.Equal(t, "ADRN", entries[1].Label)
}

func TestChartSVGRendering(t *testing.T) {
	entries := []chartEntry{
		{Label: "ADRH", Percent: 60},
		{Label: "ADRN", Percent: 40},
	}

	bar := barChartSVG(entries, "Top 2 Pharmacophore Hypotheses")
	assert.Contains(t, bar, "<svg")
	assert.Contains(t, bar, "ADRH")
	assert.Contains(t, bar, "60.0%")

	pie := donutChartSVG(entries, "Top 2 Pharmacophore Hypotheses")
	assert.Contains(t, pie, "<path")
	assert.Contains(t, pie, "ADRN (40.0%)")

	single := donutChartSVG(entries[:1], "Top 1 Pharmacophore Hypotheses")
	assert.Contains(t, single, "<circle", "a single hypothesis renders as a full ring")
}
