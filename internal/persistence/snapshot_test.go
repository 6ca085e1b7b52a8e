package persistence

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/DurdagiLab/dynophore-analysis/internal/errors"
	"github.com/DurdagiLab/dynophore-analysis/model"
)

func sampleResult() *model.AnalysisResult {
	started := time.Date(2025, 5, 12, 9, 30, 0, 0, time.UTC)
	return &model.AnalysisResult{
		Run: model.AnalysisRun{
			RunID:            "11111111-2222-3333-4444-555555555555",
			StartedAt:        started,
			CompletedAt:      started.Add(3 * time.Second),
			TotalFrames:      2,
			AggregatedFrames: 2,
		},
		Frames: []model.FrameRecord{
			{FrameID: 1, Signature: model.Signature{"A", "D"}, RMSD: 0.5},
			{FrameID: 2, Signature: model.Signature{"A", "D"}, RMSD: 0.3},
		},
		Groups: []model.HypothesisGroup{
			{
				Signature:      model.Signature{"A", "D"},
				Frames:         []int{1, 2},
				Count:          2,
				Percent:        100,
				Representative: model.Representative{FrameID: 2, RMSD: 0.3},
				FirstFrame:     1,
			},
		},
		Selection: []model.SelectedHypothesis{
			{
				HypothesisGroup: model.HypothesisGroup{
					Signature:      model.Signature{"A", "D", "R", "H"},
					Frames:         []int{1},
					Count:          1,
					Percent:        50,
					Representative: model.Representative{FrameID: 1, RMSD: 0.5},
					FirstFrame:     1,
				},
				HypoFile: "/data/hypotheses/1_hypo.phypo",
			},
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "analysis.gob")
	store := NewSnapshotStore(path)

	original := sampleResult()
	require.NoError(t, store.Save(original))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, original, loaded, "a persisted snapshot must load back identical")
}

func TestLoadMissingSnapshot(t *testing.T) {
	store := NewSnapshotStore(filepath.Join(t.TempDir(), "analysis.gob"))

	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrResultsNotFound),
		"expected a ResultsNotFound error, got %v", err)
}
