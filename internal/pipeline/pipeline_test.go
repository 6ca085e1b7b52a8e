package pipeline_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DurdagiLab/dynophore-analysis/config"
	apperrors "github.com/DurdagiLab/dynophore-analysis/internal/errors"
	"github.com/DurdagiLab/dynophore-analysis/internal/pipeline"
	testutil "github.com/DurdagiLab/dynophore-analysis/internal/testing"
	"github.com/DurdagiLab/dynophore-analysis/model"
)

// writeScenario writes the canonical five-frame trajectory:
// signatures [A,B], [A,B], [A,B,C], [A,B], [A,C] with
// RMSD 0.5, 0.3, 0.7, 0.2, 0.9 for frames 1..5.
func writeScenario(t *testing.T, traj *testutil.Trajectory) {
	traj.WriteFeatureTable(t, 1, "A1", "B2")
	traj.WriteFeatureTable(t, 2, "A3", "B1")
	traj.WriteFeatureTable(t, 3, "A1", "B1", "C2")
	traj.WriteFeatureTable(t, 4, "A2", "B5")
	traj.WriteFeatureTable(t, 5, "A1", "C3")
	traj.WriteRMSD(t,
		"1 0.5",
		"2 0.3",
		"3 0.7",
		"4 0.2",
		"5 0.9",
	)
}

func groupBySignature(t *testing.T, groups []model.HypothesisGroup, sig string) model.HypothesisGroup {
	t.Helper()
	for _, g := range groups {
		if g.Signature.String() == sig {
			return g
		}
	}
	t.Fatalf("no hypothesis group with signature %q", sig)
	return model.HypothesisGroup{}
}

func TestRunGroupsAndRepresentatives(t *testing.T) {
	traj := testutil.NewTrajectory(t)
	writeScenario(t, traj)

	result, err := pipeline.New(traj.Config()).Run()
	require.NoError(t, err)

	assert.Equal(t, 5, result.Run.TotalFrames)
	assert.Equal(t, 5, result.Run.AggregatedFrames)
	assert.Len(t, result.Groups, 3)

	ab := groupBySignature(t, result.Groups, "AB")
	assert.Equal(t, 3, ab.Count)
	assert.Equal(t, []int{1, 2, 4}, ab.Frames)
	assert.Equal(t, 4, ab.Representative.FrameID)
	assert.InDelta(t, 0.2, ab.Representative.RMSD, 1e-9)

	abc := groupBySignature(t, result.Groups, "ABC")
	assert.Equal(t, 1, abc.Count)
	assert.Equal(t, 3, abc.Representative.FrameID)

	ac := groupBySignature(t, result.Groups, "AC")
	assert.Equal(t, 1, ac.Count)
	assert.Equal(t, 5, ac.Representative.FrameID)

	// Table order: count descending, then first-seen frame ascending.
	assert.Equal(t, "AB", result.Groups[0].Signature.String())
	assert.Equal(t, "ABC", result.Groups[1].Signature.String())
	assert.Equal(t, "AC", result.Groups[2].Signature.String())
}

func TestRunSeparatesMultiLetterTagBoundaries(t *testing.T) {
	// [AR, O] and [A, RO] render identically but are different ordered
	// sequences and must land in different groups.
	traj := testutil.NewTrajectory(t)
	traj.WriteFeatureTable(t, 1, "AR1", "O2")
	traj.WriteFeatureTable(t, 2, "A1", "RO2")
	traj.WriteRMSD(t, "1 0.5", "2 0.3")

	result, err := pipeline.New(traj.Config()).Run()
	require.NoError(t, err)

	require.Len(t, result.Groups, 2)
	assert.Equal(t, model.Signature{"AR", "O"}, result.Groups[0].Signature)
	assert.Equal(t, model.Signature{"A", "RO"}, result.Groups[1].Signature)
	assert.Equal(t, 1, result.Groups[0].Count)
	assert.Equal(t, 1, result.Groups[1].Count)
}

func TestRunPercentagesSumToHundred(t *testing.T) {
	traj := testutil.NewTrajectory(t)
	writeScenario(t, traj)

	result, err := pipeline.New(traj.Config()).Run()
	require.NoError(t, err)

	countSum := 0
	percentSum := 0.0
	for _, g := range result.Groups {
		countSum += g.Count
		percentSum += g.Percent
	}
	assert.Equal(t, result.Run.AggregatedFrames, countSum)
	assert.InDelta(t, 100.0, percentSum, 1e-9)
}

func TestRunRepresentativeTieBreaksOnLowestFrame(t *testing.T) {
	traj := testutil.NewTrajectory(t)
	traj.WriteFeatureTable(t, 1, "A1", "B2")
	traj.WriteFeatureTable(t, 2, "A2", "B1")
	traj.WriteFeatureTable(t, 3, "A3", "B3")
	traj.WriteRMSD(t, "1 0.4", "2 0.4", "3 0.4")

	result, err := pipeline.New(traj.Config()).Run()
	require.NoError(t, err)

	ab := groupBySignature(t, result.Groups, "AB")
	assert.Equal(t, 1, ab.Representative.FrameID, "equal RMSD must resolve to the lowest frame ID")
}

func TestRunSkipsFrameWithMissingTable(t *testing.T) {
	// The scenario trajectory, except frame 3 never got a feature table.
	traj := testutil.NewTrajectory(t)
	traj.WriteFeatureTable(t, 1, "A1", "B2")
	traj.WriteFeatureTable(t, 2, "A3", "B1")
	traj.WriteFeatureTable(t, 4, "A2", "B5")
	traj.WriteFeatureTable(t, 5, "A1", "C3")
	traj.WriteRMSD(t, "1 0.5", "2 0.3", "3 0.7", "4 0.2", "5 0.9")

	result, err := pipeline.New(traj.Config()).Run()
	require.NoError(t, err)

	assert.Equal(t, 4, result.Run.TotalFrames)
	assert.Equal(t, 4, result.Run.AggregatedFrames)
	assert.Equal(t, 1, result.Run.DroppedNoFeatures, "frame 3 is in the trajectory but has no feature table")
	for _, rec := range result.Frames {
		assert.NotEqual(t, 3, rec.FrameID, "frame 3 has no feature table and must be absent")
	}
}

func TestRunDropsFrameWithoutRMSD(t *testing.T) {
	traj := testutil.NewTrajectory(t)
	traj.WriteFeatureTable(t, 1, "A1", "B2")
	traj.WriteFeatureTable(t, 2, "A3", "B1")
	traj.WriteFeatureTable(t, 5, "A1", "C3")
	traj.WriteRMSD(t, "1 0.5", "2 0.3") // no entry for frame 5

	result, err := pipeline.New(traj.Config()).Run()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Run.DroppedNoRMSD)
	assert.Equal(t, 2, result.Run.AggregatedFrames)
	for _, rec := range result.Frames {
		assert.NotEqual(t, 5, rec.FrameID)
	}
}

func TestRunCountsFullyMalformedFrame(t *testing.T) {
	traj := testutil.NewTrajectory(t)
	traj.WriteFeatureTable(t, 1, "A1", "B2")
	traj.WriteRawFeatureTable(t, 2, "Index,Feature_label\n1,123\n2,456\n")
	traj.WriteRMSD(t, "1 0.5", "2 0.3")

	result, err := pipeline.New(traj.Config()).Run()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Run.DroppedNoFeatures)
	assert.Equal(t, 2, result.Run.MalformedRows)
	assert.Equal(t, 1, result.Run.AggregatedFrames)
}

func TestRunEmptyResultSetIsFatal(t *testing.T) {
	traj := testutil.NewTrajectory(t)
	traj.WriteRMSD(t, "# empty series")

	_, err := pipeline.New(traj.Config()).Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrEmptyResultSet),
		"expected an EmptyResultSet error, got %v", err)
}

func TestRunFrameOffsetAndExclusions(t *testing.T) {
	traj := testutil.NewTrajectory(t)
	traj.WriteFeatureTable(t, 1, "A1", "B2")
	traj.WriteFeatureTable(t, 2, "A3", "B1")
	traj.WriteFeatureTable(t, 3, "A1", "C3")
	// 0-based RMSD frames: row 0 maps to table frame 1, and so on.
	traj.WriteRMSD(t, "0 0.5", "1 0.3", "2 0.9")

	cfg := traj.Config()
	cfg.FrameIDOffset = 1
	cfg.ExcludeFrames = []int{3}

	result, err := pipeline.New(cfg).Run()
	require.NoError(t, err)

	assert.Equal(t, 2, result.Run.AggregatedFrames)
	assert.Equal(t, 1, result.Run.DroppedNoRMSD, "excluded frame counts as absent from the series")
	ab := groupBySignature(t, result.Groups, "AB")
	assert.InDelta(t, 0.3, ab.Representative.RMSD, 1e-9)
	assert.Equal(t, 2, ab.Representative.FrameID)
}

func TestRunPercentBasis(t *testing.T) {
	traj := testutil.NewTrajectory(t)
	traj.WriteFeatureTable(t, 1, "A1", "B2")
	traj.WriteFeatureTable(t, 2, "A3", "B1")
	// Frames 3 and 4 have RMSD but no feature tables.
	traj.WriteRMSD(t, "1 0.5", "2 0.3", "3 0.7", "4 0.2")

	cfg := traj.Config()
	cfg.PercentBasis = config.PercentBasisAggregated
	result, err := pipeline.New(cfg).Run()
	require.NoError(t, err)
	assert.InDelta(t, 100.0, groupBySignature(t, result.Groups, "AB").Percent, 1e-9,
		"aggregated basis divides by frame records processed")

	cfg.PercentBasis = config.PercentBasisTrajectory
	result, err = pipeline.New(cfg).Run()
	require.NoError(t, err)
	assert.InDelta(t, 50.0, groupBySignature(t, result.Groups, "AB").Percent, 1e-9,
		"trajectory basis divides by the RMSD series size")
}

func TestRunSelection(t *testing.T) {
	traj := testutil.NewTrajectory(t)
	// Two qualifying signatures (length >= 4) and one short one.
	traj.WriteFeatureTable(t, 1, "A1", "D2", "R3", "H4")
	traj.WriteFeatureTable(t, 2, "A2", "D1", "R1", "H2")
	traj.WriteFeatureTable(t, 3, "A1", "D2", "R3", "H4", "N5")
	traj.WriteFeatureTable(t, 4, "A1", "B2")
	traj.WriteRMSD(t, "1 0.5", "2 0.2", "3 0.9", "4 0.1")
	hypoPath := traj.WriteHypoFile(t, 2)

	result, err := pipeline.New(traj.Config()).Run()
	require.NoError(t, err)

	require.Len(t, result.Selection, 2, "only qualifying groups are selected, never padded")
	assert.Equal(t, "ADRH", result.Selection[0].Signature.String())
	assert.Equal(t, "ADRHN", result.Selection[1].Signature.String())
	assert.Equal(t, hypoPath, result.Selection[0].HypoFile)
	assert.Empty(t, result.Selection[1].HypoFile, "missing stored hypothesis file is a warning, not an error")

	for _, sel := range result.Selection {
		assert.GreaterOrEqual(t, sel.Signature.Len(), 4)
	}
}

func TestRunSelectionTruncatesToTop(t *testing.T) {
	traj := testutil.NewTrajectory(t)
	traj.WriteFeatureTable(t, 1, "A1", "D2", "R3", "H4")
	traj.WriteFeatureTable(t, 2, "A1", "D2", "R3", "N4")
	traj.WriteFeatureTable(t, 3, "A1", "D2", "H3", "N4")
	traj.WriteFeatureTable(t, 4, "A1", "R2", "H3", "N4")
	traj.WriteRMSD(t, "1 0.5", "2 0.2", "3 0.9", "4 0.1")

	result, err := pipeline.New(traj.Config()).Run()
	require.NoError(t, err)

	assert.Len(t, result.Selection, 3, "selection is truncated to the configured top count")
	// All groups have count 1; ties resolve by earliest first-seen frame.
	assert.Equal(t, 1, result.Selection[0].FirstFrame)
	assert.Equal(t, 2, result.Selection[1].FirstFrame)
	assert.Equal(t, 3, result.Selection[2].FirstFrame)
}

func TestRunZeroTopYieldsEmptySelection(t *testing.T) {
	traj := testutil.NewTrajectory(t)
	traj.WriteFeatureTable(t, 1, "A1", "D2", "R3", "H4")
	traj.WriteRMSD(t, "1 0.5")

	cfg := traj.Config()
	cfg.TopHypotheses = 0

	result, err := pipeline.New(cfg).Run()
	require.NoError(t, err)

	assert.Empty(t, result.Selection, "top_hypotheses 0 disables selection")
	assert.Len(t, result.Groups, 1, "grouping is unaffected by the selection cap")
}

func TestRunIsIdempotent(t *testing.T) {
	traj := testutil.NewTrajectory(t)
	writeScenario(t, traj)

	first, err := pipeline.New(traj.Config()).Run()
	require.NoError(t, err)
	second, err := pipeline.New(traj.Config()).Run()
	require.NoError(t, err)

	// Everything except the run audit record (fresh ID and timestamps) must
	// be identical across runs on identical inputs.
	assert.Equal(t, first.Frames, second.Frames)
	assert.Equal(t, first.Groups, second.Groups)
	assert.Equal(t, first.Selection, second.Selection)
	assert.NotEqual(t, first.Run.RunID, second.Run.RunID)
}
