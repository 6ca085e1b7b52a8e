package rmsd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DurdagiLab/dynophore-analysis/internal/rmsd"
	testutil "github.com/DurdagiLab/dynophore-analysis/internal/testing"
)

func TestSeries(t *testing.T) {
	traj := testutil.NewTrajectory(t)
	traj.WriteRMSD(t,
		"# frame rmsd",
		"0 0.000",
		"1 0.512",
		"2 0.334",
		"",
		"3 0.781",
	)

	series, skipped, err := rmsd.NewFile(traj.RMSDPath).Series()
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	assert.Len(t, series, 4)
	assert.InDelta(t, 0.512, series[1], 1e-9)
	assert.InDelta(t, 0.781, series[3], 1e-9)
}

func TestSeriesSkipsUnparseableRows(t *testing.T) {
	traj := testutil.NewTrajectory(t)
	traj.WriteRMSD(t,
		"0 0.4",
		"one 0.5",     // non-numeric frame
		"2 fast",      // non-numeric value
		"3",           // incomplete row
		"4 0.2 extra", // trailing columns tolerated
	)

	series, skipped, err := rmsd.NewFile(traj.RMSDPath).Series()
	require.NoError(t, err)
	assert.Equal(t, 3, skipped)
	assert.Len(t, series, 2)
	assert.InDelta(t, 0.4, series[0], 1e-9)
	assert.InDelta(t, 0.2, series[4], 1e-9)

	_, present := series[2]
	assert.False(t, present, "a frame with an unparseable row must be absent from the series")
}

func TestSeriesMissingFile(t *testing.T) {
	_, _, err := rmsd.NewFile("/nonexistent/trajrmsd.dat").Series()
	assert.Error(t, err)
}
