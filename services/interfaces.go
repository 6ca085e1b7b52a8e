package services

import (
	"github.com/DurdagiLab/dynophore-analysis/model"
)

// FrameSource yields the per-frame feature tables of a trajectory.
type FrameSource interface {
	// Frames returns the IDs of all frames the source has a feature table
	// for, ascending.
	Frames() ([]int, error)

	// Features returns the ordered feature list of one frame. It returns an
	// error matching errors.ErrMissingFrameData when the frame's table is
	// absent, and reports the number of rows it had to reject.
	Features(frameID int) (model.FrameFeatures, int, error)
}

// RMSDSource yields the trajectory's RMSD time series.
type RMSDSource interface {
	// Series returns the frame-to-RMSD mapping keyed by the file's raw frame
	// numbers, plus the count of rows that could not be parsed and were
	// skipped.
	Series() (map[int]float64, int, error)
}

// HypothesisStore resolves a frame ID to its stored hypothesis file. The file
// is an opaque handle: its content is never parsed, only copied on export.
type HypothesisStore interface {
	// Resolve returns the path of the frame's hypothesis file and whether it
	// exists on disk.
	Resolve(frameID int) (string, bool)
}

// Analyzer runs the full aggregation pipeline once and returns the finalized
// result table.
type Analyzer interface {
	Run() (*model.AnalysisResult, error)
}

// ResultStore persists and reloads finished analysis results, so reporting
// and the results viewer never need to recompute.
type ResultStore interface {
	Save(result *model.AnalysisResult) error
	Load() (*model.AnalysisResult, error)
}

// Exporter materializes the user-facing outputs of a finished run: report,
// charts and the copied best-hypothesis files.
type Exporter interface {
	Export(result *model.AnalysisResult) error
}
