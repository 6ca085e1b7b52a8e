package model

import "time"

// AnalysisRun is the audit record of a single pipeline invocation. The drop
// counters make silently excluded data visible: every frame or row that was
// skipped during parsing or aggregation is accounted for here and reported in
// the run summary.
type AnalysisRun struct {
	RunID             string    `json:"run_id"`
	StartedAt         time.Time `json:"started_at"`
	CompletedAt       time.Time `json:"completed_at"`
	TotalFrames       int       `json:"total_frames"`        // frames discovered in the feature-table source
	AggregatedFrames  int       `json:"aggregated_frames"`   // frames that produced a FrameRecord
	DroppedNoFeatures int       `json:"dropped_no_features"` // tables missing, unreadable, or fully malformed
	DroppedNoRMSD     int       `json:"dropped_no_rmsd"`     // frames absent from the RMSD series
	MalformedRows     int       `json:"malformed_rows"`      // individual feature rows rejected
	SkippedRMSDRows   int       `json:"skipped_rmsd_rows"`   // unparseable rows of the RMSD series
}

// AnalysisResult is the complete output of one run: the audit record, the
// per-frame mapping, the full hypothesis-group table (count descending) and
// the best-hypothesis selection. It is immutable once produced and is what
// gets persisted, exported and served.
type AnalysisResult struct {
	Run       AnalysisRun          `json:"run"`
	Frames    []FrameRecord        `json:"frames"`
	Groups    []HypothesisGroup    `json:"groups"`
	Selection []SelectedHypothesis `json:"selection"`
}
