// Package config provides configuration structures for the trajectory
// analysis pipeline. Every path and tunable the pipeline consults is an
// explicit configuration value; nothing is read from process-wide state.
package config

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Percent-basis values for hypothesis frequency percentages.
//
// The original tooling this pipeline descends from divided by the size of the
// RMSD series (the whole trajectory); dividing by the number of aggregated
// frame records keeps percentages summing to 100 even when frames were
// dropped. Both remain supported.
const (
	PercentBasisAggregated = "aggregated" // denominator: frame records processed
	PercentBasisTrajectory = "trajectory" // denominator: frames in the RMSD series
)

// AnalysisConfig contains all configuration options for one analysis run.
//
// IMPORTANT: FrameIDOffset aligns the RMSD series with the feature tables.
// Trajectory RMSD files are commonly 0-based while the per-frame exports are
// 1-based; the offset is added to the RMSD file's frame column before the
// join. ExcludeFrames removes trajectory artifacts (for example a trailing
// duplicate frame some exporters append) after the offset is applied.
type AnalysisConfig struct {
	FeaturesDir        string `json:"features_dir"`         // directory of per-frame feature tables (<frame>_hypo_features_table.csv)
	RMSDPath           string `json:"rmsd_path"`            // whitespace-delimited frame/RMSD series file
	HypothesesDir      string `json:"hypotheses_dir"`       // directory of stored hypothesis files (<frame>_hypo.phypo)
	OutputDir          string `json:"output_dir"`           // directory for report, charts and persisted results
	TopHypotheses      int    `json:"top_hypotheses"`       // max entries in the best-hypothesis selection; 0 selects the default (3)
	MinSignatureLength int    `json:"min_signature_length"` // signatures shorter than this are excluded from selection and summary
	ChartTopN          int    `json:"chart_top_n"`          // max hypotheses shown in charts
	PercentBasis       string `json:"percent_basis"`        // PercentBasisAggregated or PercentBasisTrajectory
	FrameIDOffset      int    `json:"frame_id_offset"`      // added to RMSD frame numbers before joining
	ExcludeFrames      []int  `json:"exclude_frames"`       // frame IDs dropped from the RMSD series after offsetting
}

// Default returns an AnalysisConfig with the conventional directory layout
// rooted at baseDir.
func Default(baseDir string) AnalysisConfig {
	cfg := AnalysisConfig{
		FeaturesDir:   filepath.Join(baseDir, "DYNOPHORE_ANALYSIS", "PROCESSED_FILES"),
		RMSDPath:      filepath.Join(baseDir, "trajrmsd.dat"),
		HypothesesDir: filepath.Join(baseDir, "DYNOPHORE_ANALYSIS", "saved_HYPOTHESIS"),
		OutputDir:     filepath.Join(baseDir, "DYNOPHORE_RESULTS"),
		FrameIDOffset: 1,
	}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults applies default values to the analysis config. Zero means
// "use the default" for the numeric tunables here; to run with an empty
// selection, set TopHypotheses to 0 after this call (the CLI's -top flag is
// applied after defaults, so -top 0 does exactly that).
func (cfg *AnalysisConfig) ApplyDefaults() {
	if cfg.TopHypotheses == 0 {
		cfg.TopHypotheses = 3
	}
	if cfg.MinSignatureLength == 0 {
		cfg.MinSignatureLength = 4
	}
	if cfg.ChartTopN == 0 {
		cfg.ChartTopN = 10
	}
	if cfg.PercentBasis == "" {
		cfg.PercentBasis = PercentBasisAggregated
	}

	// Initialize empty slice if nil to prevent nil pointer issues
	if cfg.ExcludeFrames == nil {
		cfg.ExcludeFrames = []int{}
	}
}

// Validate checks the config for basic requirements and returns a list of
// problems, empty when the config is usable.
func (cfg *AnalysisConfig) Validate() []string {
	var conflicts []string

	if strings.TrimSpace(cfg.FeaturesDir) == "" {
		conflicts = append(conflicts, "features_dir cannot be empty")
	}
	if strings.TrimSpace(cfg.RMSDPath) == "" {
		conflicts = append(conflicts, "rmsd_path cannot be empty")
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		conflicts = append(conflicts, "output_dir cannot be empty")
	}
	if cfg.TopHypotheses < 0 {
		conflicts = append(conflicts, "top_hypotheses cannot be negative")
	}
	if cfg.MinSignatureLength < 1 {
		conflicts = append(conflicts, "min_signature_length must be at least 1")
	}
	if cfg.ChartTopN < 1 {
		conflicts = append(conflicts, "chart_top_n must be at least 1")
	}
	if cfg.PercentBasis != PercentBasisAggregated && cfg.PercentBasis != PercentBasisTrajectory {
		conflicts = append(conflicts, "Invalid percent_basis '"+cfg.PercentBasis+"' (must be '"+
			PercentBasisAggregated+"' or '"+PercentBasisTrajectory+"')")
	}

	conflicts = append(conflicts, checkDuplicateFrames("exclude_frames", cfg.ExcludeFrames)...)

	return conflicts
}

// SnapshotPath returns the location of the persisted results snapshot under
// the output directory.
func (cfg *AnalysisConfig) SnapshotPath() string {
	return filepath.Join(cfg.OutputDir, "analysis.gob")
}

// BestHypothesesDir returns the directory the selected hypothesis files are
// copied into.
func (cfg *AnalysisConfig) BestHypothesesDir() string {
	return filepath.Join(cfg.OutputDir, "BEST_HYPOTHESES")
}

// checkDuplicateFrames checks for duplicate frame IDs in a slice and returns error messages
func checkDuplicateFrames(fieldName string, frames []int) []string {
	var errors []string
	seen := make(map[int]bool)

	for _, frame := range frames {
		if seen[frame] {
			errors = append(errors, "Duplicate frame "+strconv.Itoa(frame)+" found in "+fieldName)
		}
		seen[frame] = true
	}

	return errors
}
