// Package pipeline implements the frame-to-hypothesis aggregation: it joins
// abstracted per-frame hypothesis signatures with the RMSD series, groups the
// resulting frame records by signature, computes frequency statistics and
// representative frames, and builds the best-hypothesis selection.
//
// The pipeline is a single synchronous pass. Per-row and per-frame problems
// are recovered locally — logged, counted on the run record, and excluded —
// and never abort the run; only an aggregation that leaves no frame records
// at all is fatal.
package pipeline

import (
	stderrors "errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/DurdagiLab/dynophore-analysis/config"
	"github.com/DurdagiLab/dynophore-analysis/internal/errors"
	"github.com/DurdagiLab/dynophore-analysis/internal/features"
	"github.com/DurdagiLab/dynophore-analysis/internal/hypothesis"
	"github.com/DurdagiLab/dynophore-analysis/internal/rmsd"
	"github.com/DurdagiLab/dynophore-analysis/model"
	"github.com/DurdagiLab/dynophore-analysis/services"
)

// Pipeline runs the trajectory analysis. It implements services.Analyzer.
type Pipeline struct {
	cfg    config.AnalysisConfig
	frames services.FrameSource
	rmsd   services.RMSDSource
	hypos  services.HypothesisStore
}

// New creates a pipeline over the file-backed sources named by the config.
func New(cfg config.AnalysisConfig) *Pipeline {
	return NewWithSources(cfg,
		features.NewDir(cfg.FeaturesDir),
		rmsd.NewFile(cfg.RMSDPath),
		hypothesis.NewStore(cfg.HypothesesDir),
	)
}

// NewWithSources creates a pipeline over explicit sources.
func NewWithSources(cfg config.AnalysisConfig, frames services.FrameSource, rmsdSource services.RMSDSource, hypos services.HypothesisStore) *Pipeline {
	return &Pipeline{cfg: cfg, frames: frames, rmsd: rmsdSource, hypos: hypos}
}

// Run executes the full analysis once and returns the finalized result
// table. It returns an error matching errors.ErrEmptyResultSet when no frame
// has both a usable feature table and an RMSD value.
func (p *Pipeline) Run() (*model.AnalysisResult, error) {
	run := model.AnalysisRun{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
	}

	frameIDs, err := p.frames.Frames()
	if err != nil {
		return nil, err
	}
	run.TotalFrames = len(frameIDs)

	series, skippedRows, err := p.rmsd.Series()
	if err != nil {
		return nil, err
	}
	run.SkippedRMSDRows = skippedRows
	aligned := alignSeries(series, p.cfg.FrameIDOffset, p.cfg.ExcludeFrames)

	records := p.aggregate(frameIDs, aligned, &run)
	if len(records) == 0 {
		return nil, errors.NewEmptyResultSetError(run.TotalFrames)
	}
	run.AggregatedFrames = len(records)

	denominator := len(records)
	if p.cfg.PercentBasis == config.PercentBasisTrajectory {
		denominator = len(aligned)
	}
	groups := groupRecords(records, denominator)
	selection := selectTop(groups, p.cfg.MinSignatureLength, p.cfg.TopHypotheses, p.hypos)

	run.CompletedAt = time.Now()
	log.Printf("Analysis %s: %d/%d frames aggregated into %d hypotheses (%d selected), dropped %d without features, %d without RMSD",
		run.RunID, run.AggregatedFrames, run.TotalFrames, len(groups), len(selection),
		run.DroppedNoFeatures, run.DroppedNoRMSD)

	return &model.AnalysisResult{
		Run:       run,
		Frames:    records,
		Groups:    groups,
		Selection: selection,
	}, nil
}

// aggregate joins the feature-table frames with the aligned RMSD series into
// frame records, in ascending frame order (frameIDs is ascending). Frames
// without a usable signature or without an RMSD entry are dropped and
// counted on the run record, as are trajectory frames that never had a
// feature table at all.
func (p *Pipeline) aggregate(frameIDs []int, aligned map[int]float64, run *model.AnalysisRun) []model.FrameRecord {
	hasTable := make(map[int]bool, len(frameIDs))
	for _, frameID := range frameIDs {
		hasTable[frameID] = true
	}
	for frameID := range aligned {
		if !hasTable[frameID] {
			run.DroppedNoFeatures++
		}
	}

	var records []model.FrameRecord
	for _, frameID := range frameIDs {
		frame, malformed, err := p.frames.Features(frameID)
		run.MalformedRows += malformed
		if err != nil {
			run.DroppedNoFeatures++
			if stderrors.Is(err, errors.ErrMissingFrameData) {
				log.Printf("Skipping frame %d: %v", frameID, err)
			} else {
				log.Printf("Skipping frame %d: failed to read feature table: %v", frameID, err)
			}
			continue
		}

		sig := hypothesis.Abstract(frame)
		if sig.Len() == 0 {
			run.DroppedNoFeatures++
			log.Printf("Skipping frame %d: no decodable feature rows", frameID)
			continue
		}

		value, ok := aligned[frameID]
		if !ok {
			run.DroppedNoRMSD++
			continue
		}

		records = append(records, model.FrameRecord{
			FrameID:   frameID,
			Signature: sig,
			RMSD:      value,
		})
	}
	return records
}

// alignSeries rekeys the raw RMSD series by frame-table IDs (raw frame number
// plus offset) and removes excluded frames.
func alignSeries(series map[int]float64, offset int, exclude []int) map[int]float64 {
	excluded := make(map[int]bool, len(exclude))
	for _, frame := range exclude {
		excluded[frame] = true
	}

	aligned := make(map[int]float64, len(series))
	for frame, value := range series {
		frameID := frame + offset
		if excluded[frameID] {
			continue
		}
		aligned[frameID] = value
	}
	return aligned
}
