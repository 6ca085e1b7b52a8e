package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DurdagiLab/dynophore-analysis/api"
	"github.com/DurdagiLab/dynophore-analysis/config"
	"github.com/DurdagiLab/dynophore-analysis/internal/persistence"
	"github.com/DurdagiLab/dynophore-analysis/internal/pipeline"
	"github.com/DurdagiLab/dynophore-analysis/internal/report"
	"github.com/DurdagiLab/dynophore-analysis/model"
)

func main() {
	// Define command-line flags
	var (
		help         = flag.Bool("help", false, "Show help message")
		version      = flag.Bool("version", false, "Show version information")
		baseDir      = flag.String("base-dir", ".", "Trajectory base directory (conventional layout)")
		featuresDir  = flag.String("features-dir", "", "Directory of per-frame feature tables (overrides base-dir layout)")
		rmsdPath     = flag.String("rmsd", "", "RMSD series file (overrides base-dir layout)")
		hypoDir      = flag.String("hypo-dir", "", "Directory of stored hypothesis files (overrides base-dir layout)")
		outDir       = flag.String("out", "", "Results output directory (overrides base-dir layout)")
		top          = flag.Int("top", 3, "Max entries in the best-hypothesis selection")
		minLength    = flag.Int("min-length", 4, "Minimum signature length for selection and summary")
		chartTop     = flag.Int("chart-top", 10, "Max hypotheses shown in charts")
		percentBasis = flag.String("percent-basis", config.PercentBasisAggregated, "Percentage denominator: 'aggregated' or 'trajectory'")
		frameOffset  = flag.Int("frame-offset", 1, "Offset added to RMSD frame numbers before joining")
		exclude      = flag.String("exclude-frames", "", "Comma-separated frame IDs to drop from the RMSD series")
		serve        = flag.Bool("serve", false, "Serve the results viewer after the analysis (or over an existing snapshot)")
		serveOnly    = flag.Bool("serve-only", false, "Skip the analysis and serve a previously persisted snapshot")
		port         = flag.String("port", "8080", "Port for the results viewer")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Dynophore Analysis - recurring pharmacophore hypotheses from MD trajectories\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                                  # Analyze the conventional layout under the current directory\n", os.Args[0])
		fmt.Printf("  %s --base-dir /data/traj27          # Analyze a trajectory elsewhere\n", os.Args[0])
		fmt.Printf("  %s --serve --port 9000              # Analyze, then browse the results on port 9000\n", os.Args[0])
		fmt.Printf("  %s --serve-only                     # Browse previously computed results\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Dynophore Analysis v1.0.0\n")
		fmt.Printf("Frame-to-hypothesis aggregation with representative-frame selection\n")
		return
	}

	cfg := buildConfig(*baseDir, *featuresDir, *rmsdPath, *hypoDir, *outDir,
		*top, *minLength, *chartTop, *percentBasis, *frameOffset, *exclude)
	if conflicts := cfg.Validate(); len(conflicts) > 0 {
		for _, conflict := range conflicts {
			log.Printf("Configuration error: %s", conflict)
		}
		os.Exit(1)
	}

	store := persistence.NewSnapshotStore(cfg.SnapshotPath())

	var result *model.AnalysisResult
	if *serveOnly {
		loaded, err := store.Load()
		if err != nil {
			log.Fatalf("Failed to load results: %v", err)
		}
		result = loaded
	} else {
		result = runAnalysis(cfg, store)
	}

	if *serve || *serveOnly {
		router := gin.Default()
		api.SetupRoutes(router, result, cfg.OutputDir)

		log.Printf("Serving results of run %s on port %s...", result.Run.RunID, *port)
		if err := router.Run(":" + *port); err != nil {
			log.Fatalf("Failed to start results viewer: %v", err)
		}
	}
}

// runAnalysis executes the pipeline once, persists the snapshot and exports
// the report, charts and best-hypothesis files.
func runAnalysis(cfg config.AnalysisConfig, store *persistence.SnapshotStore) *model.AnalysisResult {
	log.Printf("Reading feature tables from: %s", cfg.FeaturesDir)
	log.Printf("Reading RMSD series from: %s", cfg.RMSDPath)

	result, err := pipeline.New(cfg).Run()
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	if err := store.Save(result); err != nil {
		log.Fatalf("Failed to persist results: %v", err)
	}
	if err := report.NewExporter(cfg).Export(result); err != nil {
		log.Fatalf("Failed to export results: %v", err)
	}

	printSummary(result, cfg)
	return result
}

// buildConfig assembles the analysis config from the conventional base-dir
// layout with per-path flag overrides.
func buildConfig(baseDir, featuresDir, rmsdPath, hypoDir, outDir string,
	top, minLength, chartTop int, percentBasis string, frameOffset int, exclude string) config.AnalysisConfig {

	cfg := config.Default(baseDir)
	if featuresDir != "" {
		cfg.FeaturesDir = featuresDir
	}
	if rmsdPath != "" {
		cfg.RMSDPath = rmsdPath
	}
	if hypoDir != "" {
		cfg.HypothesesDir = hypoDir
	}
	if outDir != "" {
		cfg.OutputDir = outDir
	}
	cfg.TopHypotheses = top
	cfg.MinSignatureLength = minLength
	cfg.ChartTopN = chartTop
	cfg.PercentBasis = percentBasis
	cfg.FrameIDOffset = frameOffset
	cfg.ExcludeFrames = parseFrameList(exclude)
	return cfg
}

// parseFrameList parses a comma-separated list of frame IDs. Entries that are
// not integers are rejected up front.
func parseFrameList(list string) []int {
	if strings.TrimSpace(list) == "" {
		return []int{}
	}

	var frames []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var frame int
		if _, err := fmt.Sscanf(part, "%d", &frame); err != nil {
			log.Fatalf("Invalid --exclude-frames entry '%s': not an integer", part)
		}
		frames = append(frames, frame)
	}
	return frames
}

// printSummary prints the user-facing run summary, including the dropped and
// skipped counts so no exclusion goes unnoticed.
func printSummary(result *model.AnalysisResult, cfg config.AnalysisConfig) {
	run := result.Run

	fmt.Printf("\nAnalysis complete (run %s, %s).\n", run.RunID, run.CompletedAt.Sub(run.StartedAt).Round(time.Millisecond))
	fmt.Printf("Frames: %d discovered, %d aggregated, %d dropped without features, %d dropped without RMSD\n",
		run.TotalFrames, run.AggregatedFrames, run.DroppedNoFeatures, run.DroppedNoRMSD)
	fmt.Printf("Rows skipped: %d feature rows, %d RMSD rows\n", run.MalformedRows, run.SkippedRMSDRows)
	fmt.Printf("Hypotheses: %d distinct signatures\n\n", len(result.Groups))

	if len(result.Selection) == 0 {
		fmt.Printf("No hypotheses with at least %d features found.\n", cfg.MinSignatureLength)
	} else {
		fmt.Printf("Best hypotheses (>= %d features):\n", cfg.MinSignatureLength)
		for i, selected := range result.Selection {
			fmt.Printf("  %d. %s  %d frames (%.1f%%), lowest RMSD %.3f at frame %d\n",
				i+1, selected.Signature.String(), selected.Count, selected.Percent,
				selected.Representative.RMSD, selected.Representative.FrameID)
		}
	}

	fmt.Printf("\nResults written to: %s\n", cfg.OutputDir)
}
