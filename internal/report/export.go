// Package report materializes the user-facing outputs of a finished analysis
// run: the HTML summary report, frequency charts, a machine-readable summary,
// and the copied best-hypothesis files.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/DurdagiLab/dynophore-analysis/config"
	"github.com/DurdagiLab/dynophore-analysis/model"
)

// Output file names under the results directory.
const (
	ReportFileName   = "Feature_Summary_Report.html"
	BarChartFileName = "Feature_BarChart.svg"
	PieChartFileName = "Feature_PieChart.svg"
	SummaryFileName  = "summary.json"
)

// Exporter writes all run outputs below the configured output directory. It
// implements services.Exporter.
type Exporter struct {
	cfg config.AnalysisConfig
}

// NewExporter creates an exporter for the given config.
func NewExporter(cfg config.AnalysisConfig) *Exporter {
	return &Exporter{cfg: cfg}
}

// Export writes the report, charts and summary, and copies the selected
// hypothesis files into the best-hypotheses directory. A selection entry
// without a stored hypothesis file is skipped with a warning.
func (e *Exporter) Export(result *model.AnalysisResult) error {
	if err := os.MkdirAll(e.cfg.OutputDir, 0750); err != nil {
		return fmt.Errorf("failed to create results directory %s: %w", e.cfg.OutputDir, err)
	}

	if err := e.writeReport(result); err != nil {
		return err
	}
	if err := e.writeCharts(result); err != nil {
		return err
	}
	if err := e.writeSummaryJSON(result); err != nil {
		return err
	}
	return e.copyBestHypotheses(result)
}

func (e *Exporter) writeReport(result *model.AnalysisResult) error {
	path := filepath.Join(e.cfg.OutputDir, ReportFileName)
	file, err := os.Create(path) // #nosec G304 -- path is below the configured output directory
	if err != nil {
		return fmt.Errorf("failed to create report file %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("Warning: failed to close %s: %v", path, closeErr)
		}
	}()

	if err := writeHTMLReport(file, result, e.cfg.MinSignatureLength); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func (e *Exporter) writeCharts(result *model.AnalysisResult) error {
	entries := chartEntries(result.Groups, e.cfg.MinSignatureLength, e.cfg.ChartTopN)

	title := fmt.Sprintf("Top %d Pharmacophore Hypotheses", len(entries))
	bar := filepath.Join(e.cfg.OutputDir, BarChartFileName)
	if err := os.WriteFile(bar, []byte(barChartSVG(entries, title)), 0644); err != nil {
		return fmt.Errorf("failed to write chart %s: %w", bar, err)
	}

	pie := filepath.Join(e.cfg.OutputDir, PieChartFileName)
	if err := os.WriteFile(pie, []byte(donutChartSVG(entries, title)), 0644); err != nil {
		return fmt.Errorf("failed to write chart %s: %w", pie, err)
	}
	return nil
}

func (e *Exporter) writeSummaryJSON(result *model.AnalysisResult) error {
	path := filepath.Join(e.cfg.OutputDir, SummaryFileName)
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary file %s: %w", path, err)
	}
	return nil
}

func (e *Exporter) copyBestHypotheses(result *model.AnalysisResult) error {
	if len(result.Selection) == 0 {
		return nil
	}

	destDir := e.cfg.BestHypothesesDir()
	if err := os.MkdirAll(destDir, 0750); err != nil {
		return fmt.Errorf("failed to create best-hypotheses directory %s: %w", destDir, err)
	}

	for _, selected := range result.Selection {
		if selected.HypoFile == "" {
			log.Printf("Warning: hypothesis file for frame %d not found in %s, skipping copy",
				selected.Representative.FrameID, e.cfg.HypothesesDir)
			continue
		}
		dest := filepath.Join(destDir, filepath.Base(selected.HypoFile))
		if err := copyFile(selected.HypoFile, dest); err != nil {
			return fmt.Errorf("failed to copy hypothesis file %s: %w", selected.HypoFile, err)
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src) // #nosec G304 -- src comes from the resolved selection
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil {
			log.Printf("Warning: failed to close %s: %v", src, closeErr)
		}
	}()

	out, err := os.Create(dest) // #nosec G304 -- dest is below the configured output directory
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
