// Package features reads per-frame pharmacophore feature tables. One CSV file
// per frame, named <frameID>_hypo_features_table.csv, one feature per row.
// Row order is preserved: it determines the frame's hypothesis signature.
package features

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/DurdagiLab/dynophore-analysis/internal/errors"
	"github.com/DurdagiLab/dynophore-analysis/internal/hypothesis"
	"github.com/DurdagiLab/dynophore-analysis/model"
)

// tableNameRegex matches per-frame feature table file names, capturing the
// frame ID.
var tableNameRegex = regexp.MustCompile(`^(\d+)_hypo_features_table\.csv$`)

// featureColumn is the preferred header name of the feature-label column.
// Tables without it fall back to the second column.
const featureColumn = "Feature_label"

// Dir is a feature-table source backed by a directory of per-frame CSV files.
// It implements services.FrameSource.
type Dir struct {
	path string
}

// NewDir creates a feature-table source for the given directory.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// Frames scans the directory and returns the frame IDs of all feature tables
// found, ascending.
func (d *Dir) Frames() ([]int, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, err
	}

	var frames []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := tableNameRegex.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		frameID, err := strconv.Atoi(m[1])
		if err != nil {
			continue // regex guarantees digits; overflow only
		}
		frames = append(frames, frameID)
	}

	sort.Ints(frames)
	return frames, nil
}

// Features reads one frame's feature table and returns its ordered feature
// list together with the number of rows that were rejected. A missing file
// yields an error matching errors.ErrMissingFrameData. Rejected rows are
// skipped, never guessed at: a feature cell must carry at least one
// feature-type letter to be accepted.
func (d *Dir) Features(frameID int) (model.FrameFeatures, int, error) {
	path := d.tablePath(frameID)

	file, err := os.Open(path) // #nosec G304 -- path is derived from the configured features directory
	if err != nil {
		if os.IsNotExist(err) {
			return model.FrameFeatures{}, 0, errors.NewMissingFrameDataError(frameID, path)
		}
		return model.FrameFeatures{}, 0, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("Warning: failed to close %s: %v", path, closeErr)
		}
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tables carry a varying number of geometry columns

	header, err := reader.Read()
	if err == io.EOF {
		return model.FrameFeatures{FrameID: frameID}, 0, nil
	}
	if err != nil {
		// Without a header there is no column layout to recover rows against.
		return model.FrameFeatures{}, 0, errors.NewMalformedRowError(filepath.Base(path), 1, err.Error())
	}

	// The exporters are inconsistent about delimiters; some write ';'. When
	// the header did not split on ',' but splits on ';', re-split each record
	// on ';'.
	semicolon := delimiterIsSemicolon(header)
	if semicolon {
		header = strings.Split(header[0], ";")
	}
	col := featureColumnIndex(header)

	frame := model.FrameFeatures{FrameID: frameID}
	malformed := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.Reader resumes at the next record after a parse error, so a
			// bad row is skipped without losing the rest of the frame.
			malformed++
			log.Printf("Skipping row: %v", errors.NewMalformedRowError(filepath.Base(path), line, err.Error()))
			continue
		}
		if semicolon && len(record) == 1 {
			record = strings.Split(record[0], ";")
		}
		if col >= len(record) {
			malformed++
			log.Printf("Skipping row: %v", errors.NewMalformedRowError(filepath.Base(path), line, "missing feature column"))
			continue
		}
		label := strings.TrimSpace(record[col])
		tag := hypothesis.TypeTag(label)
		if tag == "" {
			malformed++
			log.Printf("Skipping row: %v", errors.NewMalformedRowError(filepath.Base(path), line, "feature label '"+label+"' has no type letters"))
			continue
		}
		frame.Features = append(frame.Features, model.Feature{Label: label, Type: tag})
	}

	return frame, malformed, nil
}

// tablePath returns the expected file path of one frame's feature table.
func (d *Dir) tablePath(frameID int) string {
	return filepath.Join(d.path, strconv.Itoa(frameID)+"_hypo_features_table.csv")
}

// featureColumnIndex picks the feature-label column: the named column when
// the header carries it, otherwise the second column, otherwise the first.
func featureColumnIndex(header []string) int {
	for i, name := range header {
		if strings.TrimSpace(name) == featureColumn {
			return i
		}
	}
	if len(header) > 1 {
		return 1
	}
	return 0
}

// delimiterIsSemicolon reports whether the header row looks
// semicolon-delimited: it stayed a single field under ',' splitting and that
// field contains more ';' than ','.
func delimiterIsSemicolon(header []string) bool {
	if len(header) != 1 {
		return false
	}
	return strings.Count(header[0], ";") > strings.Count(header[0], ",")
}
