// Package rmsd reads trajectory RMSD time series. The expected format is one
// whitespace-delimited "frame value" pair per line, as produced by the common
// trajectory analysis tools; '#' comment lines and blank lines are skipped.
package rmsd

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/DurdagiLab/dynophore-analysis/internal/errors"
)

// File is an RMSD source backed by a series file. It implements
// services.RMSDSource.
type File struct {
	path string
}

// NewFile creates an RMSD source for the given series file.
func NewFile(path string) *File {
	return &File{path: path}
}

// Series parses the file into a frame-to-RMSD mapping keyed by the raw frame
// numbers of the file. Rows that cannot be decoded are skipped and counted;
// the corresponding frames are simply absent from the series, which excludes
// them downstream during aggregation.
func (f *File) Series() (map[int]float64, int, error) {
	file, err := os.Open(f.path) // #nosec G304 -- path comes from the analysis config
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("Warning: failed to close %s: %v", f.path, closeErr)
		}
	}()

	series := make(map[int]float64)
	skipped := 0
	lineNo := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			skipped++
			log.Printf("Skipping row: %v", errors.NewRmsdParseError(lineNo, "expected frame and RMSD columns"))
			continue
		}

		frame, err := strconv.Atoi(fields[0])
		if err != nil {
			skipped++
			log.Printf("Skipping row: %v", errors.NewRmsdParseError(lineNo, "non-numeric frame '"+fields[0]+"'"))
			continue
		}
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			skipped++
			log.Printf("Skipping row: %v", errors.NewRmsdParseError(lineNo, "non-numeric RMSD value '"+fields[1]+"'"))
			continue
		}

		series[frame] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, err
	}

	return series, skipped, nil
}
