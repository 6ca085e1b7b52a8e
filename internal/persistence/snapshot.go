// Package persistence stores finished analysis results on disk, so reporting
// and the results viewer can reload a run without recomputing it.
package persistence

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DurdagiLab/dynophore-analysis/internal/errors"
	"github.com/DurdagiLab/dynophore-analysis/model"
)

// SnapshotStore persists one AnalysisResult as a gob snapshot at a fixed
// path. It implements services.ResultStore.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore creates a store writing to the given file path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Save writes the result snapshot, creating parent directories as needed.
func (s *SnapshotStore) Save(result *model.AnalysisResult) error {
	return saveGob(s.path, result)
}

// Load reads the result snapshot back. It returns an error matching
// errors.ErrResultsNotFound when no snapshot exists yet.
func (s *SnapshotStore) Load() (*model.AnalysisResult, error) {
	var result model.AnalysisResult
	if err := loadGob(s.path, &result); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewResultsNotFoundError(s.path)
		}
		return nil, err
	}
	return &result, nil
}

// saveGob encodes the given object using gob and saves it to filePath,
// creating necessary directories if they don't exist.
func saveGob(filePath string, object interface{}) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.Create(filePath) // #nosec G304 -- filePath is controlled by application, not user input
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filePath, closeErr)
		}
	}()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(object); err != nil {
		return fmt.Errorf("failed to gob encode to file %s: %w", filePath, err)
	}
	return nil
}

// loadGob decodes a gob-encoded file from filePath into the provided object
// pointer. A missing file surfaces as os.ErrNotExist so callers can handle
// fresh starts.
func loadGob(filePath string, objectPointer interface{}) error {
	file, err := os.Open(filePath) // #nosec G304 -- filePath is controlled by application, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return os.ErrNotExist
		}
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filePath, closeErr)
		}
	}()

	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(objectPointer); err != nil {
		return fmt.Errorf("failed to gob decode from file %s: %w", filePath, err)
	}
	return nil
}
