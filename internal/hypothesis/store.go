package hypothesis

import (
	"os"
	"path/filepath"
	"strconv"
)

// Store resolves frame IDs to stored hypothesis files (<frameID>_hypo.phypo)
// in the saved-hypotheses directory. The files are opaque to the analysis:
// they are only referenced by path and copied on export. Implements
// services.HypothesisStore.
type Store struct {
	dir string
}

// NewStore creates a hypothesis store for the given directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Resolve returns the path of the frame's hypothesis file and whether the
// file exists.
func (s *Store) Resolve(frameID int) (string, bool) {
	path := filepath.Join(s.dir, strconv.Itoa(frameID)+"_hypo.phypo")
	if _, err := os.Stat(path); err != nil {
		return path, false
	}
	return path, true
}
