package pipeline

import (
	"log"

	"github.com/DurdagiLab/dynophore-analysis/model"
	"github.com/DurdagiLab/dynophore-analysis/services"
)

// selectTop builds the best-hypothesis selection: groups whose signature has
// at least minLength features, in the table's order (count descending,
// first-seen frame ascending on ties), truncated to at most top entries.
// Fewer than top qualifying groups is valid; so is an empty selection.
//
// groups must already be ordered; selection preserves that order, which makes
// re-runs on identical inputs yield an identical selection.
func selectTop(groups []model.HypothesisGroup, minLength, top int, store services.HypothesisStore) []model.SelectedHypothesis {
	selection := make([]model.SelectedHypothesis, 0, top)
	for _, group := range groups {
		if len(selection) == top {
			break
		}
		if group.Signature.Len() < minLength {
			continue
		}

		selected := model.SelectedHypothesis{HypothesisGroup: group}
		if store != nil {
			path, ok := store.Resolve(group.Representative.FrameID)
			if ok {
				selected.HypoFile = path
			} else {
				log.Printf("Warning: no stored hypothesis file for frame %d (expected %s)",
					group.Representative.FrameID, path)
			}
		}
		selection = append(selection, selected)
	}
	return selection
}
