package pipeline

import (
	"sort"

	"github.com/DurdagiLab/dynophore-analysis/model"
)

// groupRecords partitions frame records into hypothesis groups keyed by exact
// signature sequence equality. Per group it computes the member count, the
// frequency percentage against the given denominator, and the representative
// frame: the member with the lowest RMSD, ties broken by the lowest frame ID.
//
// records must be in ascending frame order; that makes FirstFrame the
// earliest occurrence of each signature and settles RMSD ties on the lowest
// frame ID with a strict comparison.
//
// The returned table is ordered by count descending, ties broken by the
// group's first-seen frame ascending, so identical inputs always produce an
// identical table.
func groupRecords(records []model.FrameRecord, denominator int) []model.HypothesisGroup {
	byKey := make(map[string]*model.HypothesisGroup)
	var order []string // group keys in first-seen order

	for _, rec := range records {
		key := rec.Signature.Key()
		group, seen := byKey[key]
		if !seen {
			group = &model.HypothesisGroup{
				Signature:      rec.Signature,
				FirstFrame:     rec.FrameID,
				Representative: model.Representative{FrameID: rec.FrameID, RMSD: rec.RMSD},
			}
			byKey[key] = group
			order = append(order, key)
		}

		group.Frames = append(group.Frames, rec.FrameID)
		group.Count++
		if rec.RMSD < group.Representative.RMSD {
			group.Representative = model.Representative{FrameID: rec.FrameID, RMSD: rec.RMSD}
		}
	}

	groups := make([]model.HypothesisGroup, 0, len(order))
	for _, key := range order {
		group := byKey[key]
		if denominator > 0 {
			group.Percent = float64(group.Count) / float64(denominator) * 100.0
		}
		groups = append(groups, *group)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].FirstFrame < groups[j].FirstFrame
	})

	return groups
}
