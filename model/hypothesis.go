package model

import "strings"

// Signature is the canonical form of a frame's pharmacophore hypothesis: the
// ordered sequence of feature-type tags with instance numbers stripped. Two
// frames share a hypothesis iff their signatures are equal as ordered
// sequences — order matters and duplicates matter, so grouping must never
// collapse a signature into a set.
type Signature []string

// Key returns the order-sensitive grouping key for the signature. Tags are
// joined with a separator that cannot occur inside a tag, so equal keys
// imply equal ordered sequences even when tags span multiple letters
// (["AR", "O"] and ["A", "RO"] must not share a key).
func (s Signature) Key() string {
	return strings.Join(s, "|")
}

// Len returns the number of feature-type tags in the signature.
func (s Signature) Len() int { return len(s) }

// String renders the signature as the bare tag concatenation used in reports.
func (s Signature) String() string { return strings.Join(s, "") }

// Representative identifies the structurally most representative frame of a
// hypothesis group: the member with the lowest RMSD, ties broken by the
// lowest frame ID.
type Representative struct {
	FrameID int     `json:"frame_id"`
	RMSD    float64 `json:"rmsd"`
}

// HypothesisGroup aggregates all frames sharing one signature.
type HypothesisGroup struct {
	Signature      Signature      `json:"signature"`
	Frames         []int          `json:"frames"` // member frame IDs, ascending
	Count          int            `json:"count"`
	Percent        float64        `json:"percent"`
	Representative Representative `json:"representative"`
	FirstFrame     int            `json:"first_frame"` // earliest member, selection tie-break
}

// SelectedHypothesis is one entry of the best-hypothesis selection: a
// qualifying group together with the resolved path of its representative
// frame's stored hypothesis file. HypoFile is an opaque handle — the file's
// content is never parsed, only copied on export. HypoFile is empty when the
// stored file is absent.
type SelectedHypothesis struct {
	HypothesisGroup
	HypoFile string `json:"hypo_file,omitempty"`
}
