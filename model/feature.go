package model

// Feature is a single pharmacophore feature parsed from one row of a frame's
// feature table. Label keeps the raw table text (e.g. "A3", "D5"); Type is the
// instance-number-free feature-type tag (e.g. "A", "D") used for hypothesis
// grouping. Geometric columns of the table are not carried: the analysis
// treats features as opaque typed labels.
type Feature struct {
	Label string `json:"label"`
	Type  string `json:"type"`
}

// FrameFeatures is the ordered feature list of a single trajectory frame.
// Row order is preserved from the table: it is semantically significant for
// the hypothesis signature.
type FrameFeatures struct {
	FrameID  int       `json:"frame_id"`
	Features []Feature `json:"features"`
}
