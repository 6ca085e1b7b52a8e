package model

// FrameRecord joins one frame's abstracted hypothesis signature with its RMSD
// value. A record exists only for frames present in both the feature-table
// source and the RMSD series; frames missing from either side are dropped
// during aggregation (inner join), so every record has both values resolved.
type FrameRecord struct {
	FrameID   int       `json:"frame_id"`
	Signature Signature `json:"signature"`
	RMSD      float64   `json:"rmsd"`
}
