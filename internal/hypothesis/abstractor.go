// Package hypothesis canonicalizes per-frame feature lists into pharmacophore
// hypothesis signatures. Abstraction strips the per-frame instance numbers
// from feature labels ("A3" -> "A") while preserving the feature-type letters
// and the table's row order, so two frames whose tables differ only in
// instance numbering map to the same signature, while a different feature
// order maps to a different signature.
package hypothesis

import (
	"regexp"

	"github.com/DurdagiLab/dynophore-analysis/model"
)

// digitRegex matches runs of decimal digits (the instance labels).
var digitRegex = regexp.MustCompile(`[0-9]+`)

// letterRegex matches feature-type letters.
var letterRegex = regexp.MustCompile(`[A-Za-z]`)

// TypeTag strips instance digits and surrounding noise from a raw feature
// label, returning the feature-type tag. It returns "" when the label carries
// no type letters at all, which callers must treat as an undecodable row.
func TypeTag(label string) string {
	stripped := digitRegex.ReplaceAllString(label, "")
	if !letterRegex.MatchString(stripped) {
		return ""
	}
	return stripped
}

// Abstract maps an ordered feature list to its hypothesis signature. The
// transformation is total on well-formed features: every feature contributes
// exactly one tag, in row order, duplicates preserved.
func Abstract(frame model.FrameFeatures) model.Signature {
	sig := make(model.Signature, 0, len(frame.Features))
	for _, feat := range frame.Features {
		sig = append(sig, feat.Type)
	}
	return sig
}
