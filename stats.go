package semequal

// Stats holds statistical metadata about a comparison
type Stats struct {
	Compared int `json:"compared"`           // count of node pairs visited
	Excluded int `json:"excluded,omitempty"` // count of subtrees skipped by an exclusion
	MaxDepth int `json:"maxDepth"`           // deepest level reached, the root is level 0
}

// Skipped reports whether any part of the documents was left out of the
// comparison
func (s Stats) Skipped() bool {
	return s.Excluded > 0
}
