package domain

// DiffChange is one segment of a computed difference between two texts.
// A segment with neither flag set is present in both inputs. Concatenating
// every non-removed value reconstructs the new text; concatenating every
// non-added value reconstructs the old text.
type DiffChange struct {
	Value   string `json:"value"`
	Added   bool   `json:"added,omitempty"`
	Removed bool   `json:"removed,omitempty"`
}

// CoverImageDiff compares cover images as opaque URLs, not text
type CoverImageDiff struct {
	Old     *string `json:"old"`
	New     *string `json:"new"`
	Changed bool    `json:"changed"`
}

// DiffResult is the structural comparison of two blog snapshots:
// word-level for title and summary, line-level for the content body.
type DiffResult struct {
	Title      []DiffChange   `json:"title"`
	Summary    []DiffChange   `json:"summary"`
	Content    []DiffChange   `json:"content"`
	CoverImage CoverImageDiff `json:"cover_image"`
}
