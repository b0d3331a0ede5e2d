package models

// Sequence is an ordered chain of lines representing narrative
// continuation (seasons, sequels).
type Sequence struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// SequenceSummary is a sequence plus its item count, for listings.
type SequenceSummary struct {
	Sequence
	TotalItems int `json:"total_items"`
}

// SequenceItem is a line's membership in a sequence. Order is a 1-based
// rank; ranks are unique within a sequence but may contain gaps after
// removals (the system does not renumber).
type SequenceItem struct {
	Line
	Order int `json:"order"`
}

// SequenceRef is a sequence seen from one of its member lines.
type SequenceRef struct {
	Sequence
	Order int `json:"order"`
}
