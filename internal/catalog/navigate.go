package catalog

import "listit/pkg/models"

// Strides used by the detail-view arrow navigation: left/right move one
// card, up/down jump a grid row.
const (
	StrideCard = 1
	StrideRow  = 5
)

// Navigator tracks the detail-view position inside a navigation context:
// either the last filtered/sorted view or a sequence's item list. Moves
// are clamped; out-of-bounds requests leave the position untouched.
type Navigator struct {
	items []models.Line
	idx   int
}

// NewNavigator opens a navigator on the given line within its context.
// If the line is not part of the context (or the context is empty) the
// navigator is inert: Current reports nothing and moves are no-ops.
func NewNavigator(current models.Line, context []models.Line) Navigator {
	idx := -1
	for i, ln := range context {
		if ln.ID == current.ID {
			idx = i
			break
		}
	}
	return Navigator{items: context, idx: idx}
}

// Current returns the line under the cursor, if any.
func (n Navigator) Current() (models.Line, bool) {
	if n.idx < 0 || n.idx >= len(n.items) {
		return models.Line{}, false
	}
	return n.items[n.idx], true
}

func (n Navigator) Index() int { return n.idx }
func (n Navigator) Len() int   { return len(n.items) }

// Move shifts the cursor by delta positions. It reports whether the
// cursor actually moved; a move past either end is a no-op.
func (n *Navigator) Move(delta int) bool {
	if n.idx < 0 {
		return false
	}
	target := n.idx + delta
	if target < 0 || target >= len(n.items) {
		return false
	}
	n.idx = target
	return true
}

func (n *Navigator) Next(stride int) bool { return n.Move(stride) }
func (n *Navigator) Prev(stride int) bool { return n.Move(-stride) }

// SequencePosition describes where a line sits inside its sequence.
type SequencePosition struct {
	Index    int    `json:"index"` // 0-based rank position, -1 when absent
	PrevName string `json:"prev_name,omitempty"`
	NextName string `json:"next_name,omitempty"`
	Opening  bool   `json:"opening"` // first entry of a multi-item sequence
}

// LocateInSequence finds a line in a sequence's ordered item list and
// names its neighbors: the immediately preceding item, or the following
// one when the line opens the sequence. A line alone in its sequence has
// no neighbors to report.
func LocateInSequence(lineID int64, items []models.SequenceItem) SequencePosition {
	pos := SequencePosition{Index: -1}
	for i, it := range items {
		if it.ID == lineID {
			pos.Index = i
			break
		}
	}
	if pos.Index < 0 {
		return pos
	}

	if pos.Index > 0 {
		pos.PrevName = items[pos.Index-1].Name
	} else if len(items) > 1 {
		pos.Opening = true
		pos.NextName = items[1].Name
	}
	return pos
}
