package sync

import "time"

// Event types published on the feed.
const (
	EventLineUpdate    = "line.update"
	EventLineDelete    = "line.delete"
	EventLineHighlight = "line.highlight"
)

// LineEvent is broadcast to every connected client after a line
// mutation, so open views can refresh the affected card.
type LineEvent struct {
	Type   string    `json:"type"`
	LineID int64     `json:"line_id"`
	ListID int64     `json:"list_id,omitempty"`
	Name   string    `json:"name,omitempty"`
	At     time.Time `json:"at"`
}

func NewLineEvent(typ string, lineID, listID int64, name string) LineEvent {
	return LineEvent{
		Type:   typ,
		LineID: lineID,
		ListID: listID,
		Name:   name,
		At:     time.Now().UTC(),
	}
}
