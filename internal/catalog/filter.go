package catalog

import (
	"strings"

	"listit/pkg/models"
)

// FilterState is the tri-state selection of one (field, value) pair.
type FilterState int

const (
	StateNeutral FilterState = iota
	StateInclude
	StateExclude
)

// FieldFilter holds the include/exclude sets for one filterable field.
// Repeated Toggle calls on the same value cycle it through
// Neutral -> Include -> Exclude -> Neutral.
type FieldFilter struct {
	Include map[string]struct{}
	Exclude map[string]struct{}
}

func NewFieldFilter() FieldFilter {
	return FieldFilter{
		Include: make(map[string]struct{}),
		Exclude: make(map[string]struct{}),
	}
}

func (f FieldFilter) State(value string) FilterState {
	if _, ok := f.Include[value]; ok {
		return StateInclude
	}
	if _, ok := f.Exclude[value]; ok {
		return StateExclude
	}
	return StateNeutral
}

// Toggle advances the value to its next selection state.
func (f FieldFilter) Toggle(value string) FilterState {
	switch f.State(value) {
	case StateNeutral:
		f.Include[value] = struct{}{}
		return StateInclude
	case StateInclude:
		delete(f.Include, value)
		f.Exclude[value] = struct{}{}
		return StateExclude
	default:
		delete(f.Exclude, value)
		return StateNeutral
	}
}

// allows evaluates a scalar field value: excludes are enforced first,
// then a non-empty include set acts as a whitelist.
func (f FieldFilter) allows(value string) bool {
	if len(f.Exclude) > 0 {
		if _, bad := f.Exclude[value]; bad {
			return false
		}
	}
	if len(f.Include) > 0 {
		if _, ok := f.Include[value]; !ok {
			return false
		}
	}
	return true
}

// Query is the full filter state applied to a list view. All active
// criteria must hold for a line to pass (AND semantics).
type Query struct {
	// NameText is matched case-insensitively as a substring of the name
	// or of any synonym. Blank disables the criterion.
	NameText string

	Status  FieldFilter
	Content FieldFilter
	Opinion FieldFilter

	// Tags excludes reject a line containing any excluded tag; a
	// non-empty include set requires ALL included tags to be present.
	Tags FieldFilter

	// ShowAdult, when false, suppresses lines classified Adult whose
	// content type is Manhwa, independent of every other criterion.
	ShowAdult bool
}

func NewQuery() Query {
	return Query{
		Status:  NewFieldFilter(),
		Content: NewFieldFilter(),
		Opinion: NewFieldFilter(),
		Tags:    NewFieldFilter(),
	}
}

// Filter returns the lines matching the query, preserving input order.
func Filter(lines []models.Line, q Query) []models.Line {
	out := make([]models.Line, 0, len(lines))
	for _, ln := range lines {
		if Matches(ln, q) {
			out = append(out, ln)
		}
	}
	return out
}

// Matches evaluates a single line against the query.
func Matches(ln models.Line, q Query) bool {
	if name := strings.ToLower(strings.TrimSpace(q.NameText)); name != "" {
		if !strings.Contains(strings.ToLower(ln.Name), name) && !synonymMatch(ln.Synonyms, name) {
			return false
		}
	}

	if !q.Status.allows(ln.Status) || !q.Content.allows(ln.Content) || !q.Opinion.allows(ln.Opinion) {
		return false
	}

	tags := NewTagSet(ln.Tags)
	for bad := range q.Tags.Exclude {
		if tags.Has(bad) {
			return false
		}
	}
	for want := range q.Tags.Include {
		if !tags.Has(want) {
			return false
		}
	}

	if !q.ShowAdult && Classify(ln) == ClassAdult && IsManhwa(ln.Content) {
		return false
	}

	return true
}

func synonymMatch(synonyms []string, lowered string) bool {
	for _, s := range synonyms {
		if strings.Contains(strings.ToLower(s), lowered) {
			return true
		}
	}
	return false
}
