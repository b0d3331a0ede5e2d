// Package catalog implements the pure in-memory engine over catalog
// lines: display-class derivation, filtering, sorting and detail-view
// navigation. Nothing here touches the database or the network; every
// function takes a snapshot and returns a new value, so callers are free
// to chain them in any order.
package catalog

import "strings"

// ParseTags splits a stored comma-separated tag string into trimmed
// tokens. Empty tokens are dropped; case and order are preserved and
// duplicates are kept.
func ParseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinTags is the inverse of ParseTags, producing the canonical stored
// form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// TagSet is a membership view over a parsed tag list. Lookups are
// case-sensitive exact matches on the trimmed tokens.
type TagSet map[string]struct{}

func NewTagSet(s string) TagSet {
	parsed := ParseTags(s)
	set := make(TagSet, len(parsed))
	for _, t := range parsed {
		set[t] = struct{}{}
	}
	return set
}

func (ts TagSet) Has(tag string) bool {
	_, ok := ts[tag]
	return ok
}

func (ts TagSet) HasAny(tags ...string) bool {
	for _, t := range tags {
		if ts.Has(t) {
			return true
		}
	}
	return false
}

func (ts TagSet) HasAll(tags ...string) bool {
	for _, t := range tags {
		if !ts.Has(t) {
			return false
		}
	}
	return true
}
