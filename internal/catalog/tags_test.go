package catalog

import (
	"reflect"
	"testing"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"Ação", []string{"Ação"}},
		{"A, B, C", []string{"A", "B", "C"}},
		{" A ,, B ", []string{"A", "B"}},
		{"A, A", []string{"A", "A"}}, // duplicates survive
	}
	for _, tt := range tests {
		if got := ParseTags(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestJoinTagsRoundTrip(t *testing.T) {
	in := "Ação, Shounen, Romance do bom"
	if got := JoinTags(ParseTags(in)); got != in {
		t.Errorf("round trip changed value: %q -> %q", in, got)
	}
}

func TestTagSet(t *testing.T) {
	ts := NewTagSet("Ecchi, Nudez, Vida Escolar")
	if !ts.Has("Nudez") {
		t.Error("Has(Nudez) = false")
	}
	if ts.Has("nudez") {
		t.Error("lookup should be case-sensitive")
	}
	if !ts.HasAny("X", "Ecchi") {
		t.Error("HasAny missed a present tag")
	}
	if ts.HasAll("Ecchi", "Missing") {
		t.Error("HasAll passed with a missing tag")
	}
}
