package catalog

import (
	"reflect"
	"testing"

	"listit/pkg/models"
)

func names(lines []models.Line) []string {
	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = ln.Name
	}
	return out
}

func TestSortByName(t *testing.T) {
	lines := []models.Line{
		{ID: 1, Name: "ônibus"},
		{ID: 2, Name: "Casa"},
		{ID: 3, Name: "árvore"},
	}

	got := Sort(lines, SortNameAsc)
	if want := []string{"árvore", "Casa", "ônibus"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("name asc: got %v, want %v", names(got), want)
	}

	got = Sort(lines, SortNameDesc)
	if want := []string{"ônibus", "Casa", "árvore"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("name desc: got %v, want %v", names(got), want)
	}
}

func TestSortByEpisode(t *testing.T) {
	lines := []models.Line{
		{ID: 1, Name: "A", Episode: "12"},
		{ID: 2, Name: "B", Episode: "cap. 3"}, // unparseable, counts as 0
		{ID: 3, Name: "C", Episode: "2"},
	}

	got := Sort(lines, SortEpisodeAsc)
	if want := []string{"B", "C", "A"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("episode asc: got %v, want %v", names(got), want)
	}
}

func TestSortStable(t *testing.T) {
	lines := []models.Line{
		{ID: 1, Name: "First", Episode: "5"},
		{ID: 2, Name: "Second", Episode: "5"},
		{ID: 3, Name: "Third", Episode: "5"},
	}
	got := Sort(lines, SortEpisodeAsc)
	if want := []string{"First", "Second", "Third"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("equal keys reordered: got %v", names(got))
	}
}

func TestSortByOpinion(t *testing.T) {
	lines := []models.Line{
		{ID: 1, Name: "Meh", Opinion: "Mediano"},
		{ID: 2, Name: "Bad", Opinion: "Ruim"},
		{ID: 3, Name: "Fav", Opinion: "Favorito"},
		{ID: 4, Name: "Top", Opinion: "Mediano", Tags: "Goat"},
	}
	got := Sort(lines, SortOpinionPriority)
	if want := []string{"Top", "Fav", "Meh", "Bad"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("opinion sort: got %v, want %v", names(got), want)
	}
}

func TestOpinionRank(t *testing.T) {
	tests := []struct {
		name string
		line models.Line
		want int
	}{
		{"best love first", models.Line{Tags: "Goat, Beijo, Romance do bom, Namoro"}, 0},
		{"goat", models.Line{Tags: "Goat"}, 2},
		{"favorite love", models.Line{Tags: "Beijo, Romance do bom, Casamento", Opinion: "Favorito"}, 3},
		{"plain favorite", models.Line{Opinion: "Favorito"}, 4},
		{"not seen last in vocabulary", models.Line{Opinion: "Não vi"}, 11},
		{"unknown opinion after everything", models.Line{Opinion: "???"}, 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OpinionRank(tt.line); got != tt.want {
				t.Errorf("OpinionRank() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSplitSequelNumber(t *testing.T) {
	tests := []struct {
		in      string
		base    string
		numeral string
	}{
		{"Show", "Show", ""},
		{"Show II", "Show", "II"},
		{"Show III Final", "Show Final", "III"},
		{"IV", "", "IV"},
		{"Mix I II", "Mix II", "I"}, // only the first numeral is consumed
	}
	for _, tt := range tests {
		base, numeral := SplitSequelNumber(tt.in)
		if base != tt.base || numeral != tt.numeral {
			t.Errorf("SplitSequelNumber(%q) = (%q, %q), want (%q, %q)",
				tt.in, base, numeral, tt.base, tt.numeral)
		}
	}
}

func TestSortCanonical(t *testing.T) {
	lines := []models.Line{
		{ID: 1, Name: "Show III"},
		{ID: 2, Name: "Another"},
		{ID: 3, Name: "Show"},
		{ID: 4, Name: "Show II"},
	}
	got := SortCanonical(lines)
	if want := []string{"Another", "Show", "Show II", "Show III"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("canonical order: got %v, want %v", names(got), want)
	}
}

func TestParseSortStrategy(t *testing.T) {
	if got := ParseSortStrategy("episode-desc"); got != SortEpisodeDesc {
		t.Errorf("ParseSortStrategy(episode-desc) = %q", got)
	}
	if got := ParseSortStrategy("bogus"); got != SortNameAsc {
		t.Errorf("unknown strategy should default to name-asc, got %q", got)
	}
}
