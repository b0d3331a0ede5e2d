package catalog

import (
	"reflect"
	"testing"

	"listit/pkg/models"
)

func sampleLines() []models.Line {
	return []models.Line{
		{ID: 1, Name: "Alpha Quest", Content: "Anime", Status: "Vendo", Opinion: "Bom", Tags: "Ação, Shounen"},
		{ID: 2, Name: "Beta Blade", Content: "Manga", Status: "Lendo", Opinion: "Favorito", Tags: "Ação, Drama"},
		{ID: 3, Name: "Gamma Garden", Content: "Manhwa", Status: "Terminei", Opinion: "Mediano", Tags: "Ecchi, Nudez, Vida Escolar", Synonyms: []string{"The Secret Garden"}},
		{ID: 4, Name: "Delta Drift", Content: "Anime", Status: StatusCancelled, Opinion: "Ruim", Tags: "Comédia"},
	}
}

func ids(lines []models.Line) []int64 {
	out := make([]int64, len(lines))
	for i, ln := range lines {
		out[i] = ln.ID
	}
	return out
}

func TestFilterNeutralPassesEverything(t *testing.T) {
	lines := sampleLines()
	q := NewQuery()
	q.ShowAdult = true

	got := Filter(lines, q)
	if !reflect.DeepEqual(ids(got), ids(lines)) {
		t.Errorf("neutral filter changed the view: got %v", ids(got))
	}
}

func TestFilterIdempotent(t *testing.T) {
	lines := sampleLines()
	q := NewQuery()
	q.Content.Toggle("Anime")

	once := Filter(lines, q)
	twice := Filter(once, q)
	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Errorf("second pass changed result: %v then %v", ids(once), ids(twice))
	}
}

func TestFilterNameMatchesSynonyms(t *testing.T) {
	q := NewQuery()
	q.ShowAdult = true
	q.NameText = "secret"

	got := Filter(sampleLines(), q)
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("synonym search returned %v, want line 3", ids(got))
	}
}

func TestFilterScalarIncludeExclude(t *testing.T) {
	lines := sampleLines()

	q := NewQuery()
	q.ShowAdult = true
	q.Content.Toggle("Anime") // include
	got := Filter(lines, q)
	if want := []int64{1, 4}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("include Anime: got %v, want %v", ids(got), want)
	}

	q = NewQuery()
	q.ShowAdult = true
	q.Content.Toggle("Anime")
	q.Content.Toggle("Anime") // now exclude
	got = Filter(lines, q)
	if want := []int64{2, 3}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("exclude Anime: got %v, want %v", ids(got), want)
	}
}

func TestFilterExcludeShrinksOnly(t *testing.T) {
	lines := sampleLines()
	q := NewQuery()
	q.ShowAdult = true
	base := Filter(lines, q)

	q.Status.Toggle("Vendo")
	q.Status.Toggle("Vendo") // exclude
	narrowed := Filter(lines, q)

	if len(narrowed) > len(base) {
		t.Fatalf("adding an exclusion grew the result: %d > %d", len(narrowed), len(base))
	}
	seen := make(map[int64]bool)
	for _, ln := range base {
		seen[ln.ID] = true
	}
	for _, ln := range narrowed {
		if !seen[ln.ID] {
			t.Errorf("line %d appeared only after narrowing", ln.ID)
		}
	}
}

func TestFilterTagSemantics(t *testing.T) {
	lines := sampleLines()

	q := NewQuery()
	q.ShowAdult = true
	q.Tags.Toggle("Ação")
	q.Tags.Toggle("Drama")
	got := Filter(lines, q)
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("tag include requires all tags: got %v, want [2]", ids(got))
	}

	q = NewQuery()
	q.ShowAdult = true
	q.Tags.Toggle("Ação")
	q.Tags.Toggle("Ação") // exclude
	got = Filter(lines, q)
	if want := []int64{3, 4}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("tag exclude rejects any match: got %v, want %v", ids(got), want)
	}
}

func TestFilterAdultCensorship(t *testing.T) {
	lines := sampleLines() // line 3 classifies Adult and is Manhwa

	q := NewQuery()
	got := Filter(lines, q)
	for _, ln := range got {
		if ln.ID == 3 {
			t.Fatal("adult manhwa line passed with ShowAdult off")
		}
	}

	q.ShowAdult = true
	got = Filter(lines, q)
	found := false
	for _, ln := range got {
		found = found || ln.ID == 3
	}
	if !found {
		t.Fatal("adult manhwa line missing with ShowAdult on")
	}
}

func TestToggleCycle(t *testing.T) {
	f := NewFieldFilter()
	if st := f.Toggle("Anime"); st != StateInclude {
		t.Fatalf("first toggle = %v, want include", st)
	}
	if st := f.Toggle("Anime"); st != StateExclude {
		t.Fatalf("second toggle = %v, want exclude", st)
	}
	if st := f.Toggle("Anime"); st != StateNeutral {
		t.Fatalf("third toggle = %v, want neutral", st)
	}
	if st := f.State("Anime"); st != StateNeutral {
		t.Fatalf("state after full cycle = %v, want neutral", st)
	}
}
