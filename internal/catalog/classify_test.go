package catalog

import (
	"testing"

	"listit/pkg/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line models.Line
		want Class
	}{
		{
			name: "no matching rule",
			line: models.Line{Tags: "Comédia, Slice of Life", Opinion: "Bom"},
			want: ClassNone,
		},
		{
			name: "goat with romance is best love",
			line: models.Line{Tags: "Goat, Beijo, Romance do bom, Namoro", Status: "Lendo", Opinion: "Bom"},
			want: ClassBestLove,
		},
		{
			name: "goat without romance",
			line: models.Line{Tags: "Goat, Ação", Opinion: "Favorito"},
			want: ClassGoat,
		},
		{
			name: "goat beats cancelled",
			line: models.Line{Tags: "Goat", Status: StatusCancelled},
			want: ClassGoat,
		},
		{
			name: "cancelled status",
			line: models.Line{Tags: "Romance", Status: StatusCancelled},
			want: ClassCancelled,
		},
		{
			name: "romance without goat is love",
			line: models.Line{Tags: "Beijo, Romance do bom, Casamento"},
			want: ClassLove,
		},
		{
			name: "kiss alone is not love",
			line: models.Line{Tags: "Beijo, Namoro"},
			want: ClassNone,
		},
		{
			name: "adult by companion tag",
			line: models.Line{Tags: "Ecchi, Nudez, Vida Escolar", Opinion: "Bom"},
			want: ClassAdult,
		},
		{
			name: "adult by low opinion",
			line: models.Line{Tags: "Ecchi, Nudez Nippleless", Opinion: "Ruim"},
			want: ClassAdult,
		},
		{
			name: "ecchi alone with good opinion",
			line: models.Line{Tags: "Ecchi, Nudez", Opinion: "Favorito"},
			want: ClassNone,
		},
		{
			name: "best love beats adult",
			line: models.Line{
				Tags:    "Goat, Beijo, Romance do bom, Namoro, Ecchi, Nudez, Sexo",
				Opinion: "Mediano",
			},
			want: ClassBestLove,
		},
		{
			name: "action pick",
			line: models.Line{Tags: "Ação, Shounen", Opinion: "Recomendo"},
			want: ClassActionPick,
		},
		{
			name: "action pick blocked by dorm tag",
			line: models.Line{Tags: "Ação, Shounen, Dormitorio", Opinion: "Bom"},
			want: ClassNone,
		},
		{
			name: "plural dorm tag does not block action pick",
			line: models.Line{Tags: "Ação, Shounen, Dormitorios", Opinion: "Bom"},
			want: ClassActionPick,
		},
		{
			name: "action pick blocked by child and pregnancy together",
			line: models.Line{Tags: "Ação, Shounen, Fez Filho(s), Gravidez", Opinion: "Favorito"},
			want: ClassNone,
		},
		{
			name: "pregnancy alone does not block action pick",
			line: models.Line{Tags: "Ação, Shounen, Gravidez", Opinion: "Favorito"},
			want: ClassActionPick,
		},
		{
			name: "action pick needs a liked opinion",
			line: models.Line{Tags: "Ação, Shounen", Opinion: "Mediano"},
			want: ClassNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.line); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	ln := models.Line{Tags: "Goat, Beijo, Romance do bom, Noivado", Opinion: "Favorito"}
	first := Classify(ln)
	for i := 0; i < 10; i++ {
		if got := Classify(ln); got != first {
			t.Fatalf("Classify() changed between calls: %q then %q", first, got)
		}
	}
}

func TestIsManhwa(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"Manhwa", true},
		{"manhwa", true},
		{"  MANHWA  ", true},
		{"Manga", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsManhwa(tt.content); got != tt.want {
			t.Errorf("IsManhwa(%q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}
