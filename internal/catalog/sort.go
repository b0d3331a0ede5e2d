package catalog

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"listit/pkg/models"
)

// SortStrategy names one of the user-selectable orderings.
type SortStrategy string

const (
	SortNameAsc         SortStrategy = "name-asc"
	SortNameDesc        SortStrategy = "name-desc"
	SortEpisodeAsc      SortStrategy = "episode-asc"
	SortEpisodeDesc     SortStrategy = "episode-desc"
	SortOpinionPriority SortStrategy = "opinion"
)

// ParseSortStrategy maps a request parameter to a strategy, defaulting to
// name ascending.
func ParseSortStrategy(s string) SortStrategy {
	switch SortStrategy(strings.TrimSpace(strings.ToLower(s))) {
	case SortNameDesc:
		return SortNameDesc
	case SortEpisodeAsc:
		return SortEpisodeAsc
	case SortEpisodeDesc:
		return SortEpisodeDesc
	case SortOpinionPriority:
		return SortOpinionPriority
	default:
		return SortNameAsc
	}
}

func newCollator() *collate.Collator {
	// loose comparison: case, diacritics and width are ignored, matching
	// pt-BR base-sensitivity collation
	return collate.New(language.BrazilianPortuguese, collate.Loose)
}

// Sort returns a new slice ordered by the given strategy. The sort is
// stable: lines with equal keys keep their input order.
func Sort(lines []models.Line, strategy SortStrategy) []models.Line {
	out := make([]models.Line, len(lines))
	copy(out, lines)

	switch strategy {
	case SortNameAsc:
		c := newCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) < 0
		})
	case SortNameDesc:
		c := newCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) > 0
		})
	case SortEpisodeAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return EpisodeNumber(out[i].Episode) < EpisodeNumber(out[j].Episode)
		})
	case SortEpisodeDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return EpisodeNumber(out[i].Episode) > EpisodeNumber(out[j].Episode)
		})
	case SortOpinionPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return OpinionRank(out[i]) < OpinionRank(out[j])
		})
	}
	return out
}

// EpisodeNumber parses an episode/chapter value for numeric ordering.
// Anything that is not an integer counts as 0, keeping the order total.
func EpisodeNumber(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// opinionOrder is the fixed opinion vocabulary from best to worst.
var opinionOrder = []string{
	"Favorito", "Muito Bom", "Recomendo", "Bom", "Mediano", "Ruim", "Horrivel", "Não vi",
}

// OpinionRank computes the composite priority used by the opinion sort:
// class-derived ranks first, then the opinion vocabulary, unknown values
// last. Lower is better.
func OpinionRank(ln models.Line) int {
	opinion := strings.TrimSpace(ln.Opinion)

	switch class := Classify(ln); {
	case class == ClassBestLove:
		return 0
	case class == ClassGoat:
		return 2
	case class == ClassLove && opinion == "Favorito":
		return 3
	}

	for i, op := range opinionOrder {
		if op == opinion {
			return 4 + i
		}
	}
	return 99
}

// romanNumerals are the only sequel markers recognized in titles.
var romanNumerals = map[string]int{
	"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5,
	"VI": 6, "VII": 7, "VIII": 8, "IX": 9, "X": 10,
}

// SplitSequelNumber splits a title into its base name and the first
// recognized Roman-numeral token, if any. "Show II" yields ("Show", "II");
// titles without a recognized numeral return the trimmed name and "".
func SplitSequelNumber(name string) (base, numeral string) {
	fields := strings.Fields(name)
	rest := make([]string, 0, len(fields))
	for _, f := range fields {
		if numeral == "" {
			if _, ok := romanNumerals[f]; ok {
				numeral = f
				continue
			}
		}
		rest = append(rest, f)
	}
	return strings.Join(rest, " "), numeral
}

// SequelValue orders sequel numerals: no numeral first, recognized
// numerals by decimal value, anything else last.
func SequelValue(numeral string) int {
	if numeral == "" {
		return -1
	}
	if v, ok := romanNumerals[numeral]; ok {
		return v
	}
	return 99
}

// SortCanonical is the initial list ordering: base name first (pt-BR
// loose collation), then the decoded sequel numeral, so "Show" precedes
// "Show II" which precedes "Show III".
func SortCanonical(lines []models.Line) []models.Line {
	out := make([]models.Line, len(lines))
	copy(out, lines)

	type key struct {
		base    string
		numeral int
	}
	keys := make(map[int64]key, len(out))
	for _, ln := range out {
		base, numeral := SplitSequelNumber(ln.Name)
		keys[ln.ID] = key{base: base, numeral: SequelValue(numeral)}
	}

	c := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := keys[out[i].ID], keys[out[j].ID]
		if cmp := c.CompareString(a.base, b.base); cmp != 0 {
			return cmp < 0
		}
		return a.numeral < b.numeral
	})
	return out
}
