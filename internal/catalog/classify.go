package catalog

import (
	"strings"

	"listit/pkg/models"
)

// Class is the single derived display class of a line. It drives card
// styling on the frontend and the adult-censorship filter; exactly one
// class applies per line, first matching rule wins.
type Class string

const (
	ClassNone       Class = ""
	ClassBestLove   Class = "BestLove"
	ClassGoat       Class = "Goat"
	ClassCancelled  Class = "Cancelled"
	ClassLove       Class = "Love"
	ClassAdult      Class = "Adult"
	ClassActionPick Class = "ActionPick"
)

// StatusCancelled is the status value that forces the Cancelled class.
const StatusCancelled = "Cancelado"

// Classify derives the display class of a line from its tags, status and
// opinion. Pure function: same input, same class.
func Classify(ln models.Line) Class {
	tags := NewTagSet(ln.Tags)

	// shared romance conjunction used by BestLove and Love
	love := tags.HasAll("Beijo", "Romance do bom") &&
		tags.HasAny("Namoro", "Casamento", "Noivado")

	switch {
	case tags.Has("Goat") && love:
		return ClassBestLove
	case tags.Has("Goat"):
		return ClassGoat
	case ln.Status == StatusCancelled:
		return ClassCancelled
	case love:
		return ClassLove
	}

	if tags.Has("Ecchi") &&
		tags.HasAny("Nudez", "Nudez Nippleless") &&
		(tags.HasAny("Incesto", "Sexo", "Yuri", "Vida Escolar", "Dormitorios") ||
			ln.Opinion == "Mediano" || ln.Opinion == "Ruim" || ln.Opinion == "Horrivel") {
		return ClassAdult
	}

	if tags.Has("Ação") && tags.Has("Shounen") &&
		(ln.Opinion == "Recomendo" || ln.Opinion == "Muito Bom" ||
			ln.Opinion == "Bom" || ln.Opinion == "Favorito") &&
		!tags.Has("Dormitorio") && // singular, distinct from the "Dormitorios" tag above
		!(tags.Has("Fez Filho(s)") && tags.Has("Gravidez")) {
		return ClassActionPick
	}

	return ClassNone
}

// IsManhwa reports whether a content value names the Manhwa content type,
// ignoring case and surrounding whitespace. Adult-classified Manhwa lines
// are the target of the censorship toggle.
func IsManhwa(content string) bool {
	return strings.EqualFold(strings.TrimSpace(content), "manhwa")
}
