package models

// PlaceholderImage is the sentinel cover URL used when no real cover has
// been resolved yet. It must be treated as "no image" everywhere and never
// written back to the database as a resolved value.
const PlaceholderImage = "https://via.placeholder.com/300x450.png?text=Sem+Capa"

// Line is one catalog entry inside a list: an anime, manga, novel or
// similar work plus the user's tracking metadata.
//
// Tags are stored denormalized as a comma-separated string; synonyms are
// stored as a JSON array but always decoded to a slice at the database
// boundary, so consumers never see the raw encoding.
type Line struct {
	ID       int64    `json:"id"`
	ListID   int64    `json:"list_id"`
	Name     string   `json:"name"`
	Content  string   `json:"content"` // "Anime", "Filme", "Manga", "Manhwa", "Webtoon", "Novel"
	Status   string   `json:"status"`
	Opinion  string   `json:"opinion"`
	Episode  string   `json:"episode"` // episode/chapter number; non-numeric sorts as 0
	Tags     string   `json:"tags"`
	ImageURL string   `json:"image_url,omitempty"`
	Synopsis string   `json:"synopsis,omitempty"`
	Synonyms []string `json:"synonyms"`
}

// NeedsDetails reports whether the line still needs an enrichment lookup:
// no synopsis yet, or fewer than three known synonyms.
func (l Line) NeedsDetails() bool {
	return l.Synopsis == "" || len(l.Synonyms) < 3
}

// HasImage reports whether the line has a real resolved cover, treating
// the placeholder sentinel as absent.
func (l Line) HasImage() bool {
	return l.ImageURL != "" && l.ImageURL != PlaceholderImage
}
