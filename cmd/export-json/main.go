// Command export-json dumps the whole catalog to the flat-JSON format
// that migrate-json reads, for backups and for moving data between
// machines.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"listit/internal/lines"
	"listit/internal/lists"
	"listit/pkg/database"
	"listit/pkg/models"
)

type dumpLine struct {
	Name     string   `json:"name"`
	Content  string   `json:"content"`
	Status   string   `json:"status"`
	Opinion  string   `json:"opinion"`
	Episode  string   `json:"episode"`
	Tags     string   `json:"tags"`
	ImageURL string   `json:"image,omitempty"`
	Synopsis string   `json:"synopsis,omitempty"`
	Synonyms []string `json:"synonyms"`
}

type dumpList struct {
	Name  string     `json:"name"`
	Lines []dumpLine `json:"lines"`
}

func main() {
	out := flag.String("out", "data/lists.json", "output JSON path")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	summaries, err := lists.NewRepo(db).List(ctx)
	if err != nil {
		log.Fatalf("load lists: %v", err)
	}

	linesRepo := lines.NewRepo(db)
	dump := make([]dumpList, 0, len(summaries))
	total := 0

	for _, l := range summaries {
		items, err := linesRepo.ListByList(ctx, l.ID)
		if err != nil {
			log.Fatalf("load lines of %q: %v", l.Name, err)
		}

		dl := dumpList{Name: l.Name, Lines: make([]dumpLine, 0, len(items))}
		for _, ln := range items {
			dl.Lines = append(dl.Lines, toDump(ln))
		}
		dump = append(dump, dl)
		total += len(items)
	}

	if err := writeJSON(*out, dump); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}

	log.Printf("✅ exported %d lists and %d entries to %s", len(dump), total, *out)
}

func toDump(ln models.Line) dumpLine {
	synonyms := ln.Synonyms
	if synonyms == nil {
		synonyms = []string{}
	}
	return dumpLine{
		Name:     ln.Name,
		Content:  ln.Content,
		Status:   ln.Status,
		Opinion:  ln.Opinion,
		Episode:  ln.Episode,
		Tags:     ln.Tags,
		ImageURL: ln.ImageURL,
		Synopsis: ln.Synopsis,
		Synonyms: synonyms,
	}
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
