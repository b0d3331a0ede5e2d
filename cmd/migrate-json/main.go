// Command migrate-json imports the legacy flat-JSON data file into the
// SQLite database. The file is an array of lists, each carrying its
// entries inline:
//
//	[
//	  {
//	    "name": "Animes",
//	    "lines": [
//	      {"name": "...", "content": "Anime", "status": "vendo", ...}
//	    ]
//	  }
//	]
//
// Lists are matched by name and reused when they already exist; entries
// are upserted by (list, name).
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"listit/internal/catalog"
	"listit/pkg/database"
)

type legacyLine struct {
	Name     string   `json:"name"`
	Content  string   `json:"content"`
	Status   string   `json:"status"`
	Opinion  string   `json:"opinion"`
	Episode  string   `json:"episode"`
	Tags     string   `json:"tags"`
	ImageURL string   `json:"image"`
	Synopsis string   `json:"synopsis"`
	Synonyms []string `json:"synonyms"`
}

type legacyList struct {
	Name  string       `json:"name"`
	Lines []legacyLine `json:"lines"`
}

func main() {
	in := flag.String("in", "data/lists.json", "legacy JSON data file")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("read %s: %v", *in, err)
	}

	var data []legacyList
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Fatalf("parse %s: %v", *in, err)
	}

	var importedLists, importedLines int
	for _, l := range data {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			continue
		}

		listID, err := ensureList(ctx, db, name)
		if err != nil {
			log.Fatalf("import list %q: %v", name, err)
		}
		importedLists++

		n, err := importLines(ctx, db, listID, l.Lines)
		if err != nil {
			log.Fatalf("import lines of %q: %v", name, err)
		}
		importedLines += n
	}

	log.Printf("✅ imported %d lists and %d entries from %s", importedLists, importedLines, *in)
}

func ensureList(ctx context.Context, db *sql.DB, name string) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, "SELECT id FROM lists WHERE name = ?", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	res, err := db.ExecContext(ctx, "INSERT INTO lists (name) VALUES (?)", name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func importLines(ctx context.Context, db *sql.DB, listID int64, items []legacyLine) (int, error) {
	insert, err := db.PrepareContext(ctx, `
		INSERT INTO lines (list_id, name, tags, content, status, episode, opinion, image_url, synopsis, synonyms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer insert.Close()

	update, err := db.PrepareContext(ctx, `
		UPDATE lines
		SET tags = ?, content = ?, status = ?, episode = ?, opinion = ?, image_url = ?, synopsis = ?, synonyms = ?
		WHERE id = ?
	`)
	if err != nil {
		return 0, err
	}
	defer update.Close()

	count := 0
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			continue
		}

		synonyms, err := json.Marshal(it.Synonyms)
		if err != nil {
			return count, err
		}

		// the legacy file carries tags with uneven spacing
		tags := catalog.JoinTags(catalog.ParseTags(it.Tags))

		var existing int64
		err = db.QueryRowContext(ctx,
			"SELECT id FROM lines WHERE list_id = ? AND name = ?", listID, name,
		).Scan(&existing)
		switch {
		case err == sql.ErrNoRows:
			_, err = insert.ExecContext(ctx, listID, name, tags, it.Content, it.Status,
				it.Episode, it.Opinion, it.ImageURL, it.Synopsis, string(synonyms))
		case err == nil:
			_, err = update.ExecContext(ctx, tags, it.Content, it.Status, it.Episode,
				it.Opinion, it.ImageURL, it.Synopsis, string(synonyms), existing)
		}
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
