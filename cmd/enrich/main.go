// Command enrich backfills covers and details for every catalog entry
// that is still missing them, talking to AniList directly against the
// database. It paces requests to stay under the API rate limit.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"listit/internal/lines"
	"listit/internal/lookup"
	"listit/pkg/database"
	"listit/pkg/models"
)

func main() {
	var (
		listID  = flag.Int64("list", 0, "restrict to one list (default every list)")
		images  = flag.Bool("images", true, "resolve missing covers")
		details = flag.Bool("details", true, "resolve missing synonyms and synopses")
		delay   = flag.Duration("delay", 2*time.Second, "pause between AniList requests")
	)
	flag.Parse()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	ctx := context.Background()
	repo := lines.NewRepo(db)

	var (
		items []models.Line
		err   error
	)
	if *listID != 0 {
		items, err = repo.ListByList(ctx, *listID)
	} else {
		items, err = repo.ListAll(ctx)
	}
	if err != nil {
		log.Fatalf("load lines: %v", err)
	}

	client := lookup.NewClient()
	var updatedImages, updatedDetails int

	for _, ln := range items {
		mediaType := lookup.MediaTypeFor(ln.Content)

		if *images && !ln.HasImage() {
			url, err := client.SearchImage(ctx, ln.Name, mediaType)
			if err != nil {
				log.Printf("[enrich] image lookup for %q failed: %v", ln.Name, err)
			} else if url != "" && url != models.PlaceholderImage {
				if _, err := repo.SetImage(ctx, ln.ID, url); err != nil {
					log.Fatalf("save image for %q: %v", ln.Name, err)
				}
				updatedImages++
			}
			time.Sleep(*delay)
		}

		if *details && ln.NeedsDetails() {
			d, err := client.FetchDetails(ctx, ln.Name, mediaType)
			if err != nil {
				log.Printf("[enrich] details lookup for %q failed: %v", ln.Name, err)
			} else if d != nil && !d.Empty() {
				if _, err := repo.SetDetails(ctx, ln.ID, d.Synonyms, d.Synopsis); err != nil {
					log.Fatalf("save details for %q: %v", ln.Name, err)
				}
				updatedDetails++
			}
			time.Sleep(*delay)
		}
	}

	log.Printf("✅ enriched %d entries: %d covers, %d detail sets", len(items), updatedImages, updatedDetails)
}
