// Command export-xlsx writes one list to an xlsx workbook straight from
// the database, using the same engine as the API export endpoint.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"strings"
	"time"

	"listit/internal/catalog"
	"listit/internal/export"
	"listit/internal/lines"
	"listit/internal/lists"
	"listit/pkg/database"
)

func main() {
	var (
		listID  = flag.Int64("list", 0, "list id to export")
		out     = flag.String("out", "", "output path (default <list name>.xlsx)")
		sortArg = flag.String("sort", "", "sort strategy: name-asc, name-desc, episode-asc, episode-desc, opinion (default canonical)")
		columns = flag.String("columns", "", "pipe-separated column selection, e.g. Nome|Status (default all)")
		adult   = flag.Bool("adult", false, "include adult manhwa entries")
	)
	flag.Parse()

	if *listID == 0 {
		log.Fatal("missing -list")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	list, err := lists.NewRepo(db).Get(ctx, *listID)
	if err != nil {
		log.Fatalf("load list: %v", err)
	}
	if list == nil {
		log.Fatalf("list %d not found", *listID)
	}

	items, err := lines.NewRepo(db).ListByList(ctx, *listID)
	if err != nil {
		log.Fatalf("load lines: %v", err)
	}

	q := catalog.NewQuery()
	q.ShowAdult = *adult
	items = catalog.Filter(items, q)

	if *sortArg != "" {
		items = catalog.Sort(items, catalog.ParseSortStrategy(*sortArg))
	} else {
		items = catalog.SortCanonical(items)
	}

	var cols []string
	if *columns != "" {
		cols = strings.Split(*columns, "|")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	f, err := export.Workbook(items, export.OptionsFromColumns(cols), rng)
	if err != nil {
		log.Fatalf("build workbook: %v", err)
	}

	path := *out
	if path == "" {
		path = list.Name + ".xlsx"
	}
	if err := f.SaveAs(path); err != nil {
		log.Fatalf("write %s: %v", path, err)
	}

	log.Printf("✅ exported %d entries from %q to %s", len(items), list.Name, path)
}
