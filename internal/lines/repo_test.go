package lines

import (
	"context"
	"testing"
	"time"

	"listit/pkg/database"
	"listit/pkg/models"
)

func newTestRepo(t *testing.T) (*Repo, int64) {
	t.Helper()

	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	res, err := db.Exec(`INSERT INTO lists (name) VALUES ('Animes')`)
	if err != nil {
		t.Fatalf("seed list: %v", err)
	}
	listID, _ := res.LastInsertId()
	return NewRepo(db), listID
}

func TestCreateAndGet(t *testing.T) {
	repo, listID := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Create(ctx, models.Line{
		ListID:   listID,
		Name:     "Alpha Quest",
		Content:  "Anime",
		Status:   "Vendo",
		Opinion:  "Bom",
		Episode:  "12",
		Tags:     "Ação, Shounen",
		Synonyms: []string{"AQ", "Quest of Alpha"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("create returned zero id")
	}

	got, err := repo.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("get returned nil for existing line")
	}
	if got.Name != "Alpha Quest" || got.Tags != "Ação, Shounen" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if len(got.Synonyms) != 2 {
		t.Errorf("synonyms decoded to %v", got.Synonyms)
	}
	if !got.NeedsDetails() {
		t.Error("line without synopsis should need details")
	}
}

func TestGetMissing(t *testing.T) {
	repo, _ := newTestRepo(t)
	got, err := repo.Get(context.Background(), 999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing line, got %+v", got)
	}
}

func TestPlaceholderImageReadsAsAbsent(t *testing.T) {
	repo, listID := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Create(ctx, models.Line{
		ListID: listID, Name: "Legacy", Content: "Anime", Status: "Vi", Opinion: "Bom",
		ImageURL: models.PlaceholderImage,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ImageURL != "" {
		t.Errorf("placeholder surfaced as a resolved image: %q", got.ImageURL)
	}
	if got.HasImage() {
		t.Error("HasImage() true for placeholder-backed row")
	}
}

func TestSetDetails(t *testing.T) {
	repo, listID := newTestRepo(t)
	ctx := context.Background()

	saved, _ := repo.Create(ctx, models.Line{
		ListID: listID, Name: "Beta", Content: "Manga", Status: "Lendo", Opinion: "Bom",
	})

	found, err := repo.SetDetails(ctx, saved.ID, []string{"B", "Beta Title", "ベータ"}, "A story.")
	if err != nil {
		t.Fatalf("set details: %v", err)
	}
	if !found {
		t.Fatal("set details missed the row")
	}

	got, _ := repo.Get(ctx, saved.ID)
	if got.Synopsis != "A story." || len(got.Synonyms) != 3 {
		t.Errorf("details not stored: %+v", got)
	}
	if got.NeedsDetails() {
		t.Error("enriched line still reports needing details")
	}
}

func TestToHighlightCutoff(t *testing.T) {
	repo, listID := newTestRepo(t)
	ctx := context.Background()
	now := time.Now()

	watching, _ := repo.Create(ctx, models.Line{
		ListID: listID, Name: "Watching", Content: "Anime", Status: "Vendo", Opinion: "Bom",
	})
	reading, _ := repo.Create(ctx, models.Line{
		ListID: listID, Name: "Reading", Content: "Manhwa", Status: "Lendo", Opinion: "Bom",
	})
	repo.Create(ctx, models.Line{
		ListID: listID, Name: "Done", Content: "Anime", Status: "Terminei", Opinion: "Bom",
	})

	items, err := repo.ToHighlight(ctx, listID, now)
	if err != nil {
		t.Fatalf("to-highlight: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected the two in-progress lines, got %d", len(items))
	}

	// freshly verified lines drop out
	if _, err := repo.MarkHighlighted(ctx, watching.ID, now); err != nil {
		t.Fatalf("mark highlighted: %v", err)
	}
	items, _ = repo.ToHighlight(ctx, listID, now)
	if len(items) != 1 || items[0].ID != reading.ID {
		t.Fatalf("verified line still eligible: %+v", items)
	}

	// a verification older than 15 days makes the line eligible again
	items, _ = repo.ToHighlight(ctx, listID, now.AddDate(0, 0, 16))
	if len(items) != 2 {
		t.Fatalf("stale verification not re-surfaced, got %d lines", len(items))
	}
}

func TestUpdateAndDelete(t *testing.T) {
	repo, listID := newTestRepo(t)
	ctx := context.Background()

	saved, _ := repo.Create(ctx, models.Line{
		ListID: listID, Name: "Old Name", Content: "Anime", Status: "Vendo", Opinion: "Bom",
	})

	saved.Name = "New Name"
	saved.Status = "Terminei"
	found, err := repo.Update(ctx, *saved)
	if err != nil || !found {
		t.Fatalf("update: found=%v err=%v", found, err)
	}

	got, _ := repo.Get(ctx, saved.ID)
	if got.Name != "New Name" || got.Status != "Terminei" {
		t.Errorf("update not applied: %+v", got)
	}

	found, err = repo.Delete(ctx, saved.ID)
	if err != nil || !found {
		t.Fatalf("delete: found=%v err=%v", found, err)
	}
	if got, _ := repo.Get(ctx, saved.ID); got != nil {
		t.Error("line still present after delete")
	}
}
