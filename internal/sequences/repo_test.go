package sequences

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"listit/pkg/database"
)

func newTestRepo(t *testing.T) (*Repo, *sql.DB) {
	t.Helper()

	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepo(db), db
}

func seedLine(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()

	var listID int64
	err := db.QueryRow(`SELECT id FROM lists LIMIT 1`).Scan(&listID)
	if err == sql.ErrNoRows {
		res, err := db.Exec(`INSERT INTO lists (name) VALUES ('Animes')`)
		if err != nil {
			t.Fatalf("seed list: %v", err)
		}
		listID, _ = res.LastInsertId()
	} else if err != nil {
		t.Fatalf("find list: %v", err)
	}

	res, err := db.Exec(`
		INSERT INTO lines (list_id, name, content, status, opinion)
		VALUES (?, ?, 'Anime', 'Vendo', 'Bom')
	`, listID, name)
	if err != nil {
		t.Fatalf("seed line: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func TestAddItemAssignsNextRank(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	seq, err := repo.Create(ctx, "Saga", "seasons in order")
	if err != nil {
		t.Fatalf("create sequence: %v", err)
	}

	a := seedLine(t, db, "Season One")
	b := seedLine(t, db, "Season Two")

	if order, _ := repo.AddItem(ctx, seq.ID, a); order != 1 {
		t.Errorf("first item got rank %d, want 1", order)
	}
	if order, _ := repo.AddItem(ctx, seq.ID, b); order != 2 {
		t.Errorf("second item got rank %d, want 2", order)
	}

	if _, err := repo.AddItem(ctx, seq.ID, a); !errors.Is(err, ErrDuplicateItem) {
		t.Errorf("duplicate add returned %v, want ErrDuplicateItem", err)
	}
}

func TestRemoveKeepsGaps(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	seq, _ := repo.Create(ctx, "Saga", "")
	a := seedLine(t, db, "One")
	b := seedLine(t, db, "Two")
	c := seedLine(t, db, "Three")
	for _, id := range []int64{a, b, c} {
		if _, err := repo.AddItem(ctx, seq.ID, id); err != nil {
			t.Fatalf("add item: %v", err)
		}
	}

	if found, err := repo.RemoveItem(ctx, seq.ID, b); err != nil || !found {
		t.Fatalf("remove: found=%v err=%v", found, err)
	}

	items, err := repo.Items(ctx, seq.ID)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items after removal", len(items))
	}
	// ranks are not renumbered
	if items[0].Order != 1 || items[1].Order != 3 {
		t.Errorf("ranks after removal: %d, %d (want 1, 3)", items[0].Order, items[1].Order)
	}

	// the next add still lands past the highest surviving rank
	d := seedLine(t, db, "Four")
	if order, _ := repo.AddItem(ctx, seq.ID, d); order != 4 {
		t.Errorf("post-gap add got rank %d, want 4", order)
	}
}

func TestReorder(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	seq, _ := repo.Create(ctx, "Saga", "")
	a := seedLine(t, db, "One")
	b := seedLine(t, db, "Two")
	repo.AddItem(ctx, seq.ID, a)
	repo.AddItem(ctx, seq.ID, b)

	if err := repo.Reorder(ctx, seq.ID, []int64{b, a}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	items, _ := repo.Items(ctx, seq.ID)
	if items[0].ID != b || items[1].ID != a {
		t.Errorf("order after reorder: %d, %d", items[0].ID, items[1].ID)
	}

	if err := repo.Reorder(ctx, seq.ID, []int64{a}); err == nil {
		t.Error("partial reorder should fail")
	}
	if err := repo.Reorder(ctx, seq.ID, []int64{a, 999}); err == nil {
		t.Error("reorder with a foreign id should fail")
	}
}

func TestLineDeleteCascadesMembership(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	seq, _ := repo.Create(ctx, "Saga", "")
	a := seedLine(t, db, "One")
	repo.AddItem(ctx, seq.ID, a)

	if _, err := db.Exec(`DELETE FROM lines WHERE id = ?`, a); err != nil {
		t.Fatalf("delete line: %v", err)
	}

	items, err := repo.Items(ctx, seq.ID)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("membership survived line deletion: %+v", items)
	}
}

func TestForLine(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	seq, _ := repo.Create(ctx, "Saga", "the long one")
	a := seedLine(t, db, "One")
	repo.AddItem(ctx, seq.ID, a)

	refs, err := repo.ForLine(ctx, a)
	if err != nil {
		t.Fatalf("for line: %v", err)
	}
	if len(refs) != 1 || refs[0].ID != seq.ID || refs[0].Order != 1 {
		t.Errorf("refs: %+v", refs)
	}

	refs, _ = repo.ForLine(ctx, 999)
	if len(refs) != 0 {
		t.Errorf("unknown line has memberships: %+v", refs)
	}
}
