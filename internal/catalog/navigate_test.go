package catalog

import (
	"testing"

	"listit/pkg/models"
)

func navLines(n int) []models.Line {
	out := make([]models.Line, n)
	for i := range out {
		out[i] = models.Line{ID: int64(i + 1), Name: string(rune('A' + i))}
	}
	return out
}

func TestNavigatorMoves(t *testing.T) {
	lines := navLines(10)
	nav := NewNavigator(lines[0], lines)

	if nav.Prev(StrideCard) {
		t.Fatal("prev at the first card should be a no-op")
	}
	if cur, ok := nav.Current(); !ok || cur.ID != 1 {
		t.Fatalf("position changed after clamped move: %+v", cur)
	}

	if !nav.Next(StrideRow) {
		t.Fatal("row jump from the start should succeed")
	}
	if cur, _ := nav.Current(); cur.ID != 6 {
		t.Errorf("after +5: at %d, want 6", cur.ID)
	}

	if nav.Next(StrideRow) {
		t.Error("row jump past the end should be a no-op")
	}
	if !nav.Next(StrideCard) {
		t.Error("single step within bounds should still work")
	}
}

func TestNavigatorMissingLine(t *testing.T) {
	lines := navLines(3)
	nav := NewNavigator(models.Line{ID: 99}, lines)

	if _, ok := nav.Current(); ok {
		t.Fatal("navigator on an absent line reported a current item")
	}
	if nav.Move(1) {
		t.Error("inert navigator moved")
	}
}

func TestLocateInSequence(t *testing.T) {
	items := []models.SequenceItem{
		{Line: models.Line{ID: 10, Name: "Season One"}, Order: 1},
		{Line: models.Line{ID: 11, Name: "Season Two"}, Order: 2},
		{Line: models.Line{ID: 12, Name: "The Movie"}, Order: 3},
	}

	pos := LocateInSequence(11, items)
	if pos.Index != 1 || pos.PrevName != "Season One" || pos.Opening {
		t.Errorf("middle item: %+v", pos)
	}

	pos = LocateInSequence(10, items)
	if !pos.Opening || pos.NextName != "Season Two" || pos.PrevName != "" {
		t.Errorf("opening item: %+v", pos)
	}

	pos = LocateInSequence(12, items)
	if pos.Index != 2 || pos.PrevName != "Season Two" {
		t.Errorf("closing item: %+v", pos)
	}

	pos = LocateInSequence(99, items)
	if pos.Index != -1 {
		t.Errorf("absent line located at %d", pos.Index)
	}

	solo := items[:1]
	pos = LocateInSequence(10, solo)
	if pos.Opening || pos.PrevName != "" || pos.NextName != "" {
		t.Errorf("single-item sequence reported neighbors: %+v", pos)
	}
}
