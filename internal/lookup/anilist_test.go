package lookup

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestCleanQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Naruto  ", "Naruto"},
		{"Re-Zero", "Re Zero"},
		{"Dr. Stone!", "Dr Stone"},
		{"Ação & Aventura", "Ação  Aventura"},
		{"86", "86"},
	}
	for _, tt := range tests {
		if got := CleanQuery(tt.in); got != tt.want {
			t.Errorf("CleanQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMediaTypeFor(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"Anime", "ANIME"},
		{"Filme", "ANIME"},
		{"Manga", "MANGA"},
		{"Manhwa", "MANGA"},
		{"Webtoon", "MANGA"},
		{"Novel", "MANGA"},
	}
	for _, tt := range tests {
		if got := MediaTypeFor(tt.content); got != tt.want {
			t.Errorf("MediaTypeFor(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

// cannedTransport answers every request with a fixed JSON body.
type cannedTransport struct {
	body string
}

func (ct cannedTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(ct.body)),
	}, nil
}

func newCannedClient(body string) *Client {
	c := NewClient()
	c.HTTP = &http.Client{Transport: cannedTransport{body: body}}
	return c
}

func TestSearchImageRotatesResults(t *testing.T) {
	c := newCannedClient(`{"data":{"Page":{"media":[
		{"coverImage":{"large":"https://img.test/a.png"}},
		{"coverImage":{"large":"https://img.test/b.png"}}
	]}}}`)

	ctx := context.Background()
	want := []string{
		"https://img.test/a.png",
		"https://img.test/b.png",
		"https://img.test/a.png", // wraps around
	}
	for i, w := range want {
		got, err := c.SearchImage(ctx, "Some Show", "ANIME")
		if err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
		if got != w {
			t.Errorf("search %d = %q, want %q", i, got, w)
		}
	}

	// a different media type rotates independently
	got, err := c.SearchImage(ctx, "Some Show", "MANGA")
	if err != nil {
		t.Fatalf("manga search: %v", err)
	}
	if got != "https://img.test/a.png" {
		t.Errorf("manga search started at %q", got)
	}
}

func TestSearchImageNoMatch(t *testing.T) {
	c := newCannedClient(`{"data":{"Page":{"media":[]}}}`)
	got, err := c.SearchImage(context.Background(), "Unknown", "ANIME")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if got != "" {
		t.Errorf("no-match search returned %q", got)
	}
}

func TestFetchDetailsSynonymAssembly(t *testing.T) {
	c := newCannedClient(`{"data":{"Page":{"media":[{
		"title":{"romaji":"Shingeki","english":"Attack"},
		"synonyms":["AoT","SnK","Extra","More"],
		"description":"Walls."
	}]}}}`)

	det, err := c.FetchDetails(context.Background(), "attack", "ANIME")
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if det == nil {
		t.Fatal("details nil for a matching title")
	}

	// romaji, english, then at most two raw synonyms
	want := []string{"Shingeki", "Attack", "AoT", "SnK"}
	if len(det.Synonyms) != len(want) {
		t.Fatalf("synonyms = %v, want %v", det.Synonyms, want)
	}
	for i := range want {
		if det.Synonyms[i] != want[i] {
			t.Errorf("synonym %d = %q, want %q", i, det.Synonyms[i], want[i])
		}
	}
	if det.Synopsis != "Walls." {
		t.Errorf("synopsis = %q", det.Synopsis)
	}
	if det.Empty() {
		t.Error("populated details reported Empty")
	}
}

func TestFetchDetailsNoMatch(t *testing.T) {
	c := newCannedClient(`{"data":{"Page":{"media":[]}}}`)
	det, err := c.FetchDetails(context.Background(), "nothing", "MANGA")
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if det != nil {
		t.Errorf("no-match details = %+v", det)
	}
}
