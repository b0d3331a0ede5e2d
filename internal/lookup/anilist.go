// Package lookup talks to the AniList GraphQL API to resolve cover
// images and supplementary details (synonyms, synopsis) for catalog
// lines, and proxies remote images past browser CORS rules.
package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"
)

const anilistURL = "https://graphql.anilist.co"

const imageQuery = `
query($search: String) {
  Page(page: 1, perPage: 5) {
    media(search: $search, type: %s) {
      title { romaji english }
      coverImage { large }
    }
  }
}`

const detailsQuery = `
query($search: String) {
  Page(page: 1, perPage: 5) {
    media(search: $search, type: %s) {
      title { romaji english }
      synonyms
      description
    }
  }
}`

// nonWord strips punctuation from search queries; letters, digits,
// underscore and whitespace survive.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// CleanQuery normalizes a title for searching: hyphens become spaces and
// punctuation is dropped. AniList matches much better on the bare words.
func CleanQuery(q string) string {
	q = strings.ReplaceAll(strings.TrimSpace(q), "-", " ")
	return nonWord.ReplaceAllString(q, "")
}

// MediaTypeFor maps a line's content value to the AniList media type.
func MediaTypeFor(content string) string {
	switch strings.ToLower(strings.TrimSpace(content)) {
	case "anime", "filme":
		return "ANIME"
	default:
		return "MANGA"
	}
}

// Details is the enrichment payload for one title.
type Details struct {
	Romaji   string   `json:"romaji"`
	English  string   `json:"english"`
	Synonyms []string `json:"synonyms"`
	Synopsis string   `json:"synopsis"`
}

// Empty reports whether the lookup found nothing worth storing.
func (d Details) Empty() bool {
	return d.Romaji == "" && d.English == "" && len(d.Synonyms) == 0 && d.Synopsis == ""
}

// Client is an AniList search client. Repeated image searches for the
// same title rotate through the top results, so a wrong first match can
// be skipped by just searching again.
type Client struct {
	HTTP    *http.Client
	Retries int

	mu      sync.Mutex
	lastIdx map[string]int
}

func NewClient() *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 12 * time.Second},
		Retries: 3,
		lastIdx: make(map[string]int),
	}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type gqlMedia struct {
	Title struct {
		Romaji  string `json:"romaji"`
		English string `json:"english"`
	} `json:"title"`
	CoverImage struct {
		Large string `json:"large"`
	} `json:"coverImage"`
	Synonyms    []string `json:"synonyms"`
	Description string   `json:"description"`
}

type gqlResponse struct {
	Data struct {
		Page struct {
			Media []gqlMedia `json:"media"`
		} `json:"Page"`
	} `json:"data"`
}

func (c *Client) post(ctx context.Context, query, search string) ([]gqlMedia, int, error) {
	body, err := json.Marshal(gqlRequest{
		Query:     query,
		Variables: map[string]any{"search": search},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("anilist: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anilistURL, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("anilist: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("anilist: request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("anilist: status %d: %s", resp.StatusCode, string(raw))
	}

	var out gqlResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("anilist: decode: %w", err)
	}
	return out.Data.Page.Media, resp.StatusCode, nil
}

// SearchImage returns a cover URL for the query, or "" when AniList has
// no match. Consecutive searches for the same title walk the top five
// results round-robin.
func (c *Client) SearchImage(ctx context.Context, query, mediaType string) (string, error) {
	clean := CleanQuery(query)
	media, _, err := c.post(ctx, fmt.Sprintf(imageQuery, mediaType), clean)
	if err != nil {
		return "", err
	}
	if len(media) == 0 {
		return "", nil
	}

	key := mediaType + "|" + clean
	c.mu.Lock()
	last, ok := c.lastIdx[key]
	if !ok {
		last = -1
	}
	idx := (last + 1) % len(media)
	c.lastIdx[key] = idx
	c.mu.Unlock()

	return strings.TrimSpace(media[idx].CoverImage.Large), nil
}

// FetchDetails returns synonyms and synopsis for the best match, backing
// off and retrying when AniList rate-limits. The synonym list is romaji,
// english, then at most two of AniList's own synonyms.
func (c *Client) FetchDetails(ctx context.Context, query, mediaType string) (*Details, error) {
	clean := CleanQuery(query)
	q := fmt.Sprintf(detailsQuery, mediaType)

	retries := c.Retries
	if retries <= 0 {
		retries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		media, status, err := c.post(ctx, q, clean)
		if err != nil {
			lastErr = err
			if status == http.StatusTooManyRequests {
				// back off harder on every rate-limited attempt
				wait := time.Duration(10*attempt) * time.Second
				if err := sleep(ctx, wait); err != nil {
					return nil, err
				}
				continue
			}
			return nil, err
		}

		if len(media) == 0 {
			return nil, nil
		}

		m := media[0]
		d := &Details{
			Romaji:   m.Title.Romaji,
			English:  m.Title.English,
			Synopsis: m.Description,
		}
		if d.Romaji != "" {
			d.Synonyms = append(d.Synonyms, d.Romaji)
		}
		if d.English != "" {
			d.Synonyms = append(d.Synonyms, d.English)
		}
		extra := m.Synonyms
		if len(extra) > 2 {
			extra = extra[:2]
		}
		d.Synonyms = append(d.Synonyms, extra...)
		return d, nil
	}
	return nil, fmt.Errorf("anilist: giving up after %d attempts: %w", retries, lastErr)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
