package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"listit/pkg/models"
)

// apiClient is a thin read-only client for the api-server. The browser
// fetches a list once and runs filtering and sorting locally.
type apiClient struct {
	base string
	http *http.Client
}

func newAPIClient(base string) *apiClient {
	return &apiClient{
		base: base,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *apiClient) getJSON(path string, query url.Values, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	resp, err := c.http.Get(u)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: status %d: %s", path, resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

type listSummary struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	TotalLines int    `json:"total_lines"`
}

func (c *apiClient) lists() ([]listSummary, error) {
	var resp struct {
		Items []listSummary `json:"items"`
	}
	if err := c.getJSON("/lists", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *apiClient) lines(listID int64) ([]models.Line, error) {
	// show_adult: fetch everything, the local view applies censorship
	q := url.Values{"show_adult": {"true"}}

	var resp struct {
		Items []models.Line `json:"items"`
	}
	if err := c.getJSON(fmt.Sprintf("/lists/%d/lines", listID), q, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *apiClient) toHighlight(listID int64) ([]models.Line, error) {
	var resp struct {
		Items []models.Line `json:"items"`
	}
	if err := c.getJSON(fmt.Sprintf("/lists/%d/to-highlight", listID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

type sequencePosition struct {
	Index    int    `json:"index"`
	PrevName string `json:"prev_name"`
	NextName string `json:"next_name"`
	Opening  bool   `json:"opening"`
}

type sequenceRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

func (c *apiClient) lineSequences(lineID int64) ([]sequenceRef, *sequencePosition, error) {
	var resp struct {
		Sequences []sequenceRef     `json:"sequences"`
		Position  *sequencePosition `json:"position"`
	}
	if err := c.getJSON(fmt.Sprintf("/lines/%d/sequences", lineID), nil, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Sequences, resp.Position, nil
}
