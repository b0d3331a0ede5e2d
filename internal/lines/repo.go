package lines

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"listit/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

const lineCols = `id, list_id, name, tags, content, status, episode, opinion, image_url, synopsis, synonyms`

type scanner interface {
	Scan(dest ...any) error
}

func scanLine(s scanner) (models.Line, error) {
	var (
		ln           models.Line
		tags         sql.NullString
		episode      sql.NullString
		imageURL     sql.NullString
		synopsis     sql.NullString
		synonymsJSON sql.NullString
	)

	if err := s.Scan(
		&ln.ID, &ln.ListID, &ln.Name, &tags, &ln.Content, &ln.Status,
		&episode, &ln.Opinion, &imageURL, &synopsis, &synonymsJSON,
	); err != nil {
		return ln, err
	}

	ln.Tags = tags.String
	ln.Episode = episode.String
	ln.Synopsis = synopsis.String

	// the placeholder sentinel is "no image"; never surface it
	if imageURL.String != models.PlaceholderImage {
		ln.ImageURL = imageURL.String
	}

	if synonymsJSON.Valid && synonymsJSON.String != "" {
		_ = json.Unmarshal([]byte(synonymsJSON.String), &ln.Synonyms)
	}
	return ln, nil
}

func (r *Repo) ListExists(ctx context.Context, listID int64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM lists WHERE id = ?`, listID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("list exists: %w", err)
	}
	return true, nil
}

func (r *Repo) ListByList(ctx context.Context, listID int64) ([]models.Line, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+lineCols+` FROM lines WHERE list_id = ?
	`, listID)
	if err != nil {
		return nil, fmt.Errorf("list lines: %w", err)
	}
	defer rows.Close()

	out := make([]models.Line, 0, 64)
	for rows.Next() {
		ln, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		out = append(out, ln)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// ListAll returns every line in the catalog, for batch enrichment.
func (r *Repo) ListAll(ctx context.Context) ([]models.Line, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+lineCols+` FROM lines ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list all lines: %w", err)
	}
	defer rows.Close()

	var out []models.Line
	for rows.Next() {
		ln, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		out = append(out, ln)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id int64) (*models.Line, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+lineCols+` FROM lines WHERE id = ?`, id)
	ln, err := scanLine(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get line: %w", err)
	}
	return &ln, nil
}

func (r *Repo) Create(ctx context.Context, ln models.Line) (*models.Line, error) {
	synonyms, err := json.Marshal(ln.Synonyms)
	if err != nil {
		return nil, fmt.Errorf("encode synonyms: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO lines (list_id, name, tags, content, status, episode, opinion, image_url, synopsis, synonyms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ln.ListID, ln.Name, ln.Tags, ln.Content, ln.Status, ln.Episode, ln.Opinion,
		ln.ImageURL, ln.Synopsis, string(synonyms))
	if err != nil {
		return nil, fmt.Errorf("create line: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create line id: %w", err)
	}
	ln.ID = id
	return &ln, nil
}

// Update rewrites the user-editable fields. Image, synopsis and synonyms
// have their own operations and are left untouched.
func (r *Repo) Update(ctx context.Context, ln models.Line) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE lines
		SET name = ?, tags = ?, content = ?, status = ?, episode = ?, opinion = ?
		WHERE id = ?
	`, ln.Name, ln.Tags, ln.Content, ln.Status, ln.Episode, ln.Opinion, ln.ID)
	if err != nil {
		return false, fmt.Errorf("update line: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Delete removes a line; sequence memberships go with it through the FK
// cascade.
func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM lines WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete line: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *Repo) SetImage(ctx context.Context, id int64, url string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `UPDATE lines SET image_url = ? WHERE id = ?`, url, id)
	if err != nil {
		return false, fmt.Errorf("set image: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *Repo) SetDetails(ctx context.Context, id int64, synonyms []string, synopsis string) (bool, error) {
	enc, err := json.Marshal(synonyms)
	if err != nil {
		return false, fmt.Errorf("encode synonyms: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, `
		UPDATE lines SET synonyms = ?, synopsis = ? WHERE id = ?
	`, string(enc), synopsis, id)
	if err != nil {
		return false, fmt.Errorf("set details: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ToHighlight returns the watching/reading lines of a list that were
// never verified, or whose last verification is older than 15 days.
func (r *Repo) ToHighlight(ctx context.Context, listID int64, now time.Time) ([]models.Line, error) {
	cutoff := now.UTC().AddDate(0, 0, -15).Format(time.RFC3339)

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+lineCols+`
		FROM lines
		WHERE list_id = ?
		AND (
			(content = 'Anime' AND status LIKE '%vendo%') OR
			(content IN ('Manga', 'Webtoon', 'Manhwa') AND status LIKE '%lendo%')
		)
		AND (last_highlight IS NULL OR last_highlight <= ?)
	`, listID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("to-highlight query: %w", err)
	}
	defer rows.Close()

	var out []models.Line
	for rows.Next() {
		ln, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan highlight row: %w", err)
		}
		out = append(out, ln)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// MarkHighlighted records that the line was manually verified now.
func (r *Repo) MarkHighlighted(ctx context.Context, id int64, now time.Time) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE lines SET last_highlight = ? WHERE id = ?
	`, now.UTC().Format(time.RFC3339), id)
	if err != nil {
		return false, fmt.Errorf("mark highlighted: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
