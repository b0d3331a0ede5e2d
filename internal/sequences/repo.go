package sequences

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"listit/pkg/models"
)

// ErrDuplicateItem is returned when a line is added to a sequence it is
// already part of.
var ErrDuplicateItem = errors.New("line already in sequence")

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) Create(ctx context.Context, name, description string) (*models.Sequence, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO sequences (name, description) VALUES (?, ?)
	`, name, description)
	if err != nil {
		return nil, fmt.Errorf("create sequence: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create sequence id: %w", err)
	}
	return &models.Sequence{ID: id, Name: name, Description: description}, nil
}

func (r *Repo) List(ctx context.Context) ([]models.SequenceSummary, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT s.id, s.name, COALESCE(s.description, ''), COUNT(si.line_id)
		FROM sequences s
		LEFT JOIN sequence_items si ON si.sequence_id = s.id
		GROUP BY s.id, s.name, s.description
		ORDER BY s.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sequences: %w", err)
	}
	defer rows.Close()

	out := make([]models.SequenceSummary, 0, 8)
	for rows.Next() {
		var s models.SequenceSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.TotalItems); err != nil {
			return nil, fmt.Errorf("scan sequence row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id int64) (*models.Sequence, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description, '') FROM sequences WHERE id = ?
	`, id)

	var s models.Sequence
	if err := row.Scan(&s.ID, &s.Name, &s.Description); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get sequence: %w", err)
	}
	return &s, nil
}

// Items returns a sequence's lines in rank order. Ranks may have gaps:
// removals do not renumber the survivors.
func (r *Repo) Items(ctx context.Context, seqID int64) ([]models.SequenceItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT ln.id, ln.list_id, ln.name, ln.tags, ln.content, ln.status,
		       ln.episode, ln.opinion, ln.image_url, ln.synopsis, ln.synonyms,
		       si.item_order
		FROM sequence_items si
		JOIN lines ln ON ln.id = si.line_id
		WHERE si.sequence_id = ?
		ORDER BY si.item_order ASC
	`, seqID)
	if err != nil {
		return nil, fmt.Errorf("sequence items: %w", err)
	}
	defer rows.Close()

	var out []models.SequenceItem
	for rows.Next() {
		var (
			it           models.SequenceItem
			tags         sql.NullString
			episode      sql.NullString
			imageURL     sql.NullString
			synopsis     sql.NullString
			synonymsJSON sql.NullString
		)
		if err := rows.Scan(
			&it.ID, &it.ListID, &it.Name, &tags, &it.Content, &it.Status,
			&episode, &it.Opinion, &imageURL, &synopsis, &synonymsJSON, &it.Order,
		); err != nil {
			return nil, fmt.Errorf("scan sequence item: %w", err)
		}
		it.Tags = tags.String
		it.Episode = episode.String
		it.Synopsis = synopsis.String
		if imageURL.String != models.PlaceholderImage {
			it.ImageURL = imageURL.String
		}
		if synonymsJSON.Valid && synonymsJSON.String != "" {
			_ = json.Unmarshal([]byte(synonymsJSON.String), &it.Synonyms)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// AddItem appends a line to a sequence at rank MAX+1 and returns the
// assigned rank. Adding a line twice yields ErrDuplicateItem.
func (r *Repo) AddItem(ctx context.Context, seqID, lineID int64) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin add item: %w", err)
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRowContext(ctx, `
		SELECT 1 FROM sequence_items WHERE sequence_id = ? AND line_id = ?
	`, seqID, lineID).Scan(&one)
	if err == nil {
		return 0, ErrDuplicateItem
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("membership check: %w", err)
	}

	var next int
	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(item_order), 0) + 1 FROM sequence_items WHERE sequence_id = ?
	`, seqID).Scan(&next); err != nil {
		return 0, fmt.Errorf("next rank: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sequence_items (sequence_id, line_id, item_order) VALUES (?, ?, ?)
	`, seqID, lineID, next); err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit add item: %w", err)
	}
	return next, nil
}

func (r *Repo) RemoveItem(ctx context.Context, seqID, lineID int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM sequence_items WHERE sequence_id = ? AND line_id = ?
	`, seqID, lineID)
	if err != nil {
		return false, fmt.Errorf("remove item: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Reorder rewrites the ranks of a sequence from the given line order.
// The ids must be exactly the current membership.
func (r *Repo) Reorder(ctx context.Context, seqID int64, lineIDs []int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reorder: %w", err)
	}
	defer tx.Rollback()

	var total int
	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sequence_items WHERE sequence_id = ?
	`, seqID).Scan(&total); err != nil {
		return fmt.Errorf("count items: %w", err)
	}
	if total != len(lineIDs) {
		return fmt.Errorf("reorder needs all %d items, got %d", total, len(lineIDs))
	}

	for i, lineID := range lineIDs {
		res, err := tx.ExecContext(ctx, `
			UPDATE sequence_items SET item_order = ? WHERE sequence_id = ? AND line_id = ?
		`, i+1, seqID, lineID)
		if err != nil {
			return fmt.Errorf("reorder item %d: %w", lineID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("line %d is not in the sequence", lineID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reorder: %w", err)
	}
	return nil
}

// Delete removes a sequence; its items go with it through the FK
// cascade. The lines themselves are untouched.
func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM sequences WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete sequence: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ForLine returns the sequences a line belongs to, with its rank in
// each. The UI assumes at most one membership and uses the first.
func (r *Repo) ForLine(ctx context.Context, lineID int64) ([]models.SequenceRef, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT s.id, s.name, COALESCE(s.description, ''), si.item_order
		FROM sequence_items si
		JOIN sequences s ON s.id = si.sequence_id
		WHERE si.line_id = ?
		ORDER BY s.id ASC
	`, lineID)
	if err != nil {
		return nil, fmt.Errorf("sequences for line: %w", err)
	}
	defer rows.Close()

	var out []models.SequenceRef
	for rows.Next() {
		var ref models.SequenceRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Description, &ref.Order); err != nil {
			return nil, fmt.Errorf("scan sequence ref: %w", err)
		}
		out = append(out, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) LineExists(ctx context.Context, lineID int64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM lines WHERE id = ?`, lineID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("line exists: %w", err)
	}
	return true, nil
}
