package lists

import (
	"context"
	"database/sql"
	"fmt"

	"listit/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// ListSummary is a list together with how many lines it holds.
type ListSummary struct {
	models.List
	TotalLines int `json:"total_lines"`
}

func (r *Repo) List(ctx context.Context) ([]ListSummary, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT l.id, l.name, COUNT(ln.id)
		FROM lists l
		LEFT JOIN lines ln ON ln.list_id = l.id
		GROUP BY l.id, l.name
		ORDER BY l.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	out := make([]ListSummary, 0, 8)
	for rows.Next() {
		var s ListSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.TotalLines); err != nil {
			return nil, fmt.Errorf("scan list row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id int64) (*models.List, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT id, name FROM lists WHERE id = ?`, id)

	var l models.List
	if err := row.Scan(&l.ID, &l.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get list: %w", err)
	}
	return &l, nil
}

func (r *Repo) Create(ctx context.Context, name string) (*models.List, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO lists (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create list id: %w", err)
	}
	return &models.List{ID: id, Name: name}, nil
}

func (r *Repo) Rename(ctx context.Context, id int64, name string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `UPDATE lists SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return false, fmt.Errorf("rename list: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Delete removes a list; its lines (and their sequence memberships) go
// with it through the FK cascade.
func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete list: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
