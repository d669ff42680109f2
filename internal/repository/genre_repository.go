package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/reviewhub/reviewhub-api/internal/model"
)

// GenreRepo manages rows in the 'genres' table.
type GenreRepo struct{ DB *sql.DB }

func NewGenreRepo(db *sql.DB) *GenreRepo { return &GenreRepo{DB: db} }

// Create inserts a genre. Slug collisions map to ErrSlugExists.
func (r *GenreRepo) Create(ctx context.Context, g *model.Genre) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO genres (name, slug) VALUES (?,?)", g.Name, g.Slug)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrSlugExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// GetBySlug fetches a genre by its unique slug.
func (r *GenreRepo) GetBySlug(ctx context.Context, slug string) (model.Genre, error) {
	var g model.Genre
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, slug FROM genres WHERE slug=? LIMIT 1", slug).
		Scan(&g.ID, &g.Name, &g.Slug)
	if err == sql.ErrNoRows {
		return g, ErrNotFound
	}
	return g, err
}

// List returns a page of genres ordered by name, filtered by an optional
// name substring, plus the total match count.
func (r *GenreRepo) List(ctx context.Context, search string, limit, offset int) ([]model.Genre, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = " WHERE name LIKE ?"
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM genres"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, slug FROM genres"+where+" ORDER BY name LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Genre, 0, limit)
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, 0, err
		}
		out = append(out, g)
	}
	return out, total, rows.Err()
}

// Delete removes a genre by slug; the title_genres join rows cascade.
func (r *GenreRepo) Delete(ctx context.Context, slug string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM genres WHERE slug=?", slug)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
