package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/reviewhub/reviewhub-api/internal/model"
)

// CategoryRepo manages rows in the 'categories' table.
type CategoryRepo struct{ DB *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{DB: db} }

// Create inserts a category. Slug collisions map to ErrSlugExists.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO categories (name, slug) VALUES (?,?)", c.Name, c.Slug)
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
	c.ID = uint64(id)
	return nil
}

// GetBySlug fetches a category by its unique slug.
func (r *CategoryRepo) GetBySlug(ctx context.Context, slug string) (model.Category, error) {
	var c model.Category
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, slug FROM categories WHERE slug=? LIMIT 1", slug).
		Scan(&c.ID, &c.Name, &c.Slug)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

// List returns a page of categories ordered by name, filtered by an
// optional name substring, plus the total match count.
func (r *CategoryRepo) List(ctx context.Context, search string, limit, offset int) ([]model.Category, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = " WHERE name LIKE ?"
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, slug FROM categories"+where+" ORDER BY name LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Category, 0, limit)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

// Delete removes a category by slug. Titles keep their rows; the FK is
// ON DELETE SET NULL so a title simply loses its category.
func (r *CategoryRepo) Delete(ctx context.Context, slug string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE slug=?", slug)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
