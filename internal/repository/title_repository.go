package repository

import (
	"context"
	"database/sql"

	"github.com/reviewhub/reviewhub-api/internal/model"
)

// TitleRepo manages reviewable works and their genre links. The average
// rating is computed by the database on every read instead of being
// stored, so it can never drift from the reviews.
type TitleRepo struct{ DB *sql.DB }

func NewTitleRepo(db *sql.DB) *TitleRepo { return &TitleRepo{DB: db} }

// TitleFilter narrows List results. Zero values mean "no filter".
type TitleFilter struct {
	Category string // category slug
	Genre    string // genre slug
	Name     string // name substring
	Year     int    // exact year
}

const titleSelect = `SELECT t.id, t.name, t.year, t.description,
 c.id, c.name, c.slug,
 (SELECT AVG(r.score) FROM reviews r WHERE r.title_id = t.id) AS rating
 FROM titles t LEFT JOIN categories c ON c.id = t.category_id`

func scanTitle(row interface{ Scan(...any) error }) (model.Title, error) {
	var (
		t      model.Title
		desc   sql.NullString
		catID  sql.NullInt64
		catNm  sql.NullString
		catSl  sql.NullString
		rating sql.NullFloat64
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Year, &desc, &catID, &catNm, &catSl, &rating); err != nil {
		return t, err
	}
	t.Description = desc.String
	if catID.Valid {
		t.Category = &model.Category{ID: uint64(catID.Int64), Name: catNm.String, Slug: catSl.String}
	}
	if rating.Valid {
		v := rating.Float64
		t.Rating = &v
	}
	return t, nil
}

// Create inserts a title and its genre links in one transaction. The
// category and genres must already exist; unknown slugs yield ErrNotFound.
func (r *TitleRepo) Create(ctx context.Context, t *model.Title, categorySlug string, genreSlugs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var catID any // nil when the title has no category
	if categorySlug != "" {
		var id uint64
		err := tx.QueryRowContext(ctx, "SELECT id FROM categories WHERE slug=? LIMIT 1", categorySlug).Scan(&id)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		catID = id
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO titles (name, year, description, category_id) VALUES (?,?,?,?)",
		t.Name, t.Year, t.Description, catID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)

	if err := replaceGenres(ctx, tx, t.ID, genreSlugs); err != nil {
		return err
	}
	return tx.Commit()
}

// Update rewrites the title row and replaces its genre links.
func (r *TitleRepo) Update(ctx context.Context, t *model.Title, categorySlug string, genreSlugs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var catID any
	if categorySlug != "" {
		var id uint64
		err := tx.QueryRowContext(ctx, "SELECT id FROM categories WHERE slug=? LIMIT 1", categorySlug).Scan(&id)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		catID = id
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE titles SET name=?, year=?, description=?, category_id=? WHERE id=?",
		t.Name, t.Year, t.Description, catID, t.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM title_genres WHERE title_id=?", t.ID); err != nil {
		return err
	}
	if err := replaceGenres(ctx, tx, t.ID, genreSlugs); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceGenres(ctx context.Context, tx *sql.Tx, titleID uint64, genreSlugs []string) error {
	for _, slug := range genreSlugs {
		var gid uint64
		err := tx.QueryRowContext(ctx, "SELECT id FROM genres WHERE slug=? LIMIT 1", slug).Scan(&gid)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO title_genres (title_id, genre_id) VALUES (?,?)", titleID, gid); err != nil {
			return err
		}
	}
	return nil
}

// GetByID fetches one title with its category, genres and average rating.
func (r *TitleRepo) GetByID(ctx context.Context, id uint64) (model.Title, error) {
	t, err := scanTitle(r.DB.QueryRowContext(ctx, titleSelect+" WHERE t.id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return t, ErrNotFound
	}
	if err != nil {
		return t, err
	}
	if err := r.loadGenres(ctx, &t); err != nil {
		return t, err
	}
	return t, nil
}

// List returns a filtered page of titles ordered by name plus the total
// match count.
func (r *TitleRepo) List(ctx context.Context, f TitleFilter, limit, offset int) ([]model.Title, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if f.Category != "" {
		where += " AND c.slug=?"
		args = append(args, f.Category)
	}
	if f.Genre != "" {
		where += " AND t.id IN (SELECT tg.title_id FROM title_genres tg JOIN genres g ON g.id=tg.genre_id WHERE g.slug=?)"
		args = append(args, f.Genre)
	}
	if f.Name != "" {
		where += " AND t.name LIKE ?"
		args = append(args, "%"+f.Name+"%")
	}
	if f.Year != 0 {
		where += " AND t.year=?"
		args = append(args, f.Year)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM titles t LEFT JOIN categories c ON c.id=t.category_id"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.DB.QueryContext(ctx, titleSelect+where+" ORDER BY t.name LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Title, 0, limit)
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for i := range out {
		if err := r.loadGenres(ctx, &out[i]); err != nil {
			return nil, 0, err
		}
	}
	return out, total, nil
}

func (r *TitleRepo) loadGenres(ctx context.Context, t *model.Title) error {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT g.id, g.name, g.slug FROM genres g JOIN title_genres tg ON tg.genre_id=g.id WHERE tg.title_id=? ORDER BY g.name",
		t.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return err
		}
		t.Genres = append(t.Genres, g)
	}
	return rows.Err()
}

// Delete removes a title; reviews and comments cascade.
func (r *TitleRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM titles WHERE id=?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
