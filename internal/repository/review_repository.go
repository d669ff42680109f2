package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/reviewhub/reviewhub-api/internal/model"
)

// ReviewRepo manages the 'reviews' table. A unique key on
// (title_id, author_id) guarantees at most one review per author per
// title even under concurrent inserts.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

const reviewSelect = `SELECT r.id, r.title_id, r.author_id, a.username, r.text, r.score, r.pub_date
 FROM reviews r JOIN accounts a ON a.id = r.author_id`

func scanReview(row interface{ Scan(...any) error }) (model.Review, error) {
	var rv model.Review
	err := row.Scan(&rv.ID, &rv.TitleID, &rv.AuthorID, &rv.AuthorUsername, &rv.Text, &rv.Score, &rv.PubDate)
	return rv, err
}

// ExistsByTitleAndAuthor reports whether the author already reviewed the
// title. Callers check this before inserting; the unique key covers the
// race between check and insert.
func (r *ReviewRepo) ExistsByTitleAndAuthor(ctx context.Context, titleID, authorID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM reviews WHERE title_id=? AND author_id=? LIMIT 1", titleID, authorID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a review and fills in its ID and publication date.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews (title_id, author_id, text, score) VALUES (?,?,?,?)",
		rv.TitleID, rv.AuthorID, rv.Text, rv.Score)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrDuplicateReview
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT pub_date FROM reviews WHERE id=?", rv.ID).Scan(&rv.PubDate)
}

// GetByID fetches a review scoped to a title; a review reached through the
// wrong title is ErrNotFound.
func (r *ReviewRepo) GetByID(ctx context.Context, titleID, id uint64) (model.Review, error) {
	rv, err := scanReview(r.DB.QueryRowContext(ctx,
		reviewSelect+" WHERE r.id=? AND r.title_id=? LIMIT 1", id, titleID))
	if err == sql.ErrNoRows {
		return rv, ErrNotFound
	}
	return rv, err
}

// ListByTitle returns a page of a title's reviews, newest first, plus the
// total count.
func (r *ReviewRepo) ListByTitle(ctx context.Context, titleID uint64, limit, offset int) ([]model.Review, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reviews WHERE title_id=?", titleID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx,
		reviewSelect+" WHERE r.title_id=? ORDER BY r.pub_date DESC LIMIT ? OFFSET ?",
		titleID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Review, 0, limit)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rv)
	}
	return out, total, rows.Err()
}

// Update rewrites the review's text and score.
func (r *ReviewRepo) Update(ctx context.Context, id uint64, text string, score int) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE reviews SET text=?, score=? WHERE id=?", text, score, id)
	return err
}

// Delete removes a review; its comments cascade.
func (r *ReviewRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM reviews WHERE id=?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
