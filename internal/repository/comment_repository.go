package repository

import (
	"context"
	"database/sql"

	"github.com/reviewhub/reviewhub-api/internal/model"
)

// CommentRepo manages the 'comments' table.
type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

const commentSelect = `SELECT c.id, c.review_id, c.author_id, a.username, c.text, c.pub_date
 FROM comments c JOIN accounts a ON a.id = c.author_id`

func scanComment(row interface{ Scan(...any) error }) (model.Comment, error) {
	var cm model.Comment
	err := row.Scan(&cm.ID, &cm.ReviewID, &cm.AuthorID, &cm.AuthorUsername, &cm.Text, &cm.PubDate)
	return cm, err
}

// Create inserts a comment and fills in its ID and publication date.
func (r *CommentRepo) Create(ctx context.Context, cm *model.Comment) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (review_id, author_id, text) VALUES (?,?,?)",
		cm.ReviewID, cm.AuthorID, cm.Text)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cm.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT pub_date FROM comments WHERE id=?", cm.ID).Scan(&cm.PubDate)
}

// GetByID fetches a comment scoped to its review.
func (r *CommentRepo) GetByID(ctx context.Context, reviewID, id uint64) (model.Comment, error) {
	cm, err := scanComment(r.DB.QueryRowContext(ctx,
		commentSelect+" WHERE c.id=? AND c.review_id=? LIMIT 1", id, reviewID))
	if err == sql.ErrNoRows {
		return cm, ErrNotFound
	}
	return cm, err
}

// ListByReview returns a page of a review's comments, newest first, plus
// the total count.
func (r *CommentRepo) ListByReview(ctx context.Context, reviewID uint64, limit, offset int) ([]model.Comment, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM comments WHERE review_id=?", reviewID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx,
		commentSelect+" WHERE c.review_id=? ORDER BY c.pub_date DESC LIMIT ? OFFSET ?",
		reviewID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Comment, 0, limit)
	for rows.Next() {
		cm, err := scanComment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, cm)
	}
	return out, total, rows.Err()
}

// Update rewrites the comment's text.
func (r *CommentRepo) Update(ctx context.Context, id uint64, text string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE comments SET text=? WHERE id=?", text, id)
	return err
}

// Delete removes a comment.
func (r *CommentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM comments WHERE id=?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
