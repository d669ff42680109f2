package model

import "time"

// Score bounds for reviews.
const (
	ScoreMin = 1
	ScoreMax = 10
)

// Review is an authored opinion on a title with a 1..10 score. One review
// per author per title, enforced by a unique key on (title_id, author_id).
type Review struct {
	ID             uint64    // reviews.id
	TitleID        uint64    // reviews.title_id
	AuthorID       uint64    // reviews.author_id
	AuthorUsername string    // joined from accounts
	Text           string    // reviews.text
	Score          int       // reviews.score
	PubDate        time.Time // reviews.pub_date
}

// Comment is a reply attached to a review.
type Comment struct {
	ID             uint64    // comments.id
	ReviewID       uint64    // comments.review_id
	AuthorID       uint64    // comments.author_id
	AuthorUsername string    // joined from accounts
	Text           string    // comments.text
	PubDate        time.Time // comments.pub_date
}
