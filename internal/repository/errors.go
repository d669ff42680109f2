// Package repository defines sentinel errors shared across repositories.
// Higher layers match on these values to translate storage failures into
// API responses, e.g. ErrNotFound becomes HTTP 404 and the duplicate
// sentinels become validation errors.
package repository

import "errors"

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when an insert or update collides with
// the unique username key.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned when an insert or update collides with the
// unique email key.
var ErrEmailExists = errors.New("email already exists")

// ErrSlugExists is returned when a category or genre slug collides with
// an existing one.
var ErrSlugExists = errors.New("slug already exists")

// ErrDuplicateReview is returned when an author already has a review for
// the target title. The (title_id, author_id) unique key backs this.
var ErrDuplicateReview = errors.New("duplicate review")
