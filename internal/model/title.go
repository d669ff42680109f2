package model

// Category is a top-level classification for titles ("Movies", "Books").
// Addressed externally by slug.
type Category struct {
	ID   uint64 // categories.id
	Name string // categories.name
	Slug string // categories.slug (unique)
}

// Genre classifies titles by style; a title may carry several genres.
type Genre struct {
	ID   uint64 // genres.id
	Name string // genres.name
	Slug string // genres.slug (unique)
}

// Title is a reviewable work. Rating is computed from reviews at read
// time (AVG over review scores) and is nil when the title has no reviews.
type Title struct {
	ID          uint64   // titles.id
	Name        string   // titles.name
	Year        int      // titles.year
	Description string   // titles.description
	Category    *Category
	Genres      []Genre
	Rating      *float64 // derived, never stored
}
