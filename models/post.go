package models

import "time"

// Post is a club announcement shown on the site.
type Post struct {
	ID        int       `json:"id" db:"id"`
	AuthorID  int       `json:"author_id" db:"author_id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	Published bool      `json:"published" db:"published"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
