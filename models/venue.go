package models

import "time"

// Venue is a hall the club plays at.
type Venue struct {
	ID         int       `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Address    string    `json:"address" db:"address"`
	CourtCount int       `json:"court_count" db:"court_count"`
	Notes      *string   `json:"notes,omitempty" db:"notes"`
	PhotoKey   *string   `json:"-" db:"photo_key"`
	PhotoURL   *string   `json:"photo_url,omitempty" db:"-"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
