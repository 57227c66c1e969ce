package models

import "time"

// Quote keeps tags as the raw comma-separated text the author typed in.
// Splitting and trimming happens in the tags package when a distinct
// tag listing is needed.
type Quote struct {
	ID         int64     `json:"id" db:"id"`
	Text       string    `json:"text" db:"text"`
	Tags       string    `json:"tags" db:"tags"`
	AuthorID   int64     `json:"author_id" db:"author_id"`
	AuthorName string    `json:"author_name,omitempty" db:"author_name"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
