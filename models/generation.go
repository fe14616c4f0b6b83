package models

import (
	"time"

	"github.com/google/uuid"
)

// Generation records one rendered report file
type Generation struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Path      string    `json:"path" db:"path"`
	Format    string    `json:"format" db:"format"`
	SHA256    string    `json:"sha256" db:"sha256"`
	Bytes     int64     `json:"bytes" db:"bytes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
