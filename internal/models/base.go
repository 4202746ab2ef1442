package models

import "time"

// Base is the base model for all entities. IDs are auto-increment integers so
// that "newest first" ordering can break created_at ties by id.
type Base struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
