package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is owned by its author; only the author may edit or delete it.
// Ingredients and Tags are stored as comma-separated text. The average
// rating is not stored here: it is recomputed from Rating rows at read
// time so there is a single source of truth.
type Recipe struct {
	ID                     uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
	Title                  string         `gorm:"size:255;not null" json:"title"`
	Ingredients            string         `gorm:"type:text;not null" json:"ingredients"`
	Instructions           string         `gorm:"type:text;not null" json:"instructions"`
	SimplifiedInstructions *string        `gorm:"type:text" json:"simplified_instructions"`
	Calories               *int           `json:"calories"`
	Tags                   string         `gorm:"size:255" json:"tags"`
	AuthorID               uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
}
