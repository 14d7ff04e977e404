package models

import (
	"time"

	"github.com/google/uuid"
)

// Save is a user's bookmark of another user's recipe. Unsaving hard-deletes
// the row. The composite unique index enforces at most one save per
// (user, recipe) pair.
type Save struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saves_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saves_user_recipe;index" json:"recipe_id"`
}

func (Save) TableName() string {
	return "saves"
}
