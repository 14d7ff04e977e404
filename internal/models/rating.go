package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a single user's score for another user's recipe. The composite
// unique index is what enforces the at-most-one-rating-per-user invariant;
// the rate handler treats its violation as a duplicate rating.
type Rating struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_recipe;index" json:"recipe_id"`
	Rating    int       `gorm:"not null" json:"rating"`
}

func (Rating) TableName() string {
	return "ratings"
}
