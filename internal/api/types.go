package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/tastebook/backend/internal/models"
)

// RecipeResponse is the wire shape of a recipe. AverageRating is null when
// the recipe has no ratings.
type RecipeResponse struct {
	ID                     uuid.UUID `json:"id"`
	Title                  string    `json:"title"`
	Ingredients            string    `json:"ingredients"`
	Instructions           string    `json:"instructions"`
	SimplifiedInstructions *string   `json:"simplified_instructions"`
	Calories               *int      `json:"calories"`
	Tags                   string    `json:"tags"`
	AuthorID               uuid.UUID `json:"author_id"`
	AverageRating          *float64  `json:"average_rating"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func newRecipeResponse(recipe *models.Recipe, average *float64) RecipeResponse {
	return RecipeResponse{
		ID:                     recipe.ID,
		Title:                  recipe.Title,
		Ingredients:            recipe.Ingredients,
		Instructions:           recipe.Instructions,
		SimplifiedInstructions: recipe.SimplifiedInstructions,
		Calories:               recipe.Calories,
		Tags:                   recipe.Tags,
		AuthorID:               recipe.AuthorID,
		AverageRating:          average,
		CreatedAt:              recipe.CreatedAt,
		UpdatedAt:              recipe.UpdatedAt,
	}
}

func newRecipeListResponse(recipes []models.Recipe, averages map[uuid.UUID]float64) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		var avg *float64
		if v, ok := averages[recipes[i].ID]; ok {
			avg = &v
		}
		out = append(out, newRecipeResponse(&recipes[i], avg))
	}
	return out
}
