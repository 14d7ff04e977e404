package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/types"
)

// RecipeService handles recipe CRUD, rating, saving and search.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// requireAuthor is the author-only authorization predicate shared by every
// mutating operation on a recipe.
func requireAuthor(recipe *models.Recipe, userID uuid.UUID) error {
	if recipe.AuthorID != userID {
		return ErrNotAuthor
	}
	return nil
}

// requireNotAuthor guards rate and save: authors may not act on their own
// recipes.
func requireNotAuthor(recipe *models.Recipe, userID uuid.UUID) error {
	if recipe.AuthorID == userID {
		return ErrOwnRecipe
	}
	return nil
}

func joinList(items []string) string {
	trimmed := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			trimmed = append(trimmed, it)
		}
	}
	return strings.Join(trimmed, ",")
}

// CreateRecipe stores a new recipe owned by authorID. List-valued fields
// are serialized to comma-separated text.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	recipe := models.Recipe{
		ID:                     uuid.New(),
		Title:                  req.Title,
		Ingredients:            joinList(req.Ingredients),
		Instructions:           req.Instructions,
		Tags:                   joinList(req.Tags),
		SimplifiedInstructions: req.SimplifiedInstructions,
		Calories:               req.Calories,
		AuthorID:               authorID,
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetRecipe retrieves a recipe by id.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes returns all recipes.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// ListByAuthor returns the recipes created by the given user.
func (s *RecipeService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("author_id = ?", authorID).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// UpdateRecipe applies a partial update. Only the author may edit; fields
// absent from the request keep their stored value.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id, callerID uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireAuthor(recipe, callerID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Ingredients != nil {
		updates["ingredients"] = joinList(*req.Ingredients)
	}
	if req.Instructions != nil {
		updates["instructions"] = *req.Instructions
	}
	if req.Tags != nil {
		updates["tags"] = joinList(*req.Tags)
	}
	if req.SimplifiedInstructions != nil {
		updates["simplified_instructions"] = *req.SimplifiedInstructions
	}
	if req.Calories != nil {
		updates["calories"] = *req.Calories
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(recipe).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetRecipe(ctx, id)
}

// DeleteRecipe removes a recipe and its dependent ratings and saves in one
// transaction. Only the author may delete.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, callerID uuid.UUID) error {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	if err := requireAuthor(recipe, callerID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Save{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}

// RateRecipe records an immutable rating. Authors may not rate their own
// recipe, and the unique index on (user_id, recipe_id) rejects a second
// rating from the same user.
func (s *RecipeService) RateRecipe(ctx context.Context, recipeID, userID uuid.UUID, score int) (*models.Rating, error) {
	recipe, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := requireNotAuthor(recipe, userID); err != nil {
		return nil, err
	}

	rating := models.Rating{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
		Rating:   score,
	}
	if err := s.db.WithContext(ctx).Create(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRated
		}
		return nil, err
	}
	return &rating, nil
}

// SaveRecipe bookmarks another user's recipe, at most once per user.
func (s *RecipeService) SaveRecipe(ctx context.Context, recipeID, userID uuid.UUID) (*models.Save, error) {
	recipe, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := requireNotAuthor(recipe, userID); err != nil {
		return nil, err
	}

	save := models.Save{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
	}
	if err := s.db.WithContext(ctx).Create(&save).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySaved
		}
		return nil, err
	}
	return &save, nil
}

// UnsaveRecipe removes the caller's save of a recipe.
func (s *RecipeService) UnsaveRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Delete(&models.Save{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSaveNotFound
	}
	return nil
}

// ListSaved returns the recipes the user has saved, in save-insertion order.
func (s *RecipeService) ListSaved(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN saves ON saves.recipe_id = recipes.id").
		Where("saves.user_id = ?", userID).
		Order("saves.created_at").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// SearchRecipes filters by an optional case-insensitive title substring and
// a list of ingredient terms, each matched as a substring of the whole
// ingredients field. All given conditions must hold.
func (s *RecipeService) SearchRecipes(ctx context.Context, name string, ingredients []string) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if name != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	for _, term := range ingredients {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		query = query.Where("LOWER(ingredients) LIKE ?", "%"+strings.ToLower(term)+"%")
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// AverageRatings aggregates ratings for the given recipes in one query and
// returns the 2-decimal-rounded mean per recipe. Unrated recipes are absent
// from the map.
func (s *RecipeService) AverageRatings(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	averages := make(map[uuid.UUID]float64, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return averages, nil
	}

	var rows []struct {
		RecipeID uuid.UUID
		Average  float64
	}
	err := s.db.WithContext(ctx).Model(&models.Rating{}).
		Select("recipe_id, AVG(rating) AS average").
		Where("recipe_id IN ?", recipeIDs).
		Group("recipe_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		averages[row.RecipeID] = math.Round(row.Average*100) / 100
	}
	return averages, nil
}

// AverageRating returns the rounded mean for one recipe, or nil when it has
// no ratings.
func (s *RecipeService) AverageRating(ctx context.Context, recipeID uuid.UUID) (*float64, error) {
	averages, err := s.AverageRatings(ctx, []uuid.UUID{recipeID})
	if err != nil {
		return nil, err
	}
	if avg, ok := averages[recipeID]; ok {
		return &avg, nil
	}
	return nil, nil
}
