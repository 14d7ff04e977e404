package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tastebook/backend/internal/middleware"
	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/service"
	"github.com/tastebook/backend/internal/types"
)

type RecipeHandler struct {
	recipeService *service.RecipeService
	authService   *service.AuthService
	createLimiter gin.HandlerFunc // optional, rate limits recipe creation
}

func NewRecipeHandler(recipeService *service.RecipeService, authService *service.AuthService, createLimiter gin.HandlerFunc) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		authService:   authService,
		createLimiter: createLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	authRequired := middleware.AuthMiddleware(h.authService)

	recipes := router.Group("/recipe")
	{
		recipes.GET("/", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/user/search", h.SearchRecipes)
		recipes.GET("/user/save", authRequired, h.ListSaved)

		create := []gin.HandlerFunc{authRequired}
		if h.createLimiter != nil {
			create = append(create, h.createLimiter)
		}
		recipes.POST("/", append(create, h.CreateRecipe)...)

		recipes.PUT("/:id", authRequired, h.UpdateRecipe)
		recipes.DELETE("/:id", authRequired, h.DeleteRecipe)
		recipes.POST("/:id/rate", authRequired, h.RateRecipe)
		recipes.POST("/:id/save", authRequired, h.SaveRecipe)
		recipes.DELETE("/:id/unsave", authRequired, h.UnsaveRecipe)
	}
}

func recipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return uuid.Nil, false
	}
	return id, true
}

// averagesFor fetches the aggregated average ratings for a recipe slice.
func averagesFor(c *gin.Context, svc *service.RecipeService, recipes []models.Recipe) (map[uuid.UUID]float64, error) {
	ids := make([]uuid.UUID, len(recipes))
	for i := range recipes {
		ids[i] = recipes[i].ID
	}
	return svc.AverageRatings(c.Request.Context(), ids)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRecipeResponse(recipe, nil))
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.ListRecipes(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	averages, err := averagesFor(c, h.recipeService, recipes)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRecipeListResponse(recipes, averages))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	average, err := h.recipeService.AverageRating(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRecipeResponse(recipe, average))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	average, err := h.recipeService.AverageRating(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRecipeResponse(recipe, average))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req types.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	rating, err := h.recipeService.RateRecipe(c.Request.Context(), id, userID, req.Rate)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rating)
}

func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	save, err := h.recipeService.SaveRecipe(c.Request.Context(), id, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, save)
}

func (h *RecipeHandler) UnsaveRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.recipeService.UnsaveRecipe(c.Request.Context(), id, userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Recipe unsaved successfully."})
}

func (h *RecipeHandler) ListSaved(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipes, err := h.recipeService.ListSaved(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	averages, err := averagesFor(c, h.recipeService, recipes)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRecipeListResponse(recipes, averages))
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	name := c.Query("name")

	var terms []string
	if raw := c.Query("ingredients"); raw != "" {
		terms = strings.Split(raw, ",")
	}

	recipes, err := h.recipeService.SearchRecipes(c.Request.Context(), name, terms)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	averages, err := averagesFor(c, h.recipeService, recipes)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRecipeListResponse(recipes, averages))
}
