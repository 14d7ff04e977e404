package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tastebook/backend/internal/middleware"
	"github.com/tastebook/backend/internal/service"
	"github.com/tastebook/backend/internal/types"
)

type AuthHandler struct {
	authService   *service.AuthService
	recipeService *service.RecipeService
}

func NewAuthHandler(authService *service.AuthService, recipeService *service.RecipeService) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		recipeService: recipeService,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/profile", middleware.AuthMiddleware(h.authService), h.Profile)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User registered successfully"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// OAuth2 password forms put the email in the username field.
	email := req.Email
	if email == "" {
		email = req.Username
	}

	token, err := h.authService.Login(c.Request.Context(), email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Profile returns the recipes authored by the authenticated user.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipes, err := h.recipeService.ListByAuthor(c.Request.Context(), userID)
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
