package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/service"
	"github.com/tastebook/backend/internal/testhelpers"
)

// setupTestRouter wires the real handlers against an in-memory database.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	authService := service.NewAuthService(db, "test-secret")
	recipeService := service.NewRecipeService(db)

	authHandler := NewAuthHandler(authService, recipeService)
	recipeHandler := NewRecipeHandler(recipeService, authService, nil)

	router := gin.New()
	router.Use(gin.Recovery())
	apiGroup := router.Group("/api")
	authHandler.RegisterRoutes(apiGroup)
	recipeHandler.RegisterRoutes(apiGroup)

	return router, db, authService
}

// createTestUser inserts a user directly and returns its id and a token.
func createTestUser(t *testing.T, db *gorm.DB, authService *service.AuthService, username string) (uuid.UUID, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("pass123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: string(hashed),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	token, err := authService.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	return user.ID, token
}

// performJSON sends a JSON request, with a bearer token when given.
func performJSON(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(data))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// performForm sends a form-encoded request.
func performForm(router *gin.Engine, method, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
