package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tastebook/backend/internal/api"
	"github.com/tastebook/backend/internal/database"
	"github.com/tastebook/backend/internal/router"
	"github.com/tastebook/backend/internal/service"
)

// setupPostgres starts a disposable Postgres container and returns a
// migrated connection.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "testuser",
				"POSTGRES_PASSWORD": "testpass",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=testuser password=testpass dbname=testdb sslmode=disable",
		host, mappedPort.Port())
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func setupApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupPostgres(t)
	authService := service.NewAuthService(db, "test-secret")
	recipeService := service.NewRecipeService(db)

	return router.SetupRouter(
		api.NewAuthHandler(authService, recipeService),
		api.NewRecipeHandler(recipeService, authService, nil),
	)
}

func doJSON(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		data, _ := json.Marshal(body)
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

func registerAndLogin(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()

	w := doJSON(router, "POST", "/api/auth/register", map[string]interface{}{
		"username": username,
		"email":    username + "@example.com",
		"password": "pass123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	form := url.Values{
		"username": {username + "@example.com"},
		"password": {"pass123"},
	}
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp["access_token"].(string)
}

// TestFullScenario runs the whole recipe lifecycle against a real Postgres,
// exercising the unique constraints the duplicate checks rely on.
func TestFullScenario(t *testing.T) {
	router := setupApp(t)

	token1 := registerAndLogin(t, router, "user1")
	token2 := registerAndLogin(t, router, "user2")

	w := doJSON(router, "POST", "/api/recipe/", map[string]interface{}{
		"title":        "Pasta",
		"ingredients":  []string{"noodles", "tomato"},
		"instructions": "Boil pasta and add sauce",
		"tags":         []string{"italian"},
	}, token1)
	require.Equal(t, http.StatusOK, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	recipeID := created["id"].(string)

	// user2 rates 4: average becomes 4.0
	w = doJSON(router, "POST", "/api/recipe/"+recipeID+"/rate", map[string]interface{}{"rate": 4}, token2)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "GET", "/api/recipe/"+recipeID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var fetched map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, float64(4), fetched["average_rating"])

	// second rate rejected, self-rate forbidden
	w = doJSON(router, "POST", "/api/recipe/"+recipeID+"/rate", map[string]interface{}{"rate": 3}, token2)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(router, "POST", "/api/recipe/"+recipeID+"/rate", map[string]interface{}{"rate": 5}, token1)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// save, duplicate save, unsave
	w = doJSON(router, "POST", "/api/recipe/"+recipeID+"/save", nil, token2)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(router, "POST", "/api/recipe/"+recipeID+"/save", nil, token2)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(router, "DELETE", "/api/recipe/"+recipeID+"/unsave", nil, token2)
	assert.Equal(t, http.StatusOK, w.Code)

	// delete: stranger forbidden, author succeeds
	w = doJSON(router, "DELETE", "/api/recipe/"+recipeID, nil, token2)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(router, "DELETE", "/api/recipe/"+recipeID, nil, token1)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
