package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dferrazm/gin-recipe-api/internal/database"
	"github.com/dferrazm/gin-recipe-api/internal/middleware"
	"github.com/dferrazm/gin-recipe-api/internal/models"
	"github.com/dferrazm/gin-recipe-api/internal/services"
	"github.com/dferrazm/gin-recipe-api/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testAPI wires the full HTTP surface against an in-memory database, the way
// main does for real traffic
type testAPI struct {
	router  *gin.Engine
	db      *gorm.DB
	users   services.UserService
	tokens  services.TokenService
	recipes *RecipeController
	images  *storage.ImageStore
}

func setupTestAPI(t *testing.T) *testAPI {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	imageStore := storage.NewImageStore(t.TempDir())

	userController := NewUserController(userService, tokenService)
	tagController := NewTagController(services.NewTagService(db))
	ingredientController := NewIngredientController(services.NewIngredientService(db))
	recipeController := NewRecipeController(services.NewRecipeService(db), imageStore)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed,
			models.NewAPIError(models.ErrMethodNotAllowed, "Method not allowed for this resource"))
	})

	users := router.Group("/api/users")
	{
		users.POST("/create/", userController.Register)
		users.POST("/token/", userController.Token)

		me := users.Group("/me")
		me.Use(middleware.TokenAuth(tokenService))
		{
			me.GET("/", userController.Me)
			me.PATCH("/", userController.UpdateMe)
			me.PUT("/", userController.UpdateMe)
		}
	}

	recipe := router.Group("/api/recipe")
	recipe.Use(middleware.TokenAuth(tokenService))
	{
		recipe.GET("/tags/", tagController.List)
		recipe.POST("/tags/", tagController.Create)
		recipe.GET("/ingredients/", ingredientController.List)
		recipe.POST("/ingredients/", ingredientController.Create)
		recipe.GET("/recipes/", recipeController.List)
		recipe.POST("/recipes/", recipeController.Create)
		recipe.GET("/recipes/:id/", recipeController.Get)
		recipe.PUT("/recipes/:id/", recipeController.Update)
		recipe.PATCH("/recipes/:id/", recipeController.Patch)
		recipe.DELETE("/recipes/:id/", recipeController.Delete)
		recipe.POST("/recipes/:id/upload-image/", recipeController.UploadImage)
	}

	return &testAPI{
		router:  router,
		db:      db,
		users:   userService,
		tokens:  tokenService,
		recipes: recipeController,
		images:  imageStore,
	}
}

// authedUser creates a user and returns it with a valid token key
func (api *testAPI) authedUser(t *testing.T, email string) (*models.User, string) {
	user, err := api.users.CreateUser(email, "testpass123", "Test User")
	require.NoError(t, err)
	key, err := api.tokens.IssueToken(user.ID)
	require.NoError(t, err)
	return user, key
}

func (api *testAPI) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "body: %s", w.Body.String())
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	require.Equal(t, expected, w.Code, "body: %s", w.Body.String())
}
