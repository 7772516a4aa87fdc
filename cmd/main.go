package main

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/dferrazm/gin-recipe-api/docs" // Import generated docs
	"github.com/dferrazm/gin-recipe-api/internal/config"
	"github.com/dferrazm/gin-recipe-api/internal/controllers"
	"github.com/dferrazm/gin-recipe-api/internal/database"
	"github.com/dferrazm/gin-recipe-api/internal/middleware"
	"github.com/dferrazm/gin-recipe-api/internal/models"
	"github.com/dferrazm/gin-recipe-api/internal/services"
	"github.com/dferrazm/gin-recipe-api/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db                   *gorm.DB
	configuration        *config.Config
	userController       *controllers.UserController
	tagController        *controllers.AttributeController[models.Tag]
	ingredientController *controllers.AttributeController[models.Ingredient]
	recipeController     *controllers.RecipeController
	tokenService         services.TokenService
)

// @title Recipe API
// @version 1.0
// @description Multi-tenant recipe catalog API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token key.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection and schema
	setupDatabase(configuration)

	// Initialize services and controllers
	userService := services.NewUserService(db)
	tokenService = services.NewTokenService(db)
	imageStore := storage.NewImageStore(configuration.UploadDir)

	userController = controllers.NewUserController(userService, tokenService)
	tagController = controllers.NewTagController(services.NewTagService(db))
	ingredientController = controllers.NewIngredientController(services.NewIngredientService(db))
	recipeController = controllers.NewRecipeController(services.NewRecipeService(db), imageStore)

	// Initialize Gin router
	router := setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase opens the connection and migrates the schema
func setupDatabase(conf *config.Config) {
	var err error
	db, err = database.InitDatabase(conf.Database)
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))
}

// setupRouter initializes the Gin router and sets up the routes
func setupRouter() *gin.Engine {
	router := gin.Default()
	// distinguish 405 (known path, wrong verb) from 404
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed,
			models.NewAPIError(models.ErrMethodNotAllowed, "Method not allowed for this resource"))
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound,
			models.NewAPIError(models.ErrNotFound, "Resource not found"))
	})

	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

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

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-recipe-api",
	})
}
