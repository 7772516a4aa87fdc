package controllers

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dferrazm/gin-recipe-api/internal/middleware"
	"github.com/dferrazm/gin-recipe-api/internal/models"
	"github.com/dferrazm/gin-recipe-api/internal/services"
	"github.com/dferrazm/gin-recipe-api/internal/storage"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RecipeController handles the recipe resource, including image uploads
type RecipeController struct {
	service services.RecipeService
	images  *storage.ImageStore
	// newImageID generates image file basenames; replaced in tests
	newImageID func() string
}

// NewRecipeController creates a new instance of RecipeController
func NewRecipeController(service services.RecipeService, images *storage.ImageStore) *RecipeController {
	return &RecipeController{
		service:    service,
		images:     images,
		newImageID: storage.NewImageID,
	}
}

// List godoc
// @Summary List the caller's recipes
// @Description Recipes owned by the authenticated user, newest first. tags/ingredients filters are comma-separated ID sets matched by intersection.
// @Tags recipe
// @Produce json
// @Param tags query string false "Comma-separated tag IDs"
// @Param ingredients query string false "Comma-separated ingredient IDs"
// @Success 200 {array} controllers.recipeView
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/recipe/recipes/ [get]
func (rc *RecipeController) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized,
			models.NewAPIError(models.ErrUnauthorized, "User not authenticated"))
		return
	}

	tagIDs, err := parseIDSet(c.Query("tags"))
	if err != nil {
		respondFieldError(c, "tags", "Must be a comma-separated list of integer IDs")
		return
	}
	ingredientIDs, err := parseIDSet(c.Query("ingredients"))
	if err != nil {
		respondFieldError(c, "ingredients", "Must be a comma-separated list of integer IDs")
		return
	}

	recipes, err := rc.service.List(user.ID, services.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		log.WithError(err).Error("Failed to list recipes")
		c.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, "Failed to retrieve recipes"))
		return
	}

	c.JSON(http.StatusOK, toRecipeViews(recipes))
}

// Get godoc
// @Summary Get a recipe
// @Description Detail representation with tags and ingredients expanded
// @Tags recipe
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} controllers.recipeDetailView
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/recipe/recipes/{id}/ [get]
func (rc *RecipeController) Get(c *gin.Context) {
	user, recipeID, ok := rc.callerAndID(c)
	if !ok {
		return
	}

	recipe, err := rc.service.Get(user.ID, recipeID)
	if err != nil {
		rc.respondServiceError(c, err, "Failed to retrieve recipe")
		return
	}

	c.JSON(http.StatusOK, toRecipeDetailView(recipe))
}

// Create godoc
// @Summary Create a recipe
// @Tags recipe
// @Accept json
// @Produce json
// @Param recipe body controllers.recipeRequest true "Recipe payload"
// @Success 201 {object} controllers.recipeDetailView
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/recipe/recipes/ [post]
func (rc *RecipeController) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized,
			models.NewAPIError(models.ErrUnauthorized, "User not authenticated"))
		return
	}

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	recipe := models.Recipe{
		Title:       req.Title,
		TimeMinutes: *req.TimeMinutes,
		Price:       *req.Price,
		Link:        req.Link,
	}
	created, err := rc.service.Create(user.ID, recipe, req.Tags, req.Ingredients)
	if err != nil {
		rc.respondServiceError(c, err, "Failed to create recipe")
		return
	}

	c.JSON(http.StatusCreated, toRecipeDetailView(created))
}

// Update godoc
// @Summary Replace a recipe
// @Description Full update. Omitted tags/ingredients keys clear those association sets.
// @Tags recipe
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param recipe body controllers.recipeRequest true "Recipe payload"
// @Success 200 {object} controllers.recipeDetailView
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/recipe/recipes/{id}/ [put]
func (rc *RecipeController) Update(c *gin.Context) {
	user, recipeID, ok := rc.callerAndID(c)
	if !ok {
		return
	}

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	// a full update replaces every mutable field; absent association keys
	// become empty sets
	tags := req.Tags
	if tags == nil {
		tags = []uint{}
	}
	ingredients := req.Ingredients
	if ingredients == nil {
		ingredients = []uint{}
	}
	link := req.Link

	updated, err := rc.service.Update(user.ID, recipeID, services.RecipeChanges{
		Title:         &req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          &link,
		TagIDs:        &tags,
		IngredientIDs: &ingredients,
	})
	if err != nil {
		rc.respondServiceError(c, err, "Failed to update recipe")
		return
	}

	c.JSON(http.StatusOK, toRecipeDetailView(updated))
}

// Patch godoc
// @Summary Partially update a recipe
// @Description Only provided fields change. A provided tags/ingredients key replaces exactly that set.
// @Tags recipe
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param recipe body controllers.recipePatchRequest true "Fields to update"
// @Success 200 {object} controllers.recipeDetailView
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/recipe/recipes/{id}/ [patch]
func (rc *RecipeController) Patch(c *gin.Context) {
	user, recipeID, ok := rc.callerAndID(c)
	if !ok {
		return
	}

	var req recipePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	updated, err := rc.service.Update(user.ID, recipeID, services.RecipeChanges{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		rc.respondServiceError(c, err, "Failed to update recipe")
		return
	}

	c.JSON(http.StatusOK, toRecipeDetailView(updated))
}

// Delete godoc
// @Summary Delete a recipe
// @Description Removes the recipe and its stored image file
// @Tags recipe
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/recipe/recipes/{id}/ [delete]
func (rc *RecipeController) Delete(c *gin.Context) {
	user, recipeID, ok := rc.callerAndID(c)
	if !ok {
		return
	}

	imagePath, err := rc.service.Delete(user.ID, recipeID)
	if err != nil {
		rc.respondServiceError(c, err, "Failed to delete recipe")
		return
	}

	if err := rc.images.Remove(imagePath); err != nil {
		log.WithError(err).WithField("path", imagePath).Warn("Failed to remove recipe image")
	}

	c.Status(http.StatusNoContent)
}

// UploadImage godoc
// @Summary Upload a recipe image
// @Description Multipart upload, field "image". The payload must decode as a PNG, JPEG or GIF. Replaces and discards any previous image.
// @Tags recipe
// @Accept mpfd
// @Produce json
// @Param id path int true "Recipe ID"
// @Param image formData file true "Image file"
// @Success 200 {object} controllers.recipeDetailView
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/recipe/recipes/{id}/upload-image/ [post]
func (rc *RecipeController) UploadImage(c *gin.Context) {
	user, recipeID, ok := rc.callerAndID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		respondFieldError(c, "image", "No image file submitted")
		return
	}

	file, err := header.Open()
	if err != nil {
		respondFieldError(c, "image", "Could not read the submitted file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondFieldError(c, "image", "Could not read the submitted file")
		return
	}
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		respondFieldError(c, "image", "Upload a valid image. The submitted file is not an image or is corrupted")
		return
	}

	// write the new file first, then move the record pointer, then discard
	// the old file, so readers never see a partial image
	path := storage.RecipeImagePath(rc.newImageID, header.Filename)
	if err := rc.images.Save(path, bytes.NewReader(data)); err != nil {
		log.WithError(err).Error("Failed to store recipe image")
		c.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, "Failed to store image"))
		return
	}

	recipe, oldPath, err := rc.service.SetImage(user.ID, recipeID, path)
	if err != nil {
		if removeErr := rc.images.Remove(path); removeErr != nil {
			log.WithError(removeErr).Warn("Failed to clean up orphaned image")
		}
		rc.respondServiceError(c, err, "Failed to update recipe image")
		return
	}

	if err := rc.images.Remove(oldPath); err != nil {
		log.WithError(err).WithField("path", oldPath).Warn("Failed to remove replaced recipe image")
	}

	c.JSON(http.StatusOK, toRecipeDetailView(recipe))
}

// callerAndID resolves the authenticated user and the :id path parameter
func (rc *RecipeController) callerAndID(c *gin.Context) (*models.User, uint, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized,
			models.NewAPIError(models.ErrUnauthorized, "User not authenticated"))
		return nil, 0, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondFieldError(c, "id", "Invalid recipe ID format")
		return nil, 0, false
	}
	return user, uint(id), true
}

func (rc *RecipeController) respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound,
			models.NewAPIError(models.ErrRecipeNotFound, "Recipe not found"))
	case errors.Is(err, services.ErrBadReference):
		c.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrValidationFailed, "Referenced tag or ingredient does not exist"))
	default:
		log.WithError(err).Error(fallback)
		c.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, fallback))
	}
}

// parseIDSet parses a comma-separated list of integer IDs. Empty input means
// no filter.
func parseIDSet(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
