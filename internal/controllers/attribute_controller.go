package controllers

import (
	"net/http"
	"strconv"

	"github.com/dferrazm/gin-recipe-api/internal/middleware"
	"github.com/dferrazm/gin-recipe-api/internal/models"
	"github.com/dferrazm/gin-recipe-api/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AttributeController serves the owner-scoped list/create surface shared by
// tags and ingredients. One instantiation per entity type; the resource name
// only shows up in error messages.
type AttributeController[T any] struct {
	service  services.AttributeService[T]
	resource string
}

// NewTagController creates the controller for /api/recipe/tags/
func NewTagController(service services.AttributeService[models.Tag]) *AttributeController[models.Tag] {
	return &AttributeController[models.Tag]{service: service, resource: "tag"}
}

// NewIngredientController creates the controller for /api/recipe/ingredients/
func NewIngredientController(service services.AttributeService[models.Ingredient]) *AttributeController[models.Ingredient] {
	return &AttributeController[models.Ingredient]{service: service, resource: "ingredient"}
}

// List godoc
// @Summary List the caller's tags or ingredients
// @Description Records owned by the authenticated user, ordered by name descending. assigned_only=1 limits to records attached to at least one recipe.
// @Tags recipe
// @Produce json
// @Param assigned_only query bool false "Only records assigned to a recipe"
// @Success 200 {array} object
// @Failure 401 {object} models.APIError
// @Security BearerAuth
func (ac *AttributeController[T]) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized,
			models.NewAPIError(models.ErrUnauthorized, "User not authenticated"))
		return
	}

	assignedOnly, _ := strconv.ParseBool(c.DefaultQuery("assigned_only", "0"))

	records, err := ac.service.List(user.ID, assignedOnly)
	if err != nil {
		log.WithError(err).Errorf("Failed to list %ss", ac.resource)
		c.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, "Failed to retrieve "+ac.resource+"s"))
		return
	}

	c.JSON(http.StatusOK, records)
}

// Create godoc
// @Summary Create a tag or ingredient
// @Tags recipe
// @Accept json
// @Produce json
// @Param attribute body controllers.attributeRequest true "Attribute payload"
// @Success 201 {object} object
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Security BearerAuth
func (ac *AttributeController[T]) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized,
			models.NewAPIError(models.ErrUnauthorized, "User not authenticated"))
		return
	}

	var req attributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	record, err := ac.service.Create(user.ID, req.Name)
	if err != nil {
		if err == services.ErrNameRequired {
			respondFieldError(c, "name", err.Error())
			return
		}
		log.WithError(err).Errorf("Failed to create %s", ac.resource)
		c.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, "Failed to create "+ac.resource))
		return
	}

	c.JSON(http.StatusCreated, record)
}
