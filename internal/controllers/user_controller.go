package controllers

import (
	"errors"
	"net/http"

	"github.com/dferrazm/gin-recipe-api/internal/middleware"
	"github.com/dferrazm/gin-recipe-api/internal/models"
	"github.com/dferrazm/gin-recipe-api/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// UserController handles registration, token issuance and profile management
type UserController struct {
	users  services.UserService
	tokens services.TokenService
}

// NewUserController creates a new instance of UserController
func NewUserController(users services.UserService, tokens services.TokenService) *UserController {
	return &UserController{users: users, tokens: tokens}
}

// Register godoc
// @Summary Register a new user
// @Description Create a user account from email, password and name
// @Tags users
// @Accept json
// @Produce json
// @Param user body controllers.registerUserRequest true "User payload"
// @Success 201 {object} controllers.userView
// @Failure 400 {object} models.APIError
// @Router /api/users/create/ [post]
func (uc *UserController) Register(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := uc.users.CreateUser(req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) || errors.Is(err, services.ErrEmailRequired) {
			respondFieldError(c, "email", err.Error())
			return
		}
		log.WithError(err).Error("Failed to create user")
		c.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, "Failed to create user"))
		return
	}

	c.JSON(http.StatusCreated, toUserView(user))
}

// Token godoc
// @Summary Issue an auth token
// @Description Exchange email and password for an opaque token
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body controllers.tokenRequest true "Credentials"
// @Success 200 {object} controllers.tokenView
// @Failure 400 {object} models.APIError
// @Router /api/users/token/ [post]
func (uc *UserController) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := uc.users.Authenticate(req.Email, req.Password)
	if err != nil {
		// bad credentials are a validation failure on this endpoint, not a 401
		respondFieldError(c, "non_field_errors", "Incorrect username or password")
		return
	}

	key, err := uc.tokens.IssueToken(user.ID)
	if err != nil {
		log.WithError(err).Error("Failed to issue token")
		c.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, "Failed to issue token"))
		return
	}

	c.JSON(http.StatusOK, tokenView{Token: key})
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Success 200 {object} controllers.userView
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/users/me/ [get]
func (uc *UserController) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized,
			models.NewAPIError(models.ErrUnauthorized, "User not authenticated"))
		return
	}
	c.JSON(http.StatusOK, toUserView(user))
}

// UpdateMe godoc
// @Summary Update the authenticated user's profile
// @Description Partial update of email, name and password
// @Tags users
// @Accept json
// @Produce json
// @Param user body controllers.updateUserRequest true "Fields to update"
// @Success 200 {object} controllers.userView
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/users/me/ [patch]
func (uc *UserController) UpdateMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized,
			models.NewAPIError(models.ErrUnauthorized, "User not authenticated"))
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	updated, err := uc.users.UpdateUser(user.ID, services.UserChanges{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			respondFieldError(c, "email", err.Error())
			return
		}
		log.WithError(err).Error("Failed to update user")
		c.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, "Failed to update user"))
		return
	}

	c.JSON(http.StatusOK, toUserView(updated))
}
