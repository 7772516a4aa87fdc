package controllers

import (
	"github.com/dferrazm/gin-recipe-api/internal/models"
)

// Wire shapes. Write requests carry bare ID references for related
// resources, read views either bare IDs (listing) or expanded sub-objects
// (detail).

type registerUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=5"`
	Name     string `json:"name"`
}

type tokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Name     *string `json:"name"`
	Password *string `json:"password" binding:"omitempty,min=5"`
}

type userView struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type tokenView struct {
	Token string `json:"token"`
}

type attributeRequest struct {
	Name string `json:"name" binding:"required"`
}

// recipeRequest is the full-update shape (POST/PUT). Omitted tags/ingredients
// mean empty sets on a full update.
type recipeRequest struct {
	Title       string   `json:"title" binding:"required"`
	TimeMinutes *int     `json:"time_minutes" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
	Link        string   `json:"link"`
	Tags        []uint   `json:"tags"`
	Ingredients []uint   `json:"ingredients"`
}

// recipePatchRequest is the partial-update shape. Nil means "leave untouched",
// including the association sets.
type recipePatchRequest struct {
	Title       *string  `json:"title"`
	TimeMinutes *int     `json:"time_minutes"`
	Price       *float64 `json:"price"`
	Link        *string  `json:"link"`
	Tags        *[]uint  `json:"tags"`
	Ingredients *[]uint  `json:"ingredients"`
}

type recipeView struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	Image       string  `json:"image"`
	Tags        []uint  `json:"tags"`
	Ingredients []uint  `json:"ingredients"`
}

type recipeDetailView struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       float64             `json:"price"`
	Link        string              `json:"link"`
	Image       string              `json:"image"`
	Tags        []models.Tag        `json:"tags"`
	Ingredients []models.Ingredient `json:"ingredients"`
}

func toUserView(user *models.User) userView {
	return userView{Email: user.Email, Name: user.Name}
}

func toRecipeView(recipe *models.Recipe) recipeView {
	tags := make([]uint, 0, len(recipe.Tags))
	for _, t := range recipe.Tags {
		tags = append(tags, t.ID)
	}
	ingredients := make([]uint, 0, len(recipe.Ingredients))
	for _, i := range recipe.Ingredients {
		ingredients = append(ingredients, i.ID)
	}
	return recipeView{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Image:       recipe.Image,
		Tags:        tags,
		Ingredients: ingredients,
	}
}

func toRecipeDetailView(recipe *models.Recipe) recipeDetailView {
	tags := recipe.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	ingredients := recipe.Ingredients
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	return recipeDetailView{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Image:       recipe.Image,
		Tags:        tags,
		Ingredients: ingredients,
	}
}

func toRecipeViews(recipes []models.Recipe) []recipeView {
	views := make([]recipeView, 0, len(recipes))
	for i := range recipes {
		views = append(views, toRecipeView(&recipes[i]))
	}
	return views
}
