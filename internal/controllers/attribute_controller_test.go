package controllers

import (
	"net/http"
	"testing"

	"github.com/dferrazm/gin-recipe-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagsRequireAuth(t *testing.T) {
	api := setupTestAPI(t)

	w := api.request(t, http.MethodGet, "/api/recipe/tags/", "", nil)
	requireStatus(t, w, http.StatusUnauthorized)

	w = api.request(t, http.MethodPost, "/api/recipe/tags/", "", payload{"name": "Vegan"})
	requireStatus(t, w, http.StatusUnauthorized)
}

func TestCreateTag(t *testing.T) {
	api := setupTestAPI(t)
	user, token := api.authedUser(t, "he@man.com")

	t.Run("valid name", func(t *testing.T) {
		w := api.request(t, http.MethodPost, "/api/recipe/tags/", token, payload{"name": "Vegan"})
		requireStatus(t, w, http.StatusCreated)

		var tag models.Tag
		decodeJSON(t, w, &tag)
		assert.Equal(t, "Vegan", tag.Name)
		assert.NotZero(t, tag.ID)

		var stored models.Tag
		require.NoError(t, api.db.First(&stored, tag.ID).Error)
		assert.Equal(t, user.ID, stored.UserID)
	})

	t.Run("empty name persists nothing", func(t *testing.T) {
		w := api.request(t, http.MethodPost, "/api/recipe/tags/", token, payload{"name": ""})
		requireStatus(t, w, http.StatusBadRequest)

		var count int64
		api.db.Model(&models.Tag{}).Where("name = ?", "").Count(&count)
		assert.Zero(t, count)
	})

	t.Run("missing name", func(t *testing.T) {
		w := api.request(t, http.MethodPost, "/api/recipe/tags/", token, payload{})
		requireStatus(t, w, http.StatusBadRequest)

		var apiErr models.APIError
		decodeJSON(t, w, &apiErr)
		assert.Contains(t, apiErr.Details, "name")
	})
}

func TestListTags(t *testing.T) {
	api := setupTestAPI(t)
	_, token := api.authedUser(t, "he@man.com")
	_, otherToken := api.authedUser(t, "tom@jobin.com")

	for _, name := range []string{"Dessert", "Vegan"} {
		w := api.request(t, http.MethodPost, "/api/recipe/tags/", token, payload{"name": name})
		requireStatus(t, w, http.StatusCreated)
	}
	w := api.request(t, http.MethodPost, "/api/recipe/tags/", otherToken, payload{"name": "Comfort food"})
	requireStatus(t, w, http.StatusCreated)

	w = api.request(t, http.MethodGet, "/api/recipe/tags/", token, nil)
	requireStatus(t, w, http.StatusOK)

	var tags []models.Tag
	decodeJSON(t, w, &tags)
	require.Len(t, tags, 2, "other users' tags must not appear")
	assert.Equal(t, "Vegan", tags[0].Name, "name descending")
	assert.Equal(t, "Dessert", tags[1].Name)
}

func TestListIngredients(t *testing.T) {
	api := setupTestAPI(t)
	_, token := api.authedUser(t, "he@man.com")

	for _, name := range []string{"Salt", "Tomato"} {
		w := api.request(t, http.MethodPost, "/api/recipe/ingredients/", token, payload{"name": name})
		requireStatus(t, w, http.StatusCreated)
	}

	w := api.request(t, http.MethodGet, "/api/recipe/ingredients/", token, nil)
	requireStatus(t, w, http.StatusOK)

	var ingredients []models.Ingredient
	decodeJSON(t, w, &ingredients)
	require.Len(t, ingredients, 2)
	assert.Equal(t, "Tomato", ingredients[0].Name)
}

func TestListTagsAssignedOnly(t *testing.T) {
	api := setupTestAPI(t)
	_, token := api.authedUser(t, "he@man.com")

	w := api.request(t, http.MethodPost, "/api/recipe/tags/", token, payload{"name": "Dinner"})
	requireStatus(t, w, http.StatusCreated)
	var assigned models.Tag
	decodeJSON(t, w, &assigned)

	w = api.request(t, http.MethodPost, "/api/recipe/tags/", token, payload{"name": "Breakfast"})
	requireStatus(t, w, http.StatusCreated)

	w = api.request(t, http.MethodPost, "/api/recipe/recipes/", token, payload{
		"title": "Lasagna", "time_minutes": 30, "price": 30.00, "tags": []uint{assigned.ID},
	})
	requireStatus(t, w, http.StatusCreated)

	w = api.request(t, http.MethodGet, "/api/recipe/tags/?assigned_only=1", token, nil)
	requireStatus(t, w, http.StatusOK)

	var tags []models.Tag
	decodeJSON(t, w, &tags)
	require.Len(t, tags, 1)
	assert.Equal(t, assigned.ID, tags[0].ID)
}
