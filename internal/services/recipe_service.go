package services

import (
	"errors"
	"math"

	"github.com/dferrazm/gin-recipe-api/internal/models"
	"gorm.io/gorm"
)

// RecipeFilter restricts a listing by tag/ingredient ID sets. Within one set
// membership is a union (a recipe matches if it carries any of the IDs);
// both sets together are a conjunction.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeChanges carries an update. Nil fields are left untouched; a non-nil
// TagIDs/IngredientIDs fully replaces that association set.
type RecipeChanges struct {
	Title         *string
	TimeMinutes   *int
	Price         *float64
	Link          *string
	TagIDs        *[]uint
	IngredientIDs *[]uint
}

// RecipeService provides owner-scoped access to recipes and their
// tag/ingredient associations
type RecipeService interface {
	List(userID uint, filter RecipeFilter) ([]models.Recipe, error)
	Get(userID, id uint) (*models.Recipe, error)
	// Create persists a recipe owned by userID and attaches the referenced
	// tags/ingredients. Unknown IDs fail with ErrBadReference.
	Create(userID uint, recipe models.Recipe, tagIDs, ingredientIDs []uint) (*models.Recipe, error)
	Update(userID, id uint, changes RecipeChanges) (*models.Recipe, error)
	// Delete removes the recipe and returns the stored image path, if any,
	// so the caller can discard the file
	Delete(userID, id uint) (imagePath string, err error)
	// SetImage points the recipe at a freshly stored image file and returns
	// the previous path for cleanup. The new file must already exist, so no
	// partial write is ever visible.
	SetImage(userID, id uint, path string) (recipe *models.Recipe, oldPath string, err error)
}

type recipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new instance of RecipeService
func NewRecipeService(db *gorm.DB) RecipeService {
	return &recipeService{db: db}
}

func (s *recipeService) List(userID uint, filter RecipeFilter) ([]models.Recipe, error) {
	query := s.db.Model(&models.Recipe{}).
		Where("recipes.user_id = ?", userID).
		Order("recipes.id DESC").
		Preload("Tags").
		Preload("Ingredients")

	filtered := false
	if len(filter.TagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs)
		filtered = true
	}
	if len(filter.IngredientIDs) > 0 {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs)
		filtered = true
	}
	if filtered {
		// a recipe carrying several of the requested IDs would otherwise
		// appear once per join row
		query = query.Distinct("recipes.*")
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *recipeService) Get(userID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.Preload("Tags").Preload("Ingredients").
		Where("user_id = ?", userID).
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (s *recipeService) Create(userID uint, recipe models.Recipe, tagIDs, ingredientIDs []uint) (*models.Recipe, error) {
	tags, err := s.resolveTags(tagIDs)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.resolveIngredients(ingredientIDs)
	if err != nil {
		return nil, err
	}

	recipe.UserID = userID
	recipe.Price = roundPrice(recipe.Price)
	recipe.Tags = tags
	recipe.Ingredients = ingredients
	if err := s.db.Create(&recipe).Error; err != nil {
		return nil, err
	}
	return s.Get(userID, recipe.ID)
}

func (s *recipeService) Update(userID, id uint, changes RecipeChanges) (*models.Recipe, error) {
	recipe, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	// validate the whole payload before writing anything, so a rejected
	// update leaves no partial state behind
	var tags []models.Tag
	if changes.TagIDs != nil {
		if tags, err = s.resolveTags(*changes.TagIDs); err != nil {
			return nil, err
		}
	}
	var ingredients []models.Ingredient
	if changes.IngredientIDs != nil {
		if ingredients, err = s.resolveIngredients(*changes.IngredientIDs); err != nil {
			return nil, err
		}
	}

	if changes.Title != nil {
		recipe.Title = *changes.Title
	}
	if changes.TimeMinutes != nil {
		recipe.TimeMinutes = *changes.TimeMinutes
	}
	if changes.Price != nil {
		recipe.Price = roundPrice(*changes.Price)
	}
	if changes.Link != nil {
		recipe.Link = *changes.Link
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients").Save(recipe).Error; err != nil {
			return err
		}
		if changes.TagIDs != nil {
			if err := tx.Model(recipe).Association("Tags").Replace(&tags); err != nil {
				return err
			}
		}
		if changes.IngredientIDs != nil {
			if err := tx.Model(recipe).Association("Ingredients").Replace(&ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(userID, id)
}

func (s *recipeService) Delete(userID, id uint) (string, error) {
	recipe, err := s.Get(userID, id)
	if err != nil {
		return "", err
	}

	if err := s.db.Select("Tags", "Ingredients").Delete(recipe).Error; err != nil {
		return "", err
	}
	return recipe.Image, nil
}

func (s *recipeService) SetImage(userID, id uint, path string) (*models.Recipe, string, error) {
	recipe, err := s.Get(userID, id)
	if err != nil {
		return nil, "", err
	}

	oldPath := recipe.Image
	recipe.Image = path
	if err := s.db.Omit("Tags", "Ingredients").Save(recipe).Error; err != nil {
		return nil, "", err
	}
	return recipe, oldPath, nil
}

func (s *recipeService) resolveTags(ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := s.db.Find(&tags, uniqueIDs(ids)).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(uniqueIDs(ids)) {
		return nil, ErrBadReference
	}
	return tags, nil
}

func (s *recipeService) resolveIngredients(ids []uint) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []models.Ingredient
	if err := s.db.Find(&ingredients, uniqueIDs(ids)).Error; err != nil {
		return nil, err
	}
	if len(ingredients) != len(uniqueIDs(ids)) {
		return nil, ErrBadReference
	}
	return ingredients, nil
}

// uniqueIDs deduplicates while preserving order
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// roundPrice keeps prices at two decimal places, matching the column type
func roundPrice(p float64) float64 {
	return math.Round(p*100) / 100
}
