package services

import (
	"github.com/dferrazm/gin-recipe-api/internal/models"
	"gorm.io/gorm"
)

// AttributeService is the owner-scoped list/create capability shared by tags
// and ingredients. Both resources behave identically apart from their table
// and recipe join column, so the behavior lives here once and is
// instantiated per entity type.
type AttributeService[T any] interface {
	// List returns the caller's records ordered by name descending.
	// With assignedOnly, only records referenced by at least one recipe
	// (any owner) are returned.
	List(userID uint, assignedOnly bool) ([]T, error)
	// Create persists a new record owned by the caller. An empty name
	// fails with ErrNameRequired.
	Create(userID uint, name string) (T, error)
}

type attributeService[T any] struct {
	db *gorm.DB
	// build constructs a record of the concrete type, the one thing the
	// generic code cannot do itself
	build      func(userID uint, name string) T
	joinTable  string
	joinColumn string
}

// NewTagService creates the tag instantiation of AttributeService
func NewTagService(db *gorm.DB) AttributeService[models.Tag] {
	return &attributeService[models.Tag]{
		db:         db,
		build:      func(userID uint, name string) models.Tag { return models.Tag{UserID: userID, Name: name} },
		joinTable:  "recipe_tags",
		joinColumn: "tag_id",
	}
}

// NewIngredientService creates the ingredient instantiation of AttributeService
func NewIngredientService(db *gorm.DB) AttributeService[models.Ingredient] {
	return &attributeService[models.Ingredient]{
		db: db,
		build: func(userID uint, name string) models.Ingredient {
			return models.Ingredient{UserID: userID, Name: name}
		},
		joinTable:  "recipe_ingredients",
		joinColumn: "ingredient_id",
	}
}

func (s *attributeService[T]) List(userID uint, assignedOnly bool) ([]T, error) {
	// secondary id ASC keeps insertion order stable for equal names
	query := s.db.Where("user_id = ?", userID).Order("name DESC").Order("id ASC")
	if assignedOnly {
		query = query.Where("id IN (SELECT " + s.joinColumn + " FROM " + s.joinTable + ")")
	}

	var records []T
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *attributeService[T]) Create(userID uint, name string) (T, error) {
	var zero T
	if name == "" {
		return zero, ErrNameRequired
	}

	record := s.build(userID, name)
	if err := s.db.Create(&record).Error; err != nil {
		return zero, err
	}
	return record, nil
}
