package services

import (
	"testing"

	"github.com/dferrazm/gin-recipe-api/internal/database"
	"github.com/dferrazm/gin-recipe-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	user, err := NewUserService(db).CreateUser(email, "testpass123", "Test User")
	require.NoError(t, err)
	return user
}
