package services

import (
	"testing"

	"github.com/dferrazm/gin-recipe-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	user, err := svc.CreateUser("he@MAN.COM", "senhadohe123", "He Man")
	require.NoError(t, err)

	assert.Equal(t, "he@man.com", user.Email, "domain part must be normalized")
	assert.Equal(t, "He Man", user.Name)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsStaff)
	assert.NotEqual(t, "senhadohe123", user.Password)
	assert.True(t, user.CheckPassword("senhadohe123"))
}

func TestCreateUserWithoutEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	_, err := svc.CreateUser("", "senhadohe123", "He Man")
	assert.ErrorIs(t, err, ErrEmailRequired)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	_, err := svc.CreateUser("he@man.com", "senhadohe123", "He Man")
	require.NoError(t, err)

	// normalization makes these the same address
	_, err = svc.CreateUser("he@MAN.com", "otherpass", "Impostor")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateSuperuser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	user, err := svc.CreateSuperuser("admin@example.com", "adminpass")
	require.NoError(t, err)

	assert.True(t, user.IsStaff)
	assert.True(t, user.IsActive)
	assert.True(t, user.CheckPassword("adminpass"))
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	_, err := svc.CreateUser("tom@jobin.com", "senhadotom123", "Tom Jobin")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate("tom@jobin.com", "senhadotom123")
		require.NoError(t, err)
		assert.Equal(t, "tom@jobin.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate("tom@jobin.com", "wrongpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate("nobody@example.com", "senhadotom123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		db.Model(&models.User{}).Where("email = ?", "tom@jobin.com").Update("is_active", false)
		defer db.Model(&models.User{}).Where("email = ?", "tom@jobin.com").Update("is_active", true)

		_, err := svc.Authenticate("tom@jobin.com", "senhadotom123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUpdateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	user, err := svc.CreateUser("he@man.com", "senhadohe123", "He Man")
	require.NoError(t, err)

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		name := "Prince Adam"
		updated, err := svc.UpdateUser(user.ID, UserChanges{Name: &name})
		require.NoError(t, err)

		assert.Equal(t, "Prince Adam", updated.Name)
		assert.Equal(t, "he@man.com", updated.Email)
		assert.True(t, updated.CheckPassword("senhadohe123"))
	})

	t.Run("password change is rehashed", func(t *testing.T) {
		password := "newsecret"
		updated, err := svc.UpdateUser(user.ID, UserChanges{Password: &password})
		require.NoError(t, err)

		assert.NotEqual(t, "newsecret", updated.Password)
		assert.True(t, updated.CheckPassword("newsecret"))
		assert.False(t, updated.CheckPassword("senhadohe123"))
	})

	t.Run("email taken by another user", func(t *testing.T) {
		_, err := svc.CreateUser("skeletor@snake-mountain.com", "senha12345", "Skeletor")
		require.NoError(t, err)

		email := "skeletor@SNAKE-MOUNTAIN.com"
		_, err = svc.UpdateUser(user.ID, UserChanges{Email: &email})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("keeping the own email is allowed", func(t *testing.T) {
		email := "he@man.com"
		updated, err := svc.UpdateUser(user.ID, UserChanges{Email: &email})
		require.NoError(t, err)
		assert.Equal(t, "he@man.com", updated.Email)
	})

	t.Run("unknown user", func(t *testing.T) {
		name := "Nobody"
		_, err := svc.UpdateUser(99999, UserChanges{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
