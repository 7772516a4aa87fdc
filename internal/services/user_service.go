package services

import (
	"errors"

	"github.com/dferrazm/gin-recipe-api/internal/models"
	"gorm.io/gorm"
)

// UserChanges carries a partial user update. Nil fields are left untouched.
type UserChanges struct {
	Email    *string
	Name     *string
	Password *string
}

// UserService manages user accounts and credential checks
type UserService interface {
	// CreateUser registers a regular user. The email is normalized and the
	// password stored as a bcrypt hash.
	CreateUser(email, password, name string) (*models.User, error)
	// CreateSuperuser registers a user with the staff flag set
	CreateSuperuser(email, password string) (*models.User, error)
	// Authenticate returns the user matching the credentials, or
	// ErrInvalidCredentials
	Authenticate(email, password string) (*models.User, error)
	// GetUserByID retrieves a user by primary key
	GetUserByID(id uint) (*models.User, error)
	// UpdateUser applies a partial update to a user's mutable fields
	UpdateUser(id uint, changes UserChanges) (*models.User, error)
}

type userService struct {
	db *gorm.DB
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) CreateUser(email, password, name string) (*models.User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}

	user := models.User{
		Email:    models.NormalizeEmail(email),
		Name:     name,
		Password: password,
		IsActive: true,
	}
	if err := user.HashPassword(); err != nil {
		return nil, err
	}

	// the unique index is the authority on duplicates; a pre-check would
	// race against concurrent registrations
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) CreateSuperuser(email, password string) (*models.User, error) {
	user, err := s.CreateUser(email, password, "")
	if err != nil {
		return nil, err
	}
	user.IsStaff = true
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", models.NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive || !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) UpdateUser(id uint, changes UserChanges) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if changes.Email != nil {
		user.Email = models.NormalizeEmail(*changes.Email)
	}
	if changes.Name != nil {
		user.Name = *changes.Name
	}
	if changes.Password != nil {
		user.Password = *changes.Password
		if err := user.HashPassword(); err != nil {
			return nil, err
		}
	}

	if err := s.db.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}
