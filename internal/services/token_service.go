package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/dferrazm/gin-recipe-api/internal/models"
	"gorm.io/gorm"
)

// TokenService is the explicit token-to-identity store. Keys are opaque
// 40-character hex strings; a user holds at most one key at a time.
type TokenService interface {
	// IssueToken returns the user's token key, creating one if needed
	IssueToken(userID uint) (string, error)
	// ResolveToken maps a presented key back to its user, or ErrNotFound
	ResolveToken(key string) (*models.User, error)
}

type tokenService struct {
	db *gorm.DB
}

// NewTokenService creates a new instance of TokenService
func NewTokenService(db *gorm.DB) TokenService {
	return &tokenService{db: db}
}

func (s *tokenService) IssueToken(userID uint) (string, error) {
	var existing models.AuthToken
	if err := s.db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		return existing.Key, nil
	}

	key, err := generateTokenKey()
	if err != nil {
		return "", err
	}

	token := models.AuthToken{Key: key, UserID: userID}
	if err := s.db.Create(&token).Error; err != nil {
		return "", err
	}
	return key, nil
}

func (s *tokenService) ResolveToken(key string) (*models.User, error) {
	if key == "" {
		return nil, ErrNotFound
	}

	var token models.AuthToken
	err := s.db.Preload("User").Where("key = ?", key).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !token.User.IsActive {
		return nil, ErrNotFound
	}
	return &token.User, nil
}

// generateTokenKey returns 20 random bytes hex-encoded
func generateTokenKey() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
