package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	testCases := []struct {
		name     string
		email    string
		expected string
	}{
		{
			name:     "should lowercase the domain part",
			email:    "he@MAN.COM",
			expected: "he@man.com",
		},
		{
			name:     "should keep the local part untouched",
			email:    "He.Man@Example.Org",
			expected: "He.Man@example.org",
		},
		{
			name:     "should pass through an already normalized address",
			email:    "tom@jobin.com",
			expected: "tom@jobin.com",
		},
		{
			name:     "should leave a value without an at-sign alone",
			email:    "not-an-email",
			expected: "not-an-email",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeEmail(tt.email))
		})
	}
}

func TestHashPassword(t *testing.T) {
	user := User{Email: "he@man.com", Password: "senhadohe123"}

	require.NoError(t, user.HashPassword())

	assert.NotEqual(t, "senhadohe123", user.Password, "plaintext must never be stored")
	assert.True(t, user.CheckPassword("senhadohe123"))
	assert.False(t, user.CheckPassword("wrongpass"))
}
