package middleware

import (
	"net/http"
	"strings"

	"github.com/dferrazm/gin-recipe-api/internal/models"
	"github.com/gin-gonic/gin"
)

// TokenResolver maps an opaque token key to its user
type TokenResolver interface {
	ResolveToken(key string) (*models.User, error)
}

// userContextKey is where TokenAuth stores the resolved user in the gin context
const userContextKey = "currentUser"

// TokenAuth validates the Authorization header against the token store and
// puts the resolved user in the request context. Both the "Bearer" and the
// "Token" scheme are accepted.
func TokenAuth(tokens TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondUnauthorized(c, "Missing Authorization header. A valid token is required.")
			return
		}

		key, ok := credentialFromHeader(authHeader)
		if !ok {
			respondUnauthorized(c, "Authorization header must use the Bearer or Token scheme. Format: 'Bearer <token>'")
			return
		}

		user, err := tokens.ResolveToken(key)
		if err != nil {
			respondUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by TokenAuth
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// credentialFromHeader extracts the token key from an Authorization header
func credentialFromHeader(header string) (string, bool) {
	for _, scheme := range []string{"Bearer ", "Token "} {
		if strings.HasPrefix(header, scheme) {
			key := strings.TrimSpace(strings.TrimPrefix(header, scheme))
			return key, key != ""
		}
	}
	return "", false
}

func respondUnauthorized(c *gin.Context, description string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		models.NewAPIError(models.ErrUnauthorized, description))
}
