package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/baseplate/cms/internal/core/auth"
)

const (
	ContextUsername   = "username"
	ContextAuthMethod = "auth_method"
)

const (
	AuthMethodJWT    = "jwt"
	AuthMethodAPIKey = "apikey"
)

type AuthMiddleware struct {
	authService *auth.Service
}

func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate accepts "Bearer <jwt>" or "ApiKey <key>". When no secret is
// configured every request is let through.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.authService.Enabled() {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		switch strings.ToLower(parts[0]) {
		case "bearer":
			m.handleJWT(c, parts[1])
		case "apikey":
			m.handleAPIKey(c, parts[1])
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unsupported authorization type"})
			return
		}
	}
}

func (m *AuthMiddleware) handleJWT(c *gin.Context, token string) {
	claims, err := m.authService.ValidateToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	c.Set(ContextUsername, claims.Username)
	c.Set(ContextAuthMethod, AuthMethodJWT)
	c.Next()
}

func (m *AuthMiddleware) handleAPIKey(c *gin.Context, key string) {
	if err := m.authService.ValidateAPIKey(key); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
		return
	}

	c.Set(ContextAuthMethod, AuthMethodAPIKey)
	c.Next()
}

func GetUsername(c *gin.Context) (string, bool) {
	val, exists := c.Get(ContextUsername)
	if !exists {
		return "", false
	}
	name, ok := val.(string)
	return name, ok
}

func GetAuthMethod(c *gin.Context) string {
	val, exists := c.Get(ContextAuthMethod)
	if !exists {
		return ""
	}
	if method, ok := val.(string); ok {
		return method
	}
	return ""
}
