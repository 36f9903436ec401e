package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/holybond/holybond-v2/backend/internal/models"
	"github.com/holybond/holybond-v2/backend/internal/types"
)

// TokenValidator is an interface for validating session tokens.
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// ClaimsKey is the gin context key holding the session claims.
const ClaimsKey = "claims"

// AuthMiddleware validates the Bearer token and stores the session claims
// in the request context.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, errMsg := claimsFromHeader(c, validator)
		if errMsg != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errMsg})
			c.Abort()
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set("account_id", claims.AccountID)
		c.Set("raw_token", rawToken(c))
		c.Next()
	}
}

// OptionalAuthMiddleware resolves claims when a token is present but lets
// anonymous requests through. Used for public endpoints whose responses
// vary by viewer, like single-profile view.
func OptionalAuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if claims, errMsg := claimsFromHeader(c, validator); errMsg == "" {
				c.Set(ClaimsKey, claims)
				c.Set("account_id", claims.AccountID)
			}
		}
		c.Next()
	}
}

// RequireAdmin aborts unless the session role is ADMIN. Must run after
// AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		if claims.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetClaims returns the session claims stored by AuthMiddleware, or nil
// for anonymous requests.
func GetClaims(c *gin.Context) *types.TokenClaims {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := v.(*types.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}

func claimsFromHeader(c *gin.Context, validator TokenValidator) (*types.TokenClaims, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "missing authorization header"
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "invalid authorization header format"
	}

	claims, err := validator.ValidateToken(parts[1])
	if err != nil {
		return nil, err.Error()
	}
	return claims, ""
}

func rawToken(c *gin.Context) string {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) == 2 {
		return parts[1]
	}
	return ""
}
