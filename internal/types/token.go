package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/holybond/holybond-v2/backend/internal/models"
)

// TokenClaims is the session payload carried in a JWT. It is the only
// session state the server trusts; everything else is looked up per request.
type TokenClaims struct {
	jwt.RegisteredClaims
	AccountID uuid.UUID   `json:"account_id"`
	ProfileID uuid.UUID   `json:"profile_id"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
}

// IsAdmin reports whether the session belongs to the admin account.
func (c *TokenClaims) IsAdmin() bool {
	return c != nil && c.Role == models.RoleAdmin
}

// IsUser reports whether the session belongs to an ordinary member.
func (c *TokenClaims) IsUser() bool {
	return c != nil && c.Role == models.RoleUser
}
