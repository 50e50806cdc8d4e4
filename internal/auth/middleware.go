package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/devconnect-service/pkg/util"
)

// TokenHeader is the request header carrying the bearer token.
const TokenHeader = "x-auth-token"

const identityKey = "auth_identity"

// AuthMiddleware validates tokens and binds the caller identity.
// It is a pure gate: it never touches the stores.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token := c.Get(TokenHeader)
	if token == "" {
		return apperrors.NewMissingToken()
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewInvalidToken()
	}

	c.Locals(identityKey, claims.UserID)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated user ID.
func IdentityFromContext(c *fiber.Ctx) (string, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return "", false
	}
	userID, ok := val.(string)
	return userID, ok && userID != ""
}
