package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/token-service/internal/domain"
	"github.com/spec-kit/token-service/internal/observability"
	apperrors "github.com/spec-kit/token-service/pkg/util/errorutil"
)

const identityKey = "auth_identity"

// AuthMiddleware validates bearer tokens on protected routes.
type AuthMiddleware struct {
	tokens  *TokenService
	metrics *observability.Metrics
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenService, metrics *observability.Metrics) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, metrics: metrics}
}

// Handle rejects requests without a valid bearer token and stores the
// decoded identity for downstream handlers.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, ok := BearerToken(c.Get(AuthorizationHeader))
	if !ok {
		return m.reject(FailureMissingHeader, "missing or invalid authorization header")
	}

	identity, err := m.tokens.Decode(token)
	if err != nil {
		kind, _ := KindOf(err)
		return m.reject(kind, "invalid token")
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

func (m *AuthMiddleware) reject(kind FailureKind, message string) error {
	m.metrics.RecordTokenRejection(string(kind))
	return apperrors.NewUnauthorizedWithDetails(message, map[string]any{"reason": string(kind)})
}

// IdentityFromContext retrieves the authenticated identity.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(domain.Identity)
	return identity, ok
}
