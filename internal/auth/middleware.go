package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/photoshare-service/internal/domain"
)

const identityKey = "auth_identity"

// FailureRecorder counts rejected requests by reason.
type FailureRecorder interface {
	RecordAuthFailure(reason string)
}

// AuthMiddleware validates bearer tokens and loads the caller.
type AuthMiddleware struct {
	resolver *Resolver
	recorder FailureRecorder
	logger   *zap.Logger
}

// NewAuthMiddleware constructs middleware. recorder may be nil.
func NewAuthMiddleware(resolver *Resolver, recorder FailureRecorder, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{resolver: resolver, recorder: recorder, logger: logger}
}

// Authenticate enforces authentication for protected routes.
func (m *AuthMiddleware) Authenticate(c *fiber.Ctx) error {
	token, err := BearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		m.reject(c, err)
		return err
	}

	user, err := m.resolver.Resolve(c.UserContext(), token)
	if err != nil {
		m.reject(c, err)
		return err
	}

	c.Locals(identityKey, user)
	return c.Next()
}

func (m *AuthMiddleware) reject(c *fiber.Ctx, err error) {
	reason := FailureReason(err)
	if m.recorder != nil {
		m.recorder.RecordAuthFailure(reason)
	}
	m.logger.Debug("authentication rejected",
		zap.String("path", c.Path()),
		zap.String("reason", reason),
	)
}

// IdentityFromContext retrieves the authenticated user.
func IdentityFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok && user != nil
}
