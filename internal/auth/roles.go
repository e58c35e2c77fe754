package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/photoshare-service/internal/domain"
	apperrors "github.com/spec-kit/photoshare-service/pkg/util/errorutil"
)

// RoleGate admits callers whose role is in a fixed allow-set.
type RoleGate struct {
	allowed map[domain.Role]struct{}
}

// NewRoleGate builds a gate. A gate with no roles denies everyone.
func NewRoleGate(roles ...domain.Role) RoleGate {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return RoleGate{allowed: allowed}
}

// Allows reports whether role is admitted.
func (g RoleGate) Allows(role domain.Role) bool {
	_, ok := g.allowed[role]
	return ok
}

// Check returns nil when user may proceed.
func (g RoleGate) Check(user *domain.User) error {
	if user == nil {
		return apperrors.NewUnauthorizedCause(MsgNotAuthenticated, ErrMissingBearer)
	}
	if !g.Allows(user.Role) {
		return apperrors.NewForbiddenCause(MsgNotPermitted, ErrForbidden)
	}
	return nil
}

// CheckContext applies the gate to the identity stored by AuthMiddleware.
func (g RoleGate) CheckContext(c *fiber.Ctx) (*domain.User, error) {
	user, _ := IdentityFromContext(c)
	if err := g.Check(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Require returns the gate as route middleware.
func (g RoleGate) Require() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := g.CheckContext(c); err != nil {
			return err
		}
		return c.Next()
	}
}

// Gates shared by the HTTP handlers.
var (
	AllRoles            = NewRoleGate(domain.RoleAdmin, domain.RoleModerator, domain.RoleUser)
	AdminOnly           = NewRoleGate(domain.RoleAdmin)
	AdminsAndModerators = NewRoleGate(domain.RoleAdmin, domain.RoleModerator)
)
