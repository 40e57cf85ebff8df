package authz

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/hovo33651/shoppingcart-backend/pkg/enums"
	pkgerrors "github.com/hovo33651/shoppingcart-backend/pkg/errors"
)

// Principal identifies the authenticated actor for an operation.
type Principal struct {
	ID   uuid.UUID
	Role enums.UserRole
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == enums.UserRoleAdmin
}

// RequireRole denies the call unless the principal holds one of the
// listed roles.
func RequireRole(p Principal, roles ...enums.UserRole) error {
	if !p.Role.IsValid() {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, fmt.Sprintf("unknown role %q", p.Role))
	}
	for _, role := range roles {
		if p.Role == role {
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "role not permitted for this operation")
}

// RequireOwnerOrAdmin denies the call unless the principal owns the
// resource or is an admin.
func RequireOwnerOrAdmin(p Principal, ownerID uuid.UUID) error {
	if !p.Role.IsValid() {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, fmt.Sprintf("unknown role %q", p.Role))
	}
	if p.IsAdmin() {
		return nil
	}
	if p.ID == ownerID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "resource belongs to another user")
}
