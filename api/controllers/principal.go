package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hovo33651/shoppingcart-backend/api/middleware"
	"github.com/hovo33651/shoppingcart-backend/internal/authz"
	"github.com/hovo33651/shoppingcart-backend/pkg/enums"
	pkgerrors "github.com/hovo33651/shoppingcart-backend/pkg/errors"
)

// principalFromRequest converts the authenticated request context into an
// explicit principal. Services never read identity from the context
// themselves.
func principalFromRequest(r *http.Request) (authz.Principal, error) {
	rawID := middleware.UserIDFromContext(r.Context())
	if rawID == "" {
		return authz.Principal{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return authz.Principal{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}

	role := enums.UserRole(middleware.RoleFromContext(r.Context()))
	if !role.IsValid() {
		return authz.Principal{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "role context missing")
	}

	return authz.Principal{ID: id, Role: role}, nil
}
