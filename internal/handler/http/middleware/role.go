package middleware

import (
	"fmt"
	"net/http"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/auth"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"github.com/simpeg-id/simpeg-backend-go/internal/handler/http/response"
)

// Authorizer answers whether a role holds a permission.
type Authorizer interface {
	Can(role user.Role, p user.Permission) bool
}

// RequirePermission lets the request through when the caller's role holds
// any of the given permissions.
func RequirePermission(authz Authorizer, permissions ...user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFrom(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			for _, p := range permissions {
				if authz.Can(id.Role, p) {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permissions[0], id.Role))
		})
	}
}
