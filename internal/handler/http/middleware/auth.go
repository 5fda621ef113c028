package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/auth"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"github.com/simpeg-id/simpeg-backend-go/internal/handler/http/response"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/jwt"
)

type identityKey struct{}

// Identity is the caller as described by the access token claims.
type Identity struct {
	UserID     string
	EmployeeID *string
	Name       string
	Role       user.Role
}

// IdentityFrom returns the identity stored by AuthRequired.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// WithIdentity stores id in ctx. Tests use it to skip token verification.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// AuthRequired must run after jwtauth.Verifier. It rejects missing, refresh,
// SSE and logged-out tokens.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			id := Identity{}
			id.UserID, _ = claims["user_id"].(string)
			id.Name, _ = claims["name"].(string)
			if role, ok := claims["role"].(string); ok {
				id.Role = user.Role(role)
			}
			if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
				id.EmployeeID = &employeeID
			}
			if id.UserID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		}
		return http.HandlerFunc(hfn)
	}
}
