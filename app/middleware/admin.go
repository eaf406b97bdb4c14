// Package middleware holds the application-level gates that sit between
// authentication and the controllers. Token-level auth lives in
// pkg/middleware; the checks here need the stores.
package middleware

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/skirmish/app/models"
	"github.com/shashiranjanraj/skirmish/app/services"
	"github.com/shashiranjanraj/skirmish/pkg/middleware"
	"github.com/shashiranjanraj/skirmish/pkg/response"
)

type userKey struct{}

// RequireAdmin re-reads the authenticated user from the store and rejects the
// request unless the stored record carries the admin role. Roles baked into
// the token are not trusted for write access; a demotion takes effect on the
// next request, not at token expiry.
func RequireAdmin(users services.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := middleware.ClaimsFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w, "Unauthorized. Token missing.")
				return
			}

			id, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				response.Unauthorized(w, "Unauthorized. User not found.")
				return
			}

			user, err := users.FindByID(r.Context(), id)
			if err != nil {
				response.Internal(w)
				return
			}
			if user == nil {
				response.Unauthorized(w, "Unauthorized. User not found.")
				return
			}
			if !user.IsAdmin() {
				response.Forbidden(w, "Unauthorized. User is not an admin.")
				return
			}

			ctx := context.WithValue(r.Context(), userKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromCtx returns the full user record attached by RequireAdmin.
func UserFromCtx(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey{}).(*models.User)
	return user, ok
}
