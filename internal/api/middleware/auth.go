package middleware

import (
	"context"
	"net/http"

	"postboard/internal/app/service"
	"postboard/internal/common"
	"postboard/internal/common/security"
	"postboard/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const userCtxKey contextKey = "currentUser"

// Authenticator requires a signature-verified bearer token (checked by
// jwtauth.Verifier upstream) and re-validates the account behind it on
// every request, so tokens for deleted accounts are rejected even while
// their signature is still valid.
func Authenticator(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "authorization token missing or invalid")
				return
			}

			subject, err := security.GetSubjectFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}
			email, err := security.GetEmailFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}

			user, err := authService.ValidateClaims(r.Context(), subject, email)
			if err != nil {
				common.RespondWithError(w, common.HTTPStatusFromError(err), "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the authenticated user placed by Authenticator.
func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userCtxKey).(*model.User)
	return user, ok
}
