package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/segyhp/lending-ledger/internal/domain"
	"github.com/segyhp/lending-ledger/pkg/response"
)

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal stores the authenticated caller on ctx.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the caller stored by AuthMiddleware.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}

// AuthMiddleware requires a valid "Authorization: Bearer <token>" header.
func AuthMiddleware(tokens TokenParser) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				response.Unauthorized(w, "Missing bearer token")
				return
			}

			principal, err := tokens.ParseToken(token)
			if err != nil {
				response.FromError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), *principal)))
		})
	}
}
