package middleware

import (
	"errors"
	"net/http"
	"slices"

	"github.com/naomili-code/scamalyst/pkg/auth"
)

var (
	errNoAuthHeader  = errors.New("missing authorization header")
	errNotBearer     = errors.New("invalid authorization format")
	errTokenRejected = errors.New("invalid token")
)

// Auth requires a valid bearer token everywhere except publicPaths and CORS
// preflights, and stores the token's claims on the request context.
func Auth(jwtService *auth.JWTService, publicPaths []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || slices.Contains(publicPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := authenticate(jwtService, r)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, err.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.ContextWithClaims(r.Context(), claims)))
		})
	}
}

func authenticate(jwtService *auth.JWTService, r *http.Request) (*auth.Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, errNoAuthHeader
	}
	token, ok := auth.BearerToken(header)
	if !ok {
		return nil, errNotBearer
	}
	claims, err := jwtService.ValidateToken(token)
	if err != nil {
		return nil, errTokenRejected
	}
	return claims, nil
}

// RequireRole admits requests whose claims hold one of roles. With auth
// disabled there are no claims and every request passes.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := auth.ClaimsFromContext(r.Context()); ok && !auth.HasAnyRole(claims, roles...) {
				writeJSONError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
