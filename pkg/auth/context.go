package auth

import (
	"context"
	"strings"
)

type claimsKey struct{}

// ContextWithClaims attaches validated claims to ctx.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims attached by ContextWithClaims.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok && claims != nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// HasAnyRole reports whether claims hold one of roles. Admin passes every check.
func HasAnyRole(claims *Claims, roles ...string) bool {
	if claims == nil {
		return false
	}
	if claims.HasRole(RoleAdmin) {
		return true
	}
	for _, r := range roles {
		if claims.HasRole(r) {
			return true
		}
	}
	return false
}
