// Package auth issues and validates the bearer tokens that guard the
// scamalyst APIs when authentication is enabled.
package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims carried by API clients.
type Claims struct {
	jwt.RegisteredClaims
	ClientID string   `json:"client_id"`
	Roles    []string `json:"roles"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// Role constants
const (
	RoleAdmin = "admin"
	// RoleAnalyst may call the analysis endpoints.
	RoleAnalyst = "analyst"
	// RoleInference may use the inference relay, which spends the server's model credential.
	RoleInference = "inference"
)
