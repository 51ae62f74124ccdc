package types

import "github.com/golang-jwt/jwt/v5"

// Claims represents the JWT claims issued by the upstream sign-in flow. The
// server validates the signature and trusts the identity/role claim as given.
type Claims struct {
	Address string `json:"address"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}
