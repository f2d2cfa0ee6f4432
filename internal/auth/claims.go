package auth

import "github.com/golang-jwt/jwt/v5"

// Claims are the verified identity attributes for a request. They are
// derived from a Firebase ID token and live only for the request.
type Claims struct {
	UID           string
	Email         string
	EmailVerified bool
	Raw           jwt.MapClaims
}

func claimsFromToken(c jwt.MapClaims) *Claims {
	out := &Claims{Raw: c}
	if s, _ := c["sub"].(string); s != "" {
		out.UID = s
	}
	// Firebase duplicates the uid in a user_id claim; prefer sub but accept
	// either.
	if out.UID == "" {
		if s, _ := c["user_id"].(string); s != "" {
			out.UID = s
		}
	}
	if e, _ := c["email"].(string); e != "" {
		out.Email = e
	}
	out.EmailVerified = parseBool(c["email_verified"])
	return out
}

func parseBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x == "true" || x == "1"
	case float64:
		return x != 0
	default:
		return false
	}
}
