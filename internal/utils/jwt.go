package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pizzastack/pizza-service/internal/model"
)

// ErrInvalidToken is returned when a bearer token fails signature or
// claim validation.
var ErrInvalidToken = errors.New("invalid token")

// NewAuthToken builds and signs an HS256 JWT for a user. The claims
// embed the user's id, name, email and role-bindings so the route
// layer can evaluate authorization without a user lookup. The literal
// token goes back to the client; only its signature (see
// TokenSignature) is ever persisted.
func NewAuthToken(secret string, u *model.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"name":  u.Name,
		"email": u.Email,
		"roles": u.Roles,
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseAuthToken verifies an HS256 JWT against the secret and
// reconstructs the embedded user. Tokens signed with any other method
// are rejected.
func ParseAuthToken(secret, raw string) (*model.User, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	u := &model.User{}
	if sub, ok := claims["sub"].(float64); ok {
		u.ID = uint64(sub)
	}
	if name, ok := claims["name"].(string); ok {
		u.Name = name
	}
	if email, ok := claims["email"].(string); ok {
		u.Email = email
	}
	// Round-trip the roles claim through JSON to recover typed bindings.
	if rawRoles, ok := claims["roles"]; ok && rawRoles != nil {
		b, err := json.Marshal(rawRoles)
		if err != nil {
			return nil, ErrInvalidToken
		}
		if err := json.Unmarshal(b, &u.Roles); err != nil {
			return nil, ErrInvalidToken
		}
	}
	return u, nil
}

// TokenSignature returns the SHA-256 hex digest of a bearer token.
// The auth table stores this digest instead of the token itself so a
// leaked database cannot be replayed as live sessions.
func TokenSignature(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
