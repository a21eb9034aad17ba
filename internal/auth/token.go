package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredential is returned when a credential is missing, malformed or
// fails verification.
var ErrInvalidCredential = errors.New("invalid credential")

// Identity is the result of resolving a credential: a stable subject
// identifier from the identity provider, plus the email claim when present.
type Identity struct {
	SubjectID string
	Email     string
}

// Resolver turns bearer credentials into identities. Tokens are issued by the
// external identity provider; when a shared secret is configured the HS256
// signature is verified, otherwise claims are decoded without verification.
// Unverified mode is acceptable only behind a gateway that has already
// verified the token, or in development.
type Resolver struct {
	secret []byte
}

// NewResolver creates a resolver. An empty secret disables signature
// verification.
func NewResolver(secret string) *Resolver {
	var key []byte
	if secret != "" {
		key = []byte(secret)
	}
	return &Resolver{secret: key}
}

type identityClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ResolveCredential extracts the identity from an Authorization header value.
// The header must carry a bearer JWT whose subject claim identifies the
// account at the identity provider.
func (r *Resolver) ResolveCredential(authorization string) (Identity, error) {
	token := strings.TrimSpace(authorization)
	if token == "" {
		return Identity{}, fmt.Errorf("%w: missing authorization header", ErrInvalidCredential)
	}
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return Identity{}, fmt.Errorf("%w: empty bearer token", ErrInvalidCredential)
	}

	claims := &identityClaims{}

	if r.secret != nil {
		parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
		parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			return r.secret, nil
		})
		if err != nil || !parsed.Valid {
			return Identity{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
		}
	} else {
		parser := jwt.NewParser()
		if _, _, err := parser.ParseUnverified(token, claims); err != nil {
			return Identity{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
		}
	}

	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: token has no subject", ErrInvalidCredential)
	}

	return Identity{SubjectID: claims.Subject, Email: claims.Email}, nil
}
