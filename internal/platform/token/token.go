// Package token validates credentials presented on admin endpoints: HMAC
// signed JWTs, or a static operations token verified against a bcrypt
// hash from configuration.
package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims carries the identity extracted from a validated credential.
type Claims struct {
	Subject string
}

// Validator checks bearer credentials for the admin surface.
type Validator struct {
	signingKey     []byte
	adminTokenHash []byte
}

// NewValidator builds a Validator. adminTokenHash may be empty, in which
// case only JWTs are accepted.
func NewValidator(signingKey, adminTokenHash string) *Validator {
	return &Validator{
		signingKey:     []byte(signingKey),
		adminTokenHash: []byte(adminTokenHash),
	}
}

// ValidateToken accepts either a JWT signed with the configured key or the
// static admin token. Returns the claims on success.
func (v *Validator) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.signingKey, nil
	})
	if err == nil && parsed.Valid {
		subject, _ := parsed.Claims.GetSubject()
		return &Claims{Subject: subject}, nil
	}

	// Fall back to the static operations token.
	if len(v.adminTokenHash) > 0 {
		if bcrypt.CompareHashAndPassword(v.adminTokenHash, []byte(tokenString)) == nil {
			return &Claims{Subject: "ops"}, nil
		}
	}

	return nil, errors.New("invalid or expired token")
}
