package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL bounds the lifetime of issued tokens. These are session-bootstrap
// tokens, not long-lived session storage.
const TokenTTL = 15 * time.Minute

type JwtCustomClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService signs and configures verification for identity tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a new instance of TokenService.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue signs a token carrying the given email claim with a 15 minute expiry.
func (s *TokenService) Issue(email string) (string, error) {
	claims := &JwtCustomClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tkn.SignedString(s.secret)
}

// Secret exposes the signing key for the verification middleware.
func (s *TokenService) Secret() []byte {
	return s.secret
}
