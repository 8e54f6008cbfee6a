package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssue_RoundTripsEmailClaim(t *testing.T) {
	svc := NewTokenService("test-secret")

	signed, err := svc.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}

	claims := &JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("Expected valid token, got error: %v", err)
	}
	if !token.Valid {
		t.Fatal("Expected token to be valid")
	}

	if claims.Email != "a@x.com" {
		t.Errorf("Expected email a@x.com, got %s", claims.Email)
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 || remaining > TokenTTL {
		t.Errorf("Expected expiry within %v, got %v", TokenTTL, remaining)
	}
}

func TestIssue_RejectedByWrongSecret(t *testing.T) {
	svc := NewTokenService("test-secret")

	signed, err := svc.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}

	_, err = jwt.ParseWithClaims(signed, &JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	if err == nil {
		t.Error("Expected verification with the wrong secret to fail")
	}
}
