package utils

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	"freelanceBack/internal/models"
)

func parseClaims(t *testing.T, token, key string) *models.Claims {
	t.Helper()
	claims := &models.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(key), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if !parsed.Valid {
		t.Fatalf("token is not valid")
	}
	return claims
}

func TestNewAccessTokenCarriesUserAndRole(t *testing.T) {
	m, err := NewManager("test-signing-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := m.NewAccessToken("user-123", models.RoleFreelancer, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := parseClaims(t, token, "test-signing-key")
	if claims.UserID != "user-123" {
		t.Errorf("user id = %q", claims.UserID)
	}
	if claims.Role != models.RoleFreelancer {
		t.Errorf("role = %q", claims.Role)
	}
	if claims.ExpiresAt <= time.Now().Unix() {
		t.Errorf("token already expired: %d", claims.ExpiresAt)
	}
}

func TestNewAccessTokenExpiry(t *testing.T) {
	m, _ := NewManager("test-signing-key")

	token, err := m.NewAccessToken("user-123", models.RoleClient, -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := &models.Claims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-signing-key"), nil
	})
	if err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestNewManagerRequiresKey(t *testing.T) {
	if _, err := NewManager(""); err == nil {
		t.Fatalf("expected error for empty signing key")
	}
}

func TestNewRefreshTokenIsRandom(t *testing.T) {
	m, _ := NewManager("test-signing-key")

	a, err := m.NewRefreshToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := m.NewRefreshToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Errorf("two refresh tokens are identical")
	}
	if len(a) != 64 {
		t.Errorf("unexpected token length: %d", len(a))
	}
}
