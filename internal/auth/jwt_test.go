package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenValidator_RoundTrip(t *testing.T) {
	v := NewTokenValidator("secret")

	token, err := v.Issue("user-1", time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	owner, err := v.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if owner != "user-1" {
		t.Errorf("Validate() owner = %q, want user-1", owner)
	}
}

func TestTokenValidator_Issue_RequiresOwner(t *testing.T) {
	if _, err := NewTokenValidator("secret").Issue("", time.Hour); err == nil {
		t.Error("Issue() with empty owner should return error")
	}
}

func TestTokenValidator_Validate_Rejects(t *testing.T) {
	v := NewTokenValidator("secret")

	expired, err := v.Issue("user-1", -time.Minute)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	otherSecret, err := NewTokenValidator("other").Issue("user-1", time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "expired", token: expired},
		{name: "wrong secret", token: otherSecret},
		{name: "missing subject", token: noSubject},
		{name: "missing expiry", token: noExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
