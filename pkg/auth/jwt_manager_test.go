package auth

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestGenerateVerify(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, expiresAt, err := m.Generate("user-1", "alice")
	if err != nil {
		t.Fatal(err)
	}
	if until := time.Until(expiresAt); until <= 0 || until > time.Hour {
		t.Fatalf("unexpected expiry %v", expiresAt)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != "user-1" || claims.Username != "alice" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestVerifyRejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	token, _, _ := m.Generate("user-1", "alice")

	if _, err := NewJWTManager("other", time.Hour).Verify(token); err == nil {
		t.Fatal("expected error for wrong secret")
	}

	expired, _, _ := NewJWTManager("secret", -time.Minute).Generate("user-1", "alice")
	if _, err := m.Verify(expired); err == nil {
		t.Fatal("expected error for expired token")
	}

	anonymous, _, _ := m.Generate("", "nobody")
	if _, err := m.Verify(anonymous); err == nil {
		t.Fatal("expected error for token without subject")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	cases := map[string]bool{
		"Bearer abc": true,
		"bearer abc": true,
		"Bearer ":    false,
		"Basic abc":  false,
		"":           false,
	}
	for header, ok := range cases {
		req := httptest.NewRequest("GET", "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		token, err := ExtractTokenFromHeader(req)
		if ok && (err != nil || token != "abc") {
			t.Fatalf("%q: expected abc, got %q %v", header, token, err)
		}
		if !ok && err == nil {
			t.Fatalf("%q: expected error", header)
		}
	}
}
