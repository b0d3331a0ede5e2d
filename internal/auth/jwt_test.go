package auth

import (
	"testing"
	"time"
)

func testService() TokenService {
	return TokenService{
		Secret:   []byte("test-secret"),
		Issuer:   "listit-test",
		Duration: time.Hour,
	}
}

func TestSignAndParse(t *testing.T) {
	ts := testService()
	u := &User{ID: "u-1", Username: "reader", TokenVersion: 3}

	token, exp, err := ts.Sign(u)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Error("expiry not in the future")
	}

	claims, err := ts.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "u-1" || claims.Username != "reader" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.TokenVersion != 3 {
		t.Errorf("token version = %d, want 3", claims.TokenVersion)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	ts := testService()
	token, _, err := ts.Sign(&User{ID: "u-1", Username: "reader"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	other := ts
	other.Secret = []byte("another-secret")
	if _, err := other.Parse(token); err == nil {
		t.Error("token accepted under a different secret")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	ts := testService()
	ts.Duration = -time.Minute

	token, _, err := ts.Sign(&User{ID: "u-1", Username: "reader"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ts.Parse(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := testService().Parse("not-a-token"); err == nil {
		t.Error("garbage accepted")
	}
}
