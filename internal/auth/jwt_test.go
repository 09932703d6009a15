package auth

import (
	"errors"
	"testing"
	"time"
)

func testConfig() TokenConfig {
	return DefaultTokenConfig("test-secret")
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := testConfig()

	token, err := CreateAccessToken("user-1", cfg)
	if err != nil {
		t.Fatalf("CreateAccessToken() error = %v", err)
	}

	claims, err := VerifyAccessToken(token, cfg)
	if err != nil {
		t.Fatalf("VerifyAccessToken() error = %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %s, want user-1", claims.UserID)
	}
	if claims.TokenUse != UseAccess {
		t.Errorf("TokenUse = %s, want %s", claims.TokenUse, UseAccess)
	}
	if claims.ID == "" {
		t.Error("token missing JTI")
	}
}

func TestRefreshTokenNotAcceptedAsAccess(t *testing.T) {
	cfg := testConfig()

	refresh, err := CreateRefreshToken("user-1", cfg)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := VerifyAccessToken(refresh, cfg); !errors.Is(err, ErrWrongTokenUse) {
		t.Errorf("VerifyAccessToken(refresh) error = %v, want ErrWrongTokenUse", err)
	}

	access, err := CreateAccessToken("user-1", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifyRefreshToken(access, cfg); !errors.Is(err, ErrWrongTokenUse) {
		t.Errorf("VerifyRefreshToken(access) error = %v, want ErrWrongTokenUse", err)
	}
}

func TestExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.AccessExpiry = -time.Minute

	token, err := createToken("user-1", UseAccess, time.Nanosecond, cfg)
	if err != nil {
		t.Fatal(err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := VerifyAccessToken(token, cfg); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("error = %v, want ErrTokenExpired", err)
	}
}

func TestWrongSecret(t *testing.T) {
	token, err := CreateAccessToken("user-1", testConfig())
	if err != nil {
		t.Fatal(err)
	}

	other := DefaultTokenConfig("other-secret")
	if _, err := VerifyAccessToken(token, other); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestGarbageToken(t *testing.T) {
	if _, err := VerifyAccessToken("not.a.token", testConfig()); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestCreateTokenValidation(t *testing.T) {
	cfg := testConfig()

	if _, err := CreateAccessToken("", cfg); err == nil {
		t.Error("empty userID should be rejected")
	}

	cfg.Secret = ""
	if _, err := CreateAccessToken("user-1", cfg); err == nil {
		t.Error("empty secret should be rejected")
	}

	cfg = testConfig()
	cfg.AccessExpiry = 0
	if _, err := CreateAccessToken("user-1", cfg); err == nil {
		t.Error("zero expiry should be rejected")
	}
}
