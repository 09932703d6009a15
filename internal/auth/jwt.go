package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	UseAccess  = "access"
	UseRefresh = "refresh"
)

var (
	ErrTokenExpired  = errors.New("token expired")
	ErrInvalidToken  = errors.New("invalid token")
	ErrWrongTokenUse = errors.New("wrong token use")
)

type Claims struct {
	UserID   string `json:"sub"`
	TokenUse string `json:"token_use"`
	jwt.RegisteredClaims
}

type TokenConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

func DefaultTokenConfig(secret string) TokenConfig {
	return TokenConfig{
		Secret:        secret,
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        "timeclock",
	}
}

// CreateAccessToken issues a short-lived token for API calls
func CreateAccessToken(userID string, cfg TokenConfig) (string, error) {
	return createToken(userID, UseAccess, cfg.AccessExpiry, cfg)
}

// CreateRefreshToken issues a long-lived token accepted only by the refresh
// endpoint
func CreateRefreshToken(userID string, cfg TokenConfig) (string, error) {
	return createToken(userID, UseRefresh, cfg.RefreshExpiry, cfg)
}

func createToken(userID, use string, expiry time.Duration, cfg TokenConfig) (string, error) {
	if cfg.Secret == "" {
		return "", errors.New("missing secret")
	}
	if userID == "" {
		return "", errors.New("missing userID")
	}
	if expiry <= 0 {
		return "", errors.New("invalid expiry")
	}

	now := time.Now()
	claims := Claims{
		UserID:   userID,
		TokenUse: use,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			ID:        uuid.NewString(),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// VerifyAccessToken validates an access token and returns its claims
func VerifyAccessToken(tokenString string, cfg TokenConfig) (*Claims, error) {
	return verifyToken(tokenString, UseAccess, cfg)
}

// VerifyRefreshToken validates a refresh token and returns its claims
func VerifyRefreshToken(tokenString string, cfg TokenConfig) (*Claims, error) {
	return verifyToken(tokenString, UseRefresh, cfg)
}

func verifyToken(tokenString, use string, cfg TokenConfig) (*Claims, error) {
	if cfg.Secret == "" {
		return nil, errors.New("missing secret")
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenUse != use {
		return nil, ErrWrongTokenUse
	}
	return claims, nil
}
