package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// AccessTokenTTL is the lifetime of an access token.
	AccessTokenTTL = 12 * time.Hour
	// RefreshTokenTTL is the lifetime of a refresh token.
	RefreshTokenTTL = 60 * 24 * time.Hour
)

// ErrExpired is returned by the parse methods when the token is well-formed
// and correctly signed but past its expiry.
var ErrExpired = errors.New("jwt: token expired")

// TokenPayload is the data carried by both token kinds.
type TokenPayload struct {
	UserID   uint
	DeviceID string
}

// TokenManager issues and verifies HS256 access and refresh tokens.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
}

// NewTokenManager creates a TokenManager with the two signing secrets.
func NewTokenManager(accessSecret, refreshSecret string) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

// GenerateAccessToken creates a new short-lived access token.
func (m *TokenManager) GenerateAccessToken(p TokenPayload) (string, error) {
	return m.generate(p, AccessTokenTTL, m.accessSecret)
}

// GenerateRefreshToken creates a new long-lived refresh token.
func (m *TokenManager) GenerateRefreshToken(p TokenPayload) (string, error) {
	return m.generate(p, RefreshTokenTTL, m.refreshSecret)
}

// ParseAccessToken verifies an access token and returns its payload.
func (m *TokenManager) ParseAccessToken(tokenString string) (TokenPayload, error) {
	return m.parse(tokenString, m.accessSecret)
}

// ParseRefreshToken verifies a refresh token and returns its payload.
func (m *TokenManager) ParseRefreshToken(tokenString string) (TokenPayload, error) {
	return m.parse(tokenString, m.refreshSecret)
}

func (m *TokenManager) generate(p TokenPayload, ttl time.Duration, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":       p.UserID,
		"device_id": p.DeviceID,
		"exp":       time.Now().Add(ttl).Unix(),
		"iat":       time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (m *TokenManager) parse(tokenString string, secret []byte) (TokenPayload, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenPayload{}, ErrExpired
		}
		return TokenPayload{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return TokenPayload{}, errors.New("jwt: invalid token")
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return TokenPayload{}, errors.New("jwt: missing subject claim")
	}
	deviceID, _ := claims["device_id"].(string)

	return TokenPayload{UserID: uint(sub), DeviceID: deviceID}, nil
}
