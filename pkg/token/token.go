// pkg/token/token.go
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the authenticated principal inside access and refresh
// tokens. Subject duplicates GamerID as the principal's display id (the
// stable string form of the surrogate key).
type Claims struct {
	GamerID uint `json:"gamer_id"`
	jwt.RegisteredClaims
}

// GenerateJWT builds a signed HS256 access token for a gamer.
func GenerateJWT(gamerID uint, displayID string, secretKey string, expiryMinutes int) (string, error) {
	now := time.Now()
	claims := &Claims{
		GamerID: gamerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   displayID,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiryMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "gamesess",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

// GenerateRefreshToken builds a longer-lived signed token; the string is
// also persisted server-side so it can be revoked.
func GenerateRefreshToken(gamerID uint, displayID string, secretKey string, expiryDays int) (string, error) {
	now := time.Now()
	claims := &Claims{
		GamerID: gamerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   displayID,
			ExpiresAt: jwt.NewNumericDate(now.AddDate(0, 0, expiryDays)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "gamesess",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

// ValidateJWT parses and validates a token string and returns its claims.
func ValidateJWT(tokenString string, secretKey string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token string is empty")
	}
	if secretKey == "" {
		return nil, errors.New("jwt secret key is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token has expired")
		}
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, errors.New("token signature is invalid")
		}
		return nil, fmt.Errorf("could not parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.GamerID == 0 {
		return nil, errors.New("gamer_id claim is missing or zero")
	}
	return claims, nil
}
