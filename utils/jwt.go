package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

// jwtSecret is read from the JWT_SECRET environment variable. Outside
// production a missing secret falls back to a random per-process key.
var jwtSecret = getJWTSecret()

func getJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("ENV") == "production" {
			logrus.Fatal("JWT_SECRET must be set in production")
		}

		logrus.Warn("JWT_SECRET not set, generating a random development key")
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err != nil {
			logrus.Errorf("failed to generate random JWT key: %v, using fallback key", err)
			return []byte("csms_backend_jwt_secret_for_development_only_do_not_use_in_production")
		}
		secret = base64.StdEncoding.EncodeToString(randomKey)
	}

	if len(secret) < 16 {
		logrus.Warn("JWT secret is short, at least 32 characters is recommended")
	}

	return []byte(secret)
}

// SalespersonClaims carries the salesperson identity inside a JWT
// alongside the standard registered claims.
type SalespersonClaims struct {
	SalespersonID uint   `json:"salesperson_id"`
	Username      string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for the salesperson valid for the
// given duration.
func GenerateToken(salespersonID uint, username string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := SalespersonClaims{
		SalespersonID: salespersonID,
		Username:      username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken verifies a token's signature and returns its claims.
func ParseToken(tokenString string) (*SalespersonClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SalespersonClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SalespersonClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// SalespersonIDFromContext returns the authenticated salesperson id
// placed in the request context by the auth middleware, falling back
// to parsing the bearer token directly.
func SalespersonIDFromContext(c *fiber.Ctx) (uint, error) {
	if id, ok := c.Locals("salesperson_id").(uint); ok {
		return id, nil
	}

	authHeader := c.Get("Authorization")
	if len(authHeader) <= 7 || authHeader[:7] != "Bearer " {
		return 0, errors.New("missing bearer token")
	}

	claims, err := ParseToken(authHeader[7:])
	if err != nil {
		return 0, err
	}
	return claims.SalespersonID, nil
}
