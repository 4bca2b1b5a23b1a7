package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"locart/config"

	"github.com/golang-jwt/jwt"
	"github.com/go-redis/redis/v8"
)

const revokedTokenPrefix = "revokedToken:"

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "locart-dev"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT token with the given subject, email and
// role. The token expires after the specified duration.
func GenerateToken(subject, email, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"role":  role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// TokenClaims extracts the subject and role claims from a valid token string.
func TokenClaims(tokenString string) (subject string, role string, err error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}
	subject, _ = claims["sub"].(string)
	if subject == "" {
		return "", "", errors.New("token does not contain a valid 'sub' claim")
	}
	role, _ = claims["role"].(string)
	return subject, role, nil
}

// RevokeToken blacklists a token (keyed by its hash) until the token's own
// expiry, so the entry disappears together with the token's validity.
func RevokeToken(client *redis.Client, tokenString string) error {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("invalid token claims")
	}
	exp, _ := claims["exp"].(float64)
	ttl := time.Until(time.Unix(int64(exp), 0))
	if ttl <= 0 {
		return nil // already expired, nothing to blacklist
	}
	ctx := context.Background()
	return client.Set(ctx, revokedTokenPrefix+HashToken(tokenString), "1", ttl).Err()
}

// IsTokenRevoked reports whether a token hash is on the blacklist.
func IsTokenRevoked(client *redis.Client, tokenString string) (bool, error) {
	ctx := context.Background()
	n, err := client.Exists(ctx, revokedTokenPrefix+HashToken(tokenString)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
