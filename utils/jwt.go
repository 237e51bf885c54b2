package utils

import (
	"errors"
	"fmt"
	"time"

	"clinicore/config"

	"github.com/golang-jwt/jwt"
)

// GenerateStaffToken mints a bearer token for a staff member scoped to one
// clinic. Staff identity management itself lives in the external identity
// module; the engine only verifies tokens it is handed.
func GenerateStaffToken(staffID, clinicID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      staffID,
		"clinicId": clinicID,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ValidateToken parses and verifies a token string.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
}

// ExtractStaffClaims returns the staff and clinic identifiers from a token.
func ExtractStaffClaims(tokenString string) (string, string, error) {
	token, err := ValidateToken(tokenString)
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}
	staffID, _ := claims["sub"].(string)
	clinicID, _ := claims["clinicId"].(string)
	if staffID == "" {
		return "", "", errors.New("token missing subject")
	}
	return staffID, clinicID, nil
}
