package security

import (
	"errors"
	"fmt"
	"time"

	"assetconsole/pkg/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = 12 * time.Hour

var jwtSecret []byte

// Configure sets the HMAC secret used to sign and verify console tokens.
func Configure(secret string) error {
	if secret == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}
	jwtSecret = []byte(secret)
	return nil
}

// GenerateJWT issues a console token for an operator the backend accepted.
// The backend token travels inside so requests can be forwarded on the operator's behalf.
func GenerateJWT(operator models.Operator) (string, error) {
	if len(jwtSecret) == 0 {
		return "", errors.New("token secret not configured")
	}

	claims := jwt.MapClaims{
		"username":     operator.Username,
		"backendToken": operator.BackendToken,
		"exp":          time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseJWT(tokenString string) (models.Operator, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return models.Operator{}, fmt.Errorf("invalid token: %w", err)
	}

	claims := token.Claims.(jwt.MapClaims)
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return models.Operator{}, fmt.Errorf("username is not a string")
	}
	backendToken, _ := claims["backendToken"].(string)

	return models.Operator{Username: username, BackendToken: backendToken}, nil
}
