package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidToken = errors.New("invalid session token")

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// SignSessionToken wraps a session id in a signed JWT for the login cookie.
func SignSessionToken(sessionID primitive.ObjectID, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": sessionID.Hex(),
		"exp":        expiresAt.Unix(),
	})
	return token.SignedString(jwtSecret())
}

// ParseSessionToken verifies the cookie JWT and returns the session id it names.
func ParseSessionToken(tokenString string) (primitive.ObjectID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, ErrInvalidToken
	}
	raw, ok := claims["session_id"].(string)
	if !ok {
		return primitive.NilObjectID, ErrInvalidToken
	}
	sessionID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}
	return sessionID, nil
}
