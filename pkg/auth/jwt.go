package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by an access token. Role is informational only;
// the auth middleware re-reads the role from the database.
type Claims struct {
	UserID int64
	Email  string
	Role   string
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), expiry: expiry}
}

func (m *TokenManager) Issue(userID int64, email, role string) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("jwt secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(userID, 10),
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(m.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)

	return &Claims{UserID: userID, Email: email, Role: role}, nil
}
