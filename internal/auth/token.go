package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/DormLink-2025/repair-service/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims is the identity stamp carried by a bearer token: who the
// caller is and which role they act as.
type Claims struct {
	UserID uint
	Role   models.UserRole
}

// TokenManager issues and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given user.
func (tm *TokenManager) Issue(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(tm.ttl).Unix(),
	})

	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and resolves it to (user_id, role).
// Any malformed, mis-signed, or expired token yields ErrInvalidToken.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, err := mapClaims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalidToken
	}
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	roleStr, _ := mapClaims["role"].(string)
	role := models.UserRole(roleStr)
	if !role.Valid() {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: uint(userID), Role: role}, nil
}
