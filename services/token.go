package services

import (
	"fmt"
	"time"

	apperrors "fupa/errors"

	"github.com/dgrijalva/jwt-go"
)

type UserInfo struct {
	UserID string `json:"userid"`
	Role   string `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// GenerateToken signs an HS256 access token valid for expiryMinutes.
func GenerateToken(secret []byte, userInfo UserInfo, expiryMinutes int) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(time.Minute * time.Duration(expiryMinutes)).Unix(),
			Subject:   userInfo.UserID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// GetUserFromToken verifies the signature and expiry and returns the user info.
func GetUserFromToken(secret []byte, tokenString string) (UserInfo, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return UserInfo{}, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Invalid token", err)
	}
	if claims.UserInfo.UserID == "" {
		return UserInfo{}, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Token has no user", nil)
	}
	return claims.UserInfo, nil
}
