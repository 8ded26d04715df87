package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"queuecare/internal/models"
)

var (
	ErrInvalidToken = errors.New("auth: invalid or expired token")
	ErrNoUserID     = errors.New("auth: token has no user_id")
)

type Authenticator struct {
	secret []byte
}

func New(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// GenerateToken выпускает access токен для пользователя. Токены выдает внешний
// сервис идентификации; здесь выпуск нужен для тестов и служебных клиентов.
func (a *Authenticator) GenerateToken(viewer models.Viewer, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  viewer.ID,
		"is_staff": viewer.IsStaff,
		"exp":      time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// ParseToken проверяет подпись и срок действия и возвращает пользователя из claims.
func (a *Authenticator) ParseToken(tokenString string) (models.Viewer, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return models.Viewer{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Viewer{}, ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return models.Viewer{}, ErrNoUserID
	}
	isStaff, _ := claims["is_staff"].(bool)
	return models.Viewer{ID: userID, IsStaff: isStaff}, nil
}
