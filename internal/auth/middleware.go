package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"queuecare/internal/models"
	"queuecare/internal/response"
)

const viewerKey = "viewer"

// Middleware проверяет access токен и кладет пользователя в контекст запроса.
// Токен берется из заголовка Authorization или, для websocket, из параметра access_token.
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if tokenString == "" {
			tokenString = c.Query("access_token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "NO_AUTH_HEADER",
				Message: "Требуется авторизация",
			})
			return
		}

		viewer, err := a.ParseToken(tokenString)
		if err != nil {
			code := "INVALID_TOKEN"
			if errors.Is(err, ErrNoUserID) {
				code = "INVALID_USER_ID"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    code,
				Message: "Неверный или просроченный токен",
			})
			return
		}

		c.Set(viewerKey, viewer)
		c.Next()
	}
}

// RequireStaff пропускает только персонал. Ставится после Middleware.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ViewerFrom(c).IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "Действие доступно только персоналу",
			})
			return
		}
		c.Next()
	}
}

func ViewerFrom(c *gin.Context) models.Viewer {
	if v, ok := c.Get(viewerKey); ok {
		if viewer, ok := v.(models.Viewer); ok {
			return viewer
		}
	}
	return models.Viewer{}
}
