package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"queuecare/internal/queue"
	"queuecare/internal/response"
)

// writeError переводит ошибку движка очереди в ответ API.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queue.ErrValidation):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
	case errors.Is(err, queue.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "TICKET_NOT_FOUND",
			Message: "Талон не найден",
		})
	case errors.Is(err, queue.ErrForbidden):
		c.JSON(http.StatusForbidden, response.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "Недостаточно прав для операции",
		})
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при работе с базой данных",
		})
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: "Ошибка валидации данных",
		Details: err.Error(),
	})
}
