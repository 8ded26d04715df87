package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"queuecare/internal/auth"
	"queuecare/internal/storage"
)

// ProfileTickets возвращает талоны текущего пациента
// @Summary		Получение списка своих талонов
// @Description	Получение списка талонов текущего пользователя, новые первыми
// @Tags			profile
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		models.Ticket	"Талоны пользователя"
// @Failure		500	{object}	response.ErrorResponse	"Server error (DB_ERROR)"
// @Router			/api/profile/tickets [get]
func (h *TicketHandler) ProfileTickets(c *gin.Context) {
	viewer := auth.ViewerFrom(c)
	tickets, err := h.engine.ListTickets(c.Request.Context(), viewer, storage.ListFilter{OwnerID: viewer.ID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}
