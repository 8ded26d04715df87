package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"queuecare/internal/auth"
	"queuecare/internal/models"
	"queuecare/internal/notify"
	"queuecare/internal/queue"
	"queuecare/internal/response"
	"queuecare/internal/storage"
)

type CreateTicketRequest struct {
	// 0: Normal, 1: Urgent, 2: Emergency
	Priority   models.Priority `json:"priority" example:"0"`
	Department string          `json:"department" binding:"required" example:"cardiology"`
	// Только для персонала: талон для другого пациента
	PatientID string `json:"patient_id,omitempty"`
}

type UpdateTicketRequest struct {
	Department string          `json:"department" binding:"required" example:"cardiology"`
	Priority   models.Priority `json:"priority" example:"1"`
	// 0: Waiting, 1: In Progress, 2: Completed
	Status  models.Status `json:"status" example:"1"`
	IsReady bool          `json:"isReady"`
}

type TicketHandler struct {
	engine  *queue.Engine
	trigger *notify.Trigger
}

func NewTicketHandler(engine *queue.Engine, trigger *notify.Trigger) *TicketHandler {
	return &TicketHandler{engine: engine, trigger: trigger}
}

// @Summary		Получение талона в очередь
// @Description	Создает талон пациента в очереди отделения. Персонал может указать patient_id
// @Tags			tickets
// @Accept			json
// @Produce		json
// @Param			ticket	body		CreateTicketRequest		true	"Отделение и приоритет"
// @Security		BearerAuth
// @Success		201		{object}	models.Ticket			"Созданный талон"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		403		{object}	response.ErrorResponse	"Талон для другого пациента (FORBIDDEN)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/tickets [post]
func (h *TicketHandler) Create(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	viewer := auth.ViewerFrom(c)
	ownerID := req.PatientID
	if ownerID == "" {
		ownerID = viewer.ID
	}

	ticket, err := h.engine.CreateTicket(c.Request.Context(), viewer, ownerID, req.Priority, req.Department)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// @Summary		Список талонов
// @Description	Пациент получает свои талоны, персонал: все. Сортировка по убыванию времени создания
// @Tags			tickets
// @Produce		json
// @Param			patient_id	query		string	false	"Фильтр по пациенту"
// @Param			limit		query		int		false	"Размер страницы"
// @Param			offset		query		int		false	"Смещение"
// @Security		BearerAuth
// @Success		200			{array}		models.Ticket
// @Failure		400			{object}	response.ErrorResponse	"Неверные параметры (VALIDATION_ERROR)"
// @Failure		403			{object}	response.ErrorResponse	"Чужие талоны (FORBIDDEN)"
// @Failure		500			{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/tickets [get]
func (h *TicketHandler) List(c *gin.Context) {
	filter := storage.ListFilter{OwnerID: c.Query("patient_id")}
	var err error
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		bindError(c, err)
		return
	}
	if filter.Offset, err = queryInt(c, "offset"); err != nil {
		bindError(c, err)
		return
	}

	tickets, err := h.engine.ListTickets(c.Request.Context(), auth.ViewerFrom(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// @Summary		Получение талона
// @Tags			tickets
// @Produce		json
// @Param			id	path		string	true	"ID талона"
// @Security		BearerAuth
// @Success		200	{object}	models.Ticket
// @Failure		403	{object}	response.ErrorResponse	"Чужой талон (FORBIDDEN)"
// @Failure		404	{object}	response.ErrorResponse	"Талон не найден (TICKET_NOT_FOUND)"
// @Router			/api/tickets/{id} [get]
func (h *TicketHandler) Get(c *gin.Context) {
	ticket, err := h.engine.GetTicket(c.Request.Context(), auth.ViewerFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// @Summary		Изменение талона
// @Description	Перезаписывает отделение, приоритет, статус и готовность. Только для персонала
// @Tags			tickets
// @Accept			json
// @Produce		json
// @Param			id		path		string				true	"ID талона"
// @Param			ticket	body		UpdateTicketRequest	true	"Новые значения"
// @Security		BearerAuth
// @Success		200		{object}	models.Ticket
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		403		{object}	response.ErrorResponse	"Только для персонала (FORBIDDEN)"
// @Failure		404		{object}	response.ErrorResponse	"Талон не найден (TICKET_NOT_FOUND)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/tickets/{id} [put]
func (h *TicketHandler) Update(c *gin.Context) {
	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ticket := models.Ticket{
		ID:         c.Param("id"),
		Department: req.Department,
		Priority:   req.Priority,
		Status:     req.Status,
		IsReady:    req.IsReady,
	}
	updated, err := h.engine.UpdateTicket(c.Request.Context(), auth.ViewerFrom(c), ticket)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary		Вызов пациента
// @Description	Переключает isReady и ставит SMS-уведомление в очередь, если у пациента есть телефон
// @Tags			tickets
// @Produce		json
// @Param			id	path		string	true	"ID талона"
// @Security		BearerAuth
// @Success		200	{object}	models.Ticket
// @Failure		403	{object}	response.ErrorResponse	"Только для персонала (FORBIDDEN)"
// @Failure		404	{object}	response.ErrorResponse	"Талон не найден (TICKET_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/tickets/{id}/ready [post]
func (h *TicketHandler) ToggleReady(c *gin.Context) {
	ticket, err := h.trigger.ToggleReady(c.Request.Context(), auth.ViewerFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// @Summary		Отмена талона
// @Description	Пациент может отменить свой талон, персонал: любой
// @Tags			tickets
// @Produce		json
// @Param			id	path		string	true	"ID талона"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse	"Талон удален"
// @Failure		403	{object}	response.ErrorResponse		"Чужой талон (FORBIDDEN)"
// @Failure		404	{object}	response.ErrorResponse		"Талон не найден (TICKET_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse		"Ошибка сервера (DB_ERROR)"
// @Router			/api/tickets/{id} [delete]
func (h *TicketHandler) Delete(c *gin.Context) {
	if err := h.engine.DeleteTicket(c.Request.Context(), auth.ViewerFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Талон удален"})
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
