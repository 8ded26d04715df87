package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"queuecare/internal/auth"
	"queuecare/internal/load"
	"queuecare/internal/models"
	"queuecare/internal/projection"
	"queuecare/internal/queue"
	"queuecare/internal/response"
)

type DepartmentHandler struct {
	engine *queue.Engine
	staff  *projection.Staff
}

// NewDepartmentHandler: staff может быть nil, тогда нагрузка считается запросом к хранилищу.
func NewDepartmentHandler(engine *queue.Engine, staff *projection.Staff) *DepartmentHandler {
	return &DepartmentHandler{engine: engine, staff: staff}
}

// @Summary		Справочник отделений
// @Tags			departments
// @Produce		json
// @Success		200	{array}	models.Department
// @Router			/api/departments [get]
func (h *DepartmentHandler) List(c *gin.Context) {
	departments := h.engine.Departments()
	if departments == nil {
		departments = models.Departments{}
	}
	c.JSON(http.StatusOK, departments)
}

// @Summary		Нагрузка отделений
// @Description	Число незавершенных талонов по отделениям. Только для персонала
// @Tags			departments
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	response.LoadResponse
// @Failure		403	{object}	response.ErrorResponse	"Только для персонала (FORBIDDEN)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/departments/load [get]
func (h *DepartmentHandler) Load(c *gin.Context) {
	if h.staff != nil && h.staff.Synced() {
		c.JSON(http.StatusOK, response.LoadResponse{
			ActiveCount: h.staff.ActiveCount(),
			Departments: h.staff.Loads(),
			Synced:      true,
		})
		return
	}

	// Проекция еще не загружена или потеряла ленту: считаем по хранилищу.
	loads, err := h.engine.DepartmentLoads(c.Request.Context(), auth.ViewerFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.LoadResponse{
		ActiveCount: load.Total(loads),
		Departments: loads,
	})
}
