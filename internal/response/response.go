package response

import "queuecare/internal/load"

// SuccessResponse представляет успешный ответ API
type SuccessResponse struct {
	Message string `json:"message" example:"Операция успешно выполнена"`
}

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: VALIDATION_ERROR
	Code string `json:"code"`

	// Человекочитаемое сообщение об ошибке
	// example: Ошибка валидации данных
	Message string `json:"message"`

	// Дополнительные детали об ошибке (опционально)
	// example: priority out of range
	Details string `json:"details,omitempty"`
}

// LoadResponse: нагрузка отделений по данным проекции персонала
type LoadResponse struct {
	// Число талонов не в статусе Completed
	ActiveCount int                   `json:"active_count" example:"12"`
	Departments []load.DepartmentLoad `json:"departments"`
	// false, если проекция еще не загрузилась или потеряла ленту изменений
	Synced bool `json:"synced" example:"true"`
}

// HealthResponse: состояние зависимостей сервера
type HealthResponse struct {
	Status string            `json:"status" example:"healthy"`
	Checks map[string]string `json:"checks"`
}
