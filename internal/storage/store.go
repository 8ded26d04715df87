package storage

import (
	"context"
	"errors"

	"queuecare/internal/models"
)

var ErrNotFound = errors.New("storage: ticket not found")

// ListFilter ограничивает выборку талонов. Нулевой Limit означает выборку без ограничения.
type ListFilter struct {
	OwnerID string
	Limit   int
	Offset  int
}

// TicketStore: таблица талонов. Все чтения возвращают талон вместе с профилем владельца.
type TicketStore interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	// Update перезаписывает изменяемые поля (отделение, приоритет, статус, готовность).
	Update(ctx context.Context, ticket *models.Ticket) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Ticket, error)
	// List возвращает талоны в порядке убывания created_at.
	List(ctx context.Context, filter ListFilter) ([]models.Ticket, error)
	Ping(ctx context.Context) error
}
