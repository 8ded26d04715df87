// Package notify передает уведомления пациентам через очередь, отдельно от
// изменения талона: сохранение талона никогда не ждет доставки.
package notify

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrDelivery    = errors.New("notify: delivery failed")
	ErrQueueFull   = errors.New("notify: queue is full")
	ErrQueueClosed = errors.New("notify: queue closed")
)

type Request struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
	TicketID  string `json:"ticket_id,omitempty"`
}

// Queue: буфер запросов между триггером и воркером доставки.
type Queue interface {
	Enqueue(ctx context.Context, req Request) error
	// Dequeue блокируется до появления запроса, закрытия очереди или отмены ctx.
	Dequeue(ctx context.Context) (Request, error)
	Close() error
}

// Sender доставляет одно уведомление и возвращает идентификатор сообщения у провайдера.
type Sender interface {
	Send(ctx context.Context, req Request) (string, error)
}

func ReadyMessage(fullName string) string {
	return fmt.Sprintf("Hello %s, your turn is coming up! Please proceed to the counter.", fullName)
}
