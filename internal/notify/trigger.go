package notify

import (
	"context"
	"log"

	"queuecare/internal/models"
	"queuecare/internal/monitoring"
	"queuecare/internal/queue"
)

// TicketEditor: часть движка очереди, нужная триггеру.
type TicketEditor interface {
	GetTicket(ctx context.Context, viewer models.Viewer, id string) (*models.Ticket, error)
	UpdateTicket(ctx context.Context, viewer models.Viewer, ticket models.Ticket) (*models.Ticket, error)
}

type Trigger struct {
	tickets TicketEditor
	queue   Queue
}

func NewTrigger(tickets TicketEditor, queue Queue) *Trigger {
	return &Trigger{tickets: tickets, queue: queue}
}

// ToggleReady переключает isReady и сохраняет талон. Независимо от результата
// сохранения, если у владельца указан телефон, в очередь ставится уведомление.
// Ошибка постановки в очередь не влияет на результат.
func (t *Trigger) ToggleReady(ctx context.Context, viewer models.Viewer, id string) (*models.Ticket, error) {
	if !viewer.IsStaff {
		return nil, queue.ErrForbidden
	}

	current, err := t.tickets.GetTicket(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	flipped := *current
	flipped.IsReady = !current.IsReady
	updated, updateErr := t.tickets.UpdateTicket(ctx, viewer, flipped)

	t.enqueue(ctx, current)
	return updated, updateErr
}

func (t *Trigger) enqueue(ctx context.Context, ticket *models.Ticket) {
	phone, ok := ticket.Profile.Contact()
	if !ok {
		log.Printf("У владельца талона %s нет номера телефона, уведомление не отправлено", ticket.ID)
		return
	}

	req := Request{Recipient: phone, Message: ReadyMessage(ticket.Profile.FullName), TicketID: ticket.ID}
	if err := t.queue.Enqueue(ctx, req); err != nil {
		log.Printf("Уведомление по талону %s не поставлено в очередь: %v", ticket.ID, err)
		monitoring.RecordNotification("dropped")
		return
	}
	monitoring.RecordNotification("enqueued")
}
