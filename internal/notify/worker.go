package notify

import (
	"context"
	"errors"
	"log"
	"time"

	"queuecare/internal/monitoring"
)

// Worker разбирает очередь и передает запросы отправителю. Ошибки доставки
// только логируются и учитываются в метриках.
type Worker struct {
	queue   Queue
	sender  Sender
	timeout time.Duration
}

func NewWorker(queue Queue, sender Sender, timeout time.Duration) *Worker {
	return &Worker{queue: queue, sender: sender, timeout: timeout}
}

// Run работает до отмены ctx или закрытия очереди.
func (w *Worker) Run(ctx context.Context) {
	for {
		req, err := w.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, ErrQueueClosed) || ctx.Err() != nil {
				return
			}
			log.Printf("Ошибка чтения очереди уведомлений: %v", err)
			select {
			case <-time.After(time.Second):
				continue
			case <-ctx.Done():
				return
			}
		}
		w.deliver(ctx, req)
	}
}

func (w *Worker) deliver(ctx context.Context, req Request) {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	sid, err := w.sender.Send(ctx, req)
	if err != nil {
		log.Printf("Уведомление по талону %s не доставлено: %v", req.TicketID, err)
		monitoring.RecordNotification("failed")
		return
	}
	log.Printf("Уведомление по талону %s отправлено (sid %s)", req.TicketID, sid)
	monitoring.RecordNotification("sent")
}
