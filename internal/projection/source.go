package projection

import (
	"context"

	"queuecare/internal/feed"
	"queuecare/internal/models"
	"queuecare/internal/queue"
	"queuecare/internal/storage"
)

// Source: откуда проекция берет начальную выборку и поток изменений.
type Source interface {
	Fetch(ctx context.Context, filter storage.ListFilter) ([]models.Ticket, error)
	Subscribe(ctx context.Context) (Stream, error)
}

// Stream: установленная подписка на ленту. Канал Events закрывается при
// обрыве подписки; Err сообщает причину.
type Stream interface {
	Events() <-chan feed.Event
	Err() error
	Close() error
}

// LocalSource читает полный набор талонов через движок и подписывается на хаб
// того же процесса.
type LocalSource struct {
	Engine *queue.Engine
	Hub    *feed.Hub
	Viewer models.Viewer
}

func (s LocalSource) Fetch(ctx context.Context, filter storage.ListFilter) ([]models.Ticket, error) {
	return s.Engine.Snapshot(ctx, s.Viewer, filter)
}

func (s LocalSource) Subscribe(ctx context.Context) (Stream, error) {
	sub, err := s.Hub.Subscribe(ctx)
	if err != nil {
		return nil, err
	}
	return sub, nil
}
