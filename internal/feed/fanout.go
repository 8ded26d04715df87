package feed

import (
	"context"
	"log"
)

// Fanout публикует событие в основной канал и во все зеркала.
// Ошибка зеркала только логируется: доставку подписчикам определяет основной канал.
type Fanout struct {
	Primary Publisher
	Mirrors []Publisher
}

func (f *Fanout) Publish(ctx context.Context, ev Event) error {
	if err := f.Primary.Publish(ctx, ev); err != nil {
		return err
	}
	for _, m := range f.Mirrors {
		if err := m.Publish(ctx, ev); err != nil {
			log.Printf("Зеркало ленты не приняло событие %s: %v", ev.TicketID(), err)
		}
	}
	return nil
}
