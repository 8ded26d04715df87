package feed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRelayLost закрывает подписки хаба, когда прерывается или заново
// устанавливается подписка на канал Redis: события за это время могли не дойти.
var ErrRelayLost = errors.New("feed: redis relay interrupted")

const (
	relayMinBackoff = 500 * time.Millisecond
	relayMaxBackoff = 30 * time.Second
)

// listenFunc подписывается на канал и возвращает поток сообщений и функцию отписки.
type listenFunc func(ctx context.Context) (<-chan *redis.Message, func() error, error)

// RedisBroker передает события через Redis pub/sub, чтобы подписчики
// всех экземпляров сервера видели изменения, сделанные любым из них.
// Полученные из Redis события пересылаются в локальный Hub.
type RedisBroker struct {
	redis   *redis.Client
	channel string
	hub     *Hub
	listen  listenFunc

	minBackoff time.Duration
	maxBackoff time.Duration

	// OnRelayChanged сообщает, работает ли пересылка из Redis. Задается до Run.
	OnRelayChanged func(up bool)
}

func NewRedisBroker(client *redis.Client, channel string, hub *Hub) *RedisBroker {
	b := &RedisBroker{
		redis:      client,
		channel:    channel,
		hub:        hub,
		minBackoff: relayMinBackoff,
		maxBackoff: relayMaxBackoff,
	}
	b.listen = b.listenRedis
	return b
}

func (b *RedisBroker) Publish(ctx context.Context, ev Event) error {
	payload, err := Encode(ev)
	if err != nil {
		return err
	}
	if err := b.redis.Publish(ctx, b.channel, string(payload)).Err(); err != nil {
		return fmt.Errorf("feed: redis publish: %w", err)
	}
	return nil
}

// Run пересылает события из Redis в хаб до отмены ctx. При обрыве подписки
// переподключается с экспоненциальной задержкой. Каждый обрыв и каждое
// восстановление закрывают подписки хаба, чтобы проекции загрузили снимок заново.
func (b *RedisBroker) Run(ctx context.Context) {
	backoff := b.minBackoff
	for {
		established, err := b.session(ctx)
		if ctx.Err() != nil {
			return
		}
		if established {
			b.setRelay(false)
			b.hub.Disconnect(ErrRelayLost)
			backoff = b.minBackoff
		}
		log.Printf("Подписка на канал Redis %s потеряна, повтор через %s: %v", b.channel, backoff, err)

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return
		}
		backoff = min(backoff*2, b.maxBackoff)
	}
}

func (b *RedisBroker) session(ctx context.Context) (established bool, err error) {
	messages, unsubscribe, err := b.listen(ctx)
	if err != nil {
		return false, err
	}
	defer unsubscribe()

	log.Printf("Подписка на канал Redis %s установлена", b.channel)
	b.hub.Disconnect(ErrRelayLost)
	b.setRelay(true)

	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				return true, errors.New("channel closed")
			}
			b.relay(ctx, msg.Payload)
		case <-ctx.Done():
			return true, nil
		}
	}
}

func (b *RedisBroker) listenRedis(ctx context.Context) (<-chan *redis.Message, func() error, error) {
	pubsub := b.redis.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, fmt.Errorf("feed: redis subscribe %s: %w", b.channel, err)
	}
	return pubsub.Channel(), pubsub.Close, nil
}

func (b *RedisBroker) setRelay(up bool) {
	if b.OnRelayChanged != nil {
		b.OnRelayChanged(up)
	}
}

func (b *RedisBroker) relay(ctx context.Context, payload string) {
	ev, err := Decode([]byte(payload))
	if err != nil {
		log.Printf("Пропущено некорректное событие из Redis: %v", err)
		return
	}
	if err := b.hub.Publish(ctx, ev); err != nil {
		log.Printf("Не удалось передать событие %s в хаб: %v", ev.TicketID(), err)
	}
}
