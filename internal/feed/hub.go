package feed

import (
	"context"
	"errors"
	"log"
	"sync"
)

// Publisher принимает события после фиксации изменения в хранилище.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

var (
	ErrHubClosed      = errors.New("feed: hub closed")
	ErrSlowSubscriber = errors.New("feed: subscriber too slow, events dropped")
)

const subscriberBuffer = 256

// Hub раздает события всем подписчикам. Один цикл Run доставляет события
// в порядке публикации, поэтому каждый подписчик видит изменения одного
// талона в порядке фиксации.
type Hub struct {
	subscribers map[*Subscription]bool
	register    chan *Subscription
	unregister  chan *Subscription
	broadcast   chan Event
	done        chan struct{}
	stopOnce    sync.Once
	mu          sync.RWMutex
	// pubMu: Publish держит на чтение, shutdown берет на запись, чтобы
	// дождаться публикаций в процессе и доставить все принятые события.
	pubMu sync.RWMutex

	// OnSubscribersChanged вызывается при изменении числа подписчиков: из цикла Run
	// или из Disconnect. Задается до запуска Run.
	OnSubscribersChanged func(n int)
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*Subscription]bool),
		register:    make(chan *Subscription),
		unregister:  make(chan *Subscription),
		broadcast:   make(chan Event, subscriberBuffer),
		done:        make(chan struct{}),
	}
}

// Run обрабатывает регистрацию, отписку и рассылку до отмены ctx.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()

	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			h.subscribers[sub] = true
			n := len(h.subscribers)
			h.mu.Unlock()
			h.notifyCount(n)
		case sub := <-h.unregister:
			h.mu.Lock()
			if h.subscribers[sub] {
				delete(h.subscribers, sub)
				close(sub.events)
			}
			n := len(h.subscribers)
			h.mu.Unlock()
			h.notifyCount(n)
		case ev := <-h.broadcast:
			h.deliver(ev)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) deliver(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	dropped := false
	for sub := range h.subscribers {
		select {
		case sub.events <- ev:
		default:
			// Подписчик не успевает: лучше оборвать подписку, чем потерять событие молча.
			log.Printf("Подписчик ленты не успевает, подписка закрыта (талон %s)", ev.TicketID())
			sub.setErr(ErrSlowSubscriber)
			delete(h.subscribers, sub)
			close(sub.events)
			dropped = true
		}
	}
	if dropped {
		h.notifyCount(len(h.subscribers))
	}
}

func (h *Hub) shutdown() {
	h.stopOnce.Do(func() {
		close(h.done)

		h.pubMu.Lock()
		for drained := false; !drained; {
			select {
			case ev := <-h.broadcast:
				h.deliver(ev)
			default:
				drained = true
			}
		}
		h.pubMu.Unlock()

		h.mu.Lock()
		for sub := range h.subscribers {
			sub.setErr(ErrHubClosed)
			close(sub.events)
			delete(h.subscribers, sub)
		}
		h.mu.Unlock()
		h.notifyCount(0)
	})
}

func (h *Hub) notifyCount(n int) {
	if h.OnSubscribersChanged != nil {
		h.OnSubscribersChanged(n)
	}
}

// Publish ставит событие в очередь рассылки. Принятое событие (nil в ответ)
// доставляется подписчикам и при остановке хаба.
func (h *Hub) Publish(ctx context.Context, ev Event) error {
	h.pubMu.RLock()
	defer h.pubMu.RUnlock()

	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}
	select {
	case h.broadcast <- ev:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe регистрирует нового подписчика. События начинают поступать
// после возврата из Subscribe.
func (h *Hub) Subscribe(ctx context.Context) (*Subscription, error) {
	sub := &Subscription{hub: h, events: make(chan Event, subscriberBuffer)}
	select {
	case h.register <- sub:
		return sub, nil
	case <-h.done:
		return nil, ErrHubClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Disconnect закрывает все текущие подписки с причиной cause. Подписчики
// переподписываются и заново загружают снимок.
func (h *Hub) Disconnect(cause error) {
	h.mu.Lock()
	n := len(h.subscribers)
	for sub := range h.subscribers {
		sub.setErr(cause)
		close(sub.events)
		delete(h.subscribers, sub)
	}
	h.mu.Unlock()
	if n > 0 {
		log.Printf("Лента прервана, отключено подписчиков: %d (%v)", n, cause)
		h.notifyCount(0)
	}
}

// Subscribers возвращает текущее число подписчиков.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Subscription: подписка на ленту. Канал Events закрывается при отписке,
// остановке хаба или отключении медленного подписчика; причину возвращает Err.
type Subscription struct {
	hub       *Hub
	events    chan Event
	closeOnce sync.Once
	mu        sync.Mutex
	err       error
}

func (s *Subscription) Events() <-chan Event {
	return s.events
}

func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// Close отписывается от хаба. Повторный вызов и вызов на nil безопасны.
func (s *Subscription) Close() error {
	if s == nil {
		return nil
	}
	s.closeOnce.Do(func() {
		select {
		case s.hub.unregister <- s:
		case <-s.hub.done:
		}
	})
	return nil
}
