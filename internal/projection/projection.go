// Package projection держит локальный, постоянно сверяемый с лентой снимок талонов.
package projection

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"queuecare/internal/feed"
	"queuecare/internal/models"
	"queuecare/internal/storage"
)

var ErrSubscription = errors.New("projection: change feed unavailable")

var errStreamClosed = errors.New("stream closed")

const (
	DefaultMinBackoff = 500 * time.Millisecond
	DefaultMaxBackoff = 30 * time.Second
)

type Options struct {
	MinBackoff time.Duration
	MaxBackoff time.Duration
}

// Projection подписывается на ленту, затем загружает снимок и применяет события.
// При обрыве подписки переподключается с экспоненциальной задержкой и заново
// загружает снимок; до успешной загрузки показывается последний удачный снимок.
type Projection struct {
	source     Source
	filter     storage.ListFilter
	visible    func(models.Ticket) bool
	minBackoff time.Duration
	maxBackoff time.Duration

	mu        sync.RWMutex
	tickets   []models.Ticket
	synced    bool
	lastErr   error
	listeners []func([]models.Ticket)

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

func newProjection(source Source, filter storage.ListFilter, visible func(models.Ticket) bool, opts Options) *Projection {
	if opts.MinBackoff <= 0 {
		opts.MinBackoff = DefaultMinBackoff
	}
	if opts.MaxBackoff < opts.MinBackoff {
		opts.MaxBackoff = max(DefaultMaxBackoff, opts.MinBackoff)
	}
	return &Projection{
		source:     source,
		filter:     filter,
		visible:    visible,
		minBackoff: opts.MinBackoff,
		maxBackoff: opts.MaxBackoff,
	}
}

// NewPatient создает проекцию пациента, в которую попадают только его талоны.
func NewPatient(source Source, ownerID string, opts Options) *Projection {
	return newProjection(source, storage.ListFilter{OwnerID: ownerID}, func(t models.Ticket) bool {
		return t.OwnerID == ownerID
	}, opts)
}

// OnChange регистрирует обработчик, вызываемый синхронно после каждого изменения снимка.
// Регистрировать нужно до Start.
func (p *Projection) OnChange(fn func([]models.Ticket)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

func (p *Projection) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	go p.run(ctx)
}

// Close останавливает проекцию и освобождает подписку. Повторный вызов безопасен.
func (p *Projection) Close() error {
	if p == nil {
		return nil
	}
	p.closeOnce.Do(func() {
		if p.cancel == nil {
			return
		}
		p.cancel()
		<-p.done
	})
	return nil
}

// Tickets возвращает копию текущего снимка.
func (p *Projection) Tickets() []models.Ticket {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.tickets)
}

// Synced сообщает, что снимок загружен и подписка активна.
func (p *Projection) Synced() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.synced
}

// Err: последняя ошибка подписки или загрузки.
func (p *Projection) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}

func (p *Projection) run(ctx context.Context) {
	defer close(p.done)

	backoff := p.minBackoff
	for {
		seeded, err := p.session(ctx)
		if ctx.Err() != nil {
			return
		}
		p.fail(err)
		if seeded {
			backoff = p.minBackoff
		}
		log.Printf("Лента изменений недоступна, повтор через %s: %v", backoff, err)

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return
		}
		backoff = min(backoff*2, p.maxBackoff)
	}
}

// session выполняет одну попытку: подписка, загрузка снимка, применение событий.
func (p *Projection) session(ctx context.Context) (seeded bool, err error) {
	stream, err := p.source.Subscribe(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrSubscription, err)
	}
	defer stream.Close()

	tickets, err := p.source.Fetch(ctx, p.filter)
	if err != nil {
		return false, fmt.Errorf("%w: fetch: %w", ErrSubscription, err)
	}
	p.seed(tickets)

	for {
		select {
		case ev, ok := <-stream.Events():
			if !ok {
				cause := stream.Err()
				if cause == nil {
					cause = errStreamClosed
				}
				return true, fmt.Errorf("%w: %w", ErrSubscription, cause)
			}
			p.apply(ev)
		case <-ctx.Done():
			return true, nil
		}
	}
}

func (p *Projection) seed(tickets []models.Ticket) {
	visible := make([]models.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if p.visible == nil || p.visible(t) {
			visible = append(visible, t)
		}
	}
	sortByCreated(visible)

	p.mu.Lock()
	p.tickets = visible
	p.synced = true
	p.lastErr = nil
	p.mu.Unlock()
	p.notify(visible)
}

func (p *Projection) apply(ev feed.Event) {
	p.mu.Lock()
	next := Apply(p.tickets, ev, p.visible)
	p.tickets = next
	p.mu.Unlock()
	p.notify(next)
}

func (p *Projection) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.synced = false
	p.lastErr = err
}

func (p *Projection) notify(snapshot []models.Ticket) {
	p.mu.RLock()
	listeners := p.listeners
	p.mu.RUnlock()
	for _, fn := range listeners {
		fn(snapshot)
	}
}
