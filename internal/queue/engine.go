// Package queue применяет операции над талонами к хранилищу и публикует
// каждое зафиксированное изменение в ленту.
package queue

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"queuecare/internal/feed"
	"queuecare/internal/load"
	"queuecare/internal/models"
	"queuecare/internal/monitoring"
	"queuecare/internal/storage"
)

// EstimatedWait: фиксированная оценка ожидания для нового талона.
const EstimatedWait = 30 * time.Minute

const lockStripes = 64

// publishTimeout ограничивает публикацию после фиксации. Публикация не зависит
// от контекста запроса: зафиксированное изменение должно попасть в ленту, даже
// если клиент уже отключился.
const publishTimeout = 5 * time.Second

type Options struct {
	// Timeout ограничивает каждую операцию; ноль: без ограничения.
	Timeout time.Duration
	// PageSize: верхняя граница выборки ListTickets; ноль: без ограничения.
	PageSize int
	Now      func() time.Time
}

type Engine struct {
	store       storage.TicketStore
	seq         storage.Sequencer
	feed        feed.Publisher
	departments models.Departments
	timeout     time.Duration
	pageSize    int
	now         func() time.Time
	newID       func() string

	// Фиксация и публикация изменений одного талона выполняются под одной
	// блокировкой, поэтому события талона попадают в ленту в порядке фиксации.
	locks [lockStripes]sync.Mutex
}

func NewEngine(store storage.TicketStore, seq storage.Sequencer, pub feed.Publisher, departments models.Departments, opts Options) *Engine {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		store:       store,
		seq:         seq,
		feed:        pub,
		departments: departments,
		timeout:     opts.Timeout,
		pageSize:    opts.PageSize,
		now:         now,
		newID:       func() string { return uuid.NewString() },
	}
}

func (e *Engine) Departments() models.Departments {
	return e.departments
}

// CreateTicket ставит пациента ownerID в очередь отделения.
// Номер, идентификатор, время создания и ожидаемое время назначаются здесь.
func (e *Engine) CreateTicket(ctx context.Context, viewer models.Viewer, ownerID string, priority models.Priority, department string) (ticket *models.Ticket, err error) {
	defer func() { monitoring.RecordOperation("create", err) }()

	if ownerID == "" {
		return nil, ErrMissingOwner
	}
	if !viewer.IsStaff && ownerID != viewer.ID {
		return nil, ErrForbidden
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if !e.departments.Contains(department) {
		return nil, ErrUnknownDepartment
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	number, err := e.seq.Next(ctx)
	if err != nil {
		log.Printf("Не удалось получить номер талона для пациента %s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	now := e.now()
	t := &models.Ticket{
		ID:            e.newID(),
		TicketNumber:  number,
		Department:    department,
		Priority:      priority,
		Status:        models.StatusWaiting,
		EstimatedTime: now.Add(EstimatedWait),
		OwnerID:       ownerID,
		CreatedAt:     now,
	}

	// Талон виден в выборках сразу после записи, поэтому Inserted публикуется
	// под той же блокировкой, что и обновления: Updated не обгонит его в ленте.
	unlock := e.lock(t.ID)
	defer unlock()

	if err := e.store.Create(ctx, t); err != nil {
		log.Printf("Ошибка создания талона %s: %v", t.ID, err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	created := e.reload(ctx, t)
	e.publish(ctx, feed.Inserted{Ticket: *created})
	return created, nil
}

// UpdateTicket перезаписывает изменяемые поля талона. Доступно только персоналу.
// Владелец, номер и время создания не меняются.
func (e *Engine) UpdateTicket(ctx context.Context, viewer models.Viewer, ticket models.Ticket) (updated *models.Ticket, err error) {
	defer func() { monitoring.RecordOperation("update", err) }()

	if !viewer.IsStaff {
		return nil, ErrForbidden
	}
	if ticket.ID == "" {
		return nil, ErrMissingTicketID
	}
	if !ticket.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if !ticket.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if !e.departments.Contains(ticket.Department) {
		return nil, ErrUnknownDepartment
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	unlock := e.lock(ticket.ID)
	defer unlock()

	if err := e.store.Update(ctx, &ticket); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Printf("Обновление талона %s: талон не найден", ticket.ID)
			return nil, ErrTicketNotFound
		}
		log.Printf("Ошибка обновления талона %s: %v", ticket.ID, err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	updated = e.reload(ctx, &ticket)
	e.publish(ctx, feed.Updated{Ticket: *updated})
	return updated, nil
}

// DeleteTicket физически удаляет талон. Пациент может удалить только свой талон.
func (e *Engine) DeleteTicket(ctx context.Context, viewer models.Viewer, id string) (err error) {
	defer func() { monitoring.RecordOperation("delete", err) }()

	if id == "" {
		return ErrMissingTicketID
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	unlock := e.lock(id)
	defer unlock()

	existing, err := e.get(ctx, id)
	if err != nil {
		return err
	}
	if !viewer.CanSee(*existing) {
		return ErrForbidden
	}

	if err := e.store.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrTicketNotFound
		}
		log.Printf("Ошибка удаления талона %s: %v", id, err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	e.publish(ctx, feed.Deleted{ID: id, OwnerID: existing.OwnerID})
	return nil
}

// ListTickets возвращает талоны по убыванию времени создания.
// Пациент видит только свои талоны; чужой OwnerID в фильтре запрещен.
// Размер выборки ограничен PageSize.
func (e *Engine) ListTickets(ctx context.Context, viewer models.Viewer, filter storage.ListFilter) (tickets []models.Ticket, err error) {
	defer func() { monitoring.RecordOperation("list", err) }()
	return e.list(ctx, viewer, filter, true)
}

// Snapshot возвращает все видимые пользователю талоны без ограничения PageSize.
// Используется проекциями и расчетом нагрузки, которым нужен полный набор.
func (e *Engine) Snapshot(ctx context.Context, viewer models.Viewer, filter storage.ListFilter) (tickets []models.Ticket, err error) {
	defer func() { monitoring.RecordOperation("snapshot", err) }()
	return e.list(ctx, viewer, filter, false)
}

func (e *Engine) list(ctx context.Context, viewer models.Viewer, filter storage.ListFilter, paged bool) ([]models.Ticket, error) {
	if !viewer.IsStaff {
		if filter.OwnerID == "" {
			filter.OwnerID = viewer.ID
		}
		if filter.OwnerID != viewer.ID {
			return nil, ErrForbidden
		}
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, fmt.Errorf("%w: negative limit or offset", ErrValidation)
	}
	if paged && e.pageSize > 0 && (filter.Limit == 0 || filter.Limit > e.pageSize) {
		filter.Limit = e.pageSize
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	tickets, err := e.store.List(ctx, filter)
	if err != nil {
		log.Printf("Ошибка получения списка талонов (владелец %q): %v", filter.OwnerID, err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return tickets, nil
}

func (e *Engine) GetTicket(ctx context.Context, viewer models.Viewer, id string) (*models.Ticket, error) {
	if id == "" {
		return nil, ErrMissingTicketID
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	ticket, err := e.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.CanSee(*ticket) {
		return nil, ErrForbidden
	}
	return ticket, nil
}

// DepartmentLoads считает нагрузку отделений по всем талонам, без учета PageSize.
// Доступно только персоналу.
func (e *Engine) DepartmentLoads(ctx context.Context, viewer models.Viewer) ([]load.DepartmentLoad, error) {
	if !viewer.IsStaff {
		return nil, ErrForbidden
	}
	tickets, err := e.Snapshot(ctx, viewer, storage.ListFilter{})
	if err != nil {
		return nil, err
	}
	loads := load.Compute(tickets, e.departments)
	monitoring.RecordDepartmentLoads(loads)
	return loads, nil
}

func (e *Engine) get(ctx context.Context, id string) (*models.Ticket, error) {
	ticket, err := e.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		log.Printf("Ошибка чтения талона %s: %v", id, err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return ticket, nil
}

// reload перечитывает талон вместе с профилем владельца. Если чтение не удалось,
// возвращается записанная версия без профиля.
func (e *Engine) reload(ctx context.Context, written *models.Ticket) *models.Ticket {
	fresh, err := e.store.Get(ctx, written.ID)
	if err != nil {
		log.Printf("Талон %s записан, но не перечитан: %v", written.ID, err)
		return written
	}
	return fresh
}

func (e *Engine) publish(ctx context.Context, ev feed.Event) {
	if e.feed == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := e.feed.Publish(ctx, ev); err != nil {
		log.Printf("Изменение талона %s зафиксировано, но не опубликовано: %v", ev.TicketID(), err)
	}
}

func (e *Engine) lock(id string) func() {
	h := fnv.New32a()
	h.Write([]byte(id))
	mu := &e.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.timeout)
}
