package feed

import (
	"encoding/json"
	"errors"
	"fmt"

	"queuecare/internal/models"
)

// Event: одно зафиксированное изменение таблицы талонов.
// Закрытый вариант: Inserted, Updated или Deleted.
type Event interface {
	TicketID() string
	isEvent()
}

type Inserted struct {
	Ticket models.Ticket
}

type Updated struct {
	Ticket models.Ticket
}

type Deleted struct {
	ID string
	// OwnerID заполняется, если он известен на момент удаления.
	OwnerID string
}

func (e Inserted) TicketID() string { return e.Ticket.ID }
func (e Updated) TicketID() string  { return e.Ticket.ID }
func (e Deleted) TicketID() string  { return e.ID }

func (Inserted) isEvent() {}
func (Updated) isEvent()  {}
func (Deleted) isEvent()  {}

const (
	TypeInsert = "INSERT"
	TypeUpdate = "UPDATE"
	TypeDelete = "DELETE"
)

var ErrMalformedEvent = errors.New("feed: malformed event")

// envelope повторяет форму postgres_changes: eventType, new, old.
type envelope struct {
	EventType string         `json:"eventType"`
	Table     string         `json:"table"`
	New       *models.Ticket `json:"new,omitempty"`
	Old       *deletedRow    `json:"old,omitempty"`
}

type deletedRow struct {
	ID      string `json:"id"`
	OwnerID string `json:"patient_id,omitempty"`
}

const tableName = "queue_tickets"

func Encode(ev Event) ([]byte, error) {
	env := envelope{Table: tableName}
	switch e := ev.(type) {
	case Inserted:
		t := e.Ticket
		env.EventType, env.New = TypeInsert, &t
	case Updated:
		t := e.Ticket
		env.EventType, env.New = TypeUpdate, &t
	case Deleted:
		env.EventType, env.Old = TypeDelete, &deletedRow{ID: e.ID, OwnerID: e.OwnerID}
	default:
		return nil, fmt.Errorf("%w: unknown event %T", ErrMalformedEvent, ev)
	}
	return json.Marshal(env)
}

// Decode разбирает событие на границе транспорта; дальше по коду ходят только типизированные варианты.
func Decode(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	switch env.EventType {
	case TypeInsert, TypeUpdate:
		if env.New == nil || env.New.ID == "" {
			return nil, fmt.Errorf("%w: %s without ticket", ErrMalformedEvent, env.EventType)
		}
		if env.EventType == TypeInsert {
			return Inserted{Ticket: *env.New}, nil
		}
		return Updated{Ticket: *env.New}, nil
	case TypeDelete:
		if env.Old == nil || env.Old.ID == "" {
			return nil, fmt.Errorf("%w: DELETE without id", ErrMalformedEvent)
		}
		return Deleted{ID: env.Old.ID, OwnerID: env.Old.OwnerID}, nil
	default:
		return nil, fmt.Errorf("%w: unknown eventType %q", ErrMalformedEvent, env.EventType)
	}
}

// OwnerOf возвращает владельца талона, к которому относится событие, если он известен.
func OwnerOf(ev Event) string {
	switch e := ev.(type) {
	case Inserted:
		return e.Ticket.OwnerID
	case Updated:
		return e.Ticket.OwnerID
	case Deleted:
		return e.OwnerID
	}
	return ""
}
