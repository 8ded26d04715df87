package projection

import (
	"slices"

	"queuecare/internal/feed"
	"queuecare/internal/models"
)

// Apply применяет событие ленты к снимку и возвращает новый снимок; исходный
// срез не изменяется. Снимок упорядочен по убыванию created_at.
//
//   - Inserted заменяет запись с тем же id, если она уже есть (повторная доставка
//     после начальной выборки), иначе добавляет талон.
//   - Updated заменяет запись; для отсутствующего id событие отбрасывается.
//   - Deleted удаляет запись; для отсутствующего id ничего не происходит.
//
// Талоны, для которых visible возвращает false, в снимок не попадают.
func Apply(tickets []models.Ticket, ev feed.Event, visible func(models.Ticket) bool) []models.Ticket {
	switch e := ev.(type) {
	case feed.Inserted:
		if visible != nil && !visible(e.Ticket) {
			return tickets
		}
		next := without(tickets, e.Ticket.ID)
		next = append(next, e.Ticket)
		sortByCreated(next)
		return next
	case feed.Updated:
		idx := indexOf(tickets, e.Ticket.ID)
		if idx < 0 {
			return tickets
		}
		if visible != nil && !visible(e.Ticket) {
			return without(tickets, e.Ticket.ID)
		}
		next := slices.Clone(tickets)
		next[idx] = e.Ticket
		sortByCreated(next)
		return next
	case feed.Deleted:
		if indexOf(tickets, e.ID) < 0 {
			return tickets
		}
		return without(tickets, e.ID)
	}
	return tickets
}

func indexOf(tickets []models.Ticket, id string) int {
	return slices.IndexFunc(tickets, func(t models.Ticket) bool { return t.ID == id })
}

func without(tickets []models.Ticket, id string) []models.Ticket {
	next := make([]models.Ticket, 0, len(tickets)+1)
	for _, t := range tickets {
		if t.ID != id {
			next = append(next, t)
		}
	}
	return next
}

func sortByCreated(tickets []models.Ticket) {
	slices.SortStableFunc(tickets, func(a, b models.Ticket) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
