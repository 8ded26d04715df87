package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"queuecare/internal/models"
)

// MemoryStore хранит талоны в памяти процесса. Используется в режиме разработки и в тестах.
type MemoryStore struct {
	mu       sync.RWMutex
	tickets  map[string]models.Ticket
	profiles map[string]models.Profile
	// FailWith, если задан, возвращается из всех операций записи.
	FailWith error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tickets:  make(map[string]models.Ticket),
		profiles: make(map[string]models.Profile),
	}
}

// PutProfile добавляет профиль, который будет подтягиваться к талонам владельца.
func (s *MemoryStore) PutProfile(profile models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.ID] = profile
}

func (s *MemoryStore) Create(ctx context.Context, ticket *models.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return s.FailWith
	}
	if _, exists := s.tickets[ticket.ID]; exists {
		return fmt.Errorf("storage: duplicate ticket id %s", ticket.ID)
	}
	stored := *ticket
	stored.Profile = nil
	s.tickets[ticket.ID] = stored
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, ticket *models.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return s.FailWith
	}
	stored, ok := s.tickets[ticket.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Department = ticket.Department
	stored.Priority = ticket.Priority
	stored.Status = ticket.Status
	stored.IsReady = ticket.IsReady
	s.tickets[ticket.ID] = stored
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return s.FailWith
	}
	if _, ok := s.tickets[id]; !ok {
		return ErrNotFound
	}
	delete(s.tickets, id)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.join(&ticket)
	return &ticket, nil
}

func (s *MemoryStore) List(ctx context.Context, filter ListFilter) ([]models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tickets := make([]models.Ticket, 0, len(s.tickets))
	for _, ticket := range s.tickets {
		if filter.OwnerID != "" && ticket.OwnerID != filter.OwnerID {
			continue
		}
		s.join(&ticket)
		tickets = append(tickets, ticket)
	}

	sort.Slice(tickets, func(i, j int) bool {
		if tickets[i].CreatedAt.Equal(tickets[j].CreatedAt) {
			return tickets[i].TicketNumber > tickets[j].TicketNumber
		}
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(tickets) {
			return []models.Ticket{}, nil
		}
		tickets = tickets[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(tickets) {
		tickets = tickets[:filter.Limit]
	}
	return tickets, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) join(ticket *models.Ticket) {
	if profile, ok := s.profiles[ticket.OwnerID]; ok {
		p := profile
		ticket.Profile = &p
	}
}
