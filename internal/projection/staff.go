package projection

import (
	"slices"
	"sync"

	"queuecare/internal/load"
	"queuecare/internal/models"
	"queuecare/internal/storage"
)

// Staff держит проекцию персонала: все талоны и нагрузка отделений, пересчитываемая
// после каждого применённого изменения.
type Staff struct {
	*Projection
	departments models.Departments

	mu     sync.RWMutex
	loads  []load.DepartmentLoad
	active int
	onLoad []func([]load.DepartmentLoad)
}

func NewStaff(source Source, departments models.Departments, opts Options) *Staff {
	s := &Staff{
		Projection:  newProjection(source, storage.ListFilter{}, nil, opts),
		departments: departments,
		loads:       load.Compute(nil, departments),
	}
	s.Projection.OnChange(s.recompute)
	return s
}

// OnLoad регистрирует обработчик новой нагрузки. Регистрировать нужно до Start.
func (s *Staff) OnLoad(fn func([]load.DepartmentLoad)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLoad = append(s.onLoad, fn)
}

func (s *Staff) Loads() []load.DepartmentLoad {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.loads)
}

// ActiveCount: число талонов не в статусе Completed.
func (s *Staff) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *Staff) recompute(tickets []models.Ticket) {
	loads := load.Compute(tickets, s.departments)
	active := 0
	for _, t := range tickets {
		if t.Active() {
			active++
		}
	}

	s.mu.Lock()
	s.loads = loads
	s.active = active
	listeners := s.onLoad
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(loads)
	}
}
