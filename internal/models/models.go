package models

// Priority: срочность талона. Хранится как число, как и в исходной таблице queue_tickets.
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityUrgent
	PriorityEmergency
)

var priorityNames = [...]string{"Normal", "Urgent", "Emergency"}

// Valid сообщает, входит ли значение в фиксированный набор приоритетов.
func (p Priority) Valid() bool {
	return p >= PriorityNormal && p <= PriorityEmergency
}

func (p Priority) String() string {
	if !p.Valid() {
		return "Unknown"
	}
	return priorityNames[p]
}

// Status: состояние талона. Меняется только персоналом, автоматических переходов нет.
type Status int

const (
	StatusWaiting Status = iota
	StatusInProgress
	StatusCompleted
)

var statusNames = [...]string{"Waiting", "In Progress", "Completed"}

func (s Status) Valid() bool {
	return s >= StatusWaiting && s <= StatusCompleted
}

func (s Status) String() string {
	if !s.Valid() {
		return "Unknown"
	}
	return statusNames[s]
}

// Viewer: текущий пользователь, от имени которого выполняется операция.
// Передается явно в каждый вызов движка очереди.
type Viewer struct {
	ID      string `json:"id"`
	IsStaff bool   `json:"is_staff"`
}

// CanSee сообщает, виден ли талон этому пользователю.
func (v Viewer) CanSee(t Ticket) bool {
	return v.IsStaff || t.OwnerID == v.ID
}
