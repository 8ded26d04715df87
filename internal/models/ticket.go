package models

import "time"

// Ticket: место пациента в очереди отделения.
type Ticket struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	TicketNumber  int64     `gorm:"not null" json:"ticket_number"` // только для отображения
	Department    string    `gorm:"index;not null" json:"department"`
	Priority      Priority  `gorm:"not null" json:"priority"`
	Status        Status    `gorm:"index;not null" json:"status"`
	IsReady       bool      `gorm:"column:is_ready;not null" json:"isReady"`
	EstimatedTime time.Time `gorm:"not null" json:"estimated_time"`
	OwnerID       string    `gorm:"column:patient_id;index;not null" json:"patient_id"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`

	// Профиль владельца подтягивается при чтении и никогда не записывается обратно.
	Profile *Profile `gorm:"foreignKey:OwnerID;references:ID" json:"profiles,omitempty"`
}

func (Ticket) TableName() string {
	return "queue_tickets"
}

// Active сообщает, учитывается ли талон в нагрузке отделения.
func (t Ticket) Active() bool {
	return t.Status != StatusCompleted
}
