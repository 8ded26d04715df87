package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityAndStatus(t *testing.T) {
	assert.Equal(t, "Urgent", PriorityUrgent.String())
	assert.Equal(t, "Unknown", Priority(3).String())
	assert.False(t, Priority(-1).Valid())

	assert.Equal(t, "In Progress", StatusInProgress.String())
	assert.False(t, Status(7).Valid())
}

func TestViewerCanSee(t *testing.T) {
	ticket := Ticket{ID: "t1", OwnerID: "alice"}

	assert.True(t, Viewer{ID: "alice"}.CanSee(ticket))
	assert.False(t, Viewer{ID: "bob"}.CanSee(ticket))
	assert.True(t, Viewer{ID: "bob", IsStaff: true}.CanSee(ticket))
}

func TestTicketActive(t *testing.T) {
	assert.True(t, Ticket{Status: StatusWaiting}.Active())
	assert.True(t, Ticket{Status: StatusInProgress}.Active())
	assert.False(t, Ticket{Status: StatusCompleted}.Active())
}

func TestDepartmentsLookup(t *testing.T) {
	dept, ok := DefaultDepartments.Lookup("cardiology")
	assert.True(t, ok)
	assert.Equal(t, "Cardiology", dept.Name)
	assert.False(t, DefaultDepartments.Contains("dentistry"))
}

func TestProfileContact(t *testing.T) {
	var missing *Profile
	_, ok := missing.Contact()
	assert.False(t, ok)

	_, ok = (&Profile{FullName: "Alice"}).Contact()
	assert.False(t, ok)

	phone, ok := (&Profile{PhoneNumber: "+100"}).Contact()
	assert.True(t, ok)
	assert.Equal(t, "+100", phone)
}
