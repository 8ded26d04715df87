package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"queuecare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTicket(id, owner string, createdAt time.Time) *models.Ticket {
	return &models.Ticket{
		ID:            id,
		Department:    "general",
		OwnerID:       owner,
		CreatedAt:     createdAt,
		EstimatedTime: createdAt.Add(30 * time.Minute),
	}
}

func TestMemoryStore_ListOrderAndFilter(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Create(ctx, seedTicket("t1", "alice", base)))
	require.NoError(t, store.Create(ctx, seedTicket("t2", "bob", base.Add(time.Minute))))
	require.NoError(t, store.Create(ctx, seedTicket("t3", "alice", base.Add(2*time.Minute))))

	all, err := store.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"t3", "t2", "t1"}, []string{all[0].ID, all[1].ID, all[2].ID})

	own, err := store.List(ctx, ListFilter{OwnerID: "alice"})
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, "t3", own[0].ID)

	page, err := store.List(ctx, ListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "t2", page[0].ID)

	past, err := store.List(ctx, ListFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestMemoryStore_JoinsProfile(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.PutProfile(models.Profile{ID: "alice", FullName: "Alice Smith", PhoneNumber: "+15550001"})

	require.NoError(t, store.Create(ctx, seedTicket("t1", "alice", time.Now())))

	ticket, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, ticket.Profile)
	assert.Equal(t, "Alice Smith", ticket.Profile.FullName)
}

func TestMemoryStore_UpdateKeepsImmutableFields(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.Create(ctx, seedTicket("t1", "alice", created)))

	update := &models.Ticket{
		ID:         "t1",
		Department: "cardiology",
		Priority:   models.PriorityEmergency,
		Status:     models.StatusInProgress,
		IsReady:    true,
		OwnerID:    "mallory",
		CreatedAt:  created.Add(time.Hour),
	}
	require.NoError(t, store.Update(ctx, update))

	stored, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "cardiology", stored.Department)
	assert.Equal(t, models.PriorityEmergency, stored.Priority)
	assert.Equal(t, models.StatusInProgress, stored.Status)
	assert.True(t, stored.IsReady)
	assert.Equal(t, "alice", stored.OwnerID)
	assert.Equal(t, created, stored.CreatedAt)
}

func TestMemoryStore_MissingTicket(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	assert.ErrorIs(t, store.Delete(ctx, "nope"), ErrNotFound)
	assert.ErrorIs(t, store.Update(ctx, &models.Ticket{ID: "nope"}), ErrNotFound)
	_, err := store.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_FailWith(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.FailWith = errors.New("disk full")

	assert.Error(t, store.Create(ctx, seedTicket("t1", "alice", time.Now())))
	list, err := store.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}
