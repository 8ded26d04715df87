package storage

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupGormStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStore(db), mock
}

func TestGormStore_DeleteMissing(t *testing.T) {
	store, mock := setupGormStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "queue_tickets" WHERE id = $1`)).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_Delete(t *testing.T) {
	store, mock := setupGormStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "queue_tickets" WHERE id = $1`)).
		WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.Delete(context.Background(), "t1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_UpdateMissing(t *testing.T) {
	store, mock := setupGormStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "queue_tickets" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Update(context.Background(), seedTicket("missing", "alice", time.Now()))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_ListByOwnerPreloadsProfile(t *testing.T) {
	store, mock := setupGormStore(t)
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	ticketRows := sqlmock.NewRows([]string{
		"id", "ticket_number", "department", "priority", "status", "is_ready",
		"estimated_time", "patient_id", "created_at",
	}).AddRow("t1", 4, "cardiology", 2, 0, false, created.Add(30*time.Minute), "alice", created)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "queue_tickets" WHERE patient_id = $1 ORDER BY created_at DESC`)).
		WithArgs("alice").
		WillReturnRows(ticketRows)

	profileRows := sqlmock.NewRows([]string{"id", "full_name", "phone_number", "is_admin"}).
		AddRow("alice", "Alice Smith", "+15550001", false)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "profiles" WHERE "profiles"."id" = $1`)).
		WithArgs("alice").
		WillReturnRows(profileRows)

	tickets, err := store.List(context.Background(), ListFilter{OwnerID: "alice"})
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "cardiology", tickets[0].Department)
	assert.Equal(t, int64(4), tickets[0].TicketNumber)
	require.NotNil(t, tickets[0].Profile)
	assert.Equal(t, "+15550001", tickets[0].Profile.PhoneNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}
