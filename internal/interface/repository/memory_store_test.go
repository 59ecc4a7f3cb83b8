package repository

import (
	"context"
	"testing"
	"time"

	"airops-service/internal/domain/entity"
	"airops-service/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_Passengers(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore([]entity.Flight{{ID: "F1", FlightNumber: "BT 101"}})
	passengers := store.Passengers()

	require.NoError(t, passengers.CreateBookings(ctx, []entity.Passenger{
		{ID: "p1", PNR: "ABC123", FirstName: "JOHN", LastName: "DOE", FlightID: "F1", BagStatus: entity.BagStatusNone},
		{ID: "p2", PNR: "ZZZ999", FirstName: "JANE", LastName: "ROE", FlightID: "F1", BagStatus: entity.BagStatusNone},
	}))

	exists, err := passengers.ExistsPNR(ctx, "ABC123")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, passengers.UpdateBagCount(ctx, "p1", 2))
	rows, err := passengers.FindByPNR(ctx, "ABC123")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].BagCount)
	assert.Equal(t, entity.BagStatusBooked, rows[0].BagStatus)
	assert.False(t, rows[0].CreatedAt.IsZero())

	err = passengers.UpdateBagCount(ctx, "missing", 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, passengers.UpdateBagStatus(ctx, "p1", 3, entity.BagStatusChecked))
	require.NoError(t, passengers.UpdateBagCount(ctx, "p1", 1))
	rows, err = passengers.FindByPNR(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, 3, rows[0].BagCount)
	assert.Equal(t, entity.BagStatusChecked, rows[0].BagStatus)
}

func TestSessionStore_LostItemsAreCopied(t *testing.T) {
	ctx := context.Background()
	items := NewSessionStore(nil).LostItems()

	item := &entity.LostItem{ID: "i1", ItemNumber: "LF-2026-0001", FileReference: "FRN00001", Status: entity.ItemFound}
	require.NoError(t, items.Create(ctx, item))
	assert.ErrorIs(t, items.Create(ctx, item), repository.ErrDuplicate)

	found, err := items.FindByID(ctx, "i1")
	require.NoError(t, err)
	found.Status = entity.ItemClaimed

	again, err := items.FindByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, entity.ItemFound, again.Status)

	byFRN, err := items.FindByFRN(ctx, "FRN00001")
	require.NoError(t, err)
	assert.Len(t, byFRN, 1)

	listed, err := items.List(ctx, entity.LostItemFilter{Query: "lf-2026"})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestSessionStore_LostItemUpdateIsConditional(t *testing.T) {
	ctx := context.Background()
	items := NewSessionStore(nil).LostItems()

	item := &entity.LostItem{ID: "i1", ItemNumber: "LF-2026-0001", Status: entity.ItemFound}
	require.NoError(t, items.Create(ctx, item))

	claimed := *item
	claimed.Status = entity.ItemClaimed
	require.NoError(t, items.Update(ctx, &claimed, entity.ItemFound))

	// a second writer that also read FOUND loses
	archived := *item
	archived.Status = entity.ItemArchived
	assert.ErrorIs(t, items.Update(ctx, &archived, entity.ItemFound), entity.ErrInvalidTransition)

	stored, err := items.FindByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, entity.ItemClaimed, stored.Status)

	missing := &entity.LostItem{ID: "nope", Status: entity.ItemClosed}
	assert.ErrorIs(t, items.Update(ctx, missing, entity.ItemFound), repository.ErrNotFound)
}

func TestSessionStore_Sequences(t *testing.T) {
	ctx := context.Background()
	items := NewSessionStore(nil).LostItems()

	first, _ := items.NextSequence(ctx, "bags")
	second, _ := items.NextSequence(ctx, "bags")
	other, _ := items.NextSequence(ctx, "items")

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	assert.Equal(t, 1, other)
}

func TestSessionStore_LogsNewestFirst(t *testing.T) {
	ctx := context.Background()
	logs := NewSessionStore(nil).Logs()
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, logs.Append(ctx, &entity.LogEntry{ID: "1", Timestamp: base, ItemID: "i1", Message: "created"}))
	require.NoError(t, logs.Append(ctx, &entity.LogEntry{ID: "2", Timestamp: base.Add(time.Minute), Message: "other"}))
	require.NoError(t, logs.Append(ctx, &entity.LogEntry{ID: "3", Timestamp: base.Add(2 * time.Minute), ItemID: "i1", Message: "claimed"}))

	recent, err := logs.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "3", recent[0].ID)

	trail, err := logs.FindByItemID(ctx, "i1")
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, "created", trail[0].Message)
	assert.Equal(t, "claimed", trail[1].Message)
}

func TestSessionStore_SentEmails(t *testing.T) {
	ctx := context.Background()
	emails := NewSessionStore(nil).SentEmails()

	_, err := emails.FindLastByPNR(ctx, "ABC123")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, emails.Save(ctx, &entity.SentEmail{ID: "e1", PNR: "ABC123", To: "a@example.com"}))
	require.NoError(t, emails.Save(ctx, &entity.SentEmail{ID: "e2", PNR: "ABC123", To: "b@example.com"}))

	last, err := emails.FindLastByPNR(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", last.To)
}
