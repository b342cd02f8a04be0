package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhamerreca/backend/internal/ledger"
)

func memEntry(t *testing.T, id string, cents int64, day string) *ledger.Entry {
	t.Helper()
	d, err := ledger.ParseDate(day)
	require.NoError(t, err)
	return &ledger.Entry{
		Id:            id,
		AmountCents:   cents,
		Amount:        float64(cents) / 100,
		Description:   "test " + id,
		Category:      "comida",
		PaymentMethod: ledger.PaymentPix,
		Type:          ledger.TypeExpense,
		Date:          d,
		Status:        ledger.StatusPaid,
		Recurrence:    ledger.RecurrenceOneOff,
	}
}

func TestMemoryStoreInsertAndSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var snapshots [][]*ledger.Entry
	stop, err := s.Subscribe(ctx, func(entries []*ledger.Entry) {
		snapshots = append(snapshots, entries)
	})
	require.NoError(t, err)
	defer stop()

	// Subscribing delivers the current (empty) state immediately.
	require.Len(t, snapshots, 1)
	assert.Empty(t, snapshots[0])

	id, err := s.InsertEntry(ctx, memEntry(t, "e1", 1000, "2026-03-01"))
	require.NoError(t, err)
	assert.Equal(t, "e1", id)

	require.Len(t, snapshots, 2)
	require.Len(t, snapshots[1], 1)
	assert.Equal(t, "e1", snapshots[1][0].Id)
}

func TestMemoryStoreAssignsIds(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	e := memEntry(t, "", 1000, "2026-03-01")
	id, err := s.InsertEntry(ctx, e)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestMemoryStoreBatchIsOneSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var sizes []int
	stop, err := s.Subscribe(ctx, func(entries []*ledger.Entry) {
		sizes = append(sizes, len(entries))
	})
	require.NoError(t, err)
	defer stop()

	batch := []*ledger.Entry{
		memEntry(t, "b1", 100, "2026-01-15"),
		memEntry(t, "b2", 100, "2026-02-15"),
		memEntry(t, "b3", 100, "2026-03-15"),
	}
	ids, err := s.InsertEntries(ctx, batch)
	require.NoError(t, err)
	assert.Len(t, ids, 3)

	// A reader never observes a partially applied batch: the only snapshot
	// after the initial empty one carries all three rows.
	assert.Equal(t, []int{0, 3}, sizes)
}

func TestMemoryStoreUpdateField(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.InsertEntry(ctx, memEntry(t, "e1", 1000, "2026-03-01"))
	require.NoError(t, err)

	require.NoError(t, s.UpdateEntryField(ctx, "e1", FieldStatus, "unpaid"))
	require.NoError(t, s.UpdateEntryField(ctx, "e1", FieldAmountCents, int64(2500)))
	require.NoError(t, s.UpdateEntryField(ctx, "e1", FieldDescription, "mercado"))

	var latest []*ledger.Entry
	stop, err := s.Subscribe(ctx, func(entries []*ledger.Entry) { latest = entries })
	require.NoError(t, err)
	defer stop()

	require.Len(t, latest, 1)
	assert.Equal(t, ledger.StatusUnpaid, latest[0].Status)
	assert.Equal(t, int64(2500), latest[0].AmountCents)
	assert.Equal(t, 25.0, latest[0].Amount, "float mirror follows cents")
	assert.Equal(t, "mercado", latest[0].Description)
}

func TestMemoryStoreUpdateErrors(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.UpdateEntryField(ctx, "ghost", FieldStatus, "paid")
	require.Error(t, err)
	assert.True(t, ledger.IsNotFound(err), "vanished id is a benign race, classified NOT_FOUND")

	_, err = s.InsertEntry(ctx, memEntry(t, "e1", 1000, "2026-03-01"))
	require.NoError(t, err)

	err = s.UpdateEntryField(ctx, "e1", "Id", "hijack")
	require.Error(t, err)
	assert.Equal(t, ledger.ErrValidation, ledger.CodeOf(err))

	err = s.UpdateEntryField(ctx, "e1", FieldDate, "31/03/2026")
	require.Error(t, err)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.InsertEntry(ctx, memEntry(t, "e1", 1000, "2026-03-01"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteEntry(ctx, "e1"))
	// Idempotent: deleting a vanished id succeeds.
	require.NoError(t, s.DeleteEntry(ctx, "e1"))

	var latest []*ledger.Entry
	stop, err := s.Subscribe(ctx, func(entries []*ledger.Entry) { latest = entries })
	require.NoError(t, err)
	defer stop()
	assert.Empty(t, latest)
}

func TestMemoryStoreUnsubscribeStopsDelivery(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	count := 0
	stop, err := s.Subscribe(ctx, func([]*ledger.Entry) { count++ })
	require.NoError(t, err)
	stop()

	_, err = s.InsertEntry(ctx, memEntry(t, "e1", 1000, "2026-03-01"))
	require.NoError(t, err)
	assert.Equal(t, 1, count, "only the initial snapshot arrives after stop")
}

func TestMemoryStoreSnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.InsertEntry(ctx, memEntry(t, "e1", 1000, "2026-03-01"))
	require.NoError(t, err)

	var first []*ledger.Entry
	stop, err := s.Subscribe(ctx, func(entries []*ledger.Entry) {
		if first == nil {
			first = entries
		}
	})
	require.NoError(t, err)
	defer stop()

	// Mutating a delivered snapshot never leaks back into the store.
	first[0].AmountCents = 999999

	var latest []*ledger.Entry
	stop2, err := s.Subscribe(ctx, func(entries []*ledger.Entry) { latest = entries })
	require.NoError(t, err)
	defer stop2()
	assert.Equal(t, int64(1000), latest[0].AmountCents)
}

func TestMemoryStoreCategories(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.PutCategory(ctx, ledger.Category{Id: "pets", Label: "Bichos", Type: ledger.TypeExpense}))
	require.NoError(t, s.PutCategory(ctx, ledger.Category{Id: "acad", Label: "Academia", Type: ledger.TypeExpense}))

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "acad", categories[0].Id, "ordered by id")

	require.NoError(t, s.DeleteCategory(ctx, "pets"))
	categories, err = s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}
