package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgirard/lux-rentals/api/internal/domain"
	"github.com/mgirard/lux-rentals/api/internal/store"
)

// compile-time check: BookingLedger must satisfy the Ledger interface.
var _ store.Ledger = (*store.BookingLedger)(nil)

func bookingFixture(id string, userID int64) domain.Booking {
	return domain.Booking{
		ID:          id,
		UserID:      userID,
		UserName:    "Client Test",
		UserPhone:   "+33987654321",
		VehicleID:   1,
		VehicleName: "BMW XM",
		StartDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:      domain.StatusUpcoming,
		Amount:      5000,
	}
}

func newLedger(t *testing.T) (*store.BookingLedger, *store.MemoryBlobStore) {
	t.Helper()
	blob := store.NewMemoryBlobStore()
	l := store.NewBookingLedger(blob)
	require.NoError(t, l.Load(context.Background()))
	return l, blob
}

func TestBookingLedger_LoadEmpty(t *testing.T) {
	l, _ := newLedger(t)

	assert.Empty(t, l.List())
}

func TestBookingLedger_AppendGet(t *testing.T) {
	l, _ := newLedger(t)
	b := bookingFixture("b1", 2)

	require.NoError(t, l.Append(context.Background(), b))

	got, err := l.Get("b1")
	require.NoError(t, err)
	assert.Equal(t, b, got)

	_, err = l.Get("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingLedger_ListByUser(t *testing.T) {
	l, _ := newLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, bookingFixture("b1", 2)))
	require.NoError(t, l.Append(ctx, bookingFixture("b2", 3)))
	require.NoError(t, l.Append(ctx, bookingFixture("b3", 2)))

	mine := l.ListByUser(2)
	require.Len(t, mine, 2)
	assert.Equal(t, "b1", mine[0].ID)
	assert.Equal(t, "b3", mine[1].ID)

	assert.NotNil(t, l.ListByUser(99))
	assert.Empty(t, l.ListByUser(99))
}

func TestBookingLedger_Replace(t *testing.T) {
	l, _ := newLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, bookingFixture("b1", 2)))

	updated := bookingFixture("b1", 2)
	updated.Amount = 9000
	require.NoError(t, l.Replace(ctx, updated))

	got, err := l.Get("b1")
	require.NoError(t, err)
	assert.Equal(t, 9000.0, got.Amount)

	assert.ErrorIs(t, l.Replace(ctx, bookingFixture("ghost", 2)), domain.ErrNotFound)
}

func TestBookingLedger_Remove(t *testing.T) {
	l, _ := newLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, bookingFixture("b1", 2)))
	require.NoError(t, l.Append(ctx, bookingFixture("b2", 2)))

	require.NoError(t, l.Remove(ctx, "b1"))

	// Hard delete: the record is gone, not status-flipped.
	_, err := l.Get("b1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, l.List(), 1)

	assert.ErrorIs(t, l.Remove(ctx, "b1"), domain.ErrNotFound)
}

// TestBookingLedger_SnapshotRoundTrip verifies that every mutation rewrites
// the snapshot blob so a fresh ledger over the same store sees the full state.
func TestBookingLedger_SnapshotRoundTrip(t *testing.T) {
	l, blob := newLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, bookingFixture("b1", 2)))
	require.NoError(t, l.Append(ctx, bookingFixture("b2", 3)))
	require.NoError(t, l.Remove(ctx, "b1"))

	reloaded := store.NewBookingLedger(blob)
	require.NoError(t, reloaded.Load(ctx))

	list := reloaded.List()
	require.Len(t, list, 1)
	assert.Equal(t, "b2", list[0].ID)
}

// TestBookingLedger_PersistFailureRollsBack verifies that a failed snapshot
// write leaves the in-memory collection unchanged, so memory and blob never
// diverge.
func TestBookingLedger_PersistFailureRollsBack(t *testing.T) {
	blob := &failingBlobStore{BlobStore: store.NewMemoryBlobStore()}
	l := store.NewBookingLedger(blob)
	require.NoError(t, l.Load(context.Background()))

	blob.fail = true
	err := l.Append(context.Background(), bookingFixture("b1", 2))

	require.Error(t, err)
	assert.Empty(t, l.List())
}

// failingBlobStore wraps a BlobStore and fails Set on demand.
type failingBlobStore struct {
	store.BlobStore
	fail bool
}

func (f *failingBlobStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if f.fail {
		return assert.AnError
	}
	return f.BlobStore.Set(ctx, key, value, ttl)
}
