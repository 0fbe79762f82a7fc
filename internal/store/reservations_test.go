package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReservationStore(t *testing.T) (*ReservationStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewReservationStore(rdb, 2*time.Minute), mr
}

func TestReservationStore_Reserve(t *testing.T) {
	store, mr := newReservationStore(t)
	ctx := context.Background()

	ok, err := store.Reserve(ctx, "w-1", "job-1")
	require.NoError(t, err)
	assert.True(t, ok)

	val, err := mr.Get("reservation:worker:w-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", val)
}

func TestReservationStore_Reserve_Conflict(t *testing.T) {
	store, _ := newReservationStore(t)
	ctx := context.Background()

	ok, err := store.Reserve(ctx, "w-1", "job-1")
	require.NoError(t, err)
	require.True(t, ok)

	// A second job cannot claim the same worker while the hold lives.
	ok, err = store.Reserve(ctx, "w-1", "job-2")
	require.NoError(t, err)
	assert.False(t, ok)

	// A different worker is unaffected.
	ok, err = store.Reserve(ctx, "w-2", "job-2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReservationStore_Release(t *testing.T) {
	store, _ := newReservationStore(t)
	ctx := context.Background()

	ok, err := store.Reserve(ctx, "w-1", "job-1")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Release(ctx, "w-1"))

	ok, err = store.Reserve(ctx, "w-1", "job-2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReservationStore_ReserveError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewReservationStore(rdb, time.Minute)

	mock.ExpectSetNX("reservation:worker:w-1", "job-1", time.Minute).SetErr(assert.AnError)

	_, err := store.Reserve(context.Background(), "w-1", "job-1")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationStore_TTLExpiry(t *testing.T) {
	store, mr := newReservationStore(t)
	ctx := context.Background()

	ok, err := store.Reserve(ctx, "w-1", "job-1")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(3 * time.Minute)

	ok, err = store.Reserve(ctx, "w-1", "job-2")
	require.NoError(t, err)
	assert.True(t, ok, "expired reservation should be claimable again")
}
