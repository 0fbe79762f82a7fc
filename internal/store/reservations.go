// internal/store/reservations.go
package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReservationStore serializes worker assignment across concurrent
// optimize calls with short-TTL Redis locks. A worker that cannot be
// reserved is treated as infeasible for the calling optimization; the
// TTL releases reservations abandoned by crashed callers.
type ReservationStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewReservationStore(rdb *redis.Client, ttl time.Duration) *ReservationStore {
	return &ReservationStore{redis: rdb, ttl: ttl}
}

func reservationKey(workerID string) string {
	return "reservation:worker:" + workerID
}

// Reserve atomically claims the worker for the given job. Returns
// false without error when another call already holds the worker.
func (s *ReservationStore) Reserve(ctx context.Context, workerID, jobID string) (bool, error) {
	return s.redis.SetNX(ctx, reservationKey(workerID), jobID, s.ttl).Result()
}

// Release drops the worker's reservation.
func (s *ReservationStore) Release(ctx context.Context, workerID string) error {
	return s.redis.Del(ctx, reservationKey(workerID)).Err()
}
