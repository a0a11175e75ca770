package attendance_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-absensi/internal/attendance"
	"go-absensi/internal/geo"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestAttemptStore_Get(t *testing.T) {
	ctx := context.Background()
	userID := "user-1"
	key := attendance.GetAttemptKey(userID)

	t.Run("missing key is idle", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := attendance.NewAttemptStore(rdb, time.Minute)

		mock.ExpectGet(key).RedisNil()

		a, err := store.Get(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, attendance.IdleAttempt(userID), a)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stored attempt", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := attendance.NewAttemptStore(rdb, time.Minute)

		dist := 0.05
		stored := attendance.Attempt{
			ID:         "a-1",
			UserID:     userID,
			State:      attendance.StateLocationResolved,
			Type:       attendance.TypeCheckIn,
			StartedAt:  time.Date(2025, 3, 10, 0, 5, 0, 0, time.UTC),
			Coords:     &geo.Coordinates{Latitude: 4.3316, Longitude: 97.4694},
			DistanceKm: &dist,
		}
		payload, _ := json.Marshal(stored)
		mock.ExpectGet(key).SetVal(string(payload))

		a, err := store.Get(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, "a-1", a.ID)
		assert.Equal(t, attendance.StateLocationResolved, a.State)
		assert.Equal(t, attendance.TypeCheckIn, a.Type)
		assert.True(t, stored.StartedAt.Equal(a.StartedAt))
		assert.Equal(t, stored.Coords, a.Coords)
		assert.Equal(t, dist, *a.DistanceKm)
	})

	t.Run("redis error", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := attendance.NewAttemptStore(rdb, time.Minute)

		mock.ExpectGet(key).SetErr(errors.New("connection refused"))

		_, err := store.Get(ctx, userID)
		assert.Error(t, err)
	})

	t.Run("corrupt payload", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := attendance.NewAttemptStore(rdb, time.Minute)

		mock.ExpectGet(key).SetVal("{not json")

		_, err := store.Get(ctx, userID)
		assert.Error(t, err)
	})
}

func TestAttemptStore_Save(t *testing.T) {
	ctx := context.Background()
	userID := "user-1"
	key := attendance.GetAttemptKey(userID)

	t.Run("active attempt is written with ttl", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := attendance.NewAttemptStore(rdb, 10*time.Minute)

		a := attendance.Attempt{
			ID:        "a-1",
			UserID:    userID,
			State:     attendance.StateAwaitingLocation,
			Type:      attendance.TypeCheckOut,
			StartedAt: time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC),
		}
		payload, _ := json.Marshal(a)
		mock.ExpectSet(key, string(payload), 10*time.Minute).SetVal("OK")

		assert.NoError(t, store.Save(ctx, a))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("idle attempt deletes the key", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := attendance.NewAttemptStore(rdb, 0)

		mock.ExpectDel(key).SetVal(1)

		assert.NoError(t, store.Save(ctx, attendance.IdleAttempt(userID)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("default ttl", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		store := attendance.NewAttemptStore(rdb, 0)

		a := attendance.Attempt{ID: "a-2", UserID: userID, State: attendance.StateSubmitting}
		payload, _ := json.Marshal(a)
		mock.ExpectSet(key, string(payload), 15*time.Minute).SetErr(errors.New("oom"))

		assert.Error(t, store.Save(ctx, a))
	})
}
