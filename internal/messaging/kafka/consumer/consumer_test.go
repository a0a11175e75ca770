package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-absensi/internal/events"
	"go-absensi/internal/messaging/kafka/consumer"
	"go-absensi/internal/period"

	"github.com/stretchr/testify/assert"
)

type recordingInvalidator struct {
	months []period.Month
	all    int
	err    error
}

func (r *recordingInvalidator) InvalidateMonth(ctx context.Context, month period.Month) error {
	r.months = append(r.months, month)
	return r.err
}

func (r *recordingInvalidator) InvalidateAll(ctx context.Context) error {
	r.all++
	return r.err
}

func TestHandleReportEvent(t *testing.T) {
	wib := time.FixedZone("WIB", 7*3600)
	ctx := context.Background()

	t.Run("attendance recorded invalidates month in school timezone", func(t *testing.T) {
		inv := &recordingInvalidator{}
		// 2025-03-31 18:00 UTC == 2025-04-01 01:00 WIB
		ts := time.Date(2025, 3, 31, 18, 0, 0, 0, time.UTC).UnixMilli()
		payload, _ := json.Marshal(events.AttendanceRecordedEvent{RecordID: "r-1", UserID: "u-1", Timestamp: ts})

		err := consumer.HandleReportEvent(ctx, events.AttendanceRecordedTopic, payload, inv, wib)

		assert.NoError(t, err)
		assert.Equal(t, []period.Month{{Year: 2025, Month: time.April}}, inv.months)
	})

	t.Run("user deleted invalidates all months", func(t *testing.T) {
		inv := &recordingInvalidator{}
		payload, _ := json.Marshal(events.UserDeletedEvent{UserID: "u-1", RecordsDeleted: 3})

		err := consumer.HandleReportEvent(ctx, events.UserDeletedTopic, payload, inv, wib)

		assert.NoError(t, err)
		assert.Equal(t, 1, inv.all)
	})

	t.Run("user registered invalidates all months", func(t *testing.T) {
		inv := &recordingInvalidator{}
		payload, _ := json.Marshal(events.UserRegisteredEvent{EventType: "user_registered", UserID: "u-2", Name: "Siti Aminah"})

		err := consumer.HandleReportEvent(ctx, events.UserRegisteredTopic, payload, inv, wib)

		assert.NoError(t, err)
		assert.Equal(t, 1, inv.all)
		assert.Empty(t, inv.months)
	})

	t.Run("undecodable user registered payload", func(t *testing.T) {
		inv := &recordingInvalidator{}
		err := consumer.HandleReportEvent(ctx, events.UserRegisteredTopic, []byte("{"), inv, wib)

		assert.Error(t, err)
		assert.Zero(t, inv.all)
	})

	t.Run("undecodable payload", func(t *testing.T) {
		inv := &recordingInvalidator{}
		err := consumer.HandleReportEvent(ctx, events.UserDeletedTopic, []byte("{"), inv, wib)

		assert.Error(t, err)
		assert.Zero(t, inv.all)
	})

	t.Run("invalidator error propagates", func(t *testing.T) {
		inv := &recordingInvalidator{err: errors.New("redis down")}
		payload, _ := json.Marshal(events.UserDeletedEvent{UserID: "u-1"})

		err := consumer.HandleReportEvent(ctx, events.UserDeletedTopic, payload, inv, wib)
		assert.EqualError(t, err, "redis down")
	})

	t.Run("unknown topic ignored", func(t *testing.T) {
		inv := &recordingInvalidator{}
		assert.NoError(t, consumer.HandleReportEvent(ctx, "other.topic", []byte("x"), inv, wib))
	})
}
