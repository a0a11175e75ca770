package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-absensi/internal/events"
	"go-absensi/internal/period"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ReportCacheInvalidator dipenuhi oleh report.Service.
type ReportCacheInvalidator interface {
	InvalidateMonth(ctx context.Context, month period.Month) error
	InvalidateAll(ctx context.Context) error
}

// HandleReportEvent menerjemahkan satu event domain menjadi invalidasi cache rekap.
// Topic yang tidak dikenal diabaikan.
func HandleReportEvent(
	ctx context.Context,
	topic string,
	value []byte,
	invalidator ReportCacheInvalidator,
	loc *time.Location,
) error {
	switch topic {
	case events.AttendanceRecordedTopic:
		var event events.AttendanceRecordedEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return fmt.Errorf("%w: %v", errUndecodable, err)
		}
		month := period.MonthOf(time.UnixMilli(event.Timestamp).In(loc))
		return invalidator.InvalidateMonth(ctx, month)

	case events.UserDeletedTopic:
		var event events.UserDeletedEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return fmt.Errorf("%w: %v", errUndecodable, err)
		}
		// record user bisa tersebar di banyak bulan
		return invalidator.InvalidateAll(ctx)

	case events.UserRegisteredTopic:
		var event events.UserRegisteredEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return fmt.Errorf("%w: %v", errUndecodable, err)
		}
		// guru baru belum punya baris di rekap yang sudah di-cache
		return invalidator.InvalidateAll(ctx)
	}
	return nil
}

func ConsumeReportInvalidation(
	ctx context.Context,
	reader *kafkago.Reader,
	invalidator ReportCacheInvalidator,
	loc *time.Location,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.report_cache")
	log.Info("report cache consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("report cache consumer stopped")
				return
			}
			log.Error("fetch report event failed", zap.Error(err))
			continue
		}

		if err := HandleReportEvent(ctx, msg.Topic, msg.Value, invalidator, loc); err != nil {
			if isUndecodable(err) {
				log.Error("decode report event failed, skipping",
					zap.String("topic", msg.Topic),
					zap.Error(err),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("invalidate report cache failed",
				zap.String("topic", msg.Topic),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit report event failed", zap.Error(err))
			continue
		}

		log.Debug("report cache invalidated", zap.String("topic", msg.Topic), zap.ByteString("key", msg.Key))
	}
}
