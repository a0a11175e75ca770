package producer

import (
	"context"
	"time"

	"go-absensi/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	outboxBatchSize     = 50
	defaultPollInterval = 3 * time.Second
)

// ProcessOutboxEvents mem-poll outbox sampai ctx selesai. Event gagal dicoba ulang dengan
// backoff sampai kafka.MaxPublishAttempts, setelah itu berstatus dead.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if err := processPendingEvents(ctx, repo, writer, log); err != nil {
				log.Error("process outbox events failed", zap.Error(err))
			}
		}
	}
}

// ProcessPendingOnce menjalankan satu putaran publish outbox.
func ProcessPendingOnce(ctx context.Context, repo kafka.OutboxRepository, writer MessageWriter, logger *zap.Logger) error {
	return processPendingEvents(ctx, repo, writer, logger)
}

func processPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) error {
	pending, err := repo.ListPending(ctx, outboxBatchSize)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	var sent, failed int
	for _, event := range pending {
		if ctx.Err() != nil {
			break
		}
		log := logger.With(
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
			zap.String("request_id", event.RequestID),
		)

		if err := publishEvent(ctx, writer, event); err != nil {
			failed++
			log.Error("publish outbox event failed", zap.Error(err))
			if markErr := repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				log.Error("mark outbox failed failed", zap.Error(markErr))
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			// event sudah terkirim; consumer idempoten terhadap kiriman ulang
			log.Error("mark outbox sent failed", zap.Error(err))
			continue
		}
		sent++
		log.Debug("outbox event sent")
	}

	logger.Info("outbox batch processed",
		zap.Int("pending", len(pending)),
		zap.Int("sent", sent),
		zap.Int("failed", failed),
	)
	return nil
}

// PurgeSent menghapus event terkirim yang lebih tua dari retention, relatif ke now.
func PurgeSent(ctx context.Context, repo kafka.OutboxRepository, retention time.Duration, now time.Time, logger *zap.Logger) error {
	if retention <= 0 {
		return nil
	}
	cutoff := now.Add(-retention)
	n, err := repo.PurgeSent(ctx, cutoff)
	if err != nil {
		return err
	}
	logger.Info("outbox purged", zap.Int64("deleted", n), zap.Time("before", cutoff))
	return nil
}
