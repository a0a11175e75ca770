package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-absensi/internal/attendance"
	"go-absensi/internal/config"
	"go-absensi/internal/messaging/kafka"
	"go-absensi/internal/messaging/kafka/producer"
	"go-absensi/internal/report"
	"go-absensi/internal/shared/connection"
	"go-absensi/internal/user"

	"github.com/robfig/cron/v3"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const warmTimeout = 2 * time.Minute

// RunWorker menjalankan publisher outbox ke Kafka serta job cron: pemanasan cache rekap
// bulanan dan pembersihan outbox terkirim.
func RunWorker(cfg config.Config) error {
	logger := zap.L().Named("app.worker")

	gormDB, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	if err := connection.WaitForKafka(cfg.Kafka.Broker, connectRetries); err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, connectRetries)
	if err != nil {
		return err
	}
	defer rdb.Close()

	kafkaWriter := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Kafka.Broker),
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	loc := schoolLocation(cfg)
	reportService := report.NewService(
		attendance.NewRepository(gormDB),
		user.NewRepository(gormDB),
		rdb,
		report.Options{Location: loc, CacheTTL: cfg.Report.CacheTTL},
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	scheduler := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	if _, err := scheduler.AddFunc(cfg.Report.WarmSchedule, func() {
		warmCtx, warmCancel := context.WithTimeout(ctx, warmTimeout)
		defer warmCancel()
		if err := reportService.Warm(warmCtx); err != nil {
			logger.Error("warm monthly report failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule report warm-up %q: %w", cfg.Report.WarmSchedule, err)
	}
	if _, err := scheduler.AddFunc(cfg.Kafka.OutboxPurgeSchedule, func() {
		if err := producer.PurgeSent(ctx, outboxRepo, cfg.Kafka.OutboxRetention, time.Now(), logger); err != nil {
			logger.Error("purge outbox failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule outbox purge %q: %w", cfg.Kafka.OutboxPurgeSchedule, err)
	}
	scheduler.Start()
	logger.Info("worker jobs scheduled",
		zap.String("report_warm", cfg.Report.WarmSchedule),
		zap.String("outbox_purge", cfg.Kafka.OutboxPurgeSchedule),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()
	<-scheduler.Stop().Done()

	return nil
}
