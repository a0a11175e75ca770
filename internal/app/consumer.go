package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-absensi/internal/attendance"
	"go-absensi/internal/config"
	"go-absensi/internal/events"
	"go-absensi/internal/messaging/kafka/consumer"
	"go-absensi/internal/report"
	"go-absensi/internal/shared/connection"
	"go-absensi/internal/user"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer membaca event absensi & penghapusan user lalu membuang cache rekap terkait.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

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

	loc := schoolLocation(cfg)
	reportService := report.NewService(
		attendance.NewRepository(gormDB),
		user.NewRepository(gormDB),
		rdb,
		report.Options{Location: loc, CacheTTL: cfg.Report.CacheTTL},
		logger,
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		GroupID:        "go-absensi-report-cache",
		GroupTopics:    []string{events.AttendanceRecordedTopic, events.UserDeletedTopic, events.UserRegisteredTopic},
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeReportInvalidation(ctx, reader, reportService, loc, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
