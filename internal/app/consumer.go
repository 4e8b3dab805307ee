package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/itayalasas/hcm-pro-sub001/internal/assignment"
	"github.com/itayalasas/hcm-pro-sub001/internal/employee"
	"github.com/itayalasas/hcm-pro-sub001/internal/events"
	"github.com/itayalasas/hcm-pro-sub001/internal/messaging/kafka"
	"github.com/itayalasas/hcm-pro-sub001/internal/messaging/kafka/consumer"
	"github.com/itayalasas/hcm-pro-sub001/internal/period"
	"github.com/itayalasas/hcm-pro-sub001/internal/shared/connection"
	"github.com/itayalasas/hcm-pro-sub001/internal/shared/counter"
)

// RunConsumer listens for computed periods and archives one payslip per
// employee into PAYSLIP_DIR.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	outputDir := os.Getenv("PAYSLIP_DIR")
	if outputDir == "" {
		outputDir = "payslips"
	}

	employeeRepo := employee.NewRepository(gormDB)
	assignmentRepo := assignment.NewRepository(gormDB)
	periodRepo := period.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	periodService := period.NewService(
		sqlDB, periodRepo, employeeRepo, assignmentRepo,
		counterRepo, outboxRepo, computeWorkers(),
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.PeriodComputedTopic,
		GroupID:        "hcm-pro-period-payslip",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePeriodComputed(ctx, reader, periodService, outputDir, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
