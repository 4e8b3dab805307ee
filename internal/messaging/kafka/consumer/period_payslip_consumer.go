package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/itayalasas/hcm-pro-sub001/internal/events"
	"github.com/itayalasas/hcm-pro-sub001/internal/period"
)

// ConsumePeriodComputed archives a payslip PDF for every employee of a
// freshly computed period. Archiving is idempotent: recomputing the period
// re-emits the event and the files are simply overwritten.
func ConsumePeriodComputed(
	ctx context.Context,
	reader *kafkago.Reader,
	periodService period.Service,
	outputDir string,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.period_payslip")
	log.Info("period payslip consumer started", zap.String("output_dir", outputDir))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("period payslip consumer stopped")
				return
			}
			log.Error("fetch period computed message failed", zap.Error(err))
			continue
		}

		var event events.PeriodComputedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode period computed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := archivePayslips(ctx, periodService, outputDir, event); err != nil {
			log.Error("archive payslips failed",
				zap.String("period_id", event.PeriodID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit period computed message failed", zap.Error(err))
			continue
		}

		log.Info("payslips archived",
			zap.String("period_id", event.PeriodID),
			zap.Int("employees", event.EmployeeCount),
		)
	}
}

func archivePayslips(
	ctx context.Context,
	periodService period.Service,
	outputDir string,
	event events.PeriodComputedEvent,
) error {
	details, err := periodService.GetBreakdown(ctx, event.CompanyID, event.PeriodID)
	if err != nil {
		return err
	}

	dir := filepath.Join(outputDir, event.PeriodID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, d := range details {
		pdf, err := periodService.Payslip(ctx, event.CompanyID, event.PeriodID, d.EmployeeID)
		if err != nil {
			return fmt.Errorf("payslip for employee %s: %w", d.EmployeeID, err)
		}
		name := filepath.Join(dir, fmt.Sprintf("payslip-%s.pdf", d.EmployeeID))
		if err := os.WriteFile(name, pdf, 0o644); err != nil {
			return err
		}
	}
	return nil
}
