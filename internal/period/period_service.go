package period

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/itayalasas/hcm-pro-sub001/internal/assignment"
	"github.com/itayalasas/hcm-pro-sub001/internal/employee"
	"github.com/itayalasas/hcm-pro-sub001/internal/events"
	"github.com/itayalasas/hcm-pro-sub001/internal/messaging/kafka"
	perioderrors "github.com/itayalasas/hcm-pro-sub001/internal/period/errors"
	"github.com/itayalasas/hcm-pro-sub001/internal/shared/apperror"
	"github.com/itayalasas/hcm-pro-sub001/internal/shared/contextutil"
	"github.com/itayalasas/hcm-pro-sub001/internal/shared/counter"
)

const (
	periodCounterType     = "payroll_period"
	defaultComputeWorkers = 4
	releaseClaimTimeout   = 5 * time.Second
)

type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreatePeriodRequest) (PeriodResponse, error)
	GetAll(ctx context.Context, companyID string) ([]PeriodResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PeriodResponse, error)
	GetBreakdown(ctx context.Context, companyID, id string) ([]DetailResponse, error)
	Compute(ctx context.Context, companyID, actorID, id string) (ComputeResultResponse, error)
	Transition(ctx context.Context, companyID, actorID, id, target string) (PeriodResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	Payslip(ctx context.Context, companyID, periodID, employeeID string) ([]byte, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	employees   employee.Repository
	assignments assignment.Repository
	counters    counter.Repository
	outbox      kafka.OutboxRepository
	workers     int
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	assignments assignment.Repository,
	counters counter.Repository,
	outbox kafka.OutboxRepository,
	workers int,
) Service {
	if workers <= 0 {
		workers = defaultComputeWorkers
	}
	return &service{
		db:          db,
		repo:        repo,
		employees:   employees,
		assignments: assignments,
		counters:    counters,
		outbox:      outbox,
		workers:     workers,
		logger:      zap.L().Named("period.service"),
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreatePeriodRequest,
) (PeriodResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PeriodResponse{}, perioderrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PeriodResponse{}, apperror.New(apperror.CodeInvalidInput, "invalid actor id", http.StatusBadRequest)
	}

	switch req.PeriodType {
	case TypeWeekly, TypeBiweekly, TypeMonthly, TypeBimonthly:
	default:
		return PeriodResponse{}, perioderrors.ErrInvalidPeriodType
	}

	startDate, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		return PeriodResponse{}, err
	}
	endDate, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		return PeriodResponse{}, err
	}
	paymentDate, err := parseDate(req.PaymentDate, "payment_date")
	if err != nil {
		return PeriodResponse{}, err
	}
	if endDate.Before(startDate) {
		return PeriodResponse{}, perioderrors.ErrInvalidDateRange
	}

	scopeType := req.ScopeType
	if scopeType == "" {
		scopeType = ScopeAllActive
	}
	if scopeType != ScopeAllActive && scopeType != ScopeSelected {
		return PeriodResponse{}, perioderrors.ErrInvalidScope
	}
	if scopeType == ScopeSelected && len(req.EmployeeIDs) == 0 {
		return PeriodResponse{}, perioderrors.ErrInvalidScope
	}

	name := req.Name
	if name == "" {
		seq, err := s.counters.GetNextValue(ctx, companyID, periodCounterType)
		if err != nil {
			return PeriodResponse{}, err
		}
		name = fmt.Sprintf("NOM-%06d", seq)
	}

	p := &Period{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		Name:        name,
		PeriodType:  req.PeriodType,
		StartDate:   startDate,
		EndDate:     endDate,
		PaymentDate: paymentDate,
		Status:      StatusDraft,
		ScopeType:   scopeType,
		CreatedBy:   actorUUID,
	}

	for _, id := range req.EmployeeIDs {
		employeeUUID, err := uuid.Parse(id)
		if err != nil {
			return PeriodResponse{}, apperror.New(
				apperror.CodeInvalidInput,
				fmt.Sprintf("invalid employee id %q in scope", id),
				http.StatusBadRequest,
			)
		}
		p.ScopeEmployees = append(p.ScopeEmployees, PeriodEmployee{
			ID:         uuid.New(),
			PeriodID:   p.ID,
			CompanyID:  companyUUID,
			EmployeeID: employeeUUID,
		})
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("create period persist failed", zap.Error(err))
		return PeriodResponse{}, err
	}

	return toPeriodResponse(p), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]PeriodResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, perioderrors.ErrInvalidCompanyID
	}
	periods, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]PeriodResponse, 0, len(periods))
	for i := range periods {
		out = append(out, toPeriodResponse(&periods[i]))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PeriodResponse, error) {
	p, err := s.find(ctx, companyID, id)
	if err != nil {
		return PeriodResponse{}, err
	}
	return toPeriodResponse(p), nil
}

func (s *service) GetBreakdown(ctx context.Context, companyID, id string) ([]DetailResponse, error) {
	if _, err := s.find(ctx, companyID, id); err != nil {
		return nil, err
	}
	details, err := s.repo.FindDetails(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	out := make([]DetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toDetailResponse(d))
	}
	return out, nil
}

// Compute claims the period, runs the per-employee calculation across a
// bounded worker pool, persists each employee's result as it completes, and
// finalizes totals plus a computed event. Concept-level failures degrade
// gracefully: the employee and the run both continue. Only infrastructure
// errors abort, and then every already-persisted detail stays in place.
func (s *service) Compute(
	ctx context.Context,
	companyID, actorID, id string,
) (ComputeResultResponse, error) {
	p, err := s.find(ctx, companyID, id)
	if err != nil {
		return ComputeResultResponse{}, err
	}
	if !CanCompute(p.Status) {
		return ComputeResultResponse{}, perioderrors.ErrPeriodLocked
	}

	claimed, err := s.repo.ClaimCompute(ctx, companyID, id)
	if err != nil {
		return ComputeResultResponse{}, err
	}
	if !claimed {
		return ComputeResultResponse{}, perioderrors.ErrComputeInProgress
	}

	snaps, err := s.resolveScope(ctx, companyID, p)
	if err != nil {
		s.release(ctx, companyID, id)
		return ComputeResultResponse{}, err
	}
	if len(snaps) == 0 {
		s.release(ctx, companyID, id)
		return ComputeResultResponse{}, perioderrors.ErrEmptyScope
	}

	results := make([]EmployeeResult, len(snaps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, snap := range snaps {
		i, snap := i, snap
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			concepts, err := s.assignments.ListActiveConcepts(gctx, companyID, snap.ID.String())
			if err != nil {
				return fmt.Errorf("load concepts for employee %s: %w", snap.ID, err)
			}
			res := calculateEmployee(*p, snap, concepts)
			if err := s.repo.SaveEmployeeResult(gctx, &res.Detail, res.Concepts); err != nil {
				return fmt.Errorf("persist result for employee %s: %w", snap.ID, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.release(ctx, companyID, id)
		s.logger.Error("period computation aborted",
			zap.String("period_id", id), zap.Error(err))
		return ComputeResultResponse{}, apperror.Wrap(
			err, apperror.CodeInternalError,
			"period computation aborted", http.StatusInternalServerError,
		)
	}

	totals := foldTotals(results)
	if err := s.repo.FinalizeCompute(ctx, companyID, id, totals); err != nil {
		s.release(ctx, companyID, id)
		return ComputeResultResponse{}, err
	}

	var issues []ComputeIssue
	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
		issues = append(issues, r.Issues...)
	}

	s.emitComputed(ctx, companyID, actorID, id, len(snaps), failed, totals)

	updated, err := s.find(ctx, companyID, id)
	if err != nil {
		return ComputeResultResponse{}, err
	}

	s.logger.Info("period computed",
		zap.String("period_id", id),
		zap.Int("employees", len(snaps)),
		zap.Int("failed", failed),
		zap.String("total_net", totals.Net.StringFixed(2)),
	)

	return ComputeResultResponse{
		Period:        toPeriodResponse(updated),
		EmployeeCount: len(snaps),
		FailedCount:   failed,
		Issues:        toIssueResponses(issues),
	}, nil
}

func (s *service) Transition(
	ctx context.Context,
	companyID, actorID, id, target string,
) (PeriodResponse, error) {
	if !ValidStatus(target) {
		return PeriodResponse{}, apperror.New(
			apperror.CodeInvalidInput,
			fmt.Sprintf("unknown target status %q", target),
			http.StatusBadRequest,
		)
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PeriodResponse{}, apperror.New(apperror.CodeInvalidInput, "invalid actor id", http.StatusBadRequest)
	}

	p, err := s.find(ctx, companyID, id)
	if err != nil {
		return PeriodResponse{}, err
	}

	if target == StatusCalculated {
		// Reaching CALCULATED goes through Compute, never a direct move.
		return PeriodResponse{}, perioderrors.IllegalTransition(p.Status, target)
	}
	if !CanTransition(p.Status, target) {
		return PeriodResponse{}, perioderrors.IllegalTransition(p.Status, target)
	}
	if p.Computing {
		return PeriodResponse{}, perioderrors.ErrComputeInProgress
	}

	now := time.Now().UTC()
	switch target {
	case StatusApproved:
		p.Status = StatusApproved
		p.ApprovedBy = &actorUUID
		p.ApprovedAt = &now
	case StatusPaid:
		p.Status = StatusPaid
		p.PaidAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, p); err != nil {
		return PeriodResponse{}, err
	}

	if target == StatusPaid {
		s.emitPaid(ctx, companyID, actorID, id)
	}

	s.logger.Info("period transitioned",
		zap.String("period_id", id), zap.String("status", target))

	return toPeriodResponse(p), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	p, err := s.find(ctx, companyID, id)
	if err != nil {
		return err
	}
	if !CanDelete(p.Status) {
		return perioderrors.ErrDeleteLocked
	}
	if p.Computing {
		return perioderrors.ErrComputeInProgress
	}
	return s.repo.DeleteCascade(ctx, companyID, id)
}

func (s *service) resolveScope(ctx context.Context, companyID string, p *Period) ([]employee.Snapshot, error) {
	if p.ScopeType == ScopeSelected {
		ids, err := s.repo.ListScopeEmployeeIDs(ctx, companyID, p.ID.String())
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, nil
		}
		return s.employees.ListSnapshotsByIDs(ctx, companyID, ids)
	}
	return s.employees.ListActiveSnapshots(ctx, companyID)
}

// release clears the compute claim on a detached context: an aborted run is
// often aborted precisely because the request context died, and the claim
// must still be freed or the period stays wedged behind ErrComputeInProgress.
func (s *service) release(ctx context.Context, companyID, id string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseClaimTimeout)
	defer cancel()
	if err := s.repo.ReleaseCompute(ctx, companyID, id); err != nil {
		s.logger.Error("release compute claim failed",
			zap.String("period_id", id), zap.Error(err))
	}
}

func (s *service) emitComputed(ctx context.Context, companyID, actorID, id string, employees, failed int, totals Totals) {
	payload, err := json.Marshal(events.PeriodComputedEvent{
		EventType:     "period.computed",
		RequestID:     contextutil.GetRequestID(ctx),
		PeriodID:      id,
		CompanyID:     companyID,
		EmployeeCount: employees,
		FailedCount:   failed,
		TotalNet:      totals.Net.StringFixed(2),
		ComputedBy:    actorID,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("marshal computed event failed", zap.Error(err))
		return
	}
	s.enqueue(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll_period",
		AggregateID:   id,
		EventType:     "period.computed",
		Topic:         events.PeriodComputedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) emitPaid(ctx context.Context, companyID, actorID, id string) {
	payload, err := json.Marshal(events.PeriodPaidEvent{
		EventType:  "period.paid",
		RequestID:  contextutil.GetRequestID(ctx),
		PeriodID:   id,
		CompanyID:  companyID,
		PaidBy:     actorID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("marshal paid event failed", zap.Error(err))
		return
	}
	s.enqueue(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll_period",
		AggregateID:   id,
		EventType:     "period.paid",
		Topic:         events.PeriodPaidTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// enqueue writes to the outbox outside the main state change. The state
// change is the source of truth; a failed enqueue is logged and the event is
// dropped rather than failing the request.
func (s *service) enqueue(ctx context.Context, event kafka.OutboxEvent) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("outbox tx begin failed", zap.Error(err))
		return
	}
	defer tx.Rollback()

	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("outbox enqueue failed",
			zap.String("event_type", event.EventType), zap.Error(err))
		return
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("outbox tx commit failed", zap.Error(err))
	}
}

func (s *service) find(ctx context.Context, companyID, id string) (*Period, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, perioderrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, perioderrors.ErrInvalidPeriodID
	}
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, perioderrors.ErrPeriodNotFound
		}
		return nil, err
	}
	return p, nil
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperror.New(
			apperror.CodeInvalidInput,
			fmt.Sprintf("%s must be a valid date in YYYY-MM-DD format", field),
			http.StatusBadRequest,
		)
	}
	return t, nil
}
