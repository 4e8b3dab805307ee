package assignment

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	assignmenterrors "github.com/itayalasas/hcm-pro-sub001/internal/assignment/errors"
)

type Service interface {
	Assign(ctx context.Context, companyID string, req CreateAssignmentRequest) (AssignmentResponse, error)
	GetByEmployee(ctx context.Context, companyID, employeeID string) ([]AssignmentResponse, error)
	Unassign(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{
		db:     db,
		repo:   repo,
		logger: zap.L().Named("assignment.service"),
	}
}

func (s *service) Assign(
	ctx context.Context,
	companyID string,
	req CreateAssignmentRequest,
) (AssignmentResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AssignmentResponse{}, assignmenterrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AssignmentResponse{}, assignmenterrors.ErrInvalidEmployeeID
	}
	conceptUUID, err := uuid.Parse(req.ConceptID)
	if err != nil {
		return AssignmentResponse{}, assignmenterrors.ErrInvalidConceptID
	}

	exists, err := s.repo.Exists(ctx, companyID, req.EmployeeID, req.ConceptID)
	if err != nil {
		return AssignmentResponse{}, err
	}
	if exists {
		return AssignmentResponse{}, assignmenterrors.ErrAlreadyAssigned
	}

	a := &Assignment{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		ConceptID:  conceptUUID,
		Position:   req.Position,
		Active:     true,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		// The Exists pre-check can race a concurrent assign; the unique
		// (employee_id, concept_id) index is the actual guarantee.
		if isUniqueAssignmentViolation(err) {
			return AssignmentResponse{}, assignmenterrors.ErrAlreadyAssigned
		}
		s.logger.Error("create assignment persist failed", zap.Error(err))
		return AssignmentResponse{}, err
	}

	return mapToResponse(*a), nil
}

func isUniqueAssignmentViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "employee_concept")
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "employee_concept")
}

func (s *service) GetByEmployee(ctx context.Context, companyID, employeeID string) ([]AssignmentResponse, error) {
	assignments, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]AssignmentResponse, len(assignments))
	for i, a := range assignments {
		resp[i] = mapToResponse(a)
	}
	return resp, nil
}

func (s *service) Unassign(ctx context.Context, companyID, id string) error {
	return s.repo.Delete(ctx, companyID, id)
}

func mapToResponse(a Assignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:         a.ID.String(),
		CompanyID:  a.CompanyID.String(),
		EmployeeID: a.EmployeeID.String(),
		ConceptID:  a.ConceptID.String(),
		Position:   a.Position,
		Active:     a.Active,
	}

	if a.Concept != nil {
		name := a.Concept.Name
		category := string(a.Concept.Category)
		resp.ConceptName = &name
		resp.Category = &category
	}

	return resp
}
