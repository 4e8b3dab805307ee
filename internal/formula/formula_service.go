package formula

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	formulaerrors "github.com/itayalasas/hcm-pro-sub001/internal/formula/errors"
	"github.com/itayalasas/hcm-pro-sub001/internal/shared/apperror"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateFormulaRequest) (FormulaResponse, error)
	GetAll(ctx context.Context, companyID string) ([]FormulaResponse, error)
	GetByID(ctx context.Context, companyID, id string) (FormulaResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateFormulaRequest) (FormulaResponse, error)
	Delete(ctx context.Context, companyID, id string) error
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
		logger: zap.L().Named("formula.service"),
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateFormulaRequest,
) (FormulaResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return FormulaResponse{}, formulaerrors.ErrInvalidCompanyID
	}

	// Reject malformed expressions at write time; compute-time evaluation
	// still guards per employee in case stored data predates this check.
	if err := Validate(req.Expression); err != nil {
		s.logger.Warn("create formula rejected",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		return FormulaResponse{}, apperror.Wrap(err,
			formulaerrors.ErrInvalidExpression.Code,
			formulaerrors.ErrInvalidExpression.Message,
			formulaerrors.ErrInvalidExpression.HTTPStatus,
		)
	}

	conceptUUID, err := parseOptionalUUID(req.ConceptID)
	if err != nil {
		return FormulaResponse{}, formulaerrors.ErrInvalidConceptID
	}

	f := &Formula{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		ConceptID:   conceptUUID,
		Expression:  req.Expression,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		s.logger.Error("create formula persist failed", zap.Error(err))
		return FormulaResponse{}, err
	}

	return mapToResponse(*f), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]FormulaResponse, error) {
	formulas, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]FormulaResponse, len(formulas))
	for i, f := range formulas {
		resp[i] = mapToResponse(f)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (FormulaResponse, error) {
	f, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return FormulaResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*f), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateFormulaRequest,
) (FormulaResponse, error) {
	if err := Validate(req.Expression); err != nil {
		return FormulaResponse{}, apperror.Wrap(err,
			formulaerrors.ErrInvalidExpression.Code,
			formulaerrors.ErrInvalidExpression.Message,
			formulaerrors.ErrInvalidExpression.HTTPStatus,
		)
	}

	conceptUUID, err := parseOptionalUUID(req.ConceptID)
	if err != nil {
		return FormulaResponse{}, formulaerrors.ErrInvalidConceptID
	}

	f, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return FormulaResponse{}, mapRepositoryError(err)
	}

	f.ConceptID = conceptUUID
	f.Expression = req.Expression
	f.Description = req.Description

	if err := s.repo.Update(ctx, f); err != nil {
		s.logger.Error("update formula persist failed", zap.Error(err))
		return FormulaResponse{}, err
	}

	return mapToResponse(*f), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	inUse, err := s.repo.IsReferencedByConcept(ctx, companyID, id)
	if err != nil {
		return err
	}
	if inUse {
		return formulaerrors.ErrFormulaInUse
	}

	return s.repo.Delete(ctx, companyID, id)
}

func parseOptionalUUID(v *string) (*uuid.UUID, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(*v)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return formulaerrors.ErrFormulaNotFound
	}
	return err
}

func mapToResponse(f Formula) FormulaResponse {
	resp := FormulaResponse{
		ID:          f.ID.String(),
		CompanyID:   f.CompanyID.String(),
		Expression:  f.Expression,
		Description: f.Description,
	}
	if f.ConceptID != nil {
		v := f.ConceptID.String()
		resp.ConceptID = &v
	}
	return resp
}
