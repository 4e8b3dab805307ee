package concept

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	concepterrors "github.com/itayalasas/hcm-pro-sub001/internal/concept/errors"
)

const ConceptOptionsKeyPrefix = "concepts:options:"

func GetConceptOptionsKey(companyID string) string {
	return ConceptOptionsKeyPrefix + companyID
}

type Service interface {
	Create(ctx context.Context, companyID string, req CreateConceptRequest) (ConceptResponse, error)
	GetAll(ctx context.Context, companyID string) ([]ConceptResponse, error)
	GetOptions(ctx context.Context, companyID string) ([]ConceptResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ConceptResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateConceptRequest) (ConceptResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client) Service {
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: zap.L().Named("concept.service"),
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateConceptRequest,
) (ConceptResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ConceptResponse{}, concepterrors.ErrInvalidCompanyID
	}

	cpt, err := conceptFromRequest(req.Name, req.Category, req.CalcMode, req.FixedAmount, req.PercentageRate, req.FormulaID)
	if err != nil {
		return ConceptResponse{}, err
	}
	cpt.ID = uuid.New()
	cpt.CompanyID = companyUUID
	cpt.Active = true
	if req.Active != nil {
		cpt.Active = *req.Active
	}

	if err := s.repo.Create(ctx, cpt); err != nil {
		s.logger.Error("create concept persist failed", zap.Error(err))
		return ConceptResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)

	return mapToResponse(*cpt), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]ConceptResponse, error) {
	concepts, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(concepts), nil
}

// GetOptions serves the active-concept picker. Results are cached in redis
// and rebuilds are collapsed through singleflight so a cold cache does not
// stampede the database.
func (s *service) GetOptions(ctx context.Context, companyID string) ([]ConceptResponse, error) {
	cacheKey := GetConceptOptionsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []ConceptResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	result, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		concepts, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}

		active := make([]ConceptResponse, 0, len(concepts))
		for _, cpt := range concepts {
			if cpt.Active {
				active = append(active, mapToResponse(cpt))
			}
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(active); err == nil {
				_ = s.rdb.Set(ctx, cacheKey, payload, 10*time.Minute).Err()
			}
		}

		return active, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]ConceptResponse), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ConceptResponse, error) {
	cpt, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ConceptResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*cpt), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateConceptRequest,
) (ConceptResponse, error) {
	existing, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ConceptResponse{}, mapRepositoryError(err)
	}

	// Concepts referenced by an approved or paid period are frozen; edits
	// must not retroactively alter settled payroll history. References from
	// periods that can still be recomputed do not pin the concept.
	inUse, err := s.repo.IsReferencedByDetail(ctx, companyID, id)
	if err != nil {
		return ConceptResponse{}, err
	}
	if inUse {
		return ConceptResponse{}, concepterrors.ErrConceptInUse
	}

	updated, err := conceptFromRequest(req.Name, req.Category, req.CalcMode, req.FixedAmount, req.PercentageRate, req.FormulaID)
	if err != nil {
		return ConceptResponse{}, err
	}

	existing.Name = updated.Name
	existing.Category = updated.Category
	existing.CalcMode = updated.CalcMode
	existing.FixedAmount = updated.FixedAmount
	existing.PercentageRate = updated.PercentageRate
	existing.FormulaID = updated.FormulaID
	existing.Formula = nil
	if req.Active != nil {
		existing.Active = *req.Active
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		s.logger.Error("update concept persist failed", zap.Error(err))
		return ConceptResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)

	return mapToResponse(*existing), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	inUse, err := s.repo.IsReferencedByDetail(ctx, companyID, id)
	if err != nil {
		return err
	}
	if inUse {
		return concepterrors.ErrConceptInUse
	}

	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}

	s.invalidateOptions(ctx, companyID)
	return nil
}

func (s *service) invalidateOptions(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, GetConceptOptionsKey(companyID)).Err(); err != nil {
		s.logger.Warn("invalidate concept options cache failed",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
	}
}

func conceptFromRequest(
	name, category, calcMode, fixedAmount, percentageRate string,
	formulaID *string,
) (*Concept, error) {
	cat := Category(category)
	if !cat.Valid() {
		return nil, concepterrors.ErrInvalidCategory
	}

	mode := CalcMode(calcMode)
	if !mode.Valid() {
		return nil, concepterrors.ErrInvalidCalcMode
	}

	cpt := &Concept{
		Name:     name,
		Category: cat,
		CalcMode: mode,
	}

	switch mode {
	case CalcModeFixed:
		amount, err := parseDecimal(fixedAmount)
		if err != nil {
			return nil, concepterrors.ErrInvalidCalcMode
		}
		cpt.FixedAmount = amount

	case CalcModePercentage:
		rate, err := parseDecimal(percentageRate)
		if err != nil {
			return nil, concepterrors.ErrInvalidCalcMode
		}
		if rate.IsNegative() {
			return nil, concepterrors.ErrNegativeRate
		}
		cpt.PercentageRate = rate

	case CalcModeFormula:
		if formulaID == nil || *formulaID == "" {
			return nil, concepterrors.ErrFormulaLinkRequired
		}
		parsed, err := uuid.Parse(*formulaID)
		if err != nil {
			return nil, concepterrors.ErrInvalidFormulaID
		}
		cpt.FormulaID = &parsed
	}

	return cpt, nil
}

func parseDecimal(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(v)
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return concepterrors.ErrConceptNotFound
	}
	return err
}

func mapToResponse(cpt Concept) ConceptResponse {
	resp := ConceptResponse{
		ID:             cpt.ID.String(),
		CompanyID:      cpt.CompanyID.String(),
		Name:           cpt.Name,
		Category:       string(cpt.Category),
		CalcMode:       string(cpt.CalcMode),
		FixedAmount:    cpt.FixedAmount.StringFixed(2),
		PercentageRate: cpt.PercentageRate.String(),
		Active:         cpt.Active,
	}

	if cpt.FormulaID != nil {
		v := cpt.FormulaID.String()
		resp.FormulaID = &v
	}
	if cpt.Formula != nil {
		v := cpt.Formula.Expression
		resp.Expression = &v
	}

	return resp
}

func mapToListResponse(concepts []Concept) []ConceptResponse {
	resp := make([]ConceptResponse, len(concepts))
	for i, cpt := range concepts {
		resp[i] = mapToResponse(cpt)
	}
	return resp
}
