package period

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/itayalasas/hcm-pro-sub001/internal/tenant"
)

type Repository interface {
	Create(ctx context.Context, p *Period) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Period, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Period, error)
	ListScopeEmployeeIDs(ctx context.Context, companyID string, periodID string) ([]string, error)

	// ClaimCompute atomically flips the computing flag when the period is
	// still in a computable status. Returns false when another run holds
	// the claim or the period is locked.
	ClaimCompute(ctx context.Context, companyID string, id string) (bool, error)
	ReleaseCompute(ctx context.Context, companyID string, id string) error

	// SaveEmployeeResult replaces the employee's detail and concept lines
	// for the period in one transaction, so a recompute never doubles rows.
	SaveEmployeeResult(ctx context.Context, detail *PeriodDetail, lines []ConceptDetail) error

	// FinalizeCompute stores the folded totals, stamps computed_at, moves
	// the period to CALCULATED and releases the computing claim.
	FinalizeCompute(ctx context.Context, companyID string, id string, totals Totals) error

	UpdateStatus(ctx context.Context, p *Period) error
	DeleteCascade(ctx context.Context, companyID string, id string) error
	FindDetails(ctx context.Context, companyID string, periodID string) ([]PeriodDetail, error)
	FindDetailByEmployee(ctx context.Context, companyID string, periodID string, employeeID string) (*PeriodDetail, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Period) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Period, error) {
	var periods []Period
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("start_date DESC").
		Find(&periods).Error
	return periods, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Period, error) {
	var p Period
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) ListScopeEmployeeIDs(ctx context.Context, companyID string, periodID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&PeriodEmployee{}).
		Scopes(tenant.Scope(companyID)).
		Where("period_id = ?", periodID).
		Pluck("employee_id", &ids).Error
	return ids, err
}

func (r *repository) ClaimCompute(ctx context.Context, companyID string, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Period{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ? AND status IN ? AND computing = ?", id, []string{StatusDraft, StatusCalculated}, false).
		Update("computing", true)
	return res.RowsAffected == 1, res.Error
}

func (r *repository) ReleaseCompute(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Model(&Period{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Update("computing", false).Error
}

func (r *repository) SaveEmployeeResult(ctx context.Context, detail *PeriodDetail, lines []ConceptDetail) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing PeriodDetail
		err := tx.
			Where("period_id = ? AND employee_id = ?", detail.PeriodID, detail.EmployeeID).
			First(&existing).Error
		switch {
		case err == nil:
			if err := tx.
				Where("period_detail_id = ?", existing.ID).
				Delete(&ConceptDetail{}).Error; err != nil {
				return err
			}
			detail.ID = existing.ID
			detail.CreatedAt = existing.CreatedAt
			if err := tx.Save(detail).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(detail).Error; err != nil {
				return err
			}
		default:
			return err
		}

		for i := range lines {
			lines[i].PeriodDetailID = detail.ID
		}
		if len(lines) == 0 {
			return nil
		}
		return tx.Create(&lines).Error
	})
}

func (r *repository) FinalizeCompute(ctx context.Context, companyID string, id string, totals Totals) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&Period{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":              StatusCalculated,
			"computing":           false,
			"computed_at":         now,
			"total_gross":         totals.Gross,
			"total_deductions":    totals.Deductions,
			"total_contributions": totals.Contributions,
			"total_net":           totals.Net,
		}).Error
}

func (r *repository) UpdateStatus(ctx context.Context, p *Period) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) DeleteCascade(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scoped := func(db *gorm.DB) *gorm.DB {
			return db.Scopes(tenant.Scope(companyID)).Where("period_id = ?", id)
		}
		if err := scoped(tx).Delete(&ConceptDetail{}).Error; err != nil {
			return err
		}
		if err := scoped(tx).Delete(&PeriodDetail{}).Error; err != nil {
			return err
		}
		if err := scoped(tx).Delete(&PeriodEmployee{}).Error; err != nil {
			return err
		}
		return tx.
			Scopes(tenant.Scope(companyID)).
			Delete(&Period{}, "id = ?", id).Error
	})
}

func (r *repository) FindDetails(ctx context.Context, companyID string, periodID string) ([]PeriodDetail, error) {
	var details []PeriodDetail
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("period_id = ?", periodID).
		Preload("Concepts").
		Order("created_at ASC").
		Find(&details).Error
	return details, err
}

func (r *repository) FindDetailByEmployee(ctx context.Context, companyID string, periodID string, employeeID string) (*PeriodDetail, error) {
	var detail PeriodDetail
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("period_id = ? AND employee_id = ?", periodID, employeeID).
		Preload("Concepts").
		First(&detail).Error
	return &detail, err
}
