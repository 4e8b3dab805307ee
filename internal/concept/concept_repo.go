package concept

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/itayalasas/hcm-pro-sub001/internal/tenant"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, cpt *Concept) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Concept, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Concept, error)
	Update(ctx context.Context, cpt *Concept) error
	Delete(ctx context.Context, companyID string, id string) error
	IsReferencedByDetail(ctx context.Context, companyID string, id string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, cpt *Concept) error {
	return r.db.WithContext(ctx).Create(cpt).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Concept, error) {
	var concepts []Concept
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Formula").
		Order("created_at ASC").
		Find(&concepts).Error
	return concepts, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Concept, error) {
	var cpt Concept
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Formula").
		First(&cpt, "id = ?", id).Error
	return &cpt, err
}

func (r *repository) Update(ctx context.Context, cpt *Concept) error {
	return r.db.WithContext(ctx).Save(cpt).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Concept{}, "id = ?", id).Error
}

// Periods in these states are settled; details belonging to them pin the
// referenced concepts. Details of a CALCULATED period do not count, since a
// recompute rebuilds them from the current configuration anyway.
var finalizedPeriodStatuses = []string{"APPROVED", "PAID"}

// IsReferencedByDetail reports whether the concept appears in the results of
// a finalized period. Such concepts must stay immutable so settled history
// cannot be rewritten by an edit.
func (r *repository) IsReferencedByDetail(ctx context.Context, companyID string, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("concept_details").
		Joins("JOIN periods ON periods.id = concept_details.period_id").
		Where("concept_details.company_id = ? AND concept_details.concept_id = ?", companyID, id).
		Where("periods.status IN ?", finalizedPeriodStatuses).
		Count(&count).Error
	return count > 0, err
}
