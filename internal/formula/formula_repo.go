package formula

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/itayalasas/hcm-pro-sub001/internal/tenant"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, f *Formula) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Formula, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Formula, error)
	Update(ctx context.Context, f *Formula) error
	Delete(ctx context.Context, companyID string, id string) error
	IsReferencedByConcept(ctx context.Context, companyID string, id string) (bool, error)
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

func (r *repository) Create(ctx context.Context, f *Formula) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Formula, error) {
	var formulas []Formula
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at ASC").
		Find(&formulas).Error
	return formulas, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Formula, error) {
	var f Formula
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&f, "id = ?", id).Error
	return &f, err
}

func (r *repository) Update(ctx context.Context, f *Formula) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Formula{}, "id = ?", id).Error
}

func (r *repository) IsReferencedByConcept(ctx context.Context, companyID string, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("concepts").
		Scopes(tenant.Scope(companyID)).
		Where("formula_id = ?", id).
		Count(&count).Error
	return count > 0, err
}
