package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/itayalasas/hcm-pro-sub001/internal/tenant"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, companyID string, id string) error

	ListActiveSnapshots(ctx context.Context, companyID string) ([]Snapshot, error)
	ListSnapshotsByIDs(ctx context.Context, companyID string, ids []string) ([]Snapshot, error)
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Employee{}, "id = ?", id).Error
}

func (r *repository) ListActiveSnapshots(ctx context.Context, companyID string) ([]Snapshot, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("active = ?", true).
		Order("full_name ASC").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return snapshots(employees), nil
}

func (r *repository) ListSnapshotsByIDs(ctx context.Context, companyID string, ids []string) ([]Snapshot, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", ids).
		Order("full_name ASC").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return snapshots(employees), nil
}

func snapshots(employees []Employee) []Snapshot {
	out := make([]Snapshot, len(employees))
	for i, e := range employees {
		out[i] = e.Snapshot()
	}
	return out
}
