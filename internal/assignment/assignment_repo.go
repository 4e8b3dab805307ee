package assignment

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/itayalasas/hcm-pro-sub001/internal/concept"
	"github.com/itayalasas/hcm-pro-sub001/internal/tenant"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Assignment) error
	FindAllByEmployee(ctx context.Context, companyID string, employeeID string) ([]Assignment, error)
	Delete(ctx context.Context, companyID string, id string) error
	Exists(ctx context.Context, companyID string, employeeID string, conceptID string) (bool, error)

	// ListActiveConcepts returns the employee's active assigned concepts with
	// formulas preloaded, in stable assignment order.
	ListActiveConcepts(ctx context.Context, companyID string, employeeID string) ([]concept.Concept, error)
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

func (r *repository) Create(ctx context.Context, a *Assignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID string, employeeID string) ([]Assignment, error) {
	var assignments []Assignment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Preload("Concept").
		Preload("Concept.Formula").
		Order("position ASC, created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Assignment{}, "id = ?", id).Error
}

func (r *repository) Exists(ctx context.Context, companyID string, employeeID string, conceptID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Assignment{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND concept_id = ?", employeeID, conceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListActiveConcepts(ctx context.Context, companyID string, employeeID string) ([]concept.Concept, error) {
	assignments, err := r.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}

	concepts := make([]concept.Concept, 0, len(assignments))
	for _, a := range assignments {
		if !a.Active || a.Concept == nil || !a.Concept.Active {
			continue
		}
		concepts = append(concepts, *a.Concept)
	}
	return concepts, nil
}
