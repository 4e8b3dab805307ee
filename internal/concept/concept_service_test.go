package concept_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itayalasas/hcm-pro-sub001/internal/concept"
	concepterrors "github.com/itayalasas/hcm-pro-sub001/internal/concept/errors"
)

type fakeConceptRepository struct {
	findByIDAndCompanyFn   func(ctx context.Context, companyID string, id string) (*concept.Concept, error)
	isReferencedByDetailFn func(ctx context.Context, companyID string, id string) (bool, error)
	updateFn               func(ctx context.Context, cpt *concept.Concept) error
	deleteFn               func(ctx context.Context, companyID string, id string) error
}

func (f *fakeConceptRepository) WithTx(tx *sql.Tx) concept.Repository { return f }

func (f *fakeConceptRepository) Create(ctx context.Context, cpt *concept.Concept) error {
	return nil
}

func (f *fakeConceptRepository) FindAllByCompany(ctx context.Context, companyID string) ([]concept.Concept, error) {
	return nil, nil
}

func (f *fakeConceptRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*concept.Concept, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, nil
}

func (f *fakeConceptRepository) Update(ctx context.Context, cpt *concept.Concept) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, cpt)
	}
	return nil
}

func (f *fakeConceptRepository) Delete(ctx context.Context, companyID string, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

func (f *fakeConceptRepository) IsReferencedByDetail(ctx context.Context, companyID string, id string) (bool, error) {
	if f.isReferencedByDetailFn != nil {
		return f.isReferencedByDetailFn(ctx, companyID, id)
	}
	return false, nil
}

func storedConcept(companyID uuid.UUID) *concept.Concept {
	return &concept.Concept{
		ID:          uuid.New(),
		CompanyID:   companyID,
		Name:        "Bono Presentismo",
		Category:    concept.CategoryPerception,
		CalcMode:    concept.CalcModeFixed,
		FixedAmount: decimal.RequireFromString("150.00"),
		Active:      true,
	}
}

// A concept whose only references live in periods that can still be
// recomputed stays editable. Only approved or paid periods pin it.
func TestUpdateConcept_EditableWhileOnlyRecomputablePeriodsReferenceIt(t *testing.T) {
	companyID := uuid.New()
	existing := storedConcept(companyID)

	repo := &fakeConceptRepository{
		findByIDAndCompanyFn: func(ctx context.Context, cid string, id string) (*concept.Concept, error) {
			cp := *existing
			return &cp, nil
		},
		isReferencedByDetailFn: func(ctx context.Context, cid string, id string) (bool, error) {
			return false, nil
		},
	}

	var updated *concept.Concept
	repo.updateFn = func(ctx context.Context, cpt *concept.Concept) error {
		updated = cpt
		return nil
	}

	svc := concept.NewService(nil, repo, nil)

	resp, err := svc.Update(context.Background(), companyID.String(), existing.ID.String(), concept.UpdateConceptRequest{
		Name:        "Bono Presentismo",
		Category:    "PERCEPTION",
		CalcMode:    "FIXED",
		FixedAmount: "175.00",
	})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "175.00", resp.FixedAmount)
	assert.True(t, updated.FixedAmount.Equal(decimal.RequireFromString("175.00")))
}

func TestUpdateConcept_FrozenOnceFinalizedPeriodReferencesIt(t *testing.T) {
	companyID := uuid.New()
	existing := storedConcept(companyID)

	var updateCalled bool
	repo := &fakeConceptRepository{
		findByIDAndCompanyFn: func(ctx context.Context, cid string, id string) (*concept.Concept, error) {
			cp := *existing
			return &cp, nil
		},
		isReferencedByDetailFn: func(ctx context.Context, cid string, id string) (bool, error) {
			return true, nil
		},
		updateFn: func(ctx context.Context, cpt *concept.Concept) error {
			updateCalled = true
			return nil
		},
	}

	svc := concept.NewService(nil, repo, nil)

	_, err := svc.Update(context.Background(), companyID.String(), existing.ID.String(), concept.UpdateConceptRequest{
		Name:        "Bono Presentismo",
		Category:    "PERCEPTION",
		CalcMode:    "FIXED",
		FixedAmount: "200.00",
	})

	assert.ErrorIs(t, err, concepterrors.ErrConceptInUse)
	assert.False(t, updateCalled)
}

func TestDeleteConcept_FrozenOnceFinalizedPeriodReferencesIt(t *testing.T) {
	companyID := uuid.New()
	existing := storedConcept(companyID)

	var deleteCalled bool
	repo := &fakeConceptRepository{
		isReferencedByDetailFn: func(ctx context.Context, cid string, id string) (bool, error) {
			return true, nil
		},
		deleteFn: func(ctx context.Context, cid string, id string) error {
			deleteCalled = true
			return nil
		},
	}

	svc := concept.NewService(nil, repo, nil)

	err := svc.Delete(context.Background(), companyID.String(), existing.ID.String())

	assert.ErrorIs(t, err, concepterrors.ErrConceptInUse)
	assert.False(t, deleteCalled)
}
