package concept_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/itayalasas/hcm-pro-sub001/internal/concept"
)

func newRepoFixture(t *testing.T) (concept.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return concept.NewRepository(gdb), mock
}

// A concept referenced only by DRAFT or CALCULATED periods is still editable:
// the reference check must filter details through the period status, so the
// count query has to join periods and restrict to the settled states.
func TestIsReferencedByDetail_IgnoresUnfinalizedPeriods(t *testing.T) {
	repo, mock := newRepoFixture(t)

	companyID := uuid.NewString()
	conceptID := uuid.NewString()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "concept_details" JOIN periods ON periods\.id = concept_details\.period_id`).
		WithArgs(companyID, conceptID, "APPROVED", "PAID").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	inUse, err := repo.IsReferencedByDetail(context.Background(), companyID, conceptID)

	require.NoError(t, err)
	assert.False(t, inUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsReferencedByDetail_FinalizedPeriodPinsConcept(t *testing.T) {
	repo, mock := newRepoFixture(t)

	companyID := uuid.NewString()
	conceptID := uuid.NewString()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "concept_details" JOIN periods ON periods\.id = concept_details\.period_id`).
		WithArgs(companyID, conceptID, "APPROVED", "PAID").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	inUse, err := repo.IsReferencedByDetail(context.Background(), companyID, conceptID)

	require.NoError(t, err)
	assert.True(t, inUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}
