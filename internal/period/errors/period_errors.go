package perioderrors

import (
	"fmt"
	"net/http"

	"github.com/itayalasas/hcm-pro-sub001/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodType = apperror.New(
		apperror.CodeInvalidInput,
		"period_type must be one of WEEKLY, BIWEEKLY, MONTHLY, BIMONTHLY",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must not be before start_date",
		http.StatusBadRequest,
	)
	ErrInvalidScope = apperror.New(
		apperror.CodeInvalidInput,
		"employee_ids is required when scope_type is SELECTED",
		http.StatusBadRequest,
	)
	ErrPeriodNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll period not found",
		http.StatusNotFound,
	)
	ErrPeriodLocked = apperror.New(
		apperror.CodeInvalidState,
		"period is approved or paid and can no longer be computed",
		http.StatusConflict,
	)
	ErrComputeInProgress = apperror.New(
		apperror.CodeConflict,
		"a computation is already running for this period",
		http.StatusConflict,
	)
	ErrNotCalculated = apperror.New(
		apperror.CodeInvalidState,
		"period has no computed results yet",
		http.StatusConflict,
	)
	ErrDeleteLocked = apperror.New(
		apperror.CodeInvalidState,
		"approved or paid periods cannot be deleted",
		http.StatusConflict,
	)
	ErrEmptyScope = apperror.New(
		apperror.CodeInvalidState,
		"period scope resolves to no employees",
		http.StatusUnprocessableEntity,
	)
	ErrDetailNotFound = apperror.New(
		apperror.CodeNotFound,
		"no computed detail for this employee in this period",
		http.StatusNotFound,
	)
)

// IllegalTransition builds the state-machine rejection for a specific
// from/to pair so the caller sees exactly which move was refused.
func IllegalTransition(from, to string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf("cannot transition period from %s to %s", from, to),
		http.StatusConflict,
	)
}
