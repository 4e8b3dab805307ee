package assignmenterrors

import (
	"net/http"

	"github.com/itayalasas/hcm-pro-sub001/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidConceptID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid concept id",
		http.StatusBadRequest,
	)
	ErrAlreadyAssigned = apperror.New(
		apperror.CodeConflict,
		"concept is already assigned to this employee",
		http.StatusConflict,
	)
	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"assignment not found",
		http.StatusNotFound,
	)
)
