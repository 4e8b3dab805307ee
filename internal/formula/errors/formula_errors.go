package formulaerrors

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
	ErrInvalidFormulaID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid formula id",
		http.StatusBadRequest,
	)
	ErrInvalidConceptID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid concept id",
		http.StatusBadRequest,
	)
	ErrFormulaNotFound = apperror.New(
		apperror.CodeNotFound,
		"formula not found",
		http.StatusNotFound,
	)
	ErrInvalidExpression = apperror.New(
		apperror.CodeConfiguration,
		"formula expression is not valid",
		http.StatusUnprocessableEntity,
	)
	ErrFormulaInUse = apperror.New(
		apperror.CodeConflict,
		"formula is referenced by a concept and cannot be deleted",
		http.StatusConflict,
	)
)
