package concepterrors

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
	ErrInvalidConceptID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid concept id",
		http.StatusBadRequest,
	)
	ErrInvalidFormulaID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid formula id",
		http.StatusBadRequest,
	)
	ErrConceptNotFound = apperror.New(
		apperror.CodeNotFound,
		"concept not found",
		http.StatusNotFound,
	)
	ErrInvalidCategory = apperror.New(
		apperror.CodeInvalidInput,
		"category must be one of PERCEPTION, DEDUCTION, CONTRIBUTION, BENEFIT",
		http.StatusBadRequest,
	)
	ErrInvalidCalcMode = apperror.New(
		apperror.CodeInvalidInput,
		"calc_mode must be one of FIXED, PERCENTAGE, FORMULA",
		http.StatusBadRequest,
	)
	ErrNegativeRate = apperror.New(
		apperror.CodeConfiguration,
		"percentage rate cannot be negative",
		http.StatusUnprocessableEntity,
	)
	ErrFormulaLinkRequired = apperror.New(
		apperror.CodeConfiguration,
		"formula_id is required for FORMULA calc mode",
		http.StatusUnprocessableEntity,
	)
	ErrConceptInUse = apperror.New(
		apperror.CodeConflict,
		"concept is referenced by a computed period and cannot be modified or deleted",
		http.StatusConflict,
	)
)
