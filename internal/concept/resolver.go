package concept

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/itayalasas/hcm-pro-sub001/internal/formula"
)

// Context carries the variables a concept may reference during resolution.
// TotalPerceptions and TotalDeductions are the amounts accumulated so far in
// the current employee's concept sequence, not period-wide totals.
type Context struct {
	BaseSalary       decimal.Decimal
	WorkedDays       decimal.Decimal
	WorkedHours      decimal.Decimal
	OvertimeHours    decimal.Decimal
	TotalPerceptions decimal.Decimal
	TotalDeductions  decimal.Decimal
}

func (c Context) Variables() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		formula.VarBaseSalary:       c.BaseSalary,
		formula.VarWorkedDays:       c.WorkedDays,
		formula.VarWorkedHours:      c.WorkedHours,
		formula.VarOvertimeHours:    c.OvertimeHours,
		formula.VarTotalPerceptions: c.TotalPerceptions,
		formula.VarTotalDeductions:  c.TotalDeductions,
	}
}

type ErrorKind string

const (
	// ErrorKindConfiguration marks bad concept/formula definitions
	// (malformed expression, negative rate, missing formula link).
	ErrorKindConfiguration ErrorKind = "CONFIGURATION"
	// ErrorKindEvaluation marks runtime evaluation failures
	// (unknown variable, division by zero).
	ErrorKindEvaluation ErrorKind = "EVALUATION"
)

// ResolveError attributes a failure to one concept. Callers record it against
// the (employee, concept) pair and keep processing the batch.
type ResolveError struct {
	Kind        ErrorKind
	ConceptID   string
	ConceptName string
	Err         error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("concept %q (%s): %v", e.ConceptName, e.Kind, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Resolve returns the monetary amount one concept contributes for the given
// context. Pure: no I/O, identical inputs yield identical decimals. Amounts
// are rounded to cents.
func Resolve(cpt Concept, rc Context) (decimal.Decimal, error) {
	switch cpt.CalcMode {
	case CalcModeFixed:
		return cpt.FixedAmount, nil

	case CalcModePercentage:
		if cpt.PercentageRate.IsNegative() {
			return decimal.Zero, resolveErr(cpt, ErrorKindConfiguration,
				fmt.Errorf("negative percentage rate %s", cpt.PercentageRate))
		}
		// Rate is always applied to the base salary, never to the running
		// perception total. This mirrors the established payroll policy.
		return rc.BaseSalary.Mul(cpt.PercentageRate).Round(2), nil

	case CalcModeFormula:
		if cpt.FormulaID == nil || cpt.Formula == nil {
			return decimal.Zero, resolveErr(cpt, ErrorKindConfiguration,
				errors.New("formula-mode concept has no linked formula"))
		}

		result, err := formula.Evaluate(cpt.Formula.Expression, rc.Variables())
		if err != nil {
			return decimal.Zero, resolveErr(cpt, classifyEvalError(err), err)
		}
		return result.Round(2), nil
	}

	return decimal.Zero, resolveErr(cpt, ErrorKindConfiguration,
		fmt.Errorf("unsupported calculation mode %q", cpt.CalcMode))
}

func resolveErr(cpt Concept, kind ErrorKind, err error) *ResolveError {
	return &ResolveError{
		Kind:        kind,
		ConceptID:   cpt.ID.String(),
		ConceptName: cpt.Name,
		Err:         err,
	}
}

func classifyEvalError(err error) ErrorKind {
	var syntaxErr *formula.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, formula.ErrEmptyExpression) {
		return ErrorKindConfiguration
	}
	return ErrorKindEvaluation
}
