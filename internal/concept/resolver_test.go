package concept_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/itayalasas/hcm-pro-sub001/internal/concept"
	"github.com/itayalasas/hcm-pro-sub001/internal/formula"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func formulaConcept(name, expression string) concept.Concept {
	formulaID := uuid.New()
	return concept.Concept{
		ID:        uuid.New(),
		Name:      name,
		Category:  concept.CategoryPerception,
		CalcMode:  concept.CalcModeFormula,
		FormulaID: &formulaID,
		Formula:   &formula.Formula{ID: formulaID, Expression: expression},
	}
}

func TestResolve_Fixed(t *testing.T) {
	cpt := concept.Concept{
		ID:          uuid.New(),
		Name:        "Bono",
		Category:    concept.CategoryPerception,
		CalcMode:    concept.CalcModeFixed,
		FixedAmount: dec("50.00"),
	}

	amount, err := concept.Resolve(cpt, concept.Context{BaseSalary: dec("1000")})

	assert.NoError(t, err)
	assert.True(t, dec("50.00").Equal(amount))
}

func TestResolve_Percentage(t *testing.T) {
	cpt := concept.Concept{
		ID:             uuid.New(),
		Name:           "Aporte",
		Category:       concept.CategoryDeduction,
		CalcMode:       concept.CalcModePercentage,
		PercentageRate: dec("0.10"),
	}

	// Percentage applies to the base salary even when running perceptions
	// are already higher.
	amount, err := concept.Resolve(cpt, concept.Context{
		BaseSalary:       dec("1000"),
		TotalPerceptions: dec("1500"),
	})

	assert.NoError(t, err)
	assert.True(t, dec("100.00").Equal(amount))
}

func TestResolve_PercentageAboveOneAllowed(t *testing.T) {
	cpt := concept.Concept{
		ID:             uuid.New(),
		Name:           "Aguinaldo",
		CalcMode:       concept.CalcModePercentage,
		PercentageRate: dec("1.5"),
	}

	amount, err := concept.Resolve(cpt, concept.Context{BaseSalary: dec("1000")})

	assert.NoError(t, err)
	assert.True(t, dec("1500.00").Equal(amount))
}

func TestResolve_NegativeRateIsConfigurationError(t *testing.T) {
	cpt := concept.Concept{
		ID:             uuid.New(),
		Name:           "Mal configurado",
		CalcMode:       concept.CalcModePercentage,
		PercentageRate: dec("-0.05"),
	}

	_, err := concept.Resolve(cpt, concept.Context{BaseSalary: dec("1000")})

	var resolveErr *concept.ResolveError
	assert.True(t, errors.As(err, &resolveErr))
	assert.Equal(t, concept.ErrorKindConfiguration, resolveErr.Kind)
}

func TestResolve_Formula(t *testing.T) {
	cpt := formulaConcept("Ajuste", "{TOTAL_PERCEPCIONES} * 0.01")

	amount, err := concept.Resolve(cpt, concept.Context{
		BaseSalary:       dec("1000"),
		TotalPerceptions: dec("1050"),
	})

	assert.NoError(t, err)
	assert.True(t, dec("10.50").Equal(amount))
}

func TestResolve_FormulaMissingLink(t *testing.T) {
	cpt := concept.Concept{
		ID:       uuid.New(),
		Name:     "Sin formula",
		CalcMode: concept.CalcModeFormula,
	}

	_, err := concept.Resolve(cpt, concept.Context{})

	var resolveErr *concept.ResolveError
	assert.True(t, errors.As(err, &resolveErr))
	assert.Equal(t, concept.ErrorKindConfiguration, resolveErr.Kind)
}

func TestResolve_FormulaSyntaxErrorIsConfiguration(t *testing.T) {
	cpt := formulaConcept("Roto", "{SALARIO_BASE} * ")

	_, err := concept.Resolve(cpt, concept.Context{BaseSalary: dec("1000")})

	var resolveErr *concept.ResolveError
	assert.True(t, errors.As(err, &resolveErr))
	assert.Equal(t, concept.ErrorKindConfiguration, resolveErr.Kind)
}

func TestResolve_FormulaDivisionByZeroIsEvaluation(t *testing.T) {
	cpt := formulaConcept("Division", "{SALARIO_BASE} / {HORAS_EXTRA}")

	_, err := concept.Resolve(cpt, concept.Context{
		BaseSalary:    dec("1000"),
		OvertimeHours: decimal.Zero,
	})

	var resolveErr *concept.ResolveError
	assert.True(t, errors.As(err, &resolveErr))
	assert.Equal(t, concept.ErrorKindEvaluation, resolveErr.Kind)
	assert.ErrorIs(t, err, formula.ErrDivisionByZero)
}

func TestResolve_UnknownModeIsConfiguration(t *testing.T) {
	cpt := concept.Concept{ID: uuid.New(), Name: "Raro", CalcMode: concept.CalcMode("LUNAR")}

	_, err := concept.Resolve(cpt, concept.Context{})

	var resolveErr *concept.ResolveError
	assert.True(t, errors.As(err, &resolveErr))
	assert.Equal(t, concept.ErrorKindConfiguration, resolveErr.Kind)
}

func TestResolve_Purity(t *testing.T) {
	cpt := formulaConcept("Ajuste", "({SALARIO_BASE} + 50) * 0.01")
	rc := concept.Context{BaseSalary: dec("1000")}

	first, err := concept.Resolve(cpt, rc)
	assert.NoError(t, err)
	second, err := concept.Resolve(cpt, rc)
	assert.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
}
