package period

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itayalasas/hcm-pro-sub001/internal/concept"
	"github.com/itayalasas/hcm-pro-sub001/internal/employee"
	"github.com/itayalasas/hcm-pro-sub001/internal/formula"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func date(v string) time.Time {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		panic(err)
	}
	return t
}

func januaryPeriod() Period {
	return Period{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		StartDate: date("2025-01-01"),
		EndDate:   date("2025-01-31"),
	}
}

func testSnapshot(salary string) employee.Snapshot {
	return employee.Snapshot{
		ID:         uuid.New(),
		FullName:   "Ana Perez",
		BaseSalary: dec(salary),
	}
}

func fixedConcept(name string, cat concept.Category, amount string) concept.Concept {
	return concept.Concept{
		ID:          uuid.New(),
		Name:        name,
		Category:    cat,
		CalcMode:    concept.CalcModeFixed,
		FixedAmount: dec(amount),
	}
}

func percentageConcept(name string, cat concept.Category, rate string) concept.Concept {
	return concept.Concept{
		ID:             uuid.New(),
		Name:           name,
		Category:       cat,
		CalcMode:       concept.CalcModePercentage,
		PercentageRate: dec(rate),
	}
}

func formulaConcept(name string, cat concept.Category, expression string) concept.Concept {
	formulaID := uuid.New()
	return concept.Concept{
		ID:        uuid.New(),
		Name:      name,
		Category:  cat,
		CalcMode:  concept.CalcModeFormula,
		FormulaID: &formulaID,
		Formula:   &formula.Formula{ID: formulaID, Expression: expression},
	}
}

func TestWorkedDays_Inclusive(t *testing.T) {
	assert.Equal(t, 31, workedDays(januaryPeriod()))

	oneDay := Period{StartDate: date("2025-03-10"), EndDate: date("2025-03-10")}
	assert.Equal(t, 1, workedDays(oneDay))
}

func TestCalculateEmployee_BaseSalaryOnly(t *testing.T) {
	res := calculateEmployee(januaryPeriod(), testSnapshot("1000"), nil)

	require.Empty(t, res.Issues)
	assert.True(t, dec("1000").Equal(res.Detail.TotalPerceptions))
	assert.True(t, res.Detail.TotalDeductions.IsZero())
	assert.True(t, dec("1000").Equal(res.Detail.NetSalary))
	assert.Equal(t, 31, res.Detail.WorkedDays)
	assert.Equal(t, 248, res.Detail.WorkedHours)
	assert.Empty(t, res.Concepts)
}

func TestCalculateEmployee_MixedConcepts(t *testing.T) {
	concepts := []concept.Concept{
		fixedConcept("Bono", concept.CategoryPerception, "50.00"),
		formulaConcept("Comision", concept.CategoryPerception, "{TOTAL_PERCEPCIONES} * 0.01"),
		percentageConcept("Aporte jubilatorio", concept.CategoryDeduction, "0.10"),
	}

	res := calculateEmployee(januaryPeriod(), testSnapshot("1000"), concepts)

	require.Empty(t, res.Issues)
	require.Len(t, res.Concepts, 3)

	// The formula perception sees base + fixed bonus: 1050 * 0.01 = 10.50.
	assert.True(t, dec("10.5").Equal(res.Concepts[1].TotalAmount), res.Concepts[1].TotalAmount.String())
	assert.True(t, dec("1060.50").Equal(res.Detail.TotalPerceptions), res.Detail.TotalPerceptions.String())

	// The percentage deduction applies to base salary, not perceptions.
	assert.True(t, dec("100.00").Equal(res.Detail.TotalDeductions))

	assert.True(t, dec("960.50").Equal(res.Detail.NetSalary), res.Detail.NetSalary.String())
}

func TestCalculateEmployee_CategoryOrder(t *testing.T) {
	// Assignment order lists the deduction first; category order must still
	// evaluate all perceptions before it runs.
	concepts := []concept.Concept{
		formulaConcept("Retencion", concept.CategoryDeduction, "{TOTAL_PERCEPCIONES} * 0.5"),
		fixedConcept("Bono", concept.CategoryPerception, "200"),
	}

	res := calculateEmployee(januaryPeriod(), testSnapshot("800"), concepts)

	require.Empty(t, res.Issues)
	assert.True(t, dec("1000").Equal(res.Detail.TotalPerceptions))
	assert.True(t, dec("500").Equal(res.Detail.TotalDeductions))
	assert.True(t, dec("500").Equal(res.Detail.NetSalary))
}

func TestCalculateEmployee_DeductionFeedsLaterDeduction(t *testing.T) {
	concepts := []concept.Concept{
		fixedConcept("Cuota", concept.CategoryDeduction, "100"),
		formulaConcept("Extra", concept.CategoryDeduction, "{TOTAL_DEDUCCIONES} * 0.1"),
	}

	res := calculateEmployee(januaryPeriod(), testSnapshot("1000"), concepts)

	require.Empty(t, res.Issues)
	assert.True(t, dec("110").Equal(res.Detail.TotalDeductions))
}

func TestCalculateEmployee_ContributionsAndBenefits(t *testing.T) {
	concepts := []concept.Concept{
		percentageConcept("Aporte patronal", concept.CategoryContribution, "0.075"),
		fixedConcept("Tickets", concept.CategoryBenefit, "80"),
	}

	res := calculateEmployee(januaryPeriod(), testSnapshot("1000"), concepts)

	require.Empty(t, res.Issues)
	require.Len(t, res.Concepts, 2)

	assert.True(t, dec("75.00").Equal(res.Detail.TotalContributions))
	// Benefits show up as lines but never move a total.
	assert.True(t, dec("1000").Equal(res.Detail.TotalPerceptions))
	assert.True(t, dec("925.00").Equal(res.Detail.NetSalary))
}

func TestCalculateEmployee_IssueDoesNotStopRemainingConcepts(t *testing.T) {
	concepts := []concept.Concept{
		formulaConcept("Rota", concept.CategoryPerception, "{SALARIO_BASE} +"),
		fixedConcept("Bono", concept.CategoryPerception, "50"),
	}

	res := calculateEmployee(januaryPeriod(), testSnapshot("1000"), concepts)

	require.Len(t, res.Issues, 1)
	assert.Equal(t, concept.ErrorKindConfiguration, res.Issues[0].Kind)
	assert.Equal(t, "Rota", res.Issues[0].ConceptName)

	// The healthy concept still applied.
	require.Len(t, res.Concepts, 1)
	assert.True(t, dec("1050").Equal(res.Detail.TotalPerceptions))
}

func TestCalculateEmployee_DivisionByZeroIsEvaluationIssue(t *testing.T) {
	concepts := []concept.Concept{
		formulaConcept("Promedio", concept.CategoryPerception, "{SALARIO_BASE} / {HORAS_EXTRA}"),
	}

	res := calculateEmployee(januaryPeriod(), testSnapshot("1000"), concepts)

	require.Len(t, res.Issues, 1)
	assert.Equal(t, concept.ErrorKindEvaluation, res.Issues[0].Kind)
	assert.Empty(t, res.Concepts)
}

func TestCalculateEmployee_WorkedDaysVariable(t *testing.T) {
	concepts := []concept.Concept{
		formulaConcept("Viatico", concept.CategoryPerception, "{DIAS_TRABAJADOS} * 2"),
	}

	res := calculateEmployee(januaryPeriod(), testSnapshot("1000"), concepts)

	require.Empty(t, res.Issues)
	require.Len(t, res.Concepts, 1)
	assert.True(t, dec("62").Equal(res.Concepts[0].TotalAmount))
}

func TestCalculateEmployee_Idempotent(t *testing.T) {
	p := januaryPeriod()
	snap := testSnapshot("1234.56")
	concepts := []concept.Concept{
		fixedConcept("Bono", concept.CategoryPerception, "50.00"),
		formulaConcept("Comision", concept.CategoryPerception, "{TOTAL_PERCEPCIONES} * 0.01"),
		percentageConcept("Aporte", concept.CategoryDeduction, "0.155"),
	}

	first := calculateEmployee(p, snap, concepts)
	second := calculateEmployee(p, snap, concepts)

	assert.True(t, first.Detail.NetSalary.Equal(second.Detail.NetSalary))
	assert.True(t, first.Detail.TotalPerceptions.Equal(second.Detail.TotalPerceptions))
	assert.True(t, first.Detail.TotalDeductions.Equal(second.Detail.TotalDeductions))
	require.Equal(t, len(first.Concepts), len(second.Concepts))
	for i := range first.Concepts {
		assert.True(t, first.Concepts[i].TotalAmount.Equal(second.Concepts[i].TotalAmount))
	}
}

func TestFoldTotals(t *testing.T) {
	results := []EmployeeResult{
		{Detail: PeriodDetail{
			TotalPerceptions:   dec("1060.50"),
			TotalDeductions:    dec("100.00"),
			TotalContributions: dec("0"),
			NetSalary:          dec("960.50"),
		}},
		{Detail: PeriodDetail{
			TotalPerceptions:   dec("2000"),
			TotalDeductions:    dec("300"),
			TotalContributions: dec("150"),
			NetSalary:          dec("1550"),
		}},
	}

	totals := foldTotals(results)

	assert.True(t, dec("3060.50").Equal(totals.Gross))
	assert.True(t, dec("400.00").Equal(totals.Deductions))
	assert.True(t, dec("150").Equal(totals.Contributions))
	assert.True(t, dec("2510.50").Equal(totals.Net))
}
