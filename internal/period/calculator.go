package period

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/itayalasas/hcm-pro-sub001/internal/concept"
	"github.com/itayalasas/hcm-pro-sub001/internal/employee"
)

const hoursPerWorkday = 8

// categoryOrder fixes the evaluation order within one employee. Running
// totals (TOTAL_PERCEPCIONES, TOTAL_DEDUCCIONES) only see concepts of
// earlier categories plus earlier concepts of the same category, so the
// order is part of the calculation contract.
var categoryOrder = []concept.Category{
	concept.CategoryPerception,
	concept.CategoryDeduction,
	concept.CategoryContribution,
	concept.CategoryBenefit,
}

// ComputeIssue records one concept that could not be resolved for one
// employee. The employee's remaining concepts still run.
type ComputeIssue struct {
	EmployeeID  uuid.UUID
	ConceptID   uuid.UUID
	ConceptName string
	Kind        concept.ErrorKind
	Reason      string
}

// EmployeeResult is the outcome of calculateEmployee: the persisted detail
// row, its concept lines, and whatever issues came up along the way.
type EmployeeResult struct {
	Detail   PeriodDetail
	Concepts []ConceptDetail
	Issues   []ComputeIssue
}

func (r EmployeeResult) Failed() bool { return len(r.Issues) > 0 }

// workedDays counts calendar days in the period, both ends inclusive.
func workedDays(p Period) int {
	days := int(p.EndDate.Sub(p.StartDate).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}

// calculateEmployee runs the full per-employee calculation: concepts are
// grouped by category in the fixed order, each amount feeds the running
// totals before the next concept resolves, and benefits are recorded
// without touching any total. The function is pure; persistence is the
// caller's job.
func calculateEmployee(p Period, snap employee.Snapshot, concepts []concept.Concept) EmployeeResult {
	days := workedDays(p)

	rc := concept.Context{
		BaseSalary:       snap.BaseSalary,
		WorkedDays:       decimal.NewFromInt(int64(days)),
		WorkedHours:      decimal.NewFromInt(int64(days * hoursPerWorkday)),
		OvertimeHours:    decimal.Zero,
		TotalPerceptions: decimal.Zero,
		TotalDeductions:  decimal.Zero,
	}

	detail := PeriodDetail{
		PeriodID:           p.ID,
		CompanyID:          p.CompanyID,
		EmployeeID:         snap.ID,
		BaseSalary:         snap.BaseSalary,
		WorkedDays:         days,
		WorkedHours:        days * hoursPerWorkday,
		TotalPerceptions:   decimal.Zero,
		TotalDeductions:    decimal.Zero,
		TotalContributions: decimal.Zero,
	}

	// Base salary is itself an implicit perception.
	detail.TotalPerceptions = snap.BaseSalary
	rc.TotalPerceptions = snap.BaseSalary

	var lines []ConceptDetail
	var issues []ComputeIssue

	for _, cat := range categoryOrder {
		for _, cpt := range concepts {
			if cpt.Category != cat {
				continue
			}

			amount, err := concept.Resolve(cpt, rc)
			if err != nil {
				issues = append(issues, toIssue(snap.ID, cpt, err))
				continue
			}

			lines = append(lines, ConceptDetail{
				PeriodID:    p.ID,
				CompanyID:   p.CompanyID,
				ConceptID:   cpt.ID,
				ConceptName: cpt.Name,
				Category:    string(cpt.Category),
				Quantity:    decimal.NewFromInt(1),
				UnitAmount:  amount,
				TotalAmount: amount,
			})

			switch cat {
			case concept.CategoryPerception:
				detail.TotalPerceptions = detail.TotalPerceptions.Add(amount)
				rc.TotalPerceptions = detail.TotalPerceptions
			case concept.CategoryDeduction:
				detail.TotalDeductions = detail.TotalDeductions.Add(amount)
				rc.TotalDeductions = detail.TotalDeductions
			case concept.CategoryContribution:
				detail.TotalContributions = detail.TotalContributions.Add(amount)
			case concept.CategoryBenefit:
				// Informational only.
			}
		}
	}

	detail.NetSalary = detail.TotalPerceptions.
		Sub(detail.TotalDeductions).
		Sub(detail.TotalContributions)

	return EmployeeResult{Detail: detail, Concepts: lines, Issues: issues}
}

func toIssue(employeeID uuid.UUID, cpt concept.Concept, err error) ComputeIssue {
	issue := ComputeIssue{
		EmployeeID:  employeeID,
		ConceptID:   cpt.ID,
		ConceptName: cpt.Name,
		Kind:        concept.ErrorKindEvaluation,
		Reason:      err.Error(),
	}
	var resolveErr *concept.ResolveError
	if errors.As(err, &resolveErr) {
		issue.Kind = resolveErr.Kind
	}
	return issue
}

// Totals is the period-level fold over all successfully persisted details.
type Totals struct {
	Gross         decimal.Decimal
	Deductions    decimal.Decimal
	Contributions decimal.Decimal
	Net           decimal.Decimal
}

func foldTotals(results []EmployeeResult) Totals {
	t := Totals{
		Gross:         decimal.Zero,
		Deductions:    decimal.Zero,
		Contributions: decimal.Zero,
		Net:           decimal.Zero,
	}
	for _, r := range results {
		t.Gross = t.Gross.Add(r.Detail.TotalPerceptions)
		t.Deductions = t.Deductions.Add(r.Detail.TotalDeductions)
		t.Contributions = t.Contributions.Add(r.Detail.TotalContributions)
		t.Net = t.Net.Add(r.Detail.NetSalary)
	}
	return t
}
