package period

import "time"

type CreatePeriodRequest struct {
	Name        string   `json:"name"`
	PeriodType  string   `json:"period_type" binding:"required"`
	StartDate   string   `json:"start_date" binding:"required"`
	EndDate     string   `json:"end_date" binding:"required"`
	PaymentDate string   `json:"payment_date" binding:"required"`
	ScopeType   string   `json:"scope_type"`
	EmployeeIDs []string `json:"employee_ids"`
}

type TransitionRequest struct {
	Target string `json:"target" binding:"required"`
}

type PeriodResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	Name        string `json:"name"`
	PeriodType  string `json:"period_type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	PaymentDate string `json:"payment_date"`
	Status      string `json:"status"`
	ScopeType   string `json:"scope_type"`

	TotalGross         string `json:"total_gross"`
	TotalDeductions    string `json:"total_deductions"`
	TotalContributions string `json:"total_contributions"`
	TotalNet           string `json:"total_net"`

	ComputedAt *time.Time `json:"computed_at,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
}

type ComputeIssueResponse struct {
	EmployeeID  string `json:"employee_id"`
	ConceptID   string `json:"concept_id"`
	ConceptName string `json:"concept_name"`
	Kind        string `json:"kind"`
	Reason      string `json:"reason"`
}

// ComputeResultResponse reports an aggregation run: the updated period plus
// every concept-level issue collected along the way. Employees with issues
// still count toward EmployeeCount; FailedCount is how many of them had at
// least one issue.
type ComputeResultResponse struct {
	Period        PeriodResponse         `json:"period"`
	EmployeeCount int                    `json:"employee_count"`
	FailedCount   int                    `json:"failed_count"`
	Issues        []ComputeIssueResponse `json:"issues,omitempty"`
}

type ConceptLineResponse struct {
	ConceptID   string `json:"concept_id"`
	ConceptName string `json:"concept_name"`
	Category    string `json:"category"`
	Quantity    string `json:"quantity"`
	UnitAmount  string `json:"unit_amount"`
	TotalAmount string `json:"total_amount"`
}

type DetailResponse struct {
	EmployeeID  string `json:"employee_id"`
	BaseSalary  string `json:"base_salary"`
	WorkedDays  int    `json:"worked_days"`
	WorkedHours int    `json:"worked_hours"`

	TotalPerceptions   string `json:"total_perceptions"`
	TotalDeductions    string `json:"total_deductions"`
	TotalContributions string `json:"total_contributions"`
	NetSalary          string `json:"net_salary"`

	Concepts []ConceptLineResponse `json:"concepts"`
}

const dateLayout = "2006-01-02"

func toPeriodResponse(p *Period) PeriodResponse {
	return PeriodResponse{
		ID:                 p.ID.String(),
		CompanyID:          p.CompanyID.String(),
		Name:               p.Name,
		PeriodType:         p.PeriodType,
		StartDate:          p.StartDate.Format(dateLayout),
		EndDate:            p.EndDate.Format(dateLayout),
		PaymentDate:        p.PaymentDate.Format(dateLayout),
		Status:             p.Status,
		ScopeType:          p.ScopeType,
		TotalGross:         p.TotalGross.StringFixed(2),
		TotalDeductions:    p.TotalDeductions.StringFixed(2),
		TotalContributions: p.TotalContributions.StringFixed(2),
		TotalNet:           p.TotalNet.StringFixed(2),
		ComputedAt:         p.ComputedAt,
		ApprovedAt:         p.ApprovedAt,
		PaidAt:             p.PaidAt,
	}
}

func toDetailResponse(d PeriodDetail) DetailResponse {
	lines := make([]ConceptLineResponse, 0, len(d.Concepts))
	for _, line := range d.Concepts {
		lines = append(lines, ConceptLineResponse{
			ConceptID:   line.ConceptID.String(),
			ConceptName: line.ConceptName,
			Category:    line.Category,
			Quantity:    line.Quantity.StringFixed(2),
			UnitAmount:  line.UnitAmount.StringFixed(2),
			TotalAmount: line.TotalAmount.StringFixed(2),
		})
	}
	return DetailResponse{
		EmployeeID:         d.EmployeeID.String(),
		BaseSalary:         d.BaseSalary.StringFixed(2),
		WorkedDays:         d.WorkedDays,
		WorkedHours:        d.WorkedHours,
		TotalPerceptions:   d.TotalPerceptions.StringFixed(2),
		TotalDeductions:    d.TotalDeductions.StringFixed(2),
		TotalContributions: d.TotalContributions.StringFixed(2),
		NetSalary:          d.NetSalary.StringFixed(2),
		Concepts:           lines,
	}
}

func toIssueResponses(issues []ComputeIssue) []ComputeIssueResponse {
	if len(issues) == 0 {
		return nil
	}
	out := make([]ComputeIssueResponse, 0, len(issues))
	for _, issue := range issues {
		out = append(out, ComputeIssueResponse{
			EmployeeID:  issue.EmployeeID.String(),
			ConceptID:   issue.ConceptID.String(),
			ConceptName: issue.ConceptName,
			Kind:        string(issue.Kind),
			Reason:      issue.Reason,
		})
	}
	return out
}
