package events

import "time"

const PeriodComputedTopic = "hr.payroll.period.computed.v1"

type PeriodComputedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	PeriodID      string    `json:"period_id"`
	CompanyID     string    `json:"company_id"`
	EmployeeCount int       `json:"employee_count"`
	FailedCount   int       `json:"failed_count"`
	TotalNet      string    `json:"total_net"`
	ComputedBy    string    `json:"computed_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}
