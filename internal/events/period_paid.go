package events

import "time"

const PeriodPaidTopic = "hr.payroll.period.paid.v1"

type PeriodPaidEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	PeriodID   string    `json:"period_id"`
	CompanyID  string    `json:"company_id"`
	PaidBy     string    `json:"paid_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
