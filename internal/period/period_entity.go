package period

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusDraft      = "DRAFT"
	StatusCalculated = "CALCULATED"
	StatusApproved   = "APPROVED"
	StatusPaid       = "PAID"
)

// Period type drives display and name generation only; computation works off
// the start/end dates.
const (
	TypeWeekly    = "WEEKLY"
	TypeBiweekly  = "BIWEEKLY"
	TypeMonthly   = "MONTHLY"
	TypeBimonthly = "BIMONTHLY"
)

const (
	ScopeAllActive = "ALL_ACTIVE"
	ScopeSelected  = "SELECTED"
)

type Period struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_company_status"`

	Name        string    `gorm:"type:varchar(120);not null"`
	PeriodType  string    `gorm:"type:varchar(20);not null"`
	StartDate   time.Time `gorm:"type:date;not null"`
	EndDate     time.Time `gorm:"type:date;not null"`
	PaymentDate time.Time `gorm:"type:date;not null"`

	Status    string `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_company_status"`
	ScopeType string `gorm:"type:varchar(20);not null;default:'ALL_ACTIVE'"`

	// Computing is the compare-and-swap claim that keeps two compute calls
	// from racing the same period.
	Computing bool `gorm:"not null;default:false"`

	// Derived totals, overwritten on every aggregation run.
	TotalGross         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalDeductions    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalContributions decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalNet           decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time
	PaidAt     *time.Time
	ComputedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	ScopeEmployees []PeriodEmployee `gorm:"foreignKey:PeriodID"`
	Details        []PeriodDetail   `gorm:"foreignKey:PeriodID"`
}

// PeriodEmployee pins an explicit employee scope captured at creation time.
// Only used when ScopeType is SELECTED.
type PeriodEmployee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PeriodID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt  time.Time
}

// PeriodDetail is one employee's computed result for one period. BaseSalary
// is a snapshot taken at computation time; later employee salary changes do
// not track back into it.
type PeriodDetail struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PeriodID   uuid.UUID `gorm:"type:uuid;not null;index:idx_period_employee,unique"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_period_employee,unique"`

	BaseSalary  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	WorkedDays  int             `gorm:"not null;default:0"`
	WorkedHours int             `gorm:"not null;default:0"`

	TotalPerceptions   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalDeductions    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalContributions decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	NetSalary          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Concepts []ConceptDetail `gorm:"foreignKey:PeriodDetailID"`
}

// ConceptDetail is one applied concept line under a PeriodDetail. Name and
// category are snapshots so history reads stay stable even if the concept
// definition is later renamed.
type ConceptDetail struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PeriodDetailID uuid.UUID `gorm:"type:uuid;not null;index"`
	PeriodID       uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ConceptID      uuid.UUID `gorm:"type:uuid;not null;index"`

	ConceptName string `gorm:"type:varchar(120);not null"`
	Category    string `gorm:"type:varchar(20);not null"`

	Quantity    decimal.Decimal `gorm:"type:numeric(10,2);not null;default:1"`
	UnitAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	CreatedAt time.Time
}
