package assignment

import (
	"time"

	"github.com/google/uuid"

	"github.com/itayalasas/hcm-pro-sub001/internal/concept"
)

// Assignment marks that a concept applies to an employee. It is intent only;
// amounts are resolved during period aggregation.
type Assignment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_employee_concept,unique"`
	ConceptID  uuid.UUID `gorm:"type:uuid;not null;index:idx_employee_concept,unique"`

	// Position preserves the order concepts were assigned in. Formula
	// concepts referencing running totals depend on it.
	Position int  `gorm:"not null;default:0"`
	Active   bool `gorm:"not null;default:true"`

	Concept *concept.Concept `gorm:"foreignKey:ConceptID;references:ID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
