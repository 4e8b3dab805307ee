package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Employee struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	FullName   string          `gorm:"type:varchar(160);not null"`
	NationalID string          `gorm:"type:varchar(40);not null"`
	BaseSalary decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Active     bool            `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Snapshot is the read model the period aggregator consumes. Base salary is
// copied into each PeriodDetail at computation time so later salary changes
// never rewrite computed history.
type Snapshot struct {
	ID         uuid.UUID
	FullName   string
	NationalID string
	BaseSalary decimal.Decimal
}

func (e Employee) Snapshot() Snapshot {
	return Snapshot{
		ID:         e.ID,
		FullName:   e.FullName,
		NationalID: e.NationalID,
		BaseSalary: e.BaseSalary,
	}
}
