package concept

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/itayalasas/hcm-pro-sub001/internal/formula"
)

// Category is a closed set; the calculator dispatches exhaustively on it so a
// new category can never silently fall through to a no-op.
type Category string

const (
	CategoryPerception   Category = "PERCEPTION"
	CategoryDeduction    Category = "DEDUCTION"
	CategoryContribution Category = "CONTRIBUTION"
	CategoryBenefit      Category = "BENEFIT"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryPerception, CategoryDeduction, CategoryContribution, CategoryBenefit:
		return true
	}
	return false
}

type CalcMode string

const (
	CalcModeFixed      CalcMode = "FIXED"
	CalcModePercentage CalcMode = "PERCENTAGE"
	CalcModeFormula    CalcMode = "FORMULA"
)

func (m CalcMode) Valid() bool {
	switch m {
	case CalcModeFixed, CalcModePercentage, CalcModeFormula:
		return true
	}
	return false
}

type Concept struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(120);not null"`
	Category  Category  `gorm:"type:varchar(20);not null;index"`
	CalcMode  CalcMode  `gorm:"type:varchar(20);not null"`

	// Mode-specific payload. FixedAmount for FIXED, PercentageRate (a
	// fraction, 0.10 = 10%) for PERCENTAGE, FormulaID for FORMULA.
	FixedAmount    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	PercentageRate decimal.Decimal `gorm:"type:numeric(10,4);not null;default:0"`
	FormulaID      *uuid.UUID      `gorm:"type:uuid;index"`

	Formula *formula.Formula `gorm:"foreignKey:FormulaID;references:ID"`

	Active bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
