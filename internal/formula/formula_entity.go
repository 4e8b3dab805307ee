package formula

import (
	"time"

	"github.com/google/uuid"
)

type Formula struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Optional back-reference to the single concept this formula belongs to.
	ConceptID *uuid.UUID `gorm:"type:uuid;index"`

	Expression  string `gorm:"type:text;not null"`
	Description string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
