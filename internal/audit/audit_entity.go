package audit

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records an action performed by a staff member.
type AuditLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Timestamp   time.Time `gorm:"not null;default:now()"`
	Action      string    `gorm:"type:varchar(255);not null"`
	Details     string    `gorm:"type:text"`
	PerformedBy uuid.UUID `gorm:"type:uuid;not null;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AuditLog) TableName() string {
	return "audit_log"
}
