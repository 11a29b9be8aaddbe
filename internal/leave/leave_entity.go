package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// LeaveRequest is one leave application. Requests are persisted with a balance
// snapshot; FinalBalance stays nil until a decision is recorded.
type LeaveRequest struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type           string    `gorm:"type:varchar(50);not null"`
	StartDate      time.Time `gorm:"type:date;not null"`
	EndDate        time.Time `gorm:"type:date;not null"`
	ResumptionDate time.Time `gorm:"type:date;not null"`
	Status         string    `gorm:"type:varchar(20);not null;default:'pending'"`
	DateRequested  time.Time `gorm:"not null;default:now()"`
	DateApproved   *time.Time
	InitialBalance int `gorm:"not null"`
	FinalBalance   *int

	StaffID       uuid.UUID `gorm:"type:uuid;not null;index"`
	LineManagerID uuid.UUID `gorm:"type:uuid;not null;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_request"
}

func (r *LeaveRequest) IsDecided() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}
