package staff

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// Leave category keys.
const (
	SickLeave          = "sick_leave"
	ExamLeave          = "exam_leave"
	AnnualLeave        = "annual_leave"
	CompassionateLeave = "compassionate_leave"
)

// LeaveBalances maps a leave category to the remaining whole days.
type LeaveBalances map[string]int

// DefaultLeaveBalances returns a fresh map on every call; callers may mutate it.
func DefaultLeaveBalances() LeaveBalances {
	return LeaveBalances{
		SickLeave:          10,
		ExamLeave:          5,
		AnnualLeave:        20,
		CompassionateLeave: 0,
	}
}

// Clone copies b so the stored value never aliases request input.
func (b LeaveBalances) Clone() LeaveBalances {
	if b == nil {
		return nil
	}
	out := make(LeaveBalances, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

type Staff struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StaffID       string     `gorm:"column:staff_id;type:varchar(6);uniqueIndex:uq_staff_staff_id;not null"`
	Firstname     string     `gorm:"type:varchar(255);not null"`
	Lastname      string     `gorm:"type:varchar(255);not null"`
	Email         string     `gorm:"type:varchar(255);not null"` // unique on LOWER(email)
	Password      string     `gorm:"type:varchar(255);not null;default:''"`
	Role          string     `gorm:"type:varchar(20);not null;default:'staff'"`
	LineManagerID *uuid.UUID `gorm:"type:uuid"`
	LineManager   *Staff     `gorm:"foreignKey:LineManagerID;constraint:OnDelete:SET NULL"`

	LeaveBalances datatypes.JSONType[LeaveBalances] `gorm:"type:jsonb;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Staff) TableName() string {
	return "staff"
}

// Balances returns a copy of the stored leave balances.
func (s *Staff) Balances() LeaveBalances {
	return s.LeaveBalances.Data().Clone()
}

func (s *Staff) SetBalances(b LeaveBalances) {
	s.LeaveBalances = datatypes.NewJSONType(b.Clone())
}

func (s *Staff) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// HasCredential reports whether the account can log in. Staff created by an
// administrator have no password until one is set out of band.
func (s *Staff) HasCredential() bool {
	return s.Password != ""
}

// LineManagerStaffID is the human-facing id of the line manager, if loaded.
func (s *Staff) LineManagerStaffID() string {
	if s.LineManager == nil {
		return ""
	}
	return s.LineManager.StaffID
}
