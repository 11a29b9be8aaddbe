package staff

import (
	"errors"
	"fmt"
	"testing"

	stafferrors "go-leave/internal/staff/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapRepositoryError(t *testing.T) {
	plain := errors.New("boom")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"not found", gorm.ErrRecordNotFound, stafferrors.ErrStaffNotFound},
		{"wrapped not found", fmt.Errorf("find: %w", gorm.ErrRecordNotFound), stafferrors.ErrStaffNotFound},
		{"staff id collision", &pgconn.PgError{Code: "23505", ConstraintName: "uq_staff_staff_id"}, stafferrors.ErrStaffIDTaken},
		{"email collision", &pgconn.PgError{Code: "23505", ConstraintName: "uq_staff_email"}, stafferrors.ErrEmailAlreadyExists},
		{"missing line manager", &pgconn.PgError{Code: "23503", ConstraintName: "fk_staff_line_manager"}, stafferrors.ErrLineManagerNotFound},
		{"approver restrict", &pgconn.PgError{Code: "23503", ConstraintName: "fk_leave_request_line_manager"}, stafferrors.ErrStaffHasDependents},
		{"audit restrict", &pgconn.PgError{Code: "23503", ConstraintName: "fk_audit_log_performed_by"}, stafferrors.ErrStaffHasDependents},
		{"message fallback", errors.New(`ERROR: duplicate key value violates unique constraint "uq_staff_email"`), stafferrors.ErrEmailAlreadyExists},
		{"unknown", plain, plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapRepositoryError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestLeaveBalances(t *testing.T) {
	a := DefaultLeaveBalances()
	b := DefaultLeaveBalances()
	a[SickLeave] = 0
	assert.Equal(t, 10, b[SickLeave])

	s := &Staff{}
	s.SetBalances(b)
	b[AnnualLeave] = 1
	assert.Equal(t, 20, s.Balances()[AnnualLeave])

	got := s.Balances()
	got[ExamLeave] = 0
	assert.Equal(t, 5, s.Balances()[ExamLeave])
}

func TestValidateBalances(t *testing.T) {
	assert.NoError(t, validateBalances(LeaveBalances{SickLeave: 0, "study_leave": 3}))
	assert.ErrorIs(t, validateBalances(LeaveBalances{SickLeave: -1}), stafferrors.ErrNegativeLeaveBalance)
	assert.ErrorIs(t, validateBalances(LeaveBalances{"": 1}), stafferrors.ErrInvalidLeaveCategory)
}
