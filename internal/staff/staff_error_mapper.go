package staff

import (
	"errors"
	"strings"

	stafferrors "go-leave/internal/staff/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return stafferrors.ErrStaffNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			switch pgErr.ConstraintName {
			case "uq_staff_staff_id":
				return stafferrors.ErrStaffIDTaken.WithCause(err)
			case "uq_staff_email":
				return stafferrors.ErrEmailAlreadyExists.WithCause(err)
			}
		case "23503":
			switch pgErr.ConstraintName {
			case "fk_staff_line_manager":
				return stafferrors.ErrLineManagerNotFound.WithCause(err)
			case "fk_leave_request_line_manager", "fk_audit_log_performed_by":
				return stafferrors.ErrStaffHasDependents.WithCause(err)
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_staff_staff_id") {
		return stafferrors.ErrStaffIDTaken.WithCause(err)
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_staff_email") {
		return stafferrors.ErrEmailAlreadyExists.WithCause(err)
	}

	return err
}
