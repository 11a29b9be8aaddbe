package stafferrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrStaffNotFound = apperror.New(
		apperror.CodeNotFound,
		"Staff not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Email already exists",
		http.StatusBadRequest,
	)
	ErrStaffIDTaken = apperror.New(
		apperror.CodeConflict,
		"Staff ID already in use",
		http.StatusConflict,
	)
	ErrStaffIDExhausted = apperror.New(
		apperror.CodeInternalError,
		"Could not allocate a staff ID",
		http.StatusInternalServerError,
	)
	ErrLineManagerNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Line manager not found",
		http.StatusBadRequest,
	)
	ErrSelfLineManager = apperror.New(
		apperror.CodeInvalidInput,
		"Staff cannot be their own line manager",
		http.StatusBadRequest,
	)
	ErrNegativeLeaveBalance = apperror.New(
		apperror.CodeInvalidInput,
		"Leave balances must be non-negative",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveCategory = apperror.New(
		apperror.CodeInvalidInput,
		"Leave category names must not be empty",
		http.StatusBadRequest,
	)
	ErrStaffHasDependents = apperror.New(
		apperror.CodeConflict,
		"Staff is referenced by leave requests or audit logs and cannot be deleted",
		http.StatusBadRequest,
	)
)
