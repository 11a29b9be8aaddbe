package apperror

import "errors"

// HTTPError is the client-facing projection of an error.
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

// ToHTTP translates any error into the status/message pair sent to clients.
// Errors outside the AppError taxonomy collapse into ErrInternal so that
// driver or runtime detail never leaves the process.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}
	return HTTPError{
		Status:  ErrInternal.HTTPStatus,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}

// IsInternal reports whether err will be rendered as a 5xx.
func IsInternal(err error) bool {
	return ToHTTP(err).Status >= 500
}
