package apperror

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// formatFieldName turns json field names into words: lineManagerID -> Line Manager ID,
// first_name -> First Name.
func formatFieldName(s string) string {
	s = camelBoundary.ReplaceAllString(s, "$1 $2")
	s = strings.ReplaceAll(s, "_", " ")

	caser := cases.Title(language.English, cases.NoLower)
	return caser.String(s)
}

// MapValidationError converts a gin binding error into a 400 AppError with a
// readable message for the first failing field.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		field := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(field)
		case "max":
			return TooLongField(field, e.Param())
		default:
			return InvalidField(field)
		}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) {
		return New(CodeValidation, "Request body is not valid JSON", ErrInvalidInput.HTTPStatus)
	}
	if errors.As(err, &typeErr) {
		return InvalidField(formatFieldName(typeErr.Field))
	}

	return ErrInvalidInput
}
