// Package validation turns untrusted request bodies into typed inputs.
// Bodies are decoded strictly and checked against `validate` struct tags
// (github.com/go-playground/validator/v10). Every failure is reported as a
// *ValidationError listing the offending JSON fields.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldIssue describes one invalid field.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned for malformed or incomplete input. It is
// always safe to show to the caller.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s %s", is.Field, is.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewError builds a ValidationError with a single issue.
func NewError(field, message string) *ValidationError {
	return &ValidationError{Issues: []FieldIssue{{Field: field, Message: message}}}
}

// AsValidationError reports whether err carries a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Issues: make([]FieldIssue, 0, len(verrs))}
	for _, fe := range verrs {
		out.Issues = append(out.Issues, FieldIssue{Field: fieldPath(fe), Message: message(fe)})
	}
	return out
}

// fieldPath drops the Go struct name from the namespace, leaving the JSON
// path ("title", "tasks[2].categoryId").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "must not be empty"
	case "gt":
		return "must be greater than " + fe.Param()
	case "duedate":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}
