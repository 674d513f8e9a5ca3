package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("duedate", func(fl validator.FieldLevel) bool {
		_, err := NormalizeDueDate(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}

	return v
}

// NormalizeDueDate accepts "YYYY-MM-DD" or an RFC 3339 timestamp and returns
// the calendar date. The empty string normalizes to "".
func NormalizeDueDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if d, err := time.Parse(models.DateLayout, s); err == nil {
		return d.Format(models.DateLayout), nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return "", err
	}
	return ts.Format(models.DateLayout), nil
}

func dueDatePtr(s *string) *string {
	if s == nil {
		return nil
	}
	d, err := NormalizeDueDate(*s)
	if err != nil || d == "" {
		return nil
	}
	return &d
}

// decode unmarshals body into dst. With strict set, unknown fields are
// rejected; type mismatches are always rejected.
func decode(body []byte, dst any, strict bool) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return NewError("body", "is required")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		return fromDecodeError(err)
	}
	if dec.More() {
		return NewError("body", "must contain a single JSON object")
	}
	return nil
}

func fromDecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return NewError("body", "must be a JSON object")
		}
		return NewError(field, "must be "+kindName(typeErr.Type))
	case errors.As(err, &syntaxErr):
		return NewError("body", "is not valid JSON")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return NewError(field, "is not allowed")
	default:
		return NewError("body", "is not valid JSON")
	}
}

func kindName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}

func check(v any) error {
	if err := validate.Struct(v); err != nil {
		return fromValidator(err)
	}
	return nil
}

// ParseID parses a positive integer identifier taken from a path or query
// parameter named field.
func ParseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, NewError(field, "must be a positive integer")
	}
	return id, nil
}
