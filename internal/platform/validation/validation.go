// Package validation collects field-level form errors so each entity can
// declare its constraints in one place.
package validation

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04"
)

// FieldError describes one invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is a list of field errors. A non-empty Errors is an error.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Err returns nil when no field failed.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Required fails on empty or blank values.
func (e *Errors) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, "is required")
	}
}

// The checks below skip empty values; pair them with Required where the
// field is mandatory.

func (e *Errors) OneOf(field, value string, allowed func(string) bool) {
	if value != "" && !allowed(value) {
		e.Add(field, "is not an allowed value")
	}
}

func (e *Errors) Date(field, value string) {
	if value == "" {
		return
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		e.Add(field, "must be a date formatted YYYY-MM-DD")
	}
}

func (e *Errors) TimeOfDay(field, value string) {
	if value == "" {
		return
	}
	if _, err := time.Parse(TimeOfDayLayout, value); err != nil {
		e.Add(field, "must be a time formatted HH:MM")
	}
}

func (e *Errors) IntRange(field, value string, min, max int) {
	if value == "" {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		e.Add(field, "must be a whole number")
		return
	}
	if n < min || n > max {
		e.Add(field, "must be between "+strconv.Itoa(min)+" and "+strconv.Itoa(max))
	}
}

func (e *Errors) HTTPURL(field, value string) {
	if value == "" {
		return
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		e.Add(field, "must be an http or https URL")
	}
}

// IsValidation reports whether err carries field errors.
func IsValidation(err error) bool {
	var ve Errors
	return errors.As(err, &ve)
}

// Fields extracts the field errors from err, if any.
func Fields(err error) []FieldError {
	var ve Errors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
