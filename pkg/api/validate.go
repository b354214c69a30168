package api

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Validator is implemented by every request message.
type Validator interface {
	Validate() error
}

// FieldError reports a single invalid request field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

type fieldErrors []error

func (f *fieldErrors) add(field, reason string) {
	*f = append(*f, &FieldError{Field: field, Reason: reason})
}

func (f *fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.add(field, "is required")
	}
}

func (f fieldErrors) err() error {
	return errors.Join(f...)
}

// ParseDate accepts "2006-01-02" or an RFC 3339 timestamp and returns the
// calendar day at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

func (f *fieldErrors) date(field, value string, required bool) {
	if strings.TrimSpace(value) == "" {
		if required {
			f.add(field, "is required")
		}
		return
	}
	if _, err := ParseDate(value); err != nil {
		f.add(field, "must be a date (YYYY-MM-DD)")
	}
}
