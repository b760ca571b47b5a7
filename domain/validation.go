package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTextLength bounds every free-text field accepted from clients.
const MaxTextLength = 500

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator accumulates field errors during an explicit validation pass.
type Validator struct {
	fields []FieldError
}

func (v *Validator) Add(field, message string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.Add(field, message)
	}
}

// Length checks that value has between min and max runes.
func (v *Validator) Length(field, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	switch {
	case n < min:
		v.Add(field, "too short")
	case n > max:
		v.Add(field, "too long")
	}
}

func (v *Validator) Valid() bool {
	return len(v.fields) == 0
}

// Err returns nil when no field failed, otherwise an INVALID domain error carrying the field list.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return &Error{
		Code:    ErrCodeInvalid,
		Message: ErrInvalidPayload.Message,
		Fields:  v.fields,
	}
}

// ParseDay accepts RFC3339 timestamps or YYYY-MM-DD and truncates to the calendar day
// expressed in the timestamp's own offset. The result is midnight UTC of that day.
func ParseDay(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return CalendarDay(t), true
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// CalendarDay drops the time-of-day, keeping the year/month/day seen in t's location.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
