package domain

import (
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Field is a named form value.
type Field struct {
	Name  string
	Value string
}

// InvalidFields returns the names of fields whose value is blank.
func InvalidFields(fields ...Field) []string {
	var invalid []string
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			invalid = append(invalid, f.Name)
		}
	}
	return invalid
}

// ValidateRequired fails with ErrValidation naming every blank field.
func ValidateRequired(fields ...Field) error {
	if invalid := InvalidFields(fields...); len(invalid) > 0 {
		return ErrValidation.WithDetails("required: " + strings.Join(invalid, ", "))
	}
	return nil
}

// ValidateEmail reports whether email looks like an address.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateCurrency checks for a three letter upper-case code.
func ValidateCurrency(code string) error {
	if !currencyPattern.MatchString(code) {
		return ErrInvalidArgument.WithDetails("currency " + code)
	}
	return nil
}

// ValidateDate reports whether s is a YYYY-MM-DD calendar date.
func ValidateDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}
