package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxSubscriberEmailLength is the RFC 5321 forward-path limit.
const maxSubscriberEmailLength = 254

var emailValidate = validator.New()

// SubscriberEmail is a value object holding an address accepted by
// ParseSubscriberEmail.
type SubscriberEmail struct {
	value string
}

// InvalidSubscriberEmailError is returned for any rejected address.
type InvalidSubscriberEmailError struct {
	Raw string
}

func (e *InvalidSubscriberEmailError) Error() string {
	return fmt.Sprintf("%s is not a valid subscriber email", e.Raw)
}

// ParseSubscriberEmail validates raw as an email address. The value is
// stored as given; surrounding whitespace makes it invalid.
func ParseSubscriberEmail(raw string) (SubscriberEmail, error) {
	if strings.TrimSpace(raw) == "" || len(raw) > maxSubscriberEmailLength {
		return SubscriberEmail{}, &InvalidSubscriberEmailError{Raw: raw}
	}
	if err := emailValidate.Var(raw, "email"); err != nil {
		return SubscriberEmail{}, &InvalidSubscriberEmailError{Raw: raw}
	}
	return SubscriberEmail{value: raw}, nil
}

// String returns the address.
func (e SubscriberEmail) String() string {
	return e.value
}

// IsZero reports whether e was never set by ParseSubscriberEmail.
func (e SubscriberEmail) IsZero() bool {
	return e.value == ""
}

// MarshalText implements encoding.TextMarshaler.
func (e SubscriberEmail) MarshalText() ([]byte, error) {
	return []byte(e.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseSubscriberEmail.
func (e *SubscriberEmail) UnmarshalText(text []byte) error {
	parsed, err := ParseSubscriberEmail(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
