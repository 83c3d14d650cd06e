package models

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// maxSubscriberNameGraphemes bounds a name by user-perceived characters,
// not bytes or code points.
const maxSubscriberNameGraphemes = 256

// forbiddenNameCharacters is matched per code point.
const forbiddenNameCharacters = `/()"<>\{}`

// SubscriberName is a value object holding a display name that passed
// ParseSubscriberName. The field is unexported so a SubscriberName can only
// be produced by parsing; the zero value is not a valid name.
type SubscriberName struct {
	value string
}

// InvalidSubscriberNameError is returned for any rejected name. It does not
// say which rule failed.
type InvalidSubscriberNameError struct {
	Raw string
}

func (e *InvalidSubscriberNameError) Error() string {
	return fmt.Sprintf("%s is not a valid subscriber name", e.Raw)
}

// ParseSubscriberName validates raw and wraps it unchanged. A name is
// rejected when it is blank after trimming, longer than 256 extended
// grapheme clusters, or contains any of / ( ) " < > \ { }.
func ParseSubscriberName(raw string) (SubscriberName, error) {
	isBlank := strings.TrimSpace(raw) == ""
	isTooLong := uniseg.GraphemeClusterCount(raw) > maxSubscriberNameGraphemes
	hasForbidden := strings.ContainsAny(raw, forbiddenNameCharacters)

	if isBlank || isTooLong || hasForbidden {
		return SubscriberName{}, &InvalidSubscriberNameError{Raw: raw}
	}
	return SubscriberName{value: raw}, nil
}

// String returns the name exactly as it was parsed.
func (n SubscriberName) String() string {
	return n.value
}

// IsZero reports whether n was never set by ParseSubscriberName.
func (n SubscriberName) IsZero() bool {
	return n.value == ""
}

// MarshalText implements encoding.TextMarshaler.
func (n SubscriberName) MarshalText() ([]byte, error) {
	return []byte(n.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Decoded text goes
// through ParseSubscriberName, so JSON input cannot skip validation.
func (n *SubscriberName) UnmarshalText(text []byte) error {
	parsed, err := ParseSubscriberName(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
