package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_Messages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrSubscriptionNotFound, "subscription not found"},
		{ErrSubscriptionAlreadyExists, "subscription already exists"},
		{ErrInvalidSubscriberName, "invalid subscriber name"},
		{ErrInvalidSubscriberEmail, "invalid subscriber email"},
	}
	for _, tt := range tests {
		if tt.err == nil {
			t.Fatalf("sentinel for %q must not be nil", tt.want)
		}
		if tt.err.Error() != tt.want {
			t.Fatalf("unexpected message: %q", tt.err.Error())
		}
	}
}

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", ErrSubscriptionNotFound)
	if !errors.Is(wrapped, ErrSubscriptionNotFound) {
		t.Fatal("errors.Is must match wrapped ErrSubscriptionNotFound")
	}

	wrapped2 := fmt.Errorf("%w: %w", ErrInvalidSubscriberName, errors.New("<x> is not a valid subscriber name"))
	if !errors.Is(wrapped2, ErrInvalidSubscriberName) {
		t.Fatal("errors.Is must match double-wrapped ErrInvalidSubscriberName")
	}
	if errors.Is(wrapped2, ErrInvalidSubscriberEmail) {
		t.Fatal("name error must not match the email sentinel")
	}
}
