package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func mustName(t *testing.T, s string) SubscriberName {
	t.Helper()
	n, err := ParseSubscriberName(s)
	if err != nil {
		t.Fatalf("ParseSubscriberName(%q): %v", s, err)
	}
	return n
}

func mustEmail(t *testing.T, s string) SubscriberEmail {
	t.Helper()
	e, err := ParseSubscriberEmail(s)
	if err != nil {
		t.Fatalf("ParseSubscriberEmail(%q): %v", s, err)
	}
	return e
}

func TestNewSubscription(t *testing.T) {
	listID := uuid.New()
	name := mustName(t, "Ursula Le Guin")
	email := mustEmail(t, "ursula@example.com")

	t.Run("returns subscription with non-zero ID", func(t *testing.T) {
		s := NewSubscription(listID, email, name)
		if s.ID == uuid.Nil {
			t.Fatal("expected non-zero UUID for ID")
		}
	})

	t.Run("sets fields", func(t *testing.T) {
		s := NewSubscription(listID, email, name)
		if s.ListID != listID {
			t.Fatalf("expected ListID %v, got %v", listID, s.ListID)
		}
		if s.Name != name {
			t.Fatalf("expected Name %v, got %v", name, s.Name)
		}
		if s.Email != email {
			t.Fatalf("expected Email %v, got %v", email, s.Email)
		}
	})

	t.Run("starts pending confirmation", func(t *testing.T) {
		s := NewSubscription(listID, email, name)
		if s.Status != StatusPendingConfirmation {
			t.Fatalf("expected %q, got %q", StatusPendingConfirmation, s.Status)
		}
	})

	t.Run("sets SubscribedAt to approximately now UTC", func(t *testing.T) {
		before := time.Now().UTC()
		s := NewSubscription(listID, email, name)
		after := time.Now().UTC()
		if s.SubscribedAt.Before(before) || s.SubscribedAt.After(after) {
			t.Fatalf("SubscribedAt %v not between %v and %v", s.SubscribedAt, before, after)
		}
		if s.SubscribedAt.Location() != time.UTC {
			t.Fatalf("expected UTC, got %v", s.SubscribedAt.Location())
		}
	})

	t.Run("generates unique IDs on each call", func(t *testing.T) {
		s1 := NewSubscription(listID, email, name)
		s2 := NewSubscription(listID, email, name)
		if s1.ID == s2.ID {
			t.Fatal("expected unique IDs, got identical")
		}
	})
}

func TestSubscription_Confirm(t *testing.T) {
	s := NewSubscription(uuid.New(), mustEmail(t, "a@example.com"), mustName(t, "A"))
	if !s.Confirm() {
		t.Fatal("expected first Confirm to report a change")
	}
	if s.Status != StatusConfirmed {
		t.Fatalf("expected %q, got %q", StatusConfirmed, s.Status)
	}
	if s.Confirm() {
		t.Fatal("expected second Confirm to be a no-op")
	}
}

func TestParseSubscriptionStatus(t *testing.T) {
	for _, in := range []string{"pending_confirmation", "confirmed"} {
		if _, ok := ParseSubscriptionStatus(in); !ok {
			t.Errorf("expected %q to parse", in)
		}
	}
	if _, ok := ParseSubscriptionStatus("deleted"); ok {
		t.Error("expected unknown status to be rejected")
	}
}

func TestRehydrateSubscription(t *testing.T) {
	id, listID := uuid.New(), uuid.New()
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		email   string
		subName string
		status  string
		wantErr bool
	}{
		{"valid row", "ursula@example.com", "  Ursula Le Guin ", "confirmed", false},
		{"corrupt name", "ursula@example.com", "<script>", "confirmed", true},
		{"blank name", "ursula@example.com", "   ", "pending_confirmation", true},
		{"corrupt email", "not-an-email", "Ursula", "confirmed", true},
		{"unknown status", "ursula@example.com", "Ursula", "archived", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := RehydrateSubscription(id, listID, tt.email, tt.subName, tt.status, at)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Name.String() != tt.subName {
				t.Fatalf("expected untrimmed name %q, got %q", tt.subName, s.Name.String())
			}
			if s.ID != id || s.ListID != listID || !s.SubscribedAt.Equal(at) {
				t.Fatalf("unexpected identity fields: %+v", s)
			}
		})
	}
}
