package models

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestParseSubscriberName(t *testing.T) {
	t.Run("valid name is accepted unchanged", func(t *testing.T) {
		n, err := ParseSubscriberName("Ursula Le Guin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n.String() != "Ursula Le Guin" {
			t.Fatalf("expected %q, got %q", "Ursula Le Guin", n.String())
		}
	})

	t.Run("surrounding whitespace is preserved", func(t *testing.T) {
		n, err := ParseSubscriberName("  Ursula  ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n.String() != "  Ursula  " {
			t.Fatalf("expected untrimmed value, got %q", n.String())
		}
	})

	t.Run("256 graphemes is accepted", func(t *testing.T) {
		s := strings.Repeat("ё", 256)
		n, err := ParseSubscriberName(s)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n.String() != s {
			t.Fatal("expected the original 256 grapheme string back")
		}
	})

	t.Run("257 graphemes is rejected", func(t *testing.T) {
		if _, err := ParseSubscriberName(strings.Repeat("ё", 257)); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("combining marks count as one grapheme", func(t *testing.T) {
		// "e" + COMBINING ACUTE ACCENT: 512 code points, 256 graphemes.
		s := strings.Repeat("e\u0301", 256)
		if _, err := ParseSubscriberName(s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := ParseSubscriberName(s + "e\u0301"); err == nil {
			t.Fatal("expected error for 257 graphemes")
		}
	})

	t.Run("multi-byte letters are not counted as bytes", func(t *testing.T) {
		// 200 CJK characters is 600 bytes.
		if _, err := ParseSubscriberName(strings.Repeat("漢", 200)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestParseSubscriberName_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"single space", " "},
		{"only whitespace", " \t\n  "},
		{"slash", "/"},
		{"open paren", "("},
		{"close paren", ")"},
		{"double quote", `"`},
		{"less than", "<"},
		{"greater than", ">"},
		{"backslash", `\`},
		{"open brace", "{"},
		{"close brace", "}"},
		{"forbidden char inside name", "Ursula <Le> Guin"},
		{"script tag", "<script>alert(1)</script>"},
		{"path traversal", "../etc/passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSubscriberName(tt.input)
			if err == nil {
				t.Fatalf("ParseSubscriberName(%q) expected error, got nil", tt.input)
			}
			var nameErr *InvalidSubscriberNameError
			if !errors.As(err, &nameErr) {
				t.Fatalf("expected *InvalidSubscriberNameError, got %T", err)
			}
			if nameErr.Raw != tt.input {
				t.Fatalf("expected Raw %q, got %q", tt.input, nameErr.Raw)
			}
		})
	}
}

func TestParseSubscriberName_ErrorMessage(t *testing.T) {
	_, err := ParseSubscriberName("a{b}")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got, want := err.Error(), "a{b} is not a valid subscriber name"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestParseSubscriberName_Deterministic(t *testing.T) {
	inputs := []string{"Ursula Le Guin", "", "<x>", strings.Repeat("ё", 257)}

	var wg sync.WaitGroup
	for _, in := range inputs {
		_, firstErr := ParseSubscriberName(in)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := ParseSubscriberName(in)
				if (err == nil) != (firstErr == nil) {
					t.Errorf("outcome changed for %q", in)
					return
				}
				if err != nil && err.Error() != firstErr.Error() {
					t.Errorf("message changed for %q: %q vs %q", in, err, firstErr)
				}
			}()
		}
	}
	wg.Wait()
}

func TestSubscriberName_Reparse(t *testing.T) {
	n, err := ParseSubscriberName("Ursula Le Guin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err := ParseSubscriberName(n.String())
	if err != nil {
		t.Fatalf("re-parsing a valid name failed: %v", err)
	}
	if again != n {
		t.Fatalf("expected %v == %v", again, n)
	}
}

func TestSubscriberName_IsZero(t *testing.T) {
	var zero SubscriberName
	if !zero.IsZero() {
		t.Fatal("expected zero value to report IsZero")
	}
	n, _ := ParseSubscriberName("Ada")
	if n.IsZero() {
		t.Fatal("parsed name must not report IsZero")
	}
}

func TestSubscriberName_JSON(t *testing.T) {
	type payload struct {
		Name SubscriberName `json:"name"`
	}

	t.Run("round trip", func(t *testing.T) {
		n, _ := ParseSubscriberName("Ursula Le Guin")
		data, err := json.Marshal(payload{Name: n})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(data) != `{"name":"Ursula Le Guin"}` {
			t.Fatalf("unexpected JSON: %s", data)
		}
		var decoded payload
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if decoded.Name != n {
			t.Fatalf("expected %q, got %q", n, decoded.Name)
		}
	})

	t.Run("decoding an invalid name fails", func(t *testing.T) {
		var decoded payload
		err := json.Unmarshal([]byte(`{"name":"<b>bold</b>"}`), &decoded)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		var nameErr *InvalidSubscriberNameError
		if !errors.As(err, &nameErr) {
			t.Fatalf("expected *InvalidSubscriberNameError in chain, got %v", err)
		}
		if !decoded.Name.IsZero() {
			t.Fatalf("expected zero name after failed decode, got %q", decoded.Name)
		}
	})
}
