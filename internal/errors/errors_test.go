package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/julianstephens/ventureboard/internal/models"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "simple error", err: errors.New("something went wrong"), expected: "Error: something went wrong"},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("failed to get loan: %w", models.ErrNotFound),
			expected: "Error: failed to get loan: not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Format(tt.err); result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("failed to load %s", "database")
	if got != "Error: failed to load database" {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{name: "not initialized", err: fmt.Errorf("load: %w", models.ErrNotInitialized), contains: "init"},
		{name: "not found", err: fmt.Errorf("expense abc: %w", models.ErrNotFound), contains: "list"},
		{name: "other", err: errors.New("boom"), contains: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := Hint(tt.err)
			if tt.contains == "" {
				if hint != "" {
					t.Errorf("Hint() = %q, want empty", hint)
				}
				return
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("Hint() = %q, want it to contain %q", hint, tt.contains)
			}
		})
	}
}
