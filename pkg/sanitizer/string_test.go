package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"trims ends", "  Jane Doe  ", "Jane Doe"},
		{"collapses internal runs", "Jane \t\t Doe", "Jane Doe"},
		{"single word", "Cleaning", "Cleaning"},
		{"newlines inside", "Teeth\nOrthodontics", "Teeth Orthodontics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.expected {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Jane@Example.COM", "jane@example.com"},
		{"  jane@example.com ", "jane@example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.input); got != tt.expected {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizeLabel_PreservesCase(t *testing.T) {
	got := NormalizeLabel("  10:00 AM - 11:00 AM ")
	if got != "10:00 AM - 11:00 AM" {
		t.Errorf("NormalizeLabel should keep case and inner format, got %q", got)
	}
}
