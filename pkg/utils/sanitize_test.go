package utils

import (
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain name",
			input:    "orders-export.xlsx",
			expected: "orders-export.xlsx",
		},
		{
			name:     "path separators replaced",
			input:    "exports/2026/orders.xlsx",
			expected: "exports_2026_orders.xlsx",
		},
		{
			name:     "backslash replaced",
			input:    `reports\orders.xlsx`,
			expected: "reports_orders.xlsx",
		},
		{
			name:     "path traversal neutralized",
			input:    "../../etc/passwd",
			expected: "_____etc_passwd",
		},
		{
			name:     "forbidden characters replaced",
			input:    `order:ORD*2026?.xlsx`,
			expected: "order_ORD_2026_.xlsx",
		},
		{
			name:     "control characters replaced",
			input:    "orders\x00\x1f.xlsx",
			expected: "orders__.xlsx",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  orders.xlsx  ",
			expected: "orders.xlsx",
		},
		{
			name:     "empty input falls back",
			input:    "   ",
			expected: "export",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFilename(tt.input)
			if got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
