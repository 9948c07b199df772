package common

import (
	"testing"
	"time"
)

func TestFormatDiamonds(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		expected string
	}{
		{"Zero", 0, "0"},
		{"Less than 1k", 999, "999"},
		{"Exactly 1k", 1000, "1,000"},
		{"Tens of thousands", 12345, "12,345"},
		{"Millions", 1234567, "1,234,567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatDiamonds(tt.amount)
			if result != tt.expected {
				t.Errorf("FormatDiamonds(%d) = %s; want %s", tt.amount, result, tt.expected)
			}
		})
	}
}

func TestFormatCooldown(t *testing.T) {
	tests := []struct {
		name      string
		remaining time.Duration
		expected  string
	}{
		{"Hours and minutes", 5*time.Hour + 30*time.Minute, "5h 30m"},
		{"Minutes only", 42 * time.Minute, "42m"},
		{"Rounds seconds", 90 * time.Second, "2m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatCooldown(tt.remaining)
			if result != tt.expected {
				t.Errorf("FormatCooldown(%v) = %s; want %s", tt.remaining, result, tt.expected)
			}
		})
	}
}
