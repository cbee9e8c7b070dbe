package common

import (
	"testing"
	"time"
)

func TestFormatPlayTime(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{0, "00:00"},
		{-5 * time.Second, "00:00"},
		{42 * time.Second, "00:42"},
		{5 * time.Minute, "05:00"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{time.Hour, "1:00:00"},
		{11*time.Hour + 3*time.Minute + 7*time.Second, "11:03:07"},
		{25 * time.Hour, "25:00:00"},
	}

	for _, tt := range tests {
		if got := FormatPlayTime(tt.input); got != tt.expected {
			t.Errorf("FormatPlayTime(%v) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 kB"},
		{1536, "1.5 kB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.input); got != tt.expected {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
