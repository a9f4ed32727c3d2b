package util

import (
	"strings"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0B"},
		{512, "512B"},
		{1500000, "1.5MB"},
		{2000000000, "2GB"},
	}

	for _, tt := range tests {
		got := FormatBytes(tt.size)
		if got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestFormatBytesNeverEmpty(t *testing.T) {
	for _, size := range []int64{1, 999, 1023, 1 << 30, 1 << 40} {
		if got := FormatBytes(size); strings.TrimSpace(got) == "" {
			t.Errorf("FormatBytes(%d) returned empty string", size)
		}
	}
}
