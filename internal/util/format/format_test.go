package format

import (
	"testing"
	"time"
)

func TestHumanizeBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{in: 0, want: "0 B"},
		{in: 512, want: "512 B"},
		{in: 1536, want: "1.5 KB"},
		{in: 10 * 1024 * 1024, want: "10.0 MB"},
		{in: 3 * 1024 * 1024 * 1024, want: "3.0 GB"},
	}
	for _, tt := range tests {
		if got := HumanizeBytes(tt.in); got != tt.want {
			t.Errorf("HumanizeBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKiB(t *testing.T) {
	if got := KiB(3 * 1024); got != 3 {
		t.Errorf("KiB = %d", got)
	}
	if got := KiB(1023); got != 0 {
		t.Errorf("KiB rounds down, got %d", got)
	}
}

func TestClock(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 0, want: "0:00"},
		{in: 4 * time.Second, want: "0:04"},
		{in: 75 * time.Second, want: "1:15"},
		{in: 10*time.Minute + 5*time.Second, want: "10:05"},
		{in: -3 * time.Second, want: "0:00"},
	}
	for _, tt := range tests {
		if got := Clock(tt.in); got != tt.want {
			t.Errorf("Clock(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
