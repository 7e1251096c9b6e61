package universe

import (
	"testing"
	"time"
)

func TestTickRateLimits(t *testing.T) {
	cases := []struct {
		initial, expected int
	}{
		{0, MinTickRate},
		{-5, MinTickRate},
		{3, 3},
		{MaxTickRate + 1, MaxTickRate},
	}
	for _, c := range cases {
		if got := NewTickRate(c.initial).Get(); got != c.expected {
			t.Fatalf("NewTickRate(%v) = %v, expected %v", c.initial, got, c.expected)
		}
	}
}

func TestTickRateSpeedChange(t *testing.T) {
	r := NewTickRate(3)
	if got := r.Speedup(); got != 6 {
		t.Fatalf("Speedup() = %v, expected 6", got)
	}
	for i := 0; i < 20; i++ {
		r.Speedup()
	}
	if r.Get() != MaxTickRate {
		t.Fatalf("rate %v exceeds the limit", r.Get())
	}
	for i := 0; i < 20; i++ {
		r.Slowdown()
	}
	if r.Get() != MinTickRate {
		t.Fatalf("rate %v is below the limit", r.Get())
	}
}

func TestTickRateInterval(t *testing.T) {
	if got := NewTickRate(4).Interval(); got != 250*time.Millisecond {
		t.Fatalf("Interval() = %v", got)
	}
}
