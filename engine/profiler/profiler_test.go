package profiler

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func TestTickLogsOncePerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var lines []string
	p := NewProfiler(
		WithInterval(time.Second),
		WithClock(clock.now),
		WithLogger(func(format string, args ...any) {
			lines = append(lines, fmt.Sprintf(format, args...))
		}),
	)

	for range 49 {
		clock.t = clock.t.Add(20 * time.Millisecond)
		if p.Tick(100_500) {
			t.Fatal("logged before the interval elapsed")
		}
	}
	clock.t = clock.t.Add(20 * time.Millisecond)
	if !p.Tick(100_500) {
		t.Fatal("did not log once the interval elapsed")
	}

	if len(lines) != 1 {
		t.Fatalf("logged %d lines, want 1", len(lines))
	}
	for _, want := range []string{"FPS: 50.00", "Elements: 100.5k"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("line %q missing %q", lines[0], want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1200, "1.2k"},
		{2_500_000, "2.5M"},
	}
	for _, tt := range tests {
		if got := formatCount(tt.n); got != tt.want {
			t.Errorf("formatCount(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
