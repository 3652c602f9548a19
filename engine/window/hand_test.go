package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-morph/engine/signal"
)

func TestCursorToHand(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		inside bool
		want   signal.Hand
	}{
		{"centre", 400, 300, true, signal.Hand{X: 0, Y: 0, Active: true}},
		{"top left", 0, 0, true, signal.Hand{X: -1, Y: 1, Active: true}},
		{"bottom right", 800, 600, true, signal.Hand{X: 1, Y: -1, Active: true}},
		{"left", 0, 300, false, signal.Hand{X: -1, Y: 0, Active: false}},
		{"beyond edge", 1200, 300, true, signal.Hand{X: 1, Y: 0, Active: false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CursorToHand(tt.x, tt.y, 800, 600, tt.inside); got != tt.want {
				t.Errorf("CursorToHand() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCursorToHandDegenerateWindow(t *testing.T) {
	if got := CursorToHand(10, 10, 0, 0, true); got.Active {
		t.Errorf("CursorToHand() on a zero-size window = %+v, want inactive", got)
	}
}
