package window

import (
	"github.com/Carmen-Shannon/oxy-morph/common"
	"github.com/Carmen-Shannon/oxy-morph/engine/signal"
)

// CursorToHand maps a cursor position in window pixels onto the hand square.
// The window centre is (0, 0), the right edge is X = +1 and the top edge is Y = +1.
// The hand is inactive when the window has no area or the cursor is outside it.
//
// Parameters:
//   - x, y: cursor position in pixels, origin top-left
//   - width, height: window size in pixels
//   - inside: whether the cursor is over the window
//
// Returns:
//   - signal.Hand: the normalised hand
func CursorToHand(x, y float64, width, height int, inside bool) signal.Hand {
	if width <= 0 || height <= 0 {
		return signal.Hand{}
	}
	nx := float32(2*x/float64(width) - 1)
	ny := float32(1 - 2*y/float64(height))
	active := inside && nx >= -1 && nx <= 1 && ny >= -1 && ny <= 1
	return signal.Hand{
		X:      common.Clamp(nx, -1, 1),
		Y:      common.Clamp(ny, -1, 1),
		Active: active,
	}
}
