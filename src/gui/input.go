// Package gui shows the simulation in a desktop window.
//
// The window is only built with the 'ebiten' tag, the default build reports
// ErrUnavailable from Run.
package gui

import "errors"

// ErrUnavailable is returned by Run when the binary is built without the window support.
var ErrUnavailable = errors.New("gui: the window requires building with the 'ebiten' tag")

const (
	// MinFramesPerTick and MaxFramesPerTick bound the speed of a running simulation.
	MinFramesPerTick = 2
	MaxFramesPerTick = 10

	// DefaultScale is the size of a cell in screen pixels.
	DefaultScale = 8
)

// Action is what a mouse click does to the universe.
type Action int

const (
	ActionToggle Action = iota
	ActionGlider
	ActionPulsar
)

// clickAction picks the action for the modifier keys held during a click.
func clickAction(ctrl bool, shift bool) Action {
	switch {
	case ctrl:
		return ActionGlider
	case shift:
		return ActionPulsar
	}
	return ActionToggle
}

// cellAtPixel converts the cursor position into universe coordinates.
func cellAtPixel(x, y, scale int, width, height uint32) (row uint32, col uint32, ok bool) {
	if x < 0 || y < 0 || scale <= 0 {
		return 0, 0, false
	}
	col, row = uint32(x/scale), uint32(y/scale)
	if col >= width || row >= height {
		return 0, 0, false
	}
	return row, col, true
}

// clampFrames keeps the number of frames between ticks within the allowed range.
func clampFrames(n int) int {
	if n < MinFramesPerTick {
		return MinFramesPerTick
	}
	if n > MaxFramesPerTick {
		return MaxFramesPerTick
	}
	return n
}

// screenSize returns the window size for a width x height universe, never below one pixel.
func screenSize(width, height, scale int) (int, int) {
	return max(width*scale, 1), max(height*scale, 1)
}
