//go:build !ebiten

package gui

import "bitlife/src/simulation"

// Run reports that the window support is missing.
func Run(simulation.Controller, int) error {
	return ErrUnavailable
}
