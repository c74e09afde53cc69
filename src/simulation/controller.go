package simulation

import (
	"time"

	"bitlife/src/universe"
)

//Controller is the set of operations available to the viewers
type Controller interface {
	Status() Status
	Options() Options
	Frame() universe.Frame
	StateCh() chan Status
	AddTemplate(tmpl Template)
	SettleTemplate(name string)
	Settle(cells []universe.Coord)
	Randomize(probability float64)
	ToggleCell(row uint32, col uint32)
	Stamp(name string, row uint32, col uint32)
	Resize(width uint32, height uint32)
	SetInterval(d time.Duration)
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Sync()
	Close()
}

var _ Controller = (*Simulation)(nil)
