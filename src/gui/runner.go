package gui

import "bitlife/src/simulation"

//runner steps the simulation every framesPerTick frames while running
//the run is cancelled only by a finish that one of its own steps produced
type runner struct {
	running       bool
	frames        int
	framesPerTick int
}

func newRunner() *runner {
	return &runner{framesPerTick: MinFramesPerTick}
}

func (r *runner) toggle() {
	r.running = !r.running
	r.frames = 0
}

func (r *runner) stop() {
	r.running = false
	r.frames = 0
}

//faster and slower change the number of frames between ticks
func (r *runner) faster() { r.framesPerTick = clampFrames(r.framesPerTick - 1) }
func (r *runner) slower() { r.framesPerTick = clampFrames(r.framesPerTick + 1) }

//frame is called once per frame, it returns true when a step was done
func (r *runner) frame(c simulation.Controller) bool {
	if !r.running {
		return false
	}
	r.frames++
	if r.frames < r.framesPerTick {
		return false
	}
	r.frames = 0
	c.Step()
	c.Sync()
	if c.Status().RunningMode == simulation.RunningStateFinished {
		r.stop()
	}
	return true
}
