package simulation

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"bitlife/src/universe"
)

//Options represents the simulation's configurable options
type Options struct {
	Width           int
	Height          int
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
	Density         float64 //probability of a cell to be alive on random fill
	Seed            int64   //random source seed, 0 means unseeded
}

//Status represents the status of the simulation at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(c Controller)
	Start()
}

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name  string           //template name
	Descr string           //template descr
	Cells []universe.Coord //cells to make alive
}

//The simulation running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = 100
	DefHeight             = 50
	DefMaxSkippedTicks    = 5
	DefDensity            = universe.DefaultDensity
)

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

//ErrInvalidOptions is returned by New and Options.Validate for unusable options
var ErrInvalidOptions = errors.New("invalid simulation options")

var DefaultOptions = Options{
	Width:           DefWidth,
	Height:          DefHeight,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
	Density:         DefDensity,
}

//Validate checks the options can be used to create a simulation
func (o Options) Validate() error {
	switch {
	case o.Width < 0 || int64(o.Width) > math.MaxUint32:
		return fmt.Errorf("%w: width %d", ErrInvalidOptions, o.Width)
	case o.Height < 0 || int64(o.Height) > math.MaxUint32:
		return fmt.Errorf("%w: height %d", ErrInvalidOptions, o.Height)
	case o.Interval < 0:
		return fmt.Errorf("%w: interval %v", ErrInvalidOptions, o.Interval)
	case o.MaxSteps < 0:
		return fmt.Errorf("%w: max steps %d", ErrInvalidOptions, o.MaxSteps)
	case o.MaxSkippedTicks < 0:
		return fmt.Errorf("%w: max skipped ticks %d", ErrInvalidOptions, o.MaxSkippedTicks)
	case !(o.Density >= 0 && o.Density <= 1):
		return fmt.Errorf("%w: density %v", ErrInvalidOptions, o.Density)
	}
	return nil
}

//String returns the running state name
func (r RunningState) String() string {
	switch r {
	case RunningStateManual:
		return "manual"
	case RunningStateStep:
		return "step"
	case RunningStateRun:
		return "run"
	case RunningStateFinished:
		return "finished"
	}
	return fmt.Sprintf("RunningState(%d)", int(r))
}

//Simulation drives the universe
//the universe is owned by the control loop: every mutation is a command executed there one by one
//implements Controller interface
type Simulation struct {
	options struct {
		Options
		sync.Mutex
	}
	state struct {
		Status
		sync.Mutex
	}
	world struct {
		*universe.Universe
		sync.Mutex
	}
	views struct {
		list []Viewer
		sync.Mutex
	}
	stateCh   chan Status
	templates map[string]Template
	controlCh chan func()
	closeCh   chan bool
	done      chan struct{}
}

//New creates the Simulation instance and starts its control loop
//nil options selects DefaultOptions
func New(o *Options, stateCh chan Status) (*Simulation, error) {
	if o == nil {
		o = &DefaultOptions
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	s := Simulation{
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		done:      make(chan struct{}),
		stateCh:   stateCh,
		templates: map[string]Template{},
	}
	s.options.Options = *o

	var src universe.Source
	if o.Seed != 0 {
		src = universe.NewSeededSource(o.Seed)
	}
	u := universe.NewWithSource(uint32(o.Width), uint32(o.Height), src)
	if o.Density != universe.DefaultDensity {
		u.Randomize(o.Density)
	}
	s.world.Universe = u
	s.state.LiveCells = u.LiveCells()

	go s.mainLoop()
	return &s, nil
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (s *Simulation) AddTemplate(tmpl Template) {
	s.enqueue(func() {
		s.templates[tmpl.Name] = tmpl
	})
}

//Settle makes the cells alive, cells outside the universe are skipped
func (s *Simulation) Settle(cells []universe.Coord) {
	s.enqueue(func() {
		s.settle(cells)
	})
}

//SettleTemplate populates the universe with the seeding template
func (s *Simulation) SettleTemplate(name string) {
	s.enqueue(func() {
		tmpl, ok := s.templates[name]
		if !ok {
			universe.Logger().Warn("unknown template", "name", name)
			return
		}
		s.settle(tmpl.Cells)
	})
}

//Randomize repopulates the universe, each cell is alive with the probability
func (s *Simulation) Randomize(probability float64) {
	s.enqueue(func() {
		s.mutate(func(u *universe.Universe) {
			u.Randomize(probability)
		})
	})
}

//ToggleCell inverses the cell state at row, col
func (s *Simulation) ToggleCell(row uint32, col uint32) {
	s.enqueue(func() {
		s.mutate(func(u *universe.Universe) {
			if row >= u.Height() || col >= u.Width() {
				return
			}
			u.ToggleCell(row, col)
		})
	})
}

//Stamp places the named pattern anchored at row, col
//the pattern is skipped when it is unknown or does not fit
func (s *Simulation) Stamp(name string, row uint32, col uint32) {
	s.enqueue(func() {
		p, ok := universe.LookupPattern(name)
		if !ok {
			universe.Logger().Warn("unknown pattern", "name", name)
			return
		}
		s.mutate(func(u *universe.Universe) {
			u.Stamp(p, row, col)
		})
	})
}

//Resize changes the universe dimensions, all cells are killed
func (s *Simulation) Resize(width uint32, height uint32) {
	s.enqueue(func() {
		s.options.Lock()
		s.options.Width = int(width)
		s.options.Height = int(height)
		s.options.Unlock()
		s.mutate(func(u *universe.Universe) {
			u.SetWidth(width)
			u.SetHeight(height)
		})
	})
}

//SetInterval changes the pause between the steps of a running simulation
func (s *Simulation) SetInterval(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.options.Lock()
	s.options.Interval = d
	s.options.Unlock()
}

//RegisterViewer registers the viewer - the simulation will call the viewer when the state is changed
func (s *Simulation) RegisterViewer(v Viewer) {
	s.views.Lock()
	s.views.list = append(s.views.list, v)
	s.views.Unlock()
	v.Register(s)
}

//StateCh returns the channel with the simulation's status updates
func (s *Simulation) StateCh() chan Status {
	return s.stateCh
}

//Status returns current simulation status represented by Status struct
func (s *Simulation) Status() Status {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.Status
}

//Options returns current simulation configuration represented by Options struct
func (s *Simulation) Options() Options {
	s.options.Lock()
	defer s.options.Unlock()
	return s.options.Options
}

//Frame returns a copy of the current generation
func (s *Simulation) Frame() universe.Frame {
	s.world.Lock()
	defer s.world.Unlock()
	return s.world.Snapshot()
}

//Run starts the simulation, returns immediately
func (s *Simulation) Run() {
	s.enqueue(s.run)
}

//Stop stops the simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (s *Simulation) Stop() {
	s.enqueue(s.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (s *Simulation) Step() {
	s.enqueue(s.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (s *Simulation) Clear() {
	s.enqueue(s.clear)
}

//Sync waits until all the commands queued before the call are executed
func (s *Simulation) Sync() {
	done := make(chan struct{})
	if !s.enqueue(func() { close(done) }) {
		return
	}
	select {
	case <-done:
	case <-s.done:
	}
}

//Close stops the running simulation and the main loop, returns immediately
func (s *Simulation) Close() {
	s.enqueue(s.stop)
	select {
	case s.closeCh <- true:
	case <-s.done:
	}
}

//enqueue passes the command to the main loop
//returns false if the main loop is already closed
func (s *Simulation) enqueue(cmd func()) bool {
	select {
	case s.controlCh <- cmd:
		return true
	case <-s.done:
		return false
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (s *Simulation) mainLoop() {
	for {
		select {
		case cmd := <-s.controlCh:
			cmd()
		case <-s.closeCh:
			close(s.done)
			return
		}
	}
}

//settle makes the cells alive skipping the ones outside the universe
func (s *Simulation) settle(cells []universe.Coord) {
	s.mutate(func(u *universe.Universe) {
		inside := make([]universe.Coord, 0, len(cells))
		for _, c := range cells {
			if c.Row >= u.Height() || c.Col >= u.Width() {
				continue
			}
			inside = append(inside, c)
		}
		u.SetCells(inside)
	})
}

//mutate applies fn to the universe then updates the counters and the views
//a finished simulation goes back to the manual mode, the edited universe may evolve again
func (s *Simulation) mutate(fn func(u *universe.Universe)) {
	s.world.Lock()
	fn(s.world.Universe)
	live := s.world.LiveCells()
	s.world.Unlock()

	s.state.Lock()
	s.state.LiveCells = live
	s.state.Unlock()
	if s.runningMode() == RunningStateFinished {
		s.switchRunningState(RunningStateManual)
	}
	s.refreshView()
}

//runningMode returns the current running mode
func (s *Simulation) runningMode() RunningState {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.RunningMode
}

//switchRunningState switch the state of the simulation to RunningState
//also writes the new state to the stateCh to signal upper control software
func (s *Simulation) switchRunningState(to RunningState) {
	s.state.Lock()
	s.state.RunningMode = to
	st := s.state.Status
	s.state.Unlock()
	if s.stateCh != nil {
		s.stateCh <- st
	}
}

//run starts the simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (s *Simulation) run() {
	if s.runningMode() == RunningStateRun {
		return
	}
	s.switchRunningState(RunningStateRun)
	universe.Logger().Info("simulation started", "iteration", s.Status().IterationNum)
	go func() {
		skipped := 0
		done := make(chan bool)
		for {
			mode := s.runningMode()
			if mode != RunningStateRun && mode != RunningStateStep {
				break
			}
			if skipped > s.Options().MaxSkippedTicks {
				universe.Logger().Warn("simulation finished: too many skipped ticks", "skipped", skipped)
				s.switchRunningState(RunningStateFinished)
				break
			}
			//skip the tick if the simulation is still in the calculation mode
			if mode != RunningStateStep {
				skipped = 0
				if !s.enqueue(func() {
					s.step()
					done <- true
				}) {
					return
				}
				select {
				case <-done:
				case <-s.done:
					return
				}
			} else {
				skipped++
			}
			if interval := s.Options().Interval; interval > 0 {
				select {
				case <-time.After(interval):
				case <-s.done:
					return
				}
			}
		}
	}()
}

//stop stops the simulation running cycle
func (s *Simulation) stop() {
	if s.runningMode() == RunningStateRun {
		s.switchRunningState(RunningStateManual)
	}
}

//step does the new one state calculation for entire universe
func (s *Simulation) step() {
	finished := false
	rm := s.runningMode()
	if rm == RunningStateFinished {
		rm = RunningStateManual
	}
	defer func() {
		if finished {
			s.switchRunningState(RunningStateFinished)
			st := s.Status()
			universe.Logger().Info("simulation finished", "iteration", st.IterationNum, "live", st.LiveCells)
		} else {
			s.switchRunningState(rm)
		}
		s.refreshView()
	}()

	maxIter := s.Options().MaxSteps
	if maxIter != 0 && s.Status().IterationNum >= maxIter {
		finished = true
		return
	}
	s.switchRunningState(RunningStateStep)
	isAlive, changed := s.nextIteration()
	if !isAlive || !changed {
		finished = true
	}
}

//clear clears the universe data, reset all counters
func (s *Simulation) clear() {
	s.world.Lock()
	s.world.Reset()
	s.world.Unlock()

	s.state.Lock()
	s.state.IterationNum = 0
	s.state.LiveCells = 0
	s.state.IterationTime = 0
	s.state.Unlock()
	s.switchRunningState(RunningStateManual)
	s.refreshView()
}

//nextIteration does one simulation cycle
//the generation before the tick is kept to tell whether the universe has changed
func (s *Simulation) nextIteration() (hasLiveCells bool, changed bool) {
	s.world.Lock()
	start := time.Now()
	prev := slices.Clone(s.world.Cells())
	s.world.Tick()
	changed = !slices.Equal(prev, s.world.Cells())
	liveCells := s.world.LiveCells()
	elapsed := time.Since(start)
	s.world.Unlock()

	s.state.Lock()
	s.state.IterationNum++
	s.state.LiveCells = liveCells
	s.state.IterationTime = elapsed
	s.state.Unlock()
	return liveCells > 0, changed
}

//refreshView calls Refresh event for all registered views
func (s *Simulation) refreshView() {
	s.views.Lock()
	views := slices.Clone(s.views.list)
	s.views.Unlock()
	for _, v := range views {
		v.Refresh()
	}
}
