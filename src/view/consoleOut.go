package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"bitlife/src/simulation"
)

type ConsoleOut struct {
	c          simulation.Controller
	w          io.Writer
	startTime  time.Time
	reportStep int
	reported   int
}

func NewConsoleOut() *ConsoleOut {
	return NewConsoleOutTo(os.Stdout)
}

//NewConsoleOutTo creates the ConsoleOut which writes to w
func NewConsoleOutTo(w io.Writer) *ConsoleOut {
	return &ConsoleOut{w: w, reportStep: 10}
}

func (c *ConsoleOut) Refresh() {
	st := c.c.Status()
	if st.RunningMode == simulation.RunningStateFinished {
		if c.reported == -1 {
			return
		}
		c.reported = -1
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		_, _ = fmt.Fprintln(c.w, "\nFinished:")
		c.printHashData(resultData)
	} else if st.RunningMode == simulation.RunningStateRun || st.RunningMode == simulation.RunningStateStep {
		if st.IterationNum != c.reported && st.IterationNum%c.reportStep == 0 {
			c.reported = st.IterationNum
			_, _ = fmt.Fprintf(c.w, "  Iterations done: %v, live cells: %v\n", st.IterationNum, st.LiveCells)
		}
	}
}

func (c *ConsoleOut) Register(ctl simulation.Controller) {
	c.c = ctl
	o := c.c.Options()
	_, _ = fmt.Fprintln(c.w, "Running configuration:")
	_, _ = fmt.Fprintf(c.w, "  Dimension: %v x %v\n", o.Width, o.Height)
	_, _ = fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	_, _ = fmt.Fprintf(c.w, "  Max iterations: %v steps\n", o.MaxSteps)
	seed := interface{}(o.Seed)
	if o.Seed == 0 {
		seed = "random"
	}
	c.printHashData(map[string]interface{}{
		"Density": o.Density,
		"Seed":    seed,
	})
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	c.reported = 0
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
