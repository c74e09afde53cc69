package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"bitlife/src/gui"
	"bitlife/src/render"
	"bitlife/src/simulation"
	"bitlife/src/universe"
	"bitlife/src/view"

	"github.com/integrii/flaggy"
)

var (
	//{x, y} pairs
	testSample = [][]int{
		{1, 1}, {1, 2},
		{2, 1}, {2, 2},
		{3, 3},
		{4, 2},
		{4, 3},
		{5, 3},
	}

	templates = []simulation.Template{
		{Name: "testSample1", Descr: "a block next to a small cluster", Cells: xyCells(testSample)},
		{Name: "spaceship", Descr: "a glider heading to the top left corner", Cells: []universe.Coord{
			{Row: 1, Col: 2}, {Row: 2, Col: 3}, {Row: 3, Col: 1}, {Row: 3, Col: 2}, {Row: 3, Col: 3},
		}},
	}
)

type EnvOptions struct {
	interactive bool
	window      bool
	template    string
	output      string
	scale       int
	verbose     bool
}

func main() {
	eo, uo := initOptions()
	initLogger(eo.verbose)

	var stateCh chan simulation.Status
	headless := !eo.interactive && !eo.window
	if headless {
		stateCh = make(chan simulation.Status, 10) //the buffered channel to getting the simulation status
	}

	s, err := simulation.New(uo, stateCh)
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	for _, t := range templates {
		s.AddTemplate(t)
	}
	if eo.template != "" {
		s.SettleTemplate(eo.template)
	}

	switch {
	case eo.interactive:
		v := view.NewViewTerminal()
		s.RegisterViewer(v)
		v.Start()
	case eo.window:
		if err := gui.Run(s, eo.scale); err != nil {
			s.Close()
			fmt.Fprintln(os.Stderr, err)
			if errors.Is(err, gui.ErrUnavailable) {
				fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./src` or build with `-tags ebiten`.")
			}
			os.Exit(2)
		}
	default:
		runHeadless(s, stateCh)
	}

	if eo.output != "" {
		s.Sync()
		if err := render.NewPainter().SavePNG(eo.output, s.Frame()); err != nil {
			s.Close()
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("The last generation is saved to %s\n", eo.output)
	}
	s.Close()
}

func runHeadless(s *simulation.Simulation, stateCh chan simulation.Status) {
	out := view.NewConsoleOut()
	s.RegisterViewer(out)
	out.Start()
	s.Run()
	for st := range stateCh {
		if st.RunningMode == simulation.RunningStateFinished {
			break
		}
	}
	s.Sync()
}

func initLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	universe.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func initOptions() (eo *EnvOptions, uo *simulation.Options) {

	o := simulation.DefaultOptions
	uo = &o
	eo = &EnvOptions{scale: gui.DefaultScale}

	flaggy.SetName("bitlife")
	flaggy.SetDescription("\"The Life\" game simulation on a toroidal bit-packed universe")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&uo.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&uo.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps")
	flaggy.Float64(&uo.Density, "d", "density", "Probability of a cell to be alive on random fill")
	flaggy.Int64(&uo.Seed, "", "seed", "Seed of the random fill, 0 picks a random one")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.window, "g", "window", "Start the window mode")
	flaggy.Int(&eo.scale, "", "scale", "Cell size in pixels of the window mode")
	flaggy.String(&eo.template, "t", "template", "Template to settle with ["+strings.Join(templateNames(), "|")+"]")
	flaggy.String(&eo.output, "o", "output", "Save the last generation to the PNG file")
	flaggy.Bool(&eo.verbose, "v", "verbose", "Log debug messages to stderr")

	flaggy.Parse()

	if eo.interactive && eo.window {
		flaggy.ShowHelpAndExit("interactive and window modes are exclusive")
	}
	if eo.template != "" && !hasTemplate(eo.template) {
		flaggy.ShowHelpAndExit("unknown template")
	}
	if eo.window {
		if err := windowOptions(uo); err != nil {
			flaggy.ShowHelpAndExit(err.Error())
		}
	}

	if !eo.interactive && !eo.window {
		flaggy.ShowHelp("")
	}

	return
}

//windowOptions adapts the options to the window mode
//the window runs until the user stops it and needs a visible field
func windowOptions(o *simulation.Options) error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: the window mode needs a non empty field, got %d x %d", simulation.ErrInvalidOptions, o.Width, o.Height)
	}
	o.MaxSteps = 0
	return nil
}

//xyCells converts {x, y} pairs to the universe coordinates
func xyCells(xy [][]int) []universe.Coord {
	cells := make([]universe.Coord, 0, len(xy))
	for _, v := range xy {
		cells = append(cells, universe.Coord{Row: uint32(v[1]), Col: uint32(v[0])})
	}
	return cells
}

func templateNames() []string {
	names := make([]string, 0, len(templates))
	for _, t := range templates {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

func hasTemplate(name string) bool {
	for _, t := range templates {
		if t.Name == name {
			return true
		}
	}
	return false
}
