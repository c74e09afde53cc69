package view

import (
	"fmt"
	"log"
	"strings"
	"time"

	"bitlife/src/simulation"
	"bitlife/src/universe"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
)

const (
	minInterval = 10 * time.Millisecond
	maxInterval = 2 * time.Second

	headerHeight      = 3
	minTerminalHeight = 20
)

const (
	headerView = "header"
	configView = "configuration"
	statusView = "status"
	fieldView  = "battlefield"
	helpView   = "help"
)

//binding ties a key of a view ("" for global) to a command
type binding struct {
	key     interface{}
	label   string
	descr   string
	view    string
	handler func(v *gocui.View) error
}

type ConsoleUI struct {
	c          simulation.Controller
	g          *gocui.Gui
	bindings   []binding
	liveFiller string
	deadFiller string
}

var (
	runningStateDescr = map[simulation.RunningState]string{
		simulation.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		simulation.RunningStateStep:     "do the step",
		simulation.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		simulation.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

func NewViewTerminal() *ConsoleUI {
	t := ConsoleUI{
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	var err error
	if t.g, err = gocui.NewGui(gocui.OutputNormal); err != nil {
		log.Panicln(err)
	}
	t.g.Mouse = true
	t.g.SetManagerFunc(t.layout)

	t.bindings = t.commands()
	for _, b := range t.bindings {
		h := b.handler
		if err := t.g.SetKeybinding(b.view, b.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error { return h(v) }); err != nil {
			log.Panicln(err)
		}
	}
	return &t
}

//commands lists the key bindings in the order shown by the help line
func (t *ConsoleUI) commands() []binding {
	ctl := func(cmd func(c simulation.Controller)) func(*gocui.View) error {
		return func(*gocui.View) error {
			cmd(t.c)
			return nil
		}
	}
	return []binding{
		{gocui.KeyCtrlC, "^C", "Exit", "", func(*gocui.View) error { return gocui.ErrQuit }},
		{'n', "N", "Next step", "", ctl(simulation.Controller.Step)},
		{'r', "R", "Run", "", ctl(simulation.Controller.Run)},
		{'s', "S", "Stop", "", ctl(simulation.Controller.Stop)},
		{'c', "C", "Clear", "", ctl(simulation.Controller.Clear)},
		{'w', "W", "Settle with random", "", ctl(randomize)},
		{'g', "G", "Glider at cursor", fieldView, t.stampAtCursor(universe.Glider.Name)},
		{'p', "P", "Pulsar at cursor", fieldView, t.stampAtCursor(universe.Pulsar.Name)},
		{'+', "+", "Faster", "", ctl(func(c simulation.Controller) { t.changeSpeed(0.5) })},
		{'-', "-", "Slower", "", ctl(func(c simulation.Controller) { t.changeSpeed(2) })},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", fieldView, t.toggleAtCursor},
	}
}

func randomize(c simulation.Controller) {
	c.Randomize(c.Options().Density)
}

func (t *ConsoleUI) Register(c simulation.Controller) {
	t.c = c
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

func (t *ConsoleUI) Refresh() {
	t.renderField(t.c.Frame())
	t.renderProps(configView, configProps(t.c.Options()))
	t.renderProps(statusView, statusProps(t.c.Status()))
}

func (t *ConsoleUI) renderField(f universe.Frame) {
	t.g.Update(func(g *gocui.Gui) error {
		v, err := g.View(fieldView)
		if err != nil {
			return err
		}
		v.Clear()
		maxW, maxH := v.Size()
		_, _ = fmt.Fprint(v, fieldText(f, maxW, maxH, t.liveFiller, t.deadFiller))
		return nil
	})
}

//renderProps replaces the view content, it needs Update as Refresh comes from the simulation goroutine
func (t *ConsoleUI) renderProps(view string, props []prop) {
	t.g.Update(func(g *gocui.Gui) error {
		if v, err := g.View(view); err == nil {
			v.Clear()
			_, _ = fmt.Fprint(v, propsText(props))
		}
		return nil
	})
}

//fieldText draws the frame rows into at most maxW x maxH chars
//the last visible line is replaced by a warning when the frame is cropped
func fieldText(f universe.Frame, maxW int, maxH int, live string, dead string) string {
	rows := max(min(int(f.Height), maxH), 0)
	cols := min(int(f.Width), maxW)
	cropped := int(f.Width) > maxW || int(f.Height) > maxH

	lines := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		if cropped && row == maxH-1 {
			lines = append(lines, aurora.Red("The field size is larger than the viewing area").BgBlack().String())
			break
		}
		var b strings.Builder
		for col := 0; col < cols; col++ {
			if f.Alive(uint32(row), uint32(col)) {
				b.WriteString(live)
			} else {
				b.WriteString(dead)
			}
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

type prop struct {
	name  string
	value string
}

func configProps(o simulation.Options) []prop {
	return []prop{
		{"Dimension", fmt.Sprintf("%v x %v", o.Width, o.Height)},
		{"Interval", o.Interval.String()},
		{"Iterations", fmt.Sprintf("%v steps", o.MaxSteps)},
		{"Density", fmt.Sprint(o.Density)},
	}
}

func statusProps(st simulation.Status) []prop {
	return []prop{
		{"Step", fmt.Sprint(st.IterationNum)},
		{"Live Cells", fmt.Sprint(st.LiveCells)},
		{"Evaluation time", st.IterationTime.Round(time.Microsecond).String()},
		{"Mode", runningStateDescr[st.RunningMode]},
	}
}

func propsText(props []prop) string {
	var b strings.Builder
	for _, p := range props {
		fmt.Fprintf(&b, " %s: %s\n", aurora.Colorize(p.name, aurora.GreenFg), p.value)
	}
	return b.String()
}

//pane is a view placed by the layout, coordinates are gocui's inclusive corners
type pane struct {
	name   string
	title  string
	x0, y0 int
	x1, y1 int
}

//panes splits the terminal: settings on the left, the field on the right, help at the bottom
func panes(maxX int, maxY int) []pane {
	const left = 28
	top, bottom := headerHeight, maxY-5
	middle := top + (bottom-top)/2
	return []pane{
		{configView, "Configuration", 0, top, left, middle},
		{statusView, "Status", 0, middle + 1, left, bottom},
		{fieldView, "Battle Field", left + 1, top, maxX - 1, bottom},
		{helpView, "", -1, bottom, maxX, maxY - 3},
	}
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	if maxY < minTerminalHeight {
		for _, p := range panes(maxX, maxY) {
			_ = g.DeleteView(p.name)
		}
		return t.header(g, maxY, "Terminal height too small")
	}
	if err := t.header(g, headerHeight, "This is \"The Life\" game simulation"); err != nil {
		return err
	}

	for _, p := range panes(maxX, maxY) {
		v, err := g.SetView(p.name, p.x0, p.y0, p.x1, p.y1)
		if err == nil {
			continue
		}
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		//the view is created, set it up once
		v.Title = p.title
		v.Frame = p.title != ""
		switch p.name {
		case helpView:
			v.Wrap = true
			_, _ = fmt.Fprintln(v, helpText(t.bindings))
		case configView:
			t.renderProps(configView, configProps(t.c.Options()))
		case statusView:
			t.renderProps(statusView, statusProps(t.c.Status()))
		}
	}
	t.renderField(t.c.Frame())
	return nil
}

func helpText(bindings []binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, aurora.Green(b.label).String()+": "+b.descr)
	}
	return "KEYBINDINGS: " + strings.Join(parts, ", ")
}

func (t *ConsoleUI) header(g *gocui.Gui, height int, text string) error {
	maxX, _ := g.Size()
	v, err := g.SetView(headerView, -1, -1, maxX+1, height)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	if err == gocui.ErrUnknownView {
		v.Frame = false
		v.BgColor = gocui.ColorCyan
		v.FgColor = gocui.ColorBlack
	}
	if maxX < len(text) {
		panic(fmt.Sprintf("Terminal width is too small: %v", maxX))
	}
	v.Clear()
	_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", (maxX-len(text))/2)+text)
	return nil
}

//stampAtCursor returns the handler stamping the pattern where the field was last clicked
func (t *ConsoleUI) stampAtCursor(pattern string) func(v *gocui.View) error {
	return func(v *gocui.View) error {
		if row, col, ok := cellAt(v.Cursor()); ok {
			t.c.Stamp(pattern, row, col)
		}
		return nil
	}
}

func (t *ConsoleUI) toggleAtCursor(v *gocui.View) error {
	if row, col, ok := cellAt(v.Cursor()); ok {
		t.c.ToggleCell(row, col)
	}
	return nil
}

func (t *ConsoleUI) changeSpeed(k float64) {
	t.c.SetInterval(scaleInterval(t.c.Options().Interval, k))
	t.renderProps(configView, configProps(t.c.Options()))
}

//cellAt converts the view cursor position to the universe coordinates
//the simulation skips cells outside the universe itself
func cellAt(cx int, cy int) (row uint32, col uint32, ok bool) {
	if cx < 0 || cy < 0 {
		return 0, 0, false
	}
	return uint32(cy), uint32(cx), true
}

//scaleInterval multiplies the interval keeping it within [minInterval, maxInterval]
func scaleInterval(d time.Duration, k float64) time.Duration {
	return min(max(time.Duration(float64(d)*k), minInterval), maxInterval)
}
