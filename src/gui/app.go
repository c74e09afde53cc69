//go:build ebiten

package gui

import (
	"errors"
	"image/color"

	"bitlife/src/render"
	"bitlife/src/simulation"
	"bitlife/src/universe"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a simulation to the ebiten.Game interface.
type Game struct {
	c     simulation.Controller
	scale int

	img  *ebiten.Image
	buf  []byte
	w, h uint32

	onColor  color.Color
	offColor color.Color

	r *runner
}

// New constructs a Game for the provided simulation.
func New(c simulation.Controller, scale int) *Game {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Game{
		c:        c,
		scale:    scale,
		onColor:  color.Black,
		offColor: color.White,
		r:        newRunner(),
	}
}

// Run opens the window and blocks until it is closed.
func Run(c simulation.Controller, scale int) error {
	g := New(c, scale)
	o := c.Options()
	ebiten.SetWindowTitle("bitlife")
	ebiten.SetWindowSize(screenSize(o.Width, o.Height, g.scale))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update handles the input and advances the simulation while running.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.r.toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.r.stop()
		g.c.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.c.Randomize(g.c.Options().Density)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.c.Step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.r.faster()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		g.r.slower()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.click(ebiten.CursorPosition())
	}

	g.r.frame(g.c)
	return nil
}

func (g *Game) click(x, y int) {
	f := g.c.Frame()
	row, col, ok := cellAtPixel(x, y, g.scale, f.Width, f.Height)
	if !ok {
		return
	}
	switch clickAction(ebiten.IsKeyPressed(ebiten.KeyControl), ebiten.IsKeyPressed(ebiten.KeyShift)) {
	case ActionGlider:
		g.c.Stamp(universe.Glider.Name, row, col)
	case ActionPulsar:
		g.c.Stamp(universe.Pulsar.Name, row, col)
	default:
		g.c.ToggleCell(row, col)
	}
}

// Draw uploads the current frame and scales it to the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	f := g.c.Frame()
	if f.Width == 0 || f.Height == 0 {
		return
	}
	if g.img == nil || f.Width != g.w || f.Height != g.h {
		g.w, g.h = f.Width, f.Height
		g.img = ebiten.NewImage(int(g.w), int(g.h))
		g.buf = make([]byte, 4*int(g.w)*int(g.h))
	}
	render.FillRGBA(g.buf, f, g.onColor, g.offColor)
	g.img.WritePixels(g.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.img, op)
}

// Layout returns the logical screen size.
func (g *Game) Layout(int, int) (int, int) {
	o := g.c.Options()
	return screenSize(o.Width, o.Height, g.scale)
}
