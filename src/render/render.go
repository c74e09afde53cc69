// Package render draws universe frames as images.
package render

import (
	"fmt"
	"image"
	"image/color"

	"bitlife/src/universe"

	"github.com/gogpu/gg"
)

// Palette holds the colors used to paint a frame.
type Palette struct {
	Grid  gg.RGBA
	Alive gg.RGBA
	Dead  gg.RGBA
}

// DefaultPalette draws black cells on white with light grey grid lines.
var DefaultPalette = Palette{
	Grid:  gg.Hex("#CCCCCC"),
	Alive: gg.Hex("#000000"),
	Dead:  gg.Hex("#FFFFFF"),
}

// DefaultCellSize is the side of a cell in pixels, grid lines are 1 pixel wide.
const DefaultCellSize = 10

// Painter paints frames on a gg context. Cell (row, col) occupies the square
// at ((CellSize+1)*col+1, (CellSize+1)*row+1).
type Painter struct {
	CellSize int
	Palette  Palette
}

// NewPainter returns a Painter with the default cell size and palette.
func NewPainter() *Painter {
	return &Painter{CellSize: DefaultCellSize, Palette: DefaultPalette}
}

// Size returns the image dimensions needed for the frame.
func (p *Painter) Size(f universe.Frame) (int, int) {
	return (p.CellSize+1)*int(f.Width) + 1, (p.CellSize+1)*int(f.Height) + 1
}

// Paint draws the frame on dc. dc should be at least Size(f) large.
func (p *Painter) Paint(dc *gg.Context, f universe.Frame) error {
	dc.ClearWithColor(p.Palette.Grid)
	if f.Width == 0 || f.Height == 0 {
		return nil
	}
	// Alive and dead cells are batched into one path each.
	for _, alive := range []bool{false, true} {
		cells := 0
		for row := uint32(0); row < f.Height; row++ {
			for col := uint32(0); col < f.Width; col++ {
				if f.Alive(row, col) != alive {
					continue
				}
				x, y := p.origin(row, col)
				dc.DrawRectangle(x, y, float64(p.CellSize), float64(p.CellSize))
				cells++
			}
		}
		if cells == 0 {
			continue
		}
		if alive {
			dc.SetColor(p.Palette.Alive.Color())
		} else {
			dc.SetColor(p.Palette.Dead.Color())
		}
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("render: fill cells: %w", err)
		}
	}
	return nil
}

// Image paints the frame on a new context and returns the result.
func (p *Painter) Image(f universe.Frame) (image.Image, error) {
	dc, err := p.newContext(f)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dc.Close() }()
	return dc.Image(), nil
}

// SavePNG paints the frame and writes it to path as PNG.
func (p *Painter) SavePNG(path string, f universe.Frame) error {
	dc, err := p.newContext(f)
	if err != nil {
		return err
	}
	defer func() { _ = dc.Close() }()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	universe.Logger().Debug("frame saved", "path", path, "width", f.Width, "height", f.Height)
	return nil
}

func (p *Painter) newContext(f universe.Frame) (*gg.Context, error) {
	if p.CellSize <= 0 {
		return nil, fmt.Errorf("render: invalid cell size %d", p.CellSize)
	}
	w, h := p.Size(f)
	dc := gg.NewContext(w, h)
	if err := p.Paint(dc, f); err != nil {
		_ = dc.Close()
		return nil, err
	}
	return dc, nil
}

func (p *Painter) origin(row, col uint32) (float64, float64) {
	step := float64(p.CellSize + 1)
	return float64(col)*step + 1, float64(row)*step + 1
}

// FillRGBA converts the frame into RGBA pixels in buf, one pixel per cell.
// buf must hold at least 4*Width*Height bytes.
func FillRGBA(buf []byte, f universe.Frame, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	i := 0
	for row := uint32(0); row < f.Height; row++ {
		for col := uint32(0); col < f.Width; col++ {
			base := i * 4
			i++
			if f.Alive(row, col) {
				buf[base+0] = uint8(rOn >> 8)
				buf[base+1] = uint8(gOn >> 8)
				buf[base+2] = uint8(bOn >> 8)
				buf[base+3] = uint8(aOn >> 8)
				continue
			}
			buf[base+0] = uint8(rOff >> 8)
			buf[base+1] = uint8(gOff >> 8)
			buf[base+2] = uint8(bOff >> 8)
			buf[base+3] = uint8(aOff >> 8)
		}
	}
}
