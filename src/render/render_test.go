package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"bitlife/src/universe"
)

func frameOf(width uint32, height uint32, cells ...universe.Coord) universe.Frame {
	u := universe.NewWithSource(width, height, universe.SourceFunc(func() float64 { return 1 }))
	u.SetCells(cells)
	return u.Snapshot()
}

func gray(c color.Color) uint8 {
	r, _, _, _ := c.RGBA()
	return uint8(r >> 8)
}

// center returns the pixel in the middle of cell (row, col).
func center(p *Painter, row, col int) (int, int) {
	step := p.CellSize + 1
	return col*step + 1 + p.CellSize/2, row*step + 1 + p.CellSize/2
}

func TestSize(t *testing.T) {
	p := NewPainter()
	w, h := p.Size(frameOf(4, 3))
	if w != 45 || h != 34 {
		t.Fatalf("Size() = %d x %d, want 45 x 34", w, h)
	}
}

func TestImage(t *testing.T) {
	p := NewPainter()
	f := frameOf(4, 3, universe.Coord{Row: 1, Col: 2}, universe.Coord{Row: 0, Col: 0})
	img, err := p.Image(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 45 || b.Dy() != 34 {
		t.Fatalf("bounds %v", b)
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			x, y := center(p, row, col)
			want := uint8(0xFF)
			if f.Alive(uint32(row), uint32(col)) {
				want = 0
			}
			if got := gray(img.At(x, y)); got != want {
				t.Errorf("cell (%d, %d) = %#x, want %#x", row, col, got, want)
			}
		}
	}
	if got := gray(img.At(0, 0)); got != 0xCC {
		t.Errorf("grid pixel = %#x, want 0xcc", got)
	}
}

func TestImageEmptyFrame(t *testing.T) {
	img, err := NewPainter().Image(frameOf(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Fatalf("bounds %v", b)
	}
}

func TestInvalidCellSize(t *testing.T) {
	p := &Painter{CellSize: 0, Palette: DefaultPalette}
	if _, err := p.Image(frameOf(2, 2)); err == nil {
		t.Fatal("expected an error")
	}
}

func TestSavePNG(t *testing.T) {
	p := &Painter{CellSize: 4, Palette: DefaultPalette}
	f := frameOf(5, 5, universe.Coord{Row: 2, Col: 2})
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := p.SavePNG(path, f); err != nil {
		t.Fatal(err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 26 || b.Dy() != 26 {
		t.Fatalf("bounds %v", b)
	}
	x, y := center(p, 2, 2)
	if got := gray(img.At(x, y)); got != 0 {
		t.Errorf("alive cell = %#x", got)
	}
	x, y = center(p, 0, 4)
	if got := gray(img.At(x, y)); got != 0xFF {
		t.Errorf("dead cell = %#x", got)
	}
}

func TestFillRGBA(t *testing.T) {
	f := frameOf(3, 2, universe.Coord{Row: 0, Col: 1}, universe.Coord{Row: 1, Col: 2})
	buf := make([]byte, 4*3*2)
	on := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	FillRGBA(buf, f, on, color.Black)

	img := &image.RGBA{Pix: buf, Stride: 4 * 3, Rect: image.Rect(0, 0, 3, 2)}
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			got := img.RGBAAt(col, row)
			want := color.RGBA{A: 255}
			if f.Alive(uint32(row), uint32(col)) {
				want = on
			}
			if got != want {
				t.Errorf("pixel (%d, %d) = %v, want %v", row, col, got, want)
			}
		}
	}
}
