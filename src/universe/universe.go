package universe

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

//Cell is the state of a single cell
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

//DefaultDensity is the probability of a cell being alive in a freshly created universe
const DefaultDensity = 0.1

//Coord addresses a cell by row and column
type Coord struct {
	Row uint32
	Col uint32
}

//Universe is the toroidal Game of Life field
//cells are packed one bit per cell, bit i is the cell at (i / width, i % width)
//
//Universe is not safe for concurrent use, it must be owned by exactly one caller
type Universe struct {
	width  uint32
	height uint32
	cells  *bitset.BitSet
	next   *bitset.BitSet
	src    Source
}

//New creates the universe with the given dimensions seeded with DefaultDensity live cells
//zero width or height is allowed and gives an empty universe
func New(width uint32, height uint32) *Universe {
	return NewWithSource(width, height, nil)
}

//NewWithSource creates the universe which draws its random numbers from src
//nil src selects the default source
func NewWithSource(width uint32, height uint32, src Source) *Universe {
	if src == nil {
		src = defaultSource
	}
	u := &Universe{width: width, height: height, src: src}
	u.alloc()
	u.fill(DefaultDensity)
	return u
}

//Width returns the number of columns
func (u *Universe) Width() uint32 { return u.width }

//Height returns the number of rows
func (u *Universe) Height() uint32 { return u.height }

//Size returns the number of cells
func (u *Universe) Size() uint { return uint(u.width) * uint(u.height) }

//Cells returns the packed cell words without copying
//word order follows the linear cell index, bits are least significant first
//the slice is read only and becomes stale after any mutating call
func (u *Universe) Cells() []uint64 {
	return u.cells.Words()
}

//Cell returns the state of the cell at row, col
func (u *Universe) Cell(row uint32, col uint32) Cell {
	if u.cells.Test(u.mustIndex(row, col)) {
		return Alive
	}
	return Dead
}

//LiveCells returns the number of alive cells
func (u *Universe) LiveCells() int {
	return int(u.cells.Count())
}

//Reset kills all cells keeping the dimensions
func (u *Universe) Reset() {
	u.cells.ClearAll()
}

//SetWidth changes the number of columns
//the resize is destructive: every cell is dead afterwards
func (u *Universe) SetWidth(width uint32) {
	u.width = width
	u.alloc()
	Logger().Debug("universe resized", "width", u.width, "height", u.height)
}

//SetHeight changes the number of rows
//the resize is destructive: every cell is dead afterwards
func (u *Universe) SetHeight(height uint32) {
	u.height = height
	u.alloc()
	Logger().Debug("universe resized", "width", u.width, "height", u.height)
}

//SetCells makes every listed cell alive, other cells keep their state
func (u *Universe) SetCells(cells []Coord) {
	for _, c := range cells {
		u.cells.Set(u.mustIndex(c.Row, c.Col))
	}
}

//ToggleCell inverts the state of the cell at row, col
func (u *Universe) ToggleCell(row uint32, col uint32) {
	u.cells.Flip(u.mustIndex(row, col))
}

//Snapshot copies the current generation into a Frame
func (u *Universe) Snapshot() Frame {
	words := u.cells.Words()
	f := Frame{Width: u.width, Height: u.height, Words: make([]uint64, len(words))}
	copy(f.Words, words)
	return f
}

//String renders the universe one line per row
func (u *Universe) String() string {
	var b strings.Builder
	for row := uint32(0); row < u.height; row++ {
		for col := uint32(0); col < u.width; col++ {
			if u.cells.Test(u.index(row, col)) {
				b.WriteRune('◼')
			} else {
				b.WriteRune('◻')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

//index maps row, col to the linear cell index
func (u *Universe) index(row uint32, col uint32) uint {
	return uint(row)*uint(u.width) + uint(col)
}

//mustIndex is index for the mutating entry points
//the bitset grows silently on out of range writes, so the coordinates are checked here instead
func (u *Universe) mustIndex(row uint32, col uint32) uint {
	if row >= u.height || col >= u.width {
		panic(fmt.Sprintf("universe: cell (%d, %d) out of range %dx%d", row, col, u.height, u.width))
	}
	return u.index(row, col)
}

//alloc allocates both generation buffers at the current size, all cells dead
func (u *Universe) alloc() {
	u.cells = bitset.New(u.Size())
	u.next = bitset.New(u.Size())
}
