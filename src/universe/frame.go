package universe

import "math/bits"

//Frame is a copy of one generation, it stays valid after the universe changes
type Frame struct {
	Width  uint32
	Height uint32
	Words  []uint64
}

//Alive reports whether the cell at row, col is alive
//cells outside the frame are dead
func (f Frame) Alive(row uint32, col uint32) bool {
	if row >= f.Height || col >= f.Width {
		return false
	}
	idx := uint(row)*uint(f.Width) + uint(col)
	return f.Words[idx/64]>>(idx%64)&1 == 1
}

//LiveCells returns the number of alive cells in the frame
func (f Frame) LiveCells() int {
	n := 0
	for _, w := range f.Words {
		n += bits.OnesCount64(w)
	}
	return n
}
