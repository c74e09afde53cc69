package universe

//Offset is a cell position relative to a pattern anchor
type Offset struct {
	Row int
	Col int
}

//Pattern is a fixed set of cells stamped around an anchor
//Width and Height describe the bounding box used by the fit check
type Pattern struct {
	Name    string
	Width   int
	Height  int
	Offsets []Offset
}

var (
	//Glider moves one cell diagonally every 4 generations
	Glider = Pattern{
		Name:   "glider",
		Width:  3,
		Height: 3,
		Offsets: []Offset{
			{1, 0},
			{0, -1},
			{-1, -1}, {-1, 0}, {-1, 1},
		},
	}

	//Pulsar is a period 3 oscillator of 48 cells
	Pulsar = Pattern{
		Name:   "pulsar",
		Width:  14,
		Height: 14,
		Offsets: []Offset{
			{-6, -4}, {-6, -3}, {-6, -2}, {-6, 2}, {-6, 3}, {-6, 4},

			{-2, -6}, {-3, -6}, {-4, -6}, {2, -6}, {3, -6}, {4, -6},
			{-2, 6}, {-3, 6}, {-4, 6}, {2, 6}, {3, 6}, {4, 6},

			{-1, -2}, {-1, -3}, {-1, -4}, {-1, 2}, {-1, 3}, {-1, 4},
			{1, -2}, {1, -3}, {1, -4}, {1, 2}, {1, 3}, {1, 4},

			{6, -4}, {6, -3}, {6, -2}, {6, 2}, {6, 3}, {6, 4},

			{-2, -1}, {-3, -1}, {-4, -1}, {2, -1}, {3, -1}, {4, -1},
			{-2, 1}, {-3, 1}, {-4, 1}, {2, 1}, {3, 1}, {4, 1},
		},
	}

	patterns = []Pattern{Glider, Pulsar}
)

//Patterns returns the known patterns
func Patterns() []Pattern {
	return append([]Pattern(nil), patterns...)
}

//LookupPattern finds a known pattern by name
func LookupPattern(name string) (Pattern, bool) {
	for _, p := range patterns {
		if p.Name == name {
			return p, true
		}
	}
	return Pattern{}, false
}

//Stamp makes the pattern cells around row, col alive
//nothing is written and false is returned when the pattern bounding box with its margin
//does not lie strictly inside the universe
func (u *Universe) Stamp(p Pattern, row uint32, col uint32) bool {
	if !u.willFit(int64(row), int64(col), int64(p.Width), int64(p.Height)) {
		Logger().Debug("pattern does not fit", "pattern", p.Name, "row", row, "col", col)
		return false
	}
	for _, o := range p.Offsets {
		u.cells.Set(u.mustIndex(uint32(int64(row)+int64(o.Row)), uint32(int64(col)+int64(o.Col))))
	}
	return true
}

//StampGlider stamps the Glider anchored at row, col
func (u *Universe) StampGlider(row uint32, col uint32) bool {
	return u.Stamp(Glider, row, col)
}

//StampPulsar stamps the Pulsar anchored at row, col
func (u *Universe) StampPulsar(row uint32, col uint32) bool {
	return u.Stamp(Pulsar, row, col)
}

//willFit reports whether a width x height box centred on row, col, grown by half its size
//plus one on every side, stays away from all four edges
func (u *Universe) willFit(row int64, col int64, width int64, height int64) bool {
	w2 := width/2 + 1
	h2 := height/2 + 1
	return row-h2 > 0 &&
		row+h2 < int64(u.height) &&
		col-w2 > 0 &&
		col+w2 < int64(u.width)
}
