package universe

import (
	"slices"
	"strings"
	"testing"
)

func constSource(v float64) Source {
	return SourceFunc(func() float64 { return v })
}

//empty creates the universe without any live cell
func empty(width uint32, height uint32) *Universe {
	return NewWithSource(width, height, constSource(1))
}

//liveCoords lists alive cells in row major order
func liveCoords(u *Universe) []Coord {
	var res []Coord
	for row := uint32(0); row < u.Height(); row++ {
		for col := uint32(0); col < u.Width(); col++ {
			if u.Cell(row, col) == Alive {
				res = append(res, Coord{row, col})
			}
		}
	}
	return res
}

func checkSize(t *testing.T, u *Universe) {
	t.Helper()
	want := uint(u.Width()) * uint(u.Height())
	if u.Size() != want {
		t.Fatalf("Size() = %d, want %d", u.Size(), want)
	}
	if u.cells.Len() != want || u.next.Len() != want {
		t.Fatalf("buffer lengths %d/%d, want %d", u.cells.Len(), u.next.Len(), want)
	}
	if words := len(u.Cells()); words != int((want+63)/64) {
		t.Fatalf("len(Cells()) = %d, want %d", words, (want+63)/64)
	}
}

func TestNewSeedsWithDensity(t *testing.T) {
	cases := []struct {
		name string
		src  Source
		live int
	}{
		{"always", constSource(0), 12 * 7},
		{"never", constSource(1), 0},
		{"threshold", constSource(DefaultDensity), 0},
		{"below", constSource(DefaultDensity - 0.01), 12 * 7},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			u := NewWithSource(12, 7, c.src)
			checkSize(t, u)
			if got := u.LiveCells(); got != c.live {
				t.Fatalf("LiveCells() = %d, want %d", got, c.live)
			}
		})
	}
}

func TestNewDefaultSource(t *testing.T) {
	u := New(64, 64)
	checkSize(t, u)
	if u.Width() != 64 || u.Height() != 64 {
		t.Fatalf("dimensions %dx%d, want 64x64", u.Width(), u.Height())
	}
	//roughly 410 expected, the bounds are wide enough never to flake
	if live := u.LiveCells(); live == 0 || live > 1500 {
		t.Fatalf("LiveCells() = %d, want a sparse field", live)
	}
}

func TestSeededSourceDeterministic(t *testing.T) {
	a := NewWithSource(40, 30, NewSeededSource(7))
	b := NewWithSource(40, 30, NewSeededSource(7))
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("same seed produced different universes")
	}
	c := NewWithSource(40, 30, NewSeededSource(8))
	if slices.Equal(a.Cells(), c.Cells()) {
		t.Fatal("different seeds produced identical universes")
	}
}

func TestZeroSize(t *testing.T) {
	for _, dim := range [][2]uint32{{0, 0}, {0, 5}, {5, 0}} {
		u := New(dim[0], dim[1])
		checkSize(t, u)
		u.Tick()
		u.Randomize(1)
		u.Reset()
		if u.LiveCells() != 0 {
			t.Fatalf("%v: empty universe has live cells", dim)
		}
		if u.StampGlider(0, 0) || u.StampPulsar(0, 0) {
			t.Fatalf("%v: pattern stamped into an empty universe", dim)
		}
		checkSize(t, u)
	}
}

func TestSizeInvariant(t *testing.T) {
	u := NewWithSource(10, 8, NewSeededSource(1))
	steps := []func(){
		func() { u.Tick() },
		func() { u.SetWidth(17) },
		func() { u.Randomize(0.5) },
		func() { u.SetHeight(3) },
		func() { u.Tick() },
		func() { u.ToggleCell(2, 16) },
		func() { u.SetCells([]Coord{{0, 0}, {1, 1}}) },
		func() { u.SetWidth(0) },
		func() { u.Tick() },
		func() { u.SetWidth(20) },
		func() { u.SetHeight(20) },
		func() { u.StampPulsar(10, 10) },
		func() { u.Reset() },
	}
	for i, step := range steps {
		step()
		t.Logf("step %d: %dx%d", i, u.Width(), u.Height())
		checkSize(t, u)
	}
}

func TestResetAndResizeClear(t *testing.T) {
	u := NewWithSource(16, 16, constSource(0))
	u.Reset()
	if u.LiveCells() != 0 {
		t.Fatal("Reset left live cells")
	}
	if u.Width() != 16 || u.Height() != 16 {
		t.Fatal("Reset changed dimensions")
	}

	u.Randomize(1)
	u.SetWidth(16)
	if u.LiveCells() != 0 {
		t.Fatal("SetWidth to the same width kept live cells")
	}

	u.Randomize(1)
	u.SetHeight(9)
	if u.LiveCells() != 0 || u.Height() != 9 {
		t.Fatal("SetHeight did not clear the universe")
	}
}

func TestSetCells(t *testing.T) {
	u := empty(6, 6)
	u.SetCells([]Coord{{1, 2}, {2, 3}, {1, 2}})
	u.SetCells([]Coord{{2, 3}})
	want := []Coord{{1, 2}, {2, 3}}
	if got := liveCoords(u); !slices.Equal(got, want) {
		t.Fatalf("live cells %v, want %v", got, want)
	}
	u.SetCells(nil)
	if got := liveCoords(u); !slices.Equal(got, want) {
		t.Fatalf("empty SetCells changed the universe: %v", got)
	}
}

func TestToggleCellTwice(t *testing.T) {
	u := NewWithSource(9, 7, NewSeededSource(3))
	before := slices.Clone(u.Cells())
	for _, c := range []Coord{{0, 0}, {6, 8}, {3, 4}} {
		prev := u.Cell(c.Row, c.Col)
		u.ToggleCell(c.Row, c.Col)
		if u.Cell(c.Row, c.Col) == prev {
			t.Fatalf("ToggleCell(%d, %d) did not flip the cell", c.Row, c.Col)
		}
		u.ToggleCell(c.Row, c.Col)
	}
	if !slices.Equal(before, u.Cells()) {
		t.Fatal("double toggle changed the universe")
	}
}

func TestOutOfRangePanics(t *testing.T) {
	cases := map[string]func(u *Universe){
		"toggle row": func(u *Universe) { u.ToggleCell(4, 0) },
		"toggle col": func(u *Universe) { u.ToggleCell(0, 5) },
		"set cells":  func(u *Universe) { u.SetCells([]Coord{{0, 0}, {9, 9}}) },
		"cell":       func(u *Universe) { u.Cell(4, 4) },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			u := empty(5, 4)
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
				checkSize(t, u)
			}()
			fn(u)
		})
	}
}

func TestRandomize(t *testing.T) {
	u := NewWithSource(8, 8, constSource(0.999))
	if u.LiveCells() != 0 {
		t.Fatalf("new live = %d, want 0", u.LiveCells())
	}
	u.Randomize(1)
	if u.LiveCells() != 64 {
		t.Fatalf("Randomize(1) live = %d, want 64", u.LiveCells())
	}
	u.Randomize(0)
	if u.LiveCells() != 0 {
		t.Fatalf("Randomize(0) live = %d, want 0", u.LiveCells())
	}

	n := 0
	alternating := SourceFunc(func() float64 {
		n++
		if n%2 == 0 {
			return 0.9
		}
		return 0.1
	})
	u = NewWithSource(4, 4, alternating)
	u.Randomize(0.5)
	want := []Coord{}
	for i := uint32(0); i < 16; i += 2 {
		want = append(want, Coord{i / 4, i % 4})
	}
	if got := liveCoords(u); !slices.Equal(got, want) {
		t.Fatalf("live cells %v, want %v", got, want)
	}
}

func TestCellsPacking(t *testing.T) {
	u := empty(10, 10)
	u.SetCells([]Coord{{0, 0}, {0, 3}, {6, 3}, {9, 9}})
	words := u.Cells()
	if len(words) != 2 {
		t.Fatalf("len(Cells()) = %d, want 2", len(words))
	}
	if words[0] != 1|1<<3|1<<63 {
		t.Fatalf("word 0 = %#x", words[0])
	}
	if words[1] != 1<<(99-64) {
		t.Fatalf("word 1 = %#x", words[1])
	}
}

func TestSnapshot(t *testing.T) {
	u := NewWithSource(13, 11, NewSeededSource(5))
	f := u.Snapshot()
	if f.Width != 13 || f.Height != 11 {
		t.Fatalf("frame %dx%d, want 13x11", f.Width, f.Height)
	}
	if f.LiveCells() != u.LiveCells() {
		t.Fatalf("frame live %d, universe live %d", f.LiveCells(), u.LiveCells())
	}
	for row := uint32(0); row < 11; row++ {
		for col := uint32(0); col < 13; col++ {
			if f.Alive(row, col) != (u.Cell(row, col) == Alive) {
				t.Fatalf("frame differs at (%d, %d)", row, col)
			}
		}
	}
	if f.Alive(11, 0) || f.Alive(0, 13) {
		t.Fatal("cells outside the frame must be dead")
	}

	before := slices.Clone(f.Words)
	u.Randomize(1)
	if !slices.Equal(before, f.Words) {
		t.Fatal("frame changed together with the universe")
	}
}

func TestString(t *testing.T) {
	u := empty(3, 2)
	u.SetCells([]Coord{{0, 1}, {1, 2}})
	want := strings.Join([]string{"◻◼◻", "◻◻◼", ""}, "\n")
	if got := u.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
