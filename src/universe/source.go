package universe

import "math/rand/v2"

//Source produces uniform random numbers in [0, 1)
type Source interface {
	Float64() float64
}

//SourceFunc adapts a plain function to Source
type SourceFunc func() float64

//Float64 calls f
func (f SourceFunc) Float64() float64 { return f() }

var defaultSource Source = SourceFunc(rand.Float64)

//NewSeededSource returns a deterministic Source, the same seed gives the same sequence
func NewSeededSource(seed int64) Source {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

//Randomize repopulates the universe, every cell is alive with the given probability
func (u *Universe) Randomize(probability float64) {
	u.cells.ClearAll()
	u.fill(probability)
	Logger().Debug("universe randomized", "probability", probability, "live", u.LiveCells())
}

//fill sets cells alive by drawing from the universe source, it never clears a cell
func (u *Universe) fill(probability float64) {
	size := u.Size()
	for i := uint(0); i < size; i++ {
		if u.src.Float64() < probability {
			u.cells.Set(i)
		}
	}
}
