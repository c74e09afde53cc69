package universe

//Tick advances the universe by one generation
//every neighbour is read from the current generation, the result is written to the
//second buffer which becomes current only after the whole field is calculated
func (u *Universe) Tick() {
	for row := uint32(0); row < u.height; row++ {
		for col := uint32(0); col < u.width; col++ {
			idx := u.index(row, col)
			u.next.SetTo(idx, nextState(u.cells.Test(idx), u.liveNeighbourCount(row, col)))
		}
	}
	u.cells, u.next = u.next, u.cells
}

//liveNeighbourCount counts alive cells around row, col wrapping at the edges
//the deltas are added as unsigned values and reduced modulo the dimension, on a field one or
//two cells wide the same neighbour is visited by several deltas and counted every time
func (u *Universe) liveNeighbourCount(row uint32, col uint32) uint8 {
	var count uint8
	for _, dr := range [3]uint32{u.height - 1, 0, 1} {
		for _, dc := range [3]uint32{u.width - 1, 0, 1} {
			if dr == 0 && dc == 0 {
				continue
			}
			r := (row + dr) % u.height
			c := (col + dc) % u.width
			if u.cells.Test(u.index(r, c)) {
				count++
			}
		}
	}
	return count
}

//nextState is the life rule: survive with 2 or 3 neighbours, born with exactly 3
func nextState(alive bool, neighbours uint8) bool {
	switch {
	case alive && neighbours < 2:
		return false
	case alive && (neighbours == 2 || neighbours == 3):
		return true
	case alive && neighbours > 3:
		return false
	case !alive && neighbours == 3:
		return true
	}
	return alive
}
