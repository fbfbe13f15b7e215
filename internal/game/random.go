package game

import "cookie4/internal/util"

// RandomBoard fills every cell row by row with one draw each: true is TeamA, false is TeamB.
// It never draws more than Size*Size bits.
func RandomBoard(src util.BitSource) Board {
	var b Board
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if src.NextBool() {
				b.Grid[r][c] = TeamA
			} else {
				b.Grid[r][c] = TeamB
			}
		}
	}
	return b
}
