package game

// AddPeon drops cell into col and returns the row it lands on.
// Callers validate cell; ParseTeam and Service.Place only hand over team cells.
func AddPeon(board *Board, col int, cell Cell) (int, error) {
	if col < 0 || col >= Size {
		return -1, ErrColOutOfRange
	}
	row := Size - 1
	for row >= 0 && board.Grid[row][col] != Empty {
		row--
	}
	if row < 0 {
		return -1, ErrColFull
	}
	board.Grid[row][col] = cell
	return row, nil
}
