package 围碁

import (
	"github.com/gorgonia/kifu/game"
)

// makeBoard makes a board of NxN. Additionally, it also returns a 2D iterator
// whose rows alias the backing storage, indexed it[x][y].
func makeBoard(size int) (board []game.Colour, iterator [][]game.Colour) {
	board = make([]game.Colour, size*size)
	iterator = make([][]game.Colour, size)
	for i := range iterator {
		start := i * size
		iterator[i] = board[start : start+size : start+size]
	}
	return
}

// makeZobristTable makes the (size*size, 2) table of zobrist keys, with an iterator
// giving one row of {black, white} keys per board location.
func makeZobristTable(size int) (table []game.Zobrist, iterator [][]game.Zobrist) {
	table = make([]game.Zobrist, size*size*2)
	iterator = make([][]game.Zobrist, size*size)
	rowStride := 2
	for i := range iterator {
		start := i * rowStride
		iterator[i] = table[start : start+rowStride : start+rowStride]
	}
	return
}
