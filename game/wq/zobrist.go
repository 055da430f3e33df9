package 围碁

import (
	"math/rand"
	"sync"

	"github.com/gorgonia/kifu/game"
)

// zobristKeys holds the random keys of a board size.
// https://en.wikipedia.org/wiki/Zobrist_hashing
//
// Keys are generated from a generator seeded with the board size, so every board
// of the same size hashes with the same keys and hashes are comparable across boards.
// Once built, a table is never written to again.
type zobristKeys struct {
	size  int
	table []game.Zobrist   // backing storage
	it    [][]game.Zobrist // it[location] = {black key, white key}
}

var keyTables sync.Map // int -> *zobristKeys

func keysFor(size int) *zobristKeys {
	if k, ok := keyTables.Load(size); ok {
		return k.(*zobristKeys)
	}
	r := rand.New(rand.NewSource(int64(size)))
	table, it := makeZobristTable(size)
	for i := range table {
		table[i] = game.Zobrist(r.Uint64())
	}
	k, _ := keyTables.LoadOrStore(size, &zobristKeys{size: size, table: table, it: it})
	return k.(*zobristKeys)
}

func (k *zobristKeys) key(p game.Point, c game.Colour) game.Zobrist {
	row := k.it[int(p.X)*k.size+int(p.Y)]
	if c == game.White {
		return row[1]
	}
	return row[0]
}

// zobrist keeps one incrementally updated hash per symmetry.
//
// hashes[s] is the hash the board would have under the identity if every stone
// were moved and recoloured by s. Updating all sixteen on every change is what
// makes the canonical hash free to compute.
type zobrist struct {
	keys   *zobristKeys
	hashes [game.SymmetryCount]game.Zobrist
}

func makeZobrist(size int) zobrist { return zobrist{keys: keysFor(size)} }

// toggle XORs the stone c at p in or out of every symmetry hash.
func (z *zobrist) toggle(p game.Point, c game.Colour) {
	if !c.IsValid() {
		return
	}
	for s := game.Symmetry(0); s < game.SymmetryCount; s++ {
		q := s.TransformPoint(p, z.keys.size)
		z.hashes[s] ^= z.keys.key(q, s.TransformColour(c))
	}
}

func (z *zobrist) reset() { z.hashes = [game.SymmetryCount]game.Zobrist{} }
