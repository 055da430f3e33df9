// package 围碁 implements the Go board used by game records: stone placement with
// captures, symmetry aware hashing and the markup layered on top of it for diagrams.
//
// 围碁 is a bastardized word.
// The first character is read "wei" in Chinese. The second is read "qi" in Chinese.
// However, the charcter 碁 is no longer actively used in Chinese.
// It is however, actively used in Japanese. Specifically, it's read "go" in Japanese.
//
// The main reason why this package is named with unicode characters instead of `package go`
// is because the standard library of the Go language have the prefix "go"
package 围碁

import (
	"fmt"

	"github.com/gorgonia/kifu/game"
	"github.com/pkg/errors"
)

const (
	None  = game.None
	Black = game.Black
	White = game.White
)

// Board represents a board.
//
// Given we know the stride of the board, the cells are kept in a flat slice with a
// row iterator over it for quick access.
//
// Invalid input to Move (points off the board, occupied points, no colour) is
// silently ignored. Game records in the wild contain such moves and a record
// must still load.
type Board struct {
	size     int32
	data     []game.Colour   // backing data
	it       [][]game.Colour // iterator for quick access
	zobrist                  // hashing of the board
	stones   int
	captures [3]int // captures[c] is the number of stones captured by c

	selfCapture bool

	// scratch space for flood fills
	marks []uint32
	epoch uint32
}

// NewBoard creates an empty board. It panics if the size cannot be represented.
func NewBoard(size int) *Board {
	b, err := NewBoardChecked(size)
	if err != nil {
		panic(err)
	}
	return b
}

// NewBoardChecked creates an empty board, returning an error for unsupported sizes.
func NewBoardChecked(size int) (*Board, error) {
	if size < 1 || size > game.MaxBoardSize {
		return nil, errors.WithStack(sizeError(size))
	}
	data, it := makeBoard(size)
	return &Board{
		size:        int32(size),
		data:        data,
		it:          it,
		zobrist:     makeZobrist(size),
		marks:       make([]uint32, size*size),
		selfCapture: true,
	}, nil
}

// Size returns the length of a side of the board.
func (b *Board) Size() int { return int(b.size) }

// Stones returns the number of stones on the board.
func (b *Board) Stones() int { return b.stones }

// Captures returns the number of stones captured by the given colour.
func (b *Board) Captures(by game.Colour) int {
	if !by.IsValid() {
		return 0
	}
	return b.captures[by]
}

// SelfCapture reports whether suicide moves are played (and their chain removed).
func (b *Board) SelfCapture() bool { return b.selfCapture }

// SetSelfCapture sets whether suicide moves are played. When disabled, a suicide
// move leaves the board untouched.
func (b *Board) SetSelfCapture(allow bool) { b.selfCapture = allow }

// Clone clones the board
func (b *Board) Clone() *Board {
	data, it := makeBoard(int(b.size))
	copy(data, b.data)
	return &Board{
		size:        b.size,
		data:        data,
		it:          it,
		zobrist:     b.zobrist,
		stones:      b.stones,
		captures:    b.captures,
		selfCapture: b.selfCapture,
		marks:       make([]uint32, len(b.data)),
	}
}

// Eq checks that both are equal
func (b *Board) Eq(other *Board) bool {
	if b == other {
		return true
	}
	// easy to check stuff
	if b.size != other.size ||
		b.stones != other.stones ||
		b.captures != other.captures ||
		b.zobrist.hashes != other.zobrist.hashes {
		return false
	}

	for i, c := range b.data {
		if c != other.data[i] {
			return false
		}
	}
	return true
}

// SamePosition checks that both boards hold the same stones, ignoring capture counts.
func (b *Board) SamePosition(other *Board) bool {
	if b.size != other.size || b.hashes[game.Identity] != other.hashes[game.Identity] {
		return false
	}
	for i, c := range b.data {
		if c != other.data[i] {
			return false
		}
	}
	return true
}

// Format implements fmt.Formatter
func (b *Board) Format(s fmt.State, c rune) {
	switch c {
	case 's', 'v':
		for y := int32(0); y < b.size; y++ {
			fmt.Fprint(s, "⎢ ")
			for x := int32(0); x < b.size; x++ {
				fmt.Fprintf(s, "%s ", b.it[x][y])
			}
			fmt.Fprint(s, "⎥\n")
		}
	}
}

// Reset resets the board state
func (b *Board) Reset() {
	for i := range b.data {
		b.data[i] = game.None
	}
	b.zobrist.reset()
	b.stones = 0
	b.captures = [3]int{}
}

// Resize clears the board and changes its size.
func (b *Board) Resize(size int) error {
	if size < 1 || size > game.MaxBoardSize {
		return errors.WithStack(sizeError(size))
	}
	if int32(size) == b.size {
		b.Reset()
		return nil
	}
	b.size = int32(size)
	b.data, b.it = makeBoard(size)
	b.zobrist = makeZobrist(size)
	b.marks = make([]uint32, size*size)
	b.stones = 0
	b.captures = [3]int{}
	return nil
}

// Contains returns true if the point is on the board.
func (b *Board) Contains(p game.Point) bool { return p.InRange(int(b.size)) }

// At returns the colour of the stone at p. Points off the board are None.
func (b *Board) At(p game.Point) game.Colour {
	if !b.Contains(p) {
		return None
	}
	return b.it[p.X][p.Y]
}

// Hash returns the hash of the board as seen through the symmetry s.
func (b *Board) Hash(s game.Symmetry) game.Zobrist { return b.hashes[s] }

// CanonicalHash returns the largest hash over all symmetries. Boards that are
// rotations, reflections or colour swaps of one another share it.
func (b *Board) CanonicalHash() game.Zobrist {
	retVal := b.hashes[0]
	for _, h := range b.hashes[1:] {
		if h > retVal {
			retVal = h
		}
	}
	return retVal
}

// SymmetryGroup returns the spatial symmetries fixing the position.
func (b *Board) SymmetryGroup() game.SymmetryGroup { return game.SymmetryGroupOf(b) }

// PutStone sets the point directly, without captures. None clears the point.
// Points off the board are ignored.
func (b *Board) PutStone(p game.Point, c game.Colour) {
	if !b.Contains(p) {
		return
	}
	b.set(p, c)
}

func (b *Board) set(p game.Point, c game.Colour) {
	old := b.it[p.X][p.Y]
	if old == c {
		return
	}
	if old != None {
		b.zobrist.toggle(p, old)
		b.stones--
	}
	if c != None {
		b.zobrist.toggle(p, c)
		b.stones++
	}
	b.it[p.X][p.Y] = c
}

// Move plays a stone of colour c at p and returns the captured points.
// Moves off the board, onto occupied points or without a colour do nothing.
func (b *Board) Move(p game.Point, c game.Colour) []game.Point {
	captured, _ := b.Play(p, c)
	return captured
}

// Play is like Move, but also reports whether the stone was played at all.
//
// Adjacent opponent chains left without liberties are removed first and credited to c.
// If the played chain is then without liberties it is removed as well and credited
// to the opponent, unless self capture has been disabled, in which case the move is
// taken back and not played.
func (b *Board) Play(p game.Point, c game.Colour) (captured []game.Point, played bool) {
	if !c.IsValid() || !b.Contains(p) || b.it[p.X][p.Y] != None {
		return nil, false
	}
	b.set(p, c)

	opp := c.Opponent()
	for _, a := range b.adjacents(p) {
		if b.it[a.X][a.Y] != opp {
			continue
		}
		chain, libs := b.chain(a)
		if libs > 0 {
			continue
		}
		for _, s := range chain {
			b.set(s, None)
		}
		captured = append(captured, chain...)
	}
	b.captures[c] += len(captured)

	if len(captured) > 0 {
		return captured, true
	}

	chain, libs := b.chain(p)
	if libs > 0 {
		return nil, true
	}
	if !b.selfCapture {
		b.set(p, None)
		return nil, false
	}
	for _, s := range chain {
		b.set(s, None)
	}
	b.captures[opp] += len(chain)
	return chain, true
}

// Chain returns the stones connected to p. An empty point has no chain.
func (b *Board) Chain(p game.Point) []game.Point {
	if b.At(p) == None {
		return nil
	}
	chain, _ := b.chain(p)
	return chain
}

// Liberties counts the empty points adjacent to the chain at p.
func (b *Board) Liberties(p game.Point) int {
	if b.At(p) == None {
		return 0
	}
	_, libs := b.chain(p)
	return libs
}

// chain flood fills from p, returning the chain and the number of distinct liberties.
func (b *Board) chain(p game.Point) (chain []game.Point, liberties int) {
	b.epoch++
	if b.epoch == 0 {
		for i := range b.marks {
			b.marks[i] = 0
		}
		b.epoch = 1
	}
	colour := b.it[p.X][p.Y]
	b.marks[b.ltoi(p)] = b.epoch
	queue := []game.Point{p}
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		chain = append(chain, f)
		for _, a := range b.adjacents(f) {
			i := b.ltoi(a)
			if b.marks[i] == b.epoch {
				continue
			}
			switch b.it[a.X][a.Y] {
			case None:
				b.marks[i] = b.epoch
				liberties++
			case colour:
				b.marks[i] = b.epoch
				queue = append(queue, a)
			}
		}
	}
	return chain, liberties
}

// EqualsWith returns true if other is this board transformed by s.
func (b *Board) EqualsWith(other *Board, s game.Symmetry) bool {
	if b.size != other.size {
		return false
	}
	size := int(b.size)
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			p := game.Pt(x, y)
			if other.At(s.TransformPoint(p, size)) != s.TransformColour(b.it[x][y]) {
				return false
			}
		}
	}
	return true
}

// Symmetric finds a symmetry that maps this board onto other. Candidates are found by
// hash and confirmed stone by stone.
func (b *Board) Symmetric(other *Board) (game.Symmetry, bool) {
	if b.size != other.size {
		return game.Identity, false
	}
	want := other.Hash(game.Identity)
	for s := game.Symmetry(0); s < game.SymmetryCount; s++ {
		if b.hashes[s] == want && b.EqualsWith(other, s) {
			return s, true
		}
	}
	return game.Identity, false
}

// Transform returns a new board with every stone moved and recoloured by s.
func (b *Board) Transform(s game.Symmetry) *Board {
	size := int(b.size)
	retVal := NewBoard(size)
	retVal.selfCapture = b.selfCapture
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			if c := b.it[x][y]; c != None {
				retVal.set(s.TransformPoint(game.Pt(x, y), size), s.TransformColour(c))
			}
		}
	}
	retVal.captures[s.TransformColour(Black)] = b.captures[Black]
	retVal.captures[s.TransformColour(White)] = b.captures[White]
	return retVal
}

// ltoi takes a point and returns its index in the backing data
func (b *Board) ltoi(p game.Point) int { return int(p.X)*int(b.size) + int(p.Y) }

// adjacents returns the on-board neighbours of p, in N, E, S, W order.
func (b *Board) adjacents(p game.Point) []game.Point {
	retVal := make([]game.Point, 0, 4)
	for _, a := range adjacents {
		n := p.Add(a)
		if b.Contains(n) {
			retVal = append(retVal, n)
		}
	}
	return retVal
}

var adjacents = [4]game.Point{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}
