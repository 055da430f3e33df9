package 围碁

import (
	"fmt"
	"sort"

	"github.com/gorgonia/kifu/game"
)

// Goban is a Board with one Markup per point layered on top.
//
// The layer remembers the moves played since the last ResetMarkup by their number,
// so one board can be shown as a sequence of diagrams. Annotations (shapes, labels,
// territory) live in a separate overlay that belongs to whoever set them: clones do
// not carry the overlay over.
type Goban struct {
	*Board
	marks     []Markup
	conflicts []Conflict
	moveNum   int
	overlay   map[game.Point]Markup
}

// NewGoban creates an empty goban of the given size.
func NewGoban(size int) *Goban { return WrapBoard(NewBoard(size)) }

// WrapBoard layers markup over an existing board. Existing stones show as bare stones.
func WrapBoard(b *Board) *Goban {
	g := &Goban{Board: b, marks: make([]Markup, len(b.data))}
	g.ResetMarkup()
	return g
}

// Clone clones the board and the markup, without the annotation overlay.
func (g *Goban) Clone() *Goban {
	retVal := &Goban{
		Board:   g.Board.Clone(),
		marks:   make([]Markup, len(g.marks)),
		moveNum: g.moveNum,
	}
	copy(retVal.marks, g.marks)
	if len(g.conflicts) > 0 {
		retVal.conflicts = make([]Conflict, len(g.conflicts))
		copy(retVal.conflicts, g.conflicts)
	}
	return retVal
}

// Resize clears the board, the markup and the move counter.
func (g *Goban) Resize(size int) error {
	if err := g.Board.Resize(size); err != nil {
		return err
	}
	g.marks = make([]Markup, len(g.data))
	g.conflicts = nil
	g.overlay = nil
	g.moveNum = 0
	return nil
}

// MoveNumber returns the number of the last numbered move.
func (g *Goban) MoveNumber() int { return g.moveNum }

// SetMoveNumber sets the counter. The next move played is numbered n+1.
func (g *Goban) SetMoveNumber(n int) { g.moveNum = n }

// MarkupAt returns what the diagram shows at p: the annotation if there is one,
// otherwise the markup left by stones and moves.
func (g *Goban) MarkupAt(p game.Point) Markup {
	if !g.Contains(p) {
		return Markup{}
	}
	if m, ok := g.overlay[p]; ok {
		return m
	}
	return g.marks[g.ltoi(p)]
}

// SetMarkup sets the markup at p.
//
// Empty cells, clearing, and a bare stone followed by a stone or move of its own colour
// are simply overwritten. Anything else that differs is a conflict: the existing markup
// stays (a bare stone turns into a lettered conflict mark) and the pair is recorded.
func (g *Goban) SetMarkup(p game.Point, m Markup) {
	if !g.Contains(p) {
		return
	}
	i := g.ltoi(p)
	cur := g.marks[i]
	switch {
	case cur.Kind == NoMarkup,
		m.Kind == NoMarkup,
		cur.Kind == StoneMark && (m.Kind == StoneMark || m.Kind == MoveMark) && m.Colour == cur.Colour:
		g.marks[i] = m
	case cur != m:
		if cur.Kind == StoneMark {
			cur = ConflictMarkup(cur.Colour, conflictLetter(g.conflictMarks()))
			g.marks[i] = cur
		}
		g.addConflict(Conflict{Point: p, Existing: cur, Incoming: m})
	}
}

func (g *Goban) conflictMarks() int {
	var n int
	for _, m := range g.marks {
		if m.Kind == ConflictMark {
			n++
		}
	}
	return n
}

func (g *Goban) addConflict(c Conflict) {
	for _, have := range g.conflicts {
		if have == c {
			return
		}
	}
	g.conflicts = append(g.conflicts, c)
}

// Conflicts returns the recorded conflicts in order.
func (g *Goban) Conflicts() []Conflict {
	retVal := make([]Conflict, len(g.conflicts))
	copy(retVal, g.conflicts)
	sort.SliceStable(retVal, func(i, j int) bool { return retVal[i].compare(retVal[j]) < 0 })
	return retVal
}

// ResetMarkup starts a fresh diagram: every stone shows as a bare stone, and
// conflicts and annotations are cleared.
func (g *Goban) ResetMarkup() {
	for i, c := range g.data {
		if c == None {
			g.marks[i] = Markup{}
		} else {
			g.marks[i] = StoneMarkup(c)
		}
	}
	g.conflicts = g.conflicts[:0]
	g.overlay = nil
}

// Move plays a move and marks it with the next move number.
func (g *Goban) Move(p game.Point, c game.Colour) []game.Point {
	return g.MoveNumbered(p, c, g.moveNum+1)
}

// MoveNumbered plays a move and marks it with the given number, which becomes the
// current move number. Moves the board ignores leave the markup and counter alone.
func (g *Goban) MoveNumbered(p game.Point, c game.Colour, n int) []game.Point {
	captured, played := g.Board.Play(p, c)
	if !played {
		return nil
	}
	g.moveNum = n
	g.SetMarkup(p, MoveMarkup(c, n))
	return captured
}

// PutStone sets a stone directly and shows it as a bare stone.
func (g *Goban) PutStone(p game.Point, c game.Colour) {
	if !g.Contains(p) {
		return
	}
	g.Board.PutStone(p, c)
	if c == None {
		g.marks[g.ltoi(p)] = Markup{}
		return
	}
	g.marks[g.ltoi(p)] = StoneMarkup(c)
}

// Annotate puts an annotation on the overlay. NoMarkup removes it.
func (g *Goban) Annotate(p game.Point, m Markup) {
	if !g.Contains(p) {
		return
	}
	if m.Kind == NoMarkup {
		delete(g.overlay, p)
		return
	}
	if g.overlay == nil {
		g.overlay = make(map[game.Point]Markup)
	}
	g.overlay[p] = m
}

// ClearAnnotations empties the overlay.
func (g *Goban) ClearAnnotations() { g.overlay = nil }

// Format implements fmt.Formatter. %s shows the stones, %v the markup.
func (g *Goban) Format(s fmt.State, c rune) {
	if c != 'v' {
		g.Board.Format(s, c)
		return
	}
	size := g.Size()
	for y := 0; y < size; y++ {
		fmt.Fprint(s, "⎢ ")
		for x := 0; x < size; x++ {
			m := g.MarkupAt(game.Pt(x, y))
			if m.Kind == NoMarkup {
				fmt.Fprintf(s, "%3s ", "·")
				continue
			}
			fmt.Fprintf(s, "%3v ", m)
		}
		fmt.Fprint(s, "⎥\n")
	}
}
