package kifu

import (
	"github.com/gorgonia/kifu/game"
	wq "github.com/gorgonia/kifu/game/wq"
	"github.com/gorgonia/kifu/sgf"
	"go.uber.org/zap"
)

// Board returns the position at the node.
func (n *Node) Board() *wq.Board { return n.Goban().Board }

// MoveNumber returns the number of the last move played on the way to the node.
//
// MN overrides the count. Otherwise a move continuing its parent's line is one more
// than the parent, a move starting a variation is 1, and nodes without a move keep
// their parent's number (0 when they start a variation).
func (n *Node) MoveNumber() int {
	n.Goban()
	return n.moveNum
}

// Goban returns the position at the node with its diagram markup.
//
// The board is derived on first use from the nearest ancestor that has one, and
// cached. The returned goban belongs to the node and must not be modified.
func (n *Node) Goban() *wq.Goban {
	if n.goban != nil {
		return n.goban
	}
	var path []*Node
	for c := n; c != nil; c = c.boardParent() {
		path = append(path, c)
		if c.goban != nil {
			break
		}
	}
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].goban == nil {
			path[i].derive()
		}
	}
	return n.goban
}

// SetGoban sets the position at the node. Descendants derive theirs from it.
func (n *Node) SetGoban(g *wq.Goban) {
	n.tree.invalidate(n)
	n.goban = g
	n.moveNum = g.MoveNumber()
	n.tree.notify(n)
}

// boardParent returns the node whose position this node's position follows from,
// or nil for the first node of a game.
func (n *Node) boardParent() *Node {
	if n.IsGameRoot() {
		return nil
	}
	return n.Parent()
}

// boardBefore returns the position before the node's own properties are applied.
func (n *Node) boardBefore() *wq.Board {
	if p := n.boardParent(); p != nil {
		return p.Board()
	}
	return n.tree.freshGoban(n).Board
}

func (n *Node) boardSize() int {
	if p := n.boardParent(); p != nil && p.goban != nil {
		return p.goban.Size()
	}
	return n.tree.sizeAt(n)
}

// sizeAt returns the board size declared for the game n belongs to.
func (t *GameTree) sizeAt(n *Node) int {
	sz, ok := n.Get(sgf.SZ).(sgf.Number)
	if !ok {
		return t.Size
	}
	if size := sz.Int(); sz.IsInt() && size >= 1 && size <= game.MaxBoardSize {
		return size
	}
	t.logger.Warn("unsupported board size", zap.Stringer("SZ", sz), zap.Int("using", t.Size))
	return t.Size
}

func (t *GameTree) freshGoban(n *Node) *wq.Goban {
	g := wq.NewGoban(t.sizeAt(n))
	g.SetSelfCapture(t.SelfCapture)
	return g
}

// derive computes the node's position from its board parent's.
func (n *Node) derive() {
	parent := n.boardParent()
	var g *wq.Goban
	if parent == nil {
		g = n.tree.freshGoban(n)
	} else {
		g = parent.goban.Clone()
		if n.IsDiagram() || n.ChildIndex() != 0 {
			g.ResetMarkup()
		}
	}

	num := n.numberFrom(parent)
	g.SetMoveNumber(num)
	n.applySetup(g)
	if m, ok := n.PlayedMove(); ok {
		g.MoveNumbered(m.Point, m.Colour, num)
		g.SetMoveNumber(num)
	}
	n.applyAnnotations(g)

	n.goban = g
	n.moveNum = num
}

func (n *Node) numberFrom(parent *Node) int {
	if mn, ok := n.props.Value(sgf.MN).(sgf.Number); ok {
		return mn.Int()
	}
	variation := parent != nil && n.ChildIndex() != 0
	switch {
	case parent == nil && n.IsMove():
		return 1
	case parent == nil:
		return 0
	case variation && n.IsMove():
		return 1
	case variation:
		return 0
	case n.IsMove():
		return parent.moveNum + 1
	}
	return parent.moveNum
}

func (n *Node) applySetup(g *wq.Goban) {
	for _, set := range []struct {
		k *sgf.Key
		c game.Colour
	}{{sgf.AE, game.None}, {sgf.AB, game.Black}, {sgf.AW, game.White}} {
		ps, ok := n.props.Value(set.k).(*sgf.PointSet)
		if !ok {
			continue
		}
		for _, p := range ps.Points() {
			g.PutStone(p, set.c)
		}
	}
}

var annotations = []struct {
	k *sgf.Key
	m wq.Markup
}{
	{sgf.TB, wq.BlackTerritory},
	{sgf.TW, wq.WhiteTerritory},
	{sgf.TR, wq.Triangle},
	{sgf.SQ, wq.Square},
	{sgf.CR, wq.Circle},
	{sgf.MA, wq.Cross},
}

func (n *Node) applyAnnotations(g *wq.Goban) {
	for _, a := range annotations {
		ps, ok := n.props.Value(a.k).(*sgf.PointSet)
		if !ok {
			continue
		}
		for _, p := range ps.Points() {
			g.Annotate(p, a.m)
		}
	}
	if labels, ok := n.props.Value(sgf.LB).(sgf.ValueList); ok {
		for _, l := range labels.Labels() {
			g.Annotate(l.Point, wq.TextMarkup(l.Text))
		}
	}
}
