package kifu

import (
	"fmt"

	"github.com/gorgonia/kifu/game"
	wq "github.com/gorgonia/kifu/game/wq"
	"github.com/gorgonia/kifu/sgf"
)

// Node is a node of a game record: a move, a batch of setup stones, or only
// comments and markup.
type Node struct {
	id       naughty
	tree     *GameTree
	parent   naughty
	children []naughty
	status   Status

	props     sgf.PropertySet
	inherited *sgf.PropertySet // inheritable properties in effect here, shared down to the next override

	// derived, nil until asked for
	goban   *wq.Goban
	moveNum int
	depth   int // height of the subtree rooted here, a leaf is 1
}

// ID returns the node's index in its tree.
func (n *Node) ID() int { return int(n.id) }

// Tree returns the tree owning the node.
func (n *Node) Tree() *GameTree { return n.tree }

// Status returns whether the node is in the tree or was pruned.
func (n *Node) Status() Status { return n.status }

func (n *Node) IsActive() bool { return n.status == Active }

// Parent returns the parent, or nil for the root and for detached nodes.
func (n *Node) Parent() *Node { return n.tree.nodeFromNaughty(n.parent) }

// Children returns the children, first variation first.
func (n *Node) Children() []*Node {
	retVal := make([]*Node, len(n.children))
	for i, kid := range n.children {
		retVal[i] = n.tree.nodeFromNaughty(kid)
	}
	return retVal
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the i-th child, or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.tree.nodeFromNaughty(n.children[i])
}

// FirstChild returns the main variation's next node, or nil.
func (n *Node) FirstChild() *Node { return n.Child(0) }

// ChildIndex returns the position of the node among its siblings. Roots are 0.
func (n *Node) ChildIndex() int {
	p := n.Parent()
	if p == nil {
		return 0
	}
	for i, kid := range p.children {
		if kid == n.id {
			return i
		}
	}
	return 0
}

// Level returns the number of ancestors.
func (n *Node) Level() int {
	var l int
	for p := n.Parent(); p != nil; p = p.Parent() {
		l++
	}
	return l
}

// Depth returns the height of the subtree rooted at the node. Leaves have depth 1.
func (n *Node) Depth() int { return n.depth }

// IsRoot returns true for the root of the tree.
func (n *Node) IsRoot() bool { return n.id == n.tree.root }

// IsGameRoot returns true for the first node of a game: the root of a plain tree,
// or a child of a collection's root.
func (n *Node) IsGameRoot() bool {
	if n.tree.collection {
		return n.parent == n.tree.root && n.parent.isValid()
	}
	return n.IsRoot()
}

// isDetached returns true for nodes that are not part of the tree yet, or were pruned.
func (n *Node) isDetached() bool { return !n.IsRoot() && !n.parent.isValid() }

// IsMove returns true if the node plays a move (B or W).
func (n *Node) IsMove() bool { return n.props.Has(sgf.B) || n.props.Has(sgf.W) }

// IsSetup returns true if the node sets up stones (AB, AW or AE).
func (n *Node) IsSetup() bool {
	return n.props.Has(sgf.AB) || n.props.Has(sgf.AW) || n.props.Has(sgf.AE)
}

// IsMainLine returns true if the node and every ancestor is its parent's first child.
func (n *Node) IsMainLine() bool {
	c := n
	for p := c.Parent(); p != nil; c, p = p, p.Parent() {
		if len(p.children) == 0 || p.children[0] != c.id {
			return false
		}
	}
	return c.IsRoot()
}

// IsDiagram returns true if the node starts a new figure. A game's first node is
// only a diagram if it also plays or sets up stones.
func (n *Node) IsDiagram() bool {
	if !n.props.Has(sgf.FG) {
		return false
	}
	if n.IsRoot() || n.IsGameRoot() {
		return n.IsMove() || n.IsSetup()
	}
	return true
}

// PlayedMove returns the move played at the node. Points off the board, such as
// the old tt encoding, are passes.
func (n *Node) PlayedMove() (game.PlayerMove, bool) {
	var c game.Colour
	var v sgf.Value
	switch {
	case n.props.Has(sgf.B):
		c, v = game.Black, n.props.Value(sgf.B)
	case n.props.Has(sgf.W):
		c, v = game.White, n.props.Value(sgf.W)
	default:
		return game.PlayerMove{}, false
	}
	pv, ok := v.(sgf.PointValue)
	if !ok || !pv.Point().InRange(n.boardSize()) {
		return game.PlayerMove{Colour: c, Point: game.Pass}, true
	}
	return game.PlayerMove{Colour: c, Point: pv.Point()}, true
}

// ToPlay returns the colour to play after this node: the opponent of the move
// played here, else the PL property, else what the previous node says. At the
// start of a game, Black plays unless there is a handicap.
func (n *Node) ToPlay() game.Colour {
	if m, ok := n.PlayedMove(); ok {
		return m.Colour.Opponent()
	}
	return n.toPlayBefore()
}

// toPlayBefore returns the colour a move added to this node would be played with.
func (n *Node) toPlayBefore() game.Colour {
	if c := sgf.ColourOf(n.props.Value(sgf.PL)); c != game.None {
		return c
	}
	if p := n.Parent(); p != nil && !n.IsGameRoot() {
		return p.ToPlay()
	}
	if ha, ok := n.Get(sgf.HA).(sgf.Number); ok && ha.Int() > 1 {
		return game.White
	}
	return game.Black
}

func (n *Node) walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, kid := range n.children {
		if !n.tree.nodeFromNaughty(kid).walk(fn) {
			return false
		}
	}
	return true
}

func (n *Node) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{NodeID: %v Level: %d Status: %v Properties: %v}", n.id, n.Level(), n.status, &n.props)
}
