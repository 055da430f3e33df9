package kifu

import (
	"github.com/gorgonia/kifu/game"
	"github.com/gorgonia/kifu/sgf"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Add attaches child as the last child of n. The child must be a detached node of
// the same tree, as created by NewNode.
func (n *Node) Add(child *Node) error {
	t := n.tree
	if !t.owns(child) {
		return errors.WithStack(ErrForeignNode)
	}
	if !child.isDetached() || !child.IsActive() {
		return errors.WithMessagef(ErrInvalidOperation, "node %d is already part of the tree", child.id)
	}
	for p := n; p != nil; p = p.Parent() {
		if p == child {
			return errors.WithMessagef(ErrInvalidOperation, "node %d cannot be its own descendant", child.id)
		}
	}

	child.parent = n.id
	n.children = append(n.children, child.id)
	t.updateDepths(child)
	t.rebuildInherited(child)
	t.invalidate(child)
	t.logger.Debug("node added", zap.Int("parent", int(n.id)), zap.Int("node", int(child.id)))
	t.notify(n)
	return nil
}

// NewChild creates a new last child.
func (n *Node) NewChild() *Node {
	child := n.tree.NewNode()
	if err := n.Add(child); err != nil {
		panic(err) // a fresh node can always be added
	}
	return child
}

// Prune removes the node and its subtree from the tree. The nodes stay in the arena
// so that a memento taken earlier can restore them.
func (n *Node) Prune() error {
	if n.IsRoot() {
		return errors.WithMessage(ErrInvalidOperation, "the root cannot be pruned")
	}
	p := n.Parent()
	if p == nil {
		return errors.WithMessagef(ErrInvalidOperation, "node %d is not part of the tree", n.id)
	}
	for i, kid := range p.children {
		if kid == n.id {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nilNode
	n.walk(func(d *Node) bool {
		d.status = Pruned
		return true
	})
	// siblings after the pruned node may have become the main variation
	for _, kid := range p.children {
		n.tree.invalidate(n.tree.nodes[kid])
	}
	n.tree.recomputeDepths(p)
	n.tree.logger.Debug("node pruned", zap.Int("node", int(n.id)))
	n.tree.notify(p)
	return nil
}

// Move plays a move at p with the colour whose turn it is.
//
// Move fails with ErrInvalidOperation on the root and on nodes that already play a
// move or set up stones: a node is one move, or one batch of setup stones.
func (n *Node) Move(p game.Point) error {
	return n.Play(p, n.toPlayBefore())
}

// Play plays a move at p with the given colour. It fails like Move.
func (n *Node) Play(p game.Point, c game.Colour) error {
	switch {
	case n.IsRoot() || n.IsGameRoot():
		return errors.WithMessage(ErrInvalidOperation, "cannot play a move in a root node")
	case n.IsMove():
		return errors.WithMessagef(ErrInvalidOperation, "node %d already plays a move", n.id)
	case n.IsSetup():
		return errors.WithMessagef(ErrInvalidOperation, "node %d sets up stones", n.id)
	case !c.IsValid():
		return errors.WithMessagef(ErrInvalidOperation, "cannot play a move with colour %v", c)
	}
	k := sgf.B
	if c == game.White {
		k = sgf.W
	}
	n.SetProperty(sgf.Property{Key: k, Value: sgf.PointValue(p)})
	return nil
}

// AddStone sets up a stone of colour c at p. None clears the point.
//
// The point is taken out of AB, AW and AE first, so that it is in at most one of
// them. Clearing only lands in AE when there is a stone to clear. AddStone fails
// with ErrInvalidOperation on move nodes.
func (n *Node) AddStone(p game.Point, c game.Colour) error {
	if n.IsMove() {
		return errors.WithMessagef(ErrInvalidOperation, "node %d already plays a move", n.id)
	}
	if !p.InRange(n.boardSize()) {
		return errors.Errorf("Cannot add a stone at %v: not on the board", p)
	}

	for _, k := range []*sgf.Key{sgf.AB, sgf.AW, sgf.AE} {
		ps, ok := n.props.Value(k).(*sgf.PointSet)
		if !ok || !ps.Has(p) {
			continue
		}
		ps = ps.Clone().(*sgf.PointSet)
		ps.Remove(p)
		if ps.Len() == 0 {
			n.props.Remove(k)
		} else {
			n.props.Set(sgf.Property{Key: k, Value: ps})
		}
	}

	var k *sgf.Key
	switch {
	case c == game.Black:
		k = sgf.AB
	case c == game.White:
		k = sgf.AW
	case n.boardBefore().At(p) != game.None:
		k = sgf.AE
	}
	if k == nil {
		n.changed(sgf.AE)
		return nil
	}
	ps, ok := n.props.Value(k).(*sgf.PointSet)
	if ok {
		ps = ps.Clone().(*sgf.PointSet)
	} else {
		ps = sgf.NewPointSet()
	}
	ps.Add(p)
	n.SetProperty(sgf.Property{Key: k, Value: ps})
	return nil
}

// updateDepths raises the cached depths of the ancestors of a newly attached node.
func (t *GameTree) updateDepths(child *Node) {
	child.depth = t.subtreeDepth(child)
	d := child.depth + 1
	for p := child.Parent(); p != nil && p.depth < d; p = p.Parent() {
		p.depth = d
		d++
	}
}

func (t *GameTree) subtreeDepth(n *Node) int {
	d := 0
	for _, kid := range n.children {
		if kd := t.subtreeDepth(t.nodes[kid]); kd > d {
			d = kd
		}
	}
	n.depth = d + 1
	return n.depth
}

// recomputeDepths recomputes the depth of n and its ancestors after a child left.
func (t *GameTree) recomputeDepths(n *Node) {
	for ; n != nil; n = n.Parent() {
		d := 0
		for _, kid := range n.children {
			if kd := t.nodes[kid].depth; kd > d {
				d = kd
			}
		}
		n.depth = d + 1
	}
}
