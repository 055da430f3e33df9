package kifu

import (
	"github.com/gorgonia/kifu/sgf"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// NodeMemento is a snapshot of a node: its properties and its links in the tree.
// It is not changed by later edits and can be restored any number of times.
type NodeMemento struct {
	node     *Node
	props    *sgf.PropertySet
	parent   naughty
	children []naughty
}

// Node returns the node the snapshot was taken of.
func (m *NodeMemento) Node() *Node { return m.node }

// CreateMemento takes a snapshot of the node.
func (n *Node) CreateMemento() *NodeMemento {
	m := &NodeMemento{
		node:   n,
		props:  n.props.Clone(),
		parent: n.parent,
	}
	if len(n.children) > 0 {
		m.children = make([]naughty, len(n.children))
		copy(m.children, n.children)
	}
	return m
}

// SetMemento restores the node's properties from a snapshot of it. The properties
// are replaced, not merged. Links in the tree are left alone; restore a tree
// memento for those.
func (n *Node) SetMemento(m *NodeMemento) error {
	if m == nil {
		return errors.WithMessagef(ErrMissingMemento, "node %d", n.id)
	}
	if m.node != n {
		return errors.WithMessagef(ErrForeignNode, "memento of node %d restored on node %d", m.node.id, n.id)
	}
	n.restoreProps(m)
	n.tree.rebuildInherited(n)
	n.tree.invalidate(n)
	n.tree.notify(n)
	return nil
}

func (n *Node) restoreProps(m *NodeMemento) {
	n.props.Clear()
	for _, p := range m.props.Properties() {
		n.props.Set(p.Clone())
	}
}

// Memento is a snapshot of every node of a tree.
type Memento struct {
	tree  *GameTree
	root  naughty
	nodes map[naughty]*NodeMemento
}

// Len returns the number of nodes in the snapshot.
func (m *Memento) Len() int { return len(m.nodes) }

// CreateMemento takes a snapshot of every node reachable from the root.
func (t *GameTree) CreateMemento() *Memento {
	m := &Memento{
		tree:  t,
		root:  t.root,
		nodes: make(map[naughty]*NodeMemento),
	}
	t.Walk(func(n *Node) bool {
		m.nodes[n.id] = n.CreateMemento()
		return true
	})
	return m
}

// SetMemento restores the tree to a snapshot: the properties and links of every
// node in it, including nodes pruned since. Nodes added since are pruned.
//
// The snapshot is checked before anything is restored. If a node it reaches has no
// snapshot of its own, ErrMissingMemento is returned and the tree is left as it was.
func (t *GameTree) SetMemento(m *Memento) error {
	if m == nil {
		return errors.WithMessage(ErrMissingMemento, "no tree memento")
	}
	if m.tree != t {
		return errors.WithStack(ErrForeignNode)
	}
	if err := m.check(m.root, make(map[naughty]bool)); err != nil {
		return err
	}

	restored := make(map[naughty]bool, len(m.nodes))
	t.restore(m, m.root, restored)
	for _, n := range t.nodes {
		if !restored[n.id] && n.status == Active && n.parent.isValid() {
			n.status = Pruned
		}
	}
	// cut the tops of the pruned subtrees loose; links inside them are kept
	for _, n := range t.nodes {
		if n.status == Pruned && n.parent.isValid() && !n.Parent().lists(n.id) {
			n.parent = nilNode
		}
	}

	root := t.Root()
	t.rebuildInherited(root)
	t.subtreeDepth(root)
	t.invalidate(root)
	t.logger.Debug("tree restored", zap.Stringer("tree", t.id), zap.Int("nodes", len(restored)))
	root.walk(func(n *Node) bool {
		t.notify(n)
		return true
	})
	return nil
}

// check walks the links recorded in the snapshot and makes sure every node on the
// way has its own snapshot.
func (m *Memento) check(id naughty, seen map[naughty]bool) error {
	nm, ok := m.nodes[id]
	if !ok || nm == nil {
		return errors.WithMessagef(ErrMissingMemento, "node %d", id)
	}
	if seen[id] {
		return errors.Errorf("Corrupt memento: node %d is reached twice", id)
	}
	seen[id] = true
	for _, kid := range nm.children {
		if err := m.check(kid, seen); err != nil {
			return err
		}
	}
	return nil
}

// restore applies the node's snapshot, then its children's.
func (t *GameTree) restore(m *Memento, id naughty, restored map[naughty]bool) {
	nm := m.nodes[id]
	n := nm.node
	n.restoreProps(nm)
	n.parent = nm.parent
	n.children = append(n.children[:0:0], nm.children...)
	n.status = Active
	restored[id] = true
	for _, kid := range n.children {
		t.restore(m, kid, restored)
	}
}

func (n *Node) lists(id naughty) bool {
	for _, kid := range n.children {
		if kid == id {
			return true
		}
	}
	return false
}
