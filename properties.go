package kifu

import (
	"github.com/gorgonia/kifu/sgf"
	"go.uber.org/zap"
)

// Get returns the value in effect at the node: its own, or for inheritable keys the
// one set on the nearest ancestor. It returns nil if there is none.
func (n *Node) Get(k *sgf.Key) sgf.Value {
	if v := n.props.Value(k); v != nil {
		return v
	}
	if k.Inheritable && n.inherited != nil {
		return n.inherited.Value(k)
	}
	return nil
}

// Contains returns true if Get would return a value.
func (n *Node) Contains(k *sgf.Key) bool { return n.Get(k) != nil }

// Local returns the value set on the node itself, ignoring inheritance.
func (n *Node) Local(k *sgf.Key) (sgf.Value, bool) {
	p, ok := n.props.Get(k)
	return p.Value, ok
}

// Properties returns the node's own properties in writing order.
func (n *Node) Properties() []sgf.Property { return n.props.Properties() }

// AddProperty adds a property, merging it with an existing one of the same key.
func (n *Node) AddProperty(p sgf.Property) {
	n.props.Add(p)
	n.changed(p.Key)
}

// SetProperty sets a property, replacing any existing one of the same key.
func (n *Node) SetProperty(p sgf.Property) {
	n.props.Set(p)
	n.changed(p.Key)
}

// RemoveProperty removes the node's own property. It returns false if there was none.
func (n *Node) RemoveProperty(k *sgf.Key) bool {
	if !n.props.Remove(k) {
		return false
	}
	n.changed(k)
	return true
}

// SetDiagram makes the node start a new figure, or stop doing so. The diagrams
// of the subtree are derived again.
func (n *Node) SetDiagram(on bool) {
	if on {
		n.SetProperty(sgf.Property{Key: sgf.FG, Value: sgf.Void{}})
		return
	}
	n.RemoveProperty(sgf.FG)
}

// changed brings the derived state up to date after the property k changed.
func (n *Node) changed(k *sgf.Key) {
	t := n.tree
	if k.Inheritable {
		t.rebuildInherited(n)
	}
	if affectsBoard(k) {
		t.invalidate(n)
	}
	t.logger.Debug("property changed", zap.Int("node", int(n.id)), zap.String("key", k.Code))
	t.notify(n)
}

// affectsBoard returns true for keys that change the derived board or its markup.
func affectsBoard(k *sgf.Key) bool {
	switch k.Code {
	case "B", "W", "AB", "AW", "AE", "MN", "FG", "SZ", "PL", "HA",
		"TR", "SQ", "CR", "MA", "TB", "TW", "LB":
		return true
	}
	return false
}

// rebuildInherited recomputes the inherited properties of n and its descendants.
//
// A node without inheritable properties of its own shares its parent's set. A node
// with some gets its own copy, which is then shared by its descendants down to the
// next node overriding anything.
func (t *GameTree) rebuildInherited(n *Node) {
	var base *sgf.PropertySet
	if p := n.Parent(); p != nil {
		base = p.inherited
	}
	if base == nil {
		base = &sgf.PropertySet{}
	}

	var local []sgf.Property
	for _, p := range n.props.Properties() {
		if p.Key.Inheritable {
			local = append(local, p)
		}
	}
	if len(local) == 0 {
		n.inherited = base
	} else {
		fork := base.Clone()
		for _, p := range local {
			fork.Set(p)
		}
		n.inherited = fork
	}

	for _, kid := range n.children {
		t.rebuildInherited(t.nodes[kid])
	}
}

// invalidate drops the derived boards of n and its descendants.
func (t *GameTree) invalidate(n *Node) {
	n.goban = nil
	for _, kid := range n.children {
		t.invalidate(t.nodes[kid])
	}
}
