package kifu

import (
	"io"

	"github.com/gorgonia/kifu/sgf"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Read parses an SGF record and loads it.
func Read(r io.Reader, conf Config, opts ...Option) (*GameTree, error) {
	c, err := sgf.Parse(r)
	if err != nil {
		return nil, errors.WithMessage(err, "Cannot parse record")
	}
	return Load(c, conf, opts...)
}

// Load builds a tree from a parsed collection. A collection of several games gets a
// collection root.
//
// Values that cannot be read as their key's type do not stop the load: they are
// logged and kept as untyped text.
func Load(c *sgf.Collection, conf Config, opts ...Option) (*GameTree, error) {
	if c == nil || len(c.Trees) == 0 {
		return nil, errors.New("Cannot load an empty collection")
	}
	t, err := newTree(conf, opts)
	if err != nil {
		return nil, err
	}

	l := loader{t: t}
	if len(c.Trees) == 1 {
		t.root = l.tree(c.Trees[0], nilNode)
	} else {
		root := t.alloc()
		t.root = root.id
		t.collection = true
		for _, g := range c.Trees {
			l.tree(g, root.id)
		}
	}

	root := t.Root()
	t.rebuildInherited(root)
	t.subtreeDepth(root)
	t.logger.Debug("record loaded",
		zap.Stringer("tree", t.id),
		zap.Int("games", len(c.Trees)),
		zap.Int("nodes", len(t.nodes)),
		zap.Int("malformed", l.malformed),
	)
	return t, nil
}

type loader struct {
	t         *GameTree
	malformed int
}

// tree loads a game tree below parent and returns its first node.
func (l *loader) tree(g *sgf.Tree, parent naughty) naughty {
	first := nilNode
	for _, raw := range g.Sequence {
		n := l.node(raw)
		if parent.isValid() {
			p := l.t.nodes[parent]
			n.parent = parent
			p.children = append(p.children, n.id)
		}
		if !first.isValid() {
			first = n.id
		}
		parent = n.id
	}
	for _, v := range g.Variations {
		l.tree(v, parent)
	}
	return first
}

func (l *loader) node(raw *sgf.RawNode) *Node {
	n := l.t.alloc()
	for _, rp := range raw.Properties {
		p, err := sgf.NewProperty(rp.Code, rp.Values)
		if err != nil {
			l.malformed++
			l.t.logger.Warn("malformed property kept as text",
				zap.Int("node", int(n.id)),
				zap.String("key", rp.Code),
				zap.Strings("values", rp.Values),
				zap.Error(err),
			)
		}
		n.props.Add(p)
	}
	return n
}
