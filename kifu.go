// Package kifu is a game record engine for the game of Go.
//
// A GameTree holds the nodes of a record. Every node carries SGF properties and
// lazily derives the board position reached at it by replaying the stones of its
// ancestors. Properties such as komi or the player names set on a node apply to
// all of its descendants that do not set them again.
//
// Trees are not safe for concurrent use. Clone a board before handing it to
// another goroutine.
package kifu

import (
	"github.com/google/uuid"
	"github.com/gorgonia/kifu/sgf"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// GameTree owns the nodes of a game record.
//
// Nodes live in an arena and refer to each other by index. Pruned nodes stay in
// the arena so that mementos taken before the pruning can bring them back.
type GameTree struct {
	Config
	id     uuid.UUID
	logger *zap.Logger

	nodes      []*Node
	root       naughty
	collection bool // the root only groups independent games

	modified  bool
	listeners []Listener
}

func newTree(conf Config, opts []Option) (*GameTree, error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("Invalid configuration: board size %d", conf.Size)
	}
	t := &GameTree{
		Config: conf,
		id:     uuid.New(),
		logger: zap.NewNop(),
		nodes:  make([]*Node, 0, 64),
		root:   nilNode,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// New creates a tree holding one game of the configured size: a root node with FF,
// GM and SZ set.
func New(conf Config, opts ...Option) (*GameTree, error) {
	t, err := newTree(conf, opts)
	if err != nil {
		return nil, err
	}
	root := t.alloc()
	t.root = root.id
	root.props.Set(sgf.Property{Key: sgf.FF, Value: sgf.Number(4)})
	root.props.Set(sgf.Property{Key: sgf.GM, Value: sgf.Number(1)})
	root.props.Set(sgf.Property{Key: sgf.SZ, Value: sgf.Number(conf.Size)})
	t.rebuildInherited(root)
	return t, nil
}

// NewCollection creates a tree whose root groups games. Games are added with
// AddGame.
func NewCollection(conf Config, opts ...Option) (*GameTree, error) {
	t, err := newTree(conf, opts)
	if err != nil {
		return nil, err
	}
	root := t.alloc()
	t.root = root.id
	t.collection = true
	t.rebuildInherited(root)
	return t, nil
}

// ID identifies the tree.
func (t *GameTree) ID() uuid.UUID { return t.id }

// Logger returns the logger the tree logs to.
func (t *GameTree) Logger() *zap.Logger { return t.logger }

// Root returns the root node. For a collection, this is the node grouping the games.
func (t *GameTree) Root() *Node { return t.nodeFromNaughty(t.root) }

// IsCollection returns true if the root groups several games.
func (t *GameTree) IsCollection() bool { return t.collection }

// Games returns the root node of every game.
func (t *GameTree) Games() []*Node {
	if !t.collection {
		return []*Node{t.Root()}
	}
	return t.Root().Children()
}

// AddGame adds a new game to a collection. The game's root gets FF, GM and SZ.
func (t *GameTree) AddGame(size int) (*Node, error) {
	if !t.collection {
		return nil, errors.WithMessage(ErrInvalidOperation, "AddGame on a tree that is not a collection")
	}
	n, err := t.AppendNode(t.Root())
	if err != nil {
		return nil, err
	}
	n.props.Set(sgf.Property{Key: sgf.FF, Value: sgf.Number(4)})
	n.props.Set(sgf.Property{Key: sgf.GM, Value: sgf.Number(1)})
	n.props.Set(sgf.Property{Key: sgf.SZ, Value: sgf.Number(size)})
	t.rebuildInherited(n)
	t.invalidate(n)
	t.notify(n)
	return n, nil
}

// NewNode creates a node that is not attached anywhere yet. Attach it with Add.
func (t *GameTree) NewNode() *Node {
	n := t.alloc()
	t.rebuildInherited(n)
	return n
}

// AppendNode creates a new last child of parent.
func (t *GameTree) AppendNode(parent *Node) (*Node, error) {
	child := t.NewNode()
	if err := parent.Add(child); err != nil {
		return nil, err
	}
	return child, nil
}

// Len returns the number of nodes reachable from the root.
func (t *GameTree) Len() int {
	var n int
	t.Walk(func(*Node) bool { n++; return true })
	return n
}

// Walk visits the nodes reachable from the root in pre-order until fn returns false.
func (t *GameTree) Walk(fn func(n *Node) bool) { t.Root().walk(fn) }

// Leaves returns the nodes without children, in pre-order.
func (t *GameTree) Leaves() []*Node {
	var retVal []*Node
	t.Walk(func(n *Node) bool {
		if len(n.children) == 0 {
			retVal = append(retVal, n)
		}
		return true
	})
	return retVal
}

// MainLine returns the nodes of the first game's main line, from its root to the
// end of the first variation at every branch.
func (t *GameTree) MainLine() []*Node {
	games := t.Games()
	if len(games) == 0 {
		return nil
	}
	var retVal []*Node
	for n := games[0]; n != nil; n = n.FirstChild() {
		retVal = append(retVal, n)
	}
	return retVal
}

// NodeAt returns the main line node where the given move was played. Move 0 is
// the game root. It returns nil if the main line is shorter.
func (t *GameTree) NodeAt(moveNumber int) *Node {
	line := t.MainLine()
	if len(line) == 0 {
		return nil
	}
	if moveNumber == 0 {
		return line[0]
	}
	for _, n := range line {
		if n.IsMove() && n.MoveNumber() == moveNumber {
			return n
		}
	}
	return nil
}

// Modified returns true if the tree changed since it was created, loaded or last
// marked as unmodified.
func (t *GameTree) Modified() bool { return t.modified }

// SetModified sets the modified flag.
func (t *GameTree) SetModified(modified bool) { t.modified = modified }

// OnChange registers a listener called after every change to a node.
func (t *GameTree) OnChange(fn Listener) { t.listeners = append(t.listeners, fn) }

func (t *GameTree) notify(n *Node) {
	t.modified = true
	for _, fn := range t.listeners {
		fn(n)
	}
}

/* arena */

func (t *GameTree) alloc() *Node {
	n := &Node{
		id:     naughty(len(t.nodes)),
		tree:   t,
		parent: nilNode,
		status: Active,
		depth:  1,
	}
	t.nodes = append(t.nodes, n)
	return n
}

func (t *GameTree) nodeFromNaughty(id naughty) *Node {
	if !id.isValid() || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

func (t *GameTree) owns(n *Node) bool {
	return n != nil && n.tree == t && t.nodeFromNaughty(n.id) == n
}
