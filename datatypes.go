package kifu

import (
	"github.com/gorgonia/kifu/game"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Config configures how a GameTree derives its boards.
type Config struct {
	Size        int  // board size for records that do not say
	SelfCapture bool // whether a move without liberties removes its own chain, or is ignored
}

// DefaultConfig is a 19x19 board where suicide captures the suicided chain.
func DefaultConfig() Config {
	return Config{
		Size:        19,
		SelfCapture: true,
	}
}

func (c Config) IsValid() bool { return c.Size >= 1 && c.Size <= game.MaxBoardSize }

// Option configures a GameTree.
type Option func(t *GameTree)

// WithLogger makes the tree log to l. Trees log nowhere by default.
func WithLogger(l *zap.Logger) Option {
	return func(t *GameTree) {
		if l != nil {
			t.logger = l
		}
	}
}

// Listener is called after a node changed.
type Listener func(n *Node)

// Status is the status of a node in the arena.
type Status uint32

const (
	Invalid Status = iota
	Active
	Pruned
)

func (a Status) String() string {
	switch a {
	case Invalid:
		return "Invalid"
	case Active:
		return "Active"
	case Pruned:
		return "Pruned"
	}
	return "UNKNOWN STATUS"
}

var (
	// ErrInvalidOperation is returned when a node's role forbids an edit, e.g. a
	// second move in a move node.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrMissingMemento is returned when a tree memento has no snapshot for a node
	// it reaches.
	ErrMissingMemento = errors.New("missing memento")

	// ErrForeignNode is returned when a node or memento of another tree is used.
	ErrForeignNode = errors.New("node belongs to another tree")
)
