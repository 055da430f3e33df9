package kifu

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Write writes the node as ;KEY[value]... with its properties in key priority order.
func (n *Node) Write(w io.Writer) error {
	if _, err := io.WriteString(w, ";"); err != nil {
		return errors.WithStack(err)
	}
	return n.props.Write(w)
}

// Write writes the tree as an SGF collection, one game tree per line.
func (t *GameTree) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, g := range t.Games() {
		if err := g.writeTree(bw); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return errors.WithStack(err)
		}
	}
	return errors.WithStack(bw.Flush())
}

// writeTree writes (;node;node...(variation)(variation)).
func (n *Node) writeTree(w *bufio.Writer) error {
	if err := w.WriteByte('('); err != nil {
		return errors.WithStack(err)
	}
	cur := n
	for {
		if err := cur.Write(w); err != nil {
			return err
		}
		if len(cur.children) != 1 {
			break
		}
		cur = cur.FirstChild()
	}
	for _, kid := range cur.Children() {
		if err := w.WriteByte('\n'); err != nil {
			return errors.WithStack(err)
		}
		if err := kid.writeTree(w); err != nil {
			return err
		}
	}
	return errors.WithStack(w.WriteByte(')'))
}
