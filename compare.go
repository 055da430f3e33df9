package kifu

import "sort"

// Compare orders nodes for display. It returns a negative number if n sorts before
// other, a positive one if after, and 0 if they are the same node.
//
// Main line nodes come first, shallower before deeper. Two nodes off the main line
// are compared where their paths from the root part: the node whose branch has the
// smaller child index sorts later, so the earliest variations come last. A node
// sorts before its own descendants.
func (n *Node) Compare(other *Node) int {
	if n == other {
		return 0
	}
	nm, om := n.IsMainLine(), other.IsMainLine()
	switch {
	case nm && !om:
		return -1
	case !nm && om:
		return 1
	case nm && om:
		return n.Level() - other.Level()
	}

	np, op := n.path(), other.path()
	for i := 0; i < len(np) && i < len(op); i++ {
		if np[i] == op[i] {
			continue
		}
		ni, oi := np[i].ChildIndex(), op[i].ChildIndex()
		if ni != oi {
			return oi - ni
		}
		// different roots: only detached nodes get here
		return int(np[i].id) - int(op[i].id)
	}
	return len(np) - len(op)
}

// path returns the nodes from the root down to n.
func (n *Node) path() []*Node {
	retVal := make([]*Node, n.Level()+1)
	for i, c := len(retVal)-1, n; c != nil; i, c = i-1, c.Parent() {
		retVal[i] = c
	}
	return retVal
}

// byDisplayOrder sorts nodes with Compare.
type byDisplayOrder []*Node

func (l byDisplayOrder) Len() int           { return len(l) }
func (l byDisplayOrder) Less(i, j int) bool { return l[i].Compare(l[j]) < 0 }
func (l byDisplayOrder) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }

// SortNodes sorts nodes with Compare.
func SortNodes(nodes []*Node) { sort.Sort(byDisplayOrder(nodes)) }
