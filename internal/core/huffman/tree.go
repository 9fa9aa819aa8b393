package huffman

import (
	"slices"
)

// NodeCount is the size of a complete tree: 65 leaves and 64 internal nodes.
const NodeCount = AlphabetSize + internalNodes

// NodeID addresses a node inside a Tree's arena. Leaves use the ids
// 0..64, equal to their symbol; internal nodes follow in merge order.
type NodeID uint8

type side uint8

const (
	leftChild  side = 0
	rightChild side = 1
)

type node struct {
	weight uint64

	// internal nodes only
	left, right NodeID

	parent    NodeID
	hasParent bool
	side      side
}

// Tree is a Huffman tree stored as an arena of NodeCount nodes. Each
// internal node owns exactly two children and every node but the root
// has exactly one parent.
type Tree struct {
	nodes []node
	root  NodeID
}

// Forest is the working set of a build: the roots not yet merged, in the
// order used to break weight ties.
type Forest struct {
	tree  *Tree
	roots []NodeID
}

func newForest(weights *WeightTable) *Forest {
	t := &Tree{nodes: make([]node, AlphabetSize, NodeCount)}
	f := &Forest{tree: t, roots: make([]NodeID, AlphabetSize)}
	for i := range f.roots {
		t.nodes[i].weight = weights[i]
		f.roots[i] = NodeID(i)
	}
	return f
}

func (f *Forest) weight(id NodeID) uint64 {
	return f.tree.nodes[id].weight
}

// merge joins the two lightest roots under a new internal node. Among equal
// weights the root earlier in the forest wins and becomes the left child.
// The new node goes to the front, ahead of any root with the same weight.
func (f *Forest) merge() {
	slices.SortStableFunc(f.roots, func(a, b NodeID) int {
		wa, wb := f.weight(a), f.weight(b)
		switch {
		case wa < wb:
			return -1
		case wa > wb:
			return 1
		}
		return 0
	})

	l, r := f.roots[0], f.roots[1]
	nodes := f.tree.nodes
	id := NodeID(len(nodes))
	nodes = append(nodes, node{
		weight: nodes[l].weight + nodes[r].weight,
		left:   l,
		right:  r,
	})
	nodes[l].parent, nodes[l].hasParent, nodes[l].side = id, true, leftChild
	nodes[r].parent, nodes[r].hasParent, nodes[r].side = id, true, rightChild
	f.tree.nodes = nodes

	f.roots = f.roots[1:]
	f.roots[0] = id
}

// BuildTree runs the 64 merges over the weight table and returns the tree.
// Zero weights are fine, including an all-zero table.
func BuildTree(weights *WeightTable) *Tree {
	f := newForest(weights)
	for i := 0; i < internalNodes; i++ {
		f.merge()
	}
	f.tree.root = f.roots[0]
	return f.tree
}

// Root returns the id of the root node.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len reports how many nodes the arena holds.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// IsLeaf reports whether id is a leaf.
func (t *Tree) IsLeaf(id NodeID) bool {
	return int(id) < AlphabetSize
}

// Weight returns the weight of a node.
func (t *Tree) Weight(id NodeID) uint64 {
	return t.nodes[id].weight
}

// Children returns the children of an internal node.
func (t *Tree) Children(id NodeID) (left, right NodeID, ok bool) {
	if t.IsLeaf(id) {
		return 0, 0, false
	}
	n := &t.nodes[id]
	return n.left, n.right, true
}

// Parent returns the parent of id; ok is false for the root.
func (t *Tree) Parent(id NodeID) (parent NodeID, ok bool) {
	n := &t.nodes[id]
	return n.parent, n.hasParent
}

// Teardown releases the tree children-before-parent with an explicit stack
// and drops the arena. It returns the number of nodes released. The tree
// must not be used afterwards.
func (t *Tree) Teardown() int {
	if len(t.nodes) == 0 {
		return 0
	}

	type frame struct {
		id       NodeID
		expanded bool
	}

	released := 0
	stack := make([]frame, 0, MaxCodeLength+2)
	stack = append(stack, frame{id: t.root})
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if !t.IsLeaf(top.id) && !top.expanded {
			top.expanded = true
			n := t.nodes[top.id]
			stack = append(stack, frame{id: n.right}, frame{id: n.left})
			continue
		}
		t.nodes[top.id] = node{}
		stack = stack[:len(stack)-1]
		released++
	}

	t.nodes = nil
	return released
}
