package spatial

import (
	"errors"

	"github.com/openpcb/autoroute/geom"
)

// AnyLayer is passed to Query to mean "match leaves on any layer".
const AnyLayer = -1

// ErrNilObject is returned by Insert/Remove when given a nil Object.
var ErrNilObject = errors.New("spatial: object is nil")

// ErrObjectNotIndexed is returned by Remove when the object has no leaves
// currently in the index.
var ErrObjectNotIndexed = errors.New("spatial: object not indexed")

// Object is anything the index can store. An object may contribute more
// than one disjoint shape (e.g. a multi-polygon board outline); each
// contributes its own leaf.
type Object interface {
	// ShapeCount returns the number of leaves this object occupies.
	ShapeCount() int
	// ShapeBox returns the bounding box of shape i.
	ShapeBox(i int) geom.Box
	// ShapeLayer returns the layer of shape i, or AnyLayer if the shape
	// spans/ignores layers (e.g. a board outline).
	ShapeLayer(i int) int
}

// Hit is one result of a Query: the object and which of its shapes matched.
type Hit struct {
	Object     Object
	ShapeIndex int
}

// Index is a binary tree of bounding boxes, one leaf per (object,
// shape-index). It is safe for concurrent readers but must not be mutated
// concurrently with queries or other mutations; callers serialize that
// externally (see board.Board).
type Index struct {
	root  *node
	byObj map[Object][]*node
}

type node struct {
	box    geom.Box
	parent *node

	// leaf-only fields.
	leaf       bool
	obj        Object
	shapeIndex int
	layer      int

	// internal-only fields.
	left, right *node
}

// NewIndex returns an empty spatial index.
func NewIndex() *Index {
	return &Index{byObj: make(map[Object][]*node)}
}

// Insert adds every shape of obj as a leaf. Calling Insert twice for the
// same object without an intervening Remove duplicates its leaves.
func (ix *Index) Insert(obj Object) error {
	if obj == nil {
		return ErrNilObject
	}
	n := obj.ShapeCount()
	leaves := make([]*node, 0, n)
	for i := 0; i < n; i++ {
		l := &node{
			box:        obj.ShapeBox(i),
			leaf:       true,
			obj:        obj,
			shapeIndex: i,
			layer:      obj.ShapeLayer(i),
		}
		ix.insertLeaf(l)
		leaves = append(leaves, l)
	}
	ix.byObj[obj] = append(ix.byObj[obj], leaves...)

	return nil
}

// insertLeaf walks the tree choosing, at each internal node, whichever
// child's union with l enlarges that child's box area least, then splits
// the chosen leaf into a new internal node holding the old leaf and l.
func (ix *Index) insertLeaf(l *node) {
	if ix.root == nil {
		ix.root = l

		return
	}
	cur := ix.root
	for !cur.leaf {
		leftCost := cur.left.box.UnionWith(l.box).Area() - cur.left.box.Area()
		rightCost := cur.right.box.UnionWith(l.box).Area() - cur.right.box.Area()
		if leftCost <= rightCost {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	// cur is a leaf; replace it with a new internal node.
	parent := cur.parent
	merged := &node{
		box:    cur.box.UnionWith(l.box),
		parent: parent,
		left:   cur,
		right:  l,
	}
	cur.parent = merged
	l.parent = merged
	if parent == nil {
		ix.root = merged
	} else if parent.left == cur {
		parent.left = merged
	} else {
		parent.right = merged
	}
	ix.refreshBoxesUp(parent)
}

func (ix *Index) refreshBoxesUp(n *node) {
	for n != nil {
		n.box = n.left.box.UnionWith(n.right.box)
		n = n.parent
	}
}

// Remove deletes every leaf belonging to obj. Returns ErrObjectNotIndexed
// if obj currently has no leaves.
func (ix *Index) Remove(obj Object) error {
	if obj == nil {
		return ErrNilObject
	}
	leaves, ok := ix.byObj[obj]
	if !ok || len(leaves) == 0 {
		return ErrObjectNotIndexed
	}
	for _, l := range leaves {
		ix.removeLeaf(l)
	}
	delete(ix.byObj, obj)

	return nil
}

func (ix *Index) removeLeaf(l *node) {
	parent := l.parent
	if parent == nil {
		ix.root = nil

		return
	}
	var sibling *node
	if parent.left == l {
		sibling = parent.right
	} else {
		sibling = parent.left
	}
	grandparent := parent.parent
	sibling.parent = grandparent
	if grandparent == nil {
		ix.root = sibling
	} else if grandparent.left == parent {
		grandparent.left = sibling
	} else {
		grandparent.right = sibling
	}
	ix.refreshBoxesUp(grandparent)
}

// Query returns every (object, shapeIndex) leaf whose box intersects box
// and whose layer matches layer (or every leaf, regardless of layer, when
// layer == AnyLayer).
func (ix *Index) Query(box geom.Box, layer int) []Hit {
	var hits []Hit
	ix.query(ix.root, box, layer, &hits)

	return hits
}

func (ix *Index) query(n *node, box geom.Box, layer int, hits *[]Hit) {
	if n == nil || !n.box.Intersects(box) {
		return
	}
	if n.leaf {
		if layer == AnyLayer || n.layer == AnyLayer || n.layer == layer {
			*hits = append(*hits, Hit{Object: n.obj, ShapeIndex: n.shapeIndex})
		}

		return
	}
	ix.query(n.left, box, layer, hits)
	ix.query(n.right, box, layer, hits)
}

// Len returns the number of indexed leaves (the sum of ShapeCount over
// every currently-inserted object), used by property tests asserting the
// index's leaves correspond bijectively to on-board items.
func (ix *Index) Len() int {
	total := 0
	for _, leaves := range ix.byObj {
		total += len(leaves)
	}

	return total
}

// Contains reports whether obj currently has any leaves in the index.
func (ix *Index) Contains(obj Object) bool {
	leaves, ok := ix.byObj[obj]

	return ok && len(leaves) > 0
}
