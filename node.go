package sketch

// Node is an element of a drawable hierarchy.
//
// A node with an Outline contributes strokes; a node without one only
// positions its children. The tree is owned by the caller and is only read
// while strokes are collected.
type Node struct {
	Name string

	// Transform places the node relative to its parent. A zero Transform
	// has zero scale and collapses the subtree; NewNode starts from
	// IdentityTransform.
	Transform Transform

	// Outline is the node's own silhouette, or nil.
	Outline *Outline

	// Profile overrides the material for this node and its descendants.
	// Nil inherits from the nearest ancestor, then from the collector.
	Profile *Profile

	// Hidden excludes the node and its subtree from collection.
	Hidden bool

	// Sprite marks a node whose image AttachOutlines should vectorize.
	Sprite bool

	Children []*Node
}

// Outline is a vector silhouette and the color it is sketched in.
type Outline struct {
	Path  *Path
	Color RGBA
}

// NewNode creates a node with an identity transform.
func NewNode(name string) *Node {
	return &Node{Name: name, Transform: IdentityTransform()}
}

// Add appends children and returns n for chaining.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Find returns the first node named name in a depth-first search of the
// subtree rooted at n, or nil.
func (n *Node) Find(name string) *Node {
	if n == nil {
		return nil
	}
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}
