package dom

import "strings"

// ======================================================================================
// LOOKUPS
// ======================================================================================

// GetElementById finds an element by id attribute.
func (n *Node) GetElementById(id string) *Node {
	if n == nil {
		return nil
	}
	if n.Type == NodeElement && n.GetAttr("id") == id {
		return n
	}
	for _, child := range n.Children {
		if found := child.GetElementById(id); found != nil {
			return found
		}
	}
	return nil
}

// GetElementsByTagName finds all elements with the given (case-insensitive) tag name.
func (n *Node) GetElementsByTagName(tag string) []*Node {
	var results []*Node
	n.getElementsByTagNameRecursive(strings.ToLower(tag), &results)
	return results
}

func (n *Node) getElementsByTagNameRecursive(tag string, results *[]*Node) {
	if n == nil {
		return
	}
	if n.Type == NodeElement && n.Tag == tag {
		*results = append(*results, n)
	}
	for _, child := range n.Children {
		child.getElementsByTagNameRecursive(tag, results)
	}
}

// GetElementsByClassName finds all elements carrying className.
func (n *Node) GetElementsByClassName(className string) []*Node {
	var results []*Node
	n.getElementsByClassNameRecursive(className, &results)
	return results
}

func (n *Node) getElementsByClassNameRecursive(className string, results *[]*Node) {
	if n == nil {
		return
	}
	if n.Type == NodeElement && n.HasClass(className) {
		*results = append(*results, n)
	}
	for _, child := range n.Children {
		child.getElementsByClassNameRecursive(className, results)
	}
}

// ======================================================================================
// TEXT CONTENT
// ======================================================================================

// TextContent returns the recursively collected, trimmed, whitespace-normalized
// text of the subtree, with each text node's trimmed content joined by a
// single space.
func (n *Node) TextContent() string {
	var sb strings.Builder
	collectText(n, &sb)
	return strings.TrimSpace(sb.String())
}

func collectText(n *Node, sb *strings.Builder) {
	if n == nil {
		return
	}
	if n.Type == NodeText {
		t := strings.TrimSpace(n.Text)
		if t != "" {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(t)
		}
		return
	}
	for _, child := range n.Children {
		collectText(child, sb)
	}
}

// ======================================================================================
// CHILD NAVIGATION (no parent pointers — see package doc)
// ======================================================================================

// FirstChild returns the first child node, or nil.
func (n *Node) FirstChild() *Node {
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// LastChild returns the last child node, or nil.
func (n *Node) LastChild() *Node {
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// ChildElementCount returns the number of child elements (not text nodes).
func (n *Node) ChildElementCount() int {
	count := 0
	for _, child := range n.Children {
		if child.Type == NodeElement {
			count++
		}
	}
	return count
}

// FirstElementChild returns the first child that is an element.
func (n *Node) FirstElementChild() *Node {
	for _, child := range n.Children {
		if child.Type == NodeElement {
			return child
		}
	}
	return nil
}

// LastElementChild returns the last child that is an element.
func (n *Node) LastElementChild() *Node {
	for i := len(n.Children) - 1; i >= 0; i-- {
		if n.Children[i].Type == NodeElement {
			return n.Children[i]
		}
	}
	return nil
}

// Contains reports whether descendant appears anywhere in n's subtree.
func (n *Node) Contains(descendant *Node) bool {
	if n == nil || descendant == nil {
		return false
	}
	for _, child := range n.Children {
		if child == descendant || child.Contains(descendant) {
			return true
		}
	}
	return false
}

// ======================================================================================
// ANCESTOR-STACK WALKERS
// ======================================================================================

// Ancestor is the (tag, classes, id) triple carried on the stack by
// WalkWithAncestors, mirroring the shape selector matching needs.
type Ancestor struct {
	Tag     string
	Classes []string
	ID      string
}

// Visitor is called once per node in document order, along with the slice
// of ancestors from the root (index 0) down to (but excluding) node. The
// slice is reused between calls; implementations must not retain it.
type Visitor func(node *Node, ancestors []Ancestor)

// WalkWithAncestors performs a pre-order traversal of n's subtree, invoking
// visit for every node and threading ancestor context on the call stack
// rather than via parent pointers.
func WalkWithAncestors(n *Node, visit Visitor) {
	walk(n, nil, visit)
}

func walk(n *Node, ancestors []Ancestor, visit Visitor) {
	if n == nil {
		return
	}
	visit(n, ancestors)
	if len(n.Children) == 0 {
		return
	}
	var id string
	var classes []string
	if n.Type == NodeElement {
		id = n.GetAttr("id")
		classes = n.Classes()
	}
	next := append(append([]Ancestor(nil), ancestors...), Ancestor{Tag: n.Tag, Classes: classes, ID: id})
	for _, child := range n.Children {
		walk(child, next, visit)
	}
}
