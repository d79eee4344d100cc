// Package dom implements Component A of the pipeline: parsing an HTML
// document into a semantic tree. Nodes have no parent back-reference;
// callers that need ancestor context carry it on the call stack (see
// traverse.go).
package dom

// NodeType discriminates the three DomNode variants.
type NodeType int

const (
	NodeDocument NodeType = iota
	NodeElement
	NodeText
)

// Node is a tagged sum of Document, Element(tag, attributes, children) and
// Text(content). Attribute keys are lower-cased on insertion; values retain
// their original case. Children are owned exclusively by their parent node.
type Node struct {
	Type NodeType

	// Element fields.
	Tag        string
	Attributes map[string]string
	Children   []*Node

	// Text fields.
	Text string
}

// NewDocument creates an empty Document node.
func NewDocument() *Node {
	return &Node{Type: NodeDocument}
}

// NewElement creates an Element node with the given lower-cased tag.
func NewElement(tag string) *Node {
	return &Node{
		Type:       NodeElement,
		Tag:        tag,
		Attributes: make(map[string]string),
	}
}

// NewText creates a Text node.
func NewText(text string) *Node {
	return &Node{Type: NodeText, Text: text}
}

// AppendChild appends child to n's children.
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
}

// GetAttr returns the value of an attribute, comparing the name
// case-insensitively, or "" if absent.
func (n *Node) GetAttr(name string) string {
	if n == nil || n.Attributes == nil {
		return ""
	}
	return n.Attributes[lowerASCII(name)]
}

// HasAttr reports whether the attribute is present (distinct from
// present-but-empty, which GetAttr cannot distinguish from absent).
func (n *Node) HasAttr(name string) bool {
	if n == nil || n.Attributes == nil {
		return false
	}
	_, ok := n.Attributes[lowerASCII(name)]
	return ok
}

// SetAttr sets (or overwrites) an attribute.
func (n *Node) SetAttr(name, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[lowerASCII(name)] = value
}

// RemoveAttr deletes an attribute if present.
func (n *Node) RemoveAttr(name string) {
	if n.Attributes == nil {
		return
	}
	delete(n.Attributes, lowerASCII(name))
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{Type: n.Type, Tag: n.Tag, Text: n.Text}
	if n.Attributes != nil {
		cp.Attributes = make(map[string]string, len(n.Attributes))
		for k, v := range n.Attributes {
			cp.Attributes[k] = v
		}
	}
	if n.Children != nil {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = c.Clone()
		}
	}
	return cp
}

// Classes returns the space-separated values of the class attribute.
func (n *Node) Classes() []string {
	class := n.GetAttr("class")
	if class == "" {
		return nil
	}
	return fieldsASCII(class)
}

// HasClass reports whether className is one of n's classes.
func (n *Node) HasClass(className string) bool {
	for _, c := range n.Classes() {
		if c == className {
			return true
		}
	}
	return false
}

func lowerASCII(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}

func fieldsASCII(s string) []string {
	var out []string
	start := -1
	for i := 0; i <= len(s); i++ {
		if i < len(s) && !isSpaceASCII(s[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, s[start:i])
			start = -1
		}
	}
	return out
}

func isSpaceASCII(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
