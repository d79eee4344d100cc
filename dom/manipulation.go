package dom

import (
	"html"
	"strings"
)

// ======================================================================================
// HTML ENTITIES
// ======================================================================================

// DecodeEntities decodes HTML entities in a string.
func DecodeEntities(s string) string {
	return html.UnescapeString(s)
}

// EncodeEntities encodes special characters as HTML entities.
func EncodeEntities(s string) string {
	return html.EscapeString(s)
}

// ======================================================================================
// SERIALIZATION
// ======================================================================================

// OuterHTML returns the HTML representation of the node and its subtree.
func (n *Node) OuterHTML() string {
	if n == nil {
		return ""
	}
	if n.Type == NodeText {
		return EncodeEntities(n.Text)
	}

	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(n.Tag)
	for k, v := range n.Attributes {
		sb.WriteString(" ")
		sb.WriteString(k)
		sb.WriteString("=\"")
		sb.WriteString(EncodeEntities(v))
		sb.WriteString("\"")
	}
	if isVoidElement(n.Tag) {
		sb.WriteString(" />")
		return sb.String()
	}
	sb.WriteString(">")
	for _, child := range n.Children {
		sb.WriteString(child.OuterHTML())
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteString(">")
	return sb.String()
}

// InnerHTML returns the HTML of the node's children.
func (n *Node) InnerHTML() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	for _, child := range n.Children {
		sb.WriteString(child.OuterHTML())
	}
	return sb.String()
}

func isVoidElement(tag string) bool {
	switch strings.ToLower(tag) {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "source", "track", "wbr":
		return true
	}
	return false
}

// ======================================================================================
// DEBUGGING
// ======================================================================================

// DebugString returns a debug representation of the node tree.
func (n *Node) DebugString() string {
	return n.debugStringIndent(0)
}

func (n *Node) debugStringIndent(indent int) string {
	if n == nil {
		return ""
	}
	prefix := strings.Repeat("  ", indent)
	var sb strings.Builder

	switch n.Type {
	case NodeElement:
		sb.WriteString(prefix)
		sb.WriteString("<")
		sb.WriteString(n.Tag)
		if id := n.GetAttr("id"); id != "" {
			sb.WriteString(" id=\"" + id + "\"")
		}
		if class := n.GetAttr("class"); class != "" {
			sb.WriteString(" class=\"" + class + "\"")
		}
		sb.WriteString(">\n")
		for _, child := range n.Children {
			sb.WriteString(child.debugStringIndent(indent + 1))
		}
	case NodeText:
		text := strings.TrimSpace(n.Text)
		if len(text) > 50 {
			text = text[:50] + "..."
		}
		if text != "" {
			sb.WriteString(prefix + "\"" + text + "\"\n")
		}
	}
	return sb.String()
}
