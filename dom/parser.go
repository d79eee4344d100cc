package dom

import (
	"strings"

	xhtml "golang.org/x/net/html"
)

// ParseHTML parses an HTML document string into a DomTree using a
// standard-conformant HTML5 tree-construction algorithm. The parser never
// fails: malformed markup is recovered per the HTML5 spec, and empty input
// yields a Document with no children.
func ParseHTML(doc string) *Node {
	nodes, err := xhtml.ParseFragment(strings.NewReader(doc), &xhtml.Node{
		Type:     xhtml.ElementNode,
		Data:     "body",
		DataAtom: 0,
	})
	root := NewDocument()
	if err != nil || len(nodes) == 0 {
		// Fall back to a full-document parse; ParseFragment can fail on
		// documents that carry their own <html>/<head>/<body> structure.
		full, ferr := xhtml.Parse(strings.NewReader(doc))
		if ferr != nil || full == nil {
			return root
		}
		convertChildren(full, root)
		return root
	}
	for _, n := range nodes {
		convertOne(n, root)
	}
	return root
}

// convertChildren appends the converted children of src onto dst.
func convertChildren(src *xhtml.Node, dst *Node) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		convertOne(c, dst)
	}
}

// convertOne converts a single x/net/html node (and its subtree) and
// appends the result(s) onto dst.
func convertOne(n *xhtml.Node, dst *Node) {
	switch n.Type {
	case xhtml.DocumentNode:
		convertChildren(n, dst)
	case xhtml.DoctypeNode:
		// Doctype is dropped.
	case xhtml.CommentNode:
		// Comments carry no semantic content.
	case xhtml.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return
		}
		dst.AppendChild(NewText(n.Data))
	case xhtml.ElementNode:
		tag := strings.ToLower(n.Data)
		switch tag {
		case "html", "head", "body":
			// Structural wrappers introduced by the tree builder carry no
			// semantic meaning of their own; splice their children directly
			// into the parent.
			convertChildren(n, dst)
			return
		case "script":
			// Script bodies carry no semantic content the pipeline acts on
			// (no JS execution); keep the element but drop its text.
			el := newElementFromAttrs(tag, n.Attr)
			dst.AppendChild(el)
			return
		case "style":
			el := newElementFromAttrs(tag, n.Attr)
			dst.AppendChild(el)
			if text := collectXHTMLText(n); text != "" {
				el.AppendChild(NewText(text))
			}
			return
		case "svg":
			el := newElementFromAttrs(tag, n.Attr)
			if label := findSVGAccessibleLabel(n); label != "" {
				if el.GetAttr("aria-label") == "" {
					el.SetAttr("aria-label", label)
				}
			}
			dst.AppendChild(el)
			return
		case "noscript", "template":
			// Not rendered semantics; drop entirely: inert alternate-content
			// subtrees have no layout or emission use.
			return
		}
		el := newElementFromAttrs(tag, n.Attr)
		dst.AppendChild(el)
		convertChildren(n, el)
	default:
		convertChildren(n, dst)
	}
}

func newElementFromAttrs(tag string, attrs []xhtml.Attribute) *Node {
	el := NewElement(tag)
	for _, a := range attrs {
		el.SetAttr(strings.ToLower(a.Key), a.Val)
	}
	return el
}

// findSVGAccessibleLabel looks for an explicit aria-label on the svg root,
// else the text of the first descendant <title> element.
func findSVGAccessibleLabel(svg *xhtml.Node) string {
	for _, a := range svg.Attr {
		if strings.EqualFold(a.Key, "aria-label") {
			return a.Val
		}
	}
	var find func(n *xhtml.Node) string
	find = func(n *xhtml.Node) string {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xhtml.ElementNode && strings.EqualFold(c.Data, "title") {
				return collectXHTMLText(c)
			}
			if s := find(c); s != "" {
				return s
			}
		}
		return ""
	}
	return strings.TrimSpace(find(svg))
}

func collectXHTMLText(n *xhtml.Node) string {
	var b strings.Builder
	var walk func(n *xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
