package dom

import "testing"

func findFirst(n *Node, tag string) *Node {
	if n.Type == NodeElement && n.Tag == tag {
		return n
	}
	for _, c := range n.Children {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func TestParseHTMLBasicStructure(t *testing.T) {
	root := ParseHTML(`<div id="main"><p>Hello <b>world</b></p></div>`)

	div := findFirst(root, "div")
	if div == nil {
		t.Fatal("expected a div element")
	}
	if div.GetAttr("id") != "main" {
		t.Errorf("got id=%q, want main", div.GetAttr("id"))
	}

	p := findFirst(root, "p")
	if p == nil {
		t.Fatal("expected a p element")
	}
	if len(p.Children) != 2 {
		t.Fatalf("expected 2 children of <p>, got %d", len(p.Children))
	}
}

func TestParseHTMLDropsStructuralWrappers(t *testing.T) {
	root := ParseHTML(`<html><head><title>T</title></head><body><p>x</p></body></html>`)

	if findFirst(root, "html") != nil {
		t.Error("html wrapper should not appear in the tree")
	}
	if findFirst(root, "body") != nil {
		t.Error("body wrapper should not appear in the tree")
	}
	if findFirst(root, "title") == nil {
		t.Error("title element should survive")
	}
}

func TestParseHTMLNeverFails(t *testing.T) {
	inputs := []string{"", "<div", "</p></p></p>", "plain text", "<svg><title>Logo</title></svg>"}
	for _, in := range inputs {
		root := ParseHTML(in)
		if root == nil {
			t.Fatalf("ParseHTML(%q) returned nil", in)
		}
		if root.Type != NodeDocument {
			t.Fatalf("ParseHTML(%q) root type = %v, want NodeDocument", in, root.Type)
		}
	}
}

func TestParseHTMLSVGAccessibleLabel(t *testing.T) {
	root := ParseHTML(`<svg><title>Close icon</title></svg>`)
	svg := findFirst(root, "svg")
	if svg == nil {
		t.Fatal("expected an svg element")
	}
	if got := svg.GetAttr("aria-label"); got != "Close icon" {
		t.Errorf("svg aria-label = %q, want %q", got, "Close icon")
	}
}

func TestNodeAttrHelpers(t *testing.T) {
	n := NewElement("input")
	n.SetAttr("Class", "foo bar")
	if !n.HasClass("foo") || !n.HasClass("bar") {
		t.Error("expected both classes present")
	}
	if n.HasClass("baz") {
		t.Error("did not expect class baz")
	}
	n.RemoveAttr("class")
	if n.HasAttr("class") {
		t.Error("class attribute should be removed")
	}
}

func TestNodeClone(t *testing.T) {
	n := NewElement("div")
	n.SetAttr("id", "a")
	n.AppendChild(NewText("hi"))

	clone := n.Clone()
	clone.SetAttr("id", "b")
	clone.Children[0].Text = "bye"

	if n.GetAttr("id") != "a" {
		t.Error("mutating the clone's attribute affected the original")
	}
	if n.Children[0].Text != "hi" {
		t.Error("mutating the clone's child affected the original")
	}
}
