package spatial

import (
	"encoding/json"
	"testing"

	"github.com/arturoeanton/gospatial/css"
	"github.com/arturoeanton/gospatial/dom"
	"github.com/arturoeanton/gospatial/layout"
)

// buildLayout is a small test helper: wraps root elements directly as
// LayoutNodes with explicit bounds, skipping a real ComputeLayout pass
// since these tests care about emission logic, not box geometry.
func buildLayout(root *dom.Node, bounds map[*dom.Node]layout.Bounds) *layout.LayoutNode {
	var build func(n *dom.Node) *layout.LayoutNode
	build = func(n *dom.Node) *layout.LayoutNode {
		ln := &layout.LayoutNode{Source: n, Bounds: bounds[n]}
		if n.Type == dom.NodeElement {
			ln.Style = css.LayoutStyle{Display: css.DisplayBlock}
		}
		for _, c := range n.Children {
			ln.Children = append(ln.Children, build(c))
		}
		return ln
	}
	return build(root)
}

func TestGenerateSpatialDomEmitsInteractiveElements(t *testing.T) {
	root := dom.NewDocument()
	button := dom.NewElement("button")
	button.AppendChild(dom.NewText("Submit"))
	root.AppendChild(button)

	tree := buildLayout(root, map[*dom.Node]layout.Bounds{
		button: {X: 10, Y: 20, Width: 80, Height: 30},
	})

	sdom := GenerateSpatialDom(tree, 800, 600)
	if len(sdom.Els) != 1 {
		t.Fatalf("expected 1 emitted element, got %d", len(sdom.Els))
	}
	el := sdom.Els[0]
	if el.Tag != "button" {
		t.Errorf("tag = %q, want button", el.Tag)
	}
	if el.Text == nil || *el.Text != "Submit" {
		t.Errorf("text = %v, want Submit", el.Text)
	}
	if el.B != [4]int32{10, 20, 80, 30} {
		t.Errorf("bounds = %v, want [10 20 80 30]", el.B)
	}
}

func TestGenerateSpatialDomSkipsTrivialText(t *testing.T) {
	root := dom.NewDocument()
	span := dom.NewElement("span")
	span.AppendChild(dom.NewText(" | "))
	root.AppendChild(span)

	tree := buildLayout(root, map[*dom.Node]layout.Bounds{
		span: {X: 0, Y: 0, Width: 10, Height: 10},
	})

	sdom := GenerateSpatialDom(tree, 800, 600)
	if len(sdom.Els) != 0 {
		t.Fatalf("expected punctuation-only span to be skipped, got %d elements", len(sdom.Els))
	}
}

func TestGenerateSpatialDomHiddenCascade(t *testing.T) {
	root := dom.NewDocument()
	wrapper := dom.NewElement("div")
	wrapper.SetAttr("hidden", "")
	link := dom.NewElement("a")
	link.SetAttr("href", "/x")
	link.AppendChild(dom.NewText("Link"))
	wrapper.AppendChild(link)
	root.AppendChild(wrapper)

	tree := buildLayout(root, map[*dom.Node]layout.Bounds{
		wrapper: {X: 0, Y: 0, Width: 100, Height: 20},
		link:    {X: 0, Y: 0, Width: 50, Height: 20},
	})

	sdom := GenerateSpatialDom(tree, 800, 600)
	var found *SpatialElement
	for _, el := range sdom.Els {
		if el.Tag == "a" {
			found = el
		}
	}
	if found == nil {
		t.Fatal("expected the link to still be emitted (hidden, not dropped)")
	}
	if !found.isHidden() {
		t.Error("link nested in a hidden wrapper should be marked hidden")
	}
}

func TestGenerateSpatialDomLabelAssociation(t *testing.T) {
	root := dom.NewDocument()
	label := dom.NewElement("label")
	label.SetAttr("for", "email")
	label.AppendChild(dom.NewText("Email address"))
	input := dom.NewElement("input")
	input.SetAttr("id", "email")
	input.SetAttr("name", "email")
	root.AppendChild(label)
	root.AppendChild(input)

	tree := buildLayout(root, map[*dom.Node]layout.Bounds{
		label: {X: 0, Y: 0, Width: 100, Height: 20},
		input: {X: 0, Y: 20, Width: 200, Height: 20},
	})

	sdom := GenerateSpatialDom(tree, 800, 600)
	var inputEl *SpatialElement
	for _, el := range sdom.Els {
		if el.Tag == "input" {
			inputEl = el
		}
	}
	if inputEl == nil {
		t.Fatal("expected input to be emitted")
	}
	if inputEl.Label == nil || *inputEl.Label != "Email address" {
		t.Errorf("label = %v, want \"Email address\"", inputEl.Label)
	}
}

func TestSpatialDomRoundTrip(t *testing.T) {
	sdom := &SpatialDom{
		URL:      "https://example.com",
		Title:    "Example",
		Vp:       [2]float64{800, 600},
		PageType: PageOther,
		Els: []*SpatialElement{
			{ID: 1, Tag: "button", B: [4]int32{0, 0, 10, 10}},
		},
		SuggestedActions: []SuggestedAction{
			LoginAction{UsernameID: 1, PasswordID: 2, SubmitID: 3},
		},
	}

	data, err := json.Marshal(sdom)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	restored, err := FromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if restored.PageType != PageOther {
		t.Fatal("page_type should round-trip as Other when omitted on the wire")
	}
	if len(restored.SuggestedActions) != 1 || restored.SuggestedActions[0].ActionTag() != "Login" {
		t.Fatalf("expected one Login action, got %+v", restored.SuggestedActions)
	}
	got, ok := restored.Get(1)
	if !ok || got.Tag != "button" {
		t.Fatalf("Get(1) = %v, %v", got, ok)
	}
}

func TestDiffMatchesByContentNotID(t *testing.T) {
	oldDom := &SpatialDom{Els: []*SpatialElement{
		{ID: 1, Tag: "a", Href: strPtr("/x"), B: [4]int32{0, 0, 10, 10}},
	}}
	newDom := &SpatialDom{Els: []*SpatialElement{
		{ID: 7, Tag: "a", Href: strPtr("/x"), B: [4]int32{0, 0, 10, 10}},
		{ID: 8, Tag: "a", Href: strPtr("/y"), B: [4]int32{0, 20, 10, 10}},
	}}

	delta := Diff(oldDom, newDom)
	if len(delta.Changed) != 1 || *delta.Changed[0].Href != "/y" {
		t.Fatalf("expected only the new /y link as changed, got %+v", delta.Changed)
	}
	if len(delta.Removed) != 0 {
		t.Errorf("the /x link has the same content key despite the id change, should not be reported removed, got %v", delta.Removed)
	}
}
