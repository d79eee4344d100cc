package css

import (
	"testing"

	"github.com/arturoeanton/gospatial/dom"
)

func TestComputeStyleTreeAppliesClassSelector(t *testing.T) {
	root := dom.NewDocument()
	el := dom.NewElement("div")
	el.SetAttr("class", "box")
	root.AppendChild(el)

	sheet := ParseStylesheet(".box { width: 200px; display: flex; }", Viewport{Width: 1024, Height: 768})
	styles := ComputeStyleTree(root, []*Stylesheet{sheet}, Viewport{Width: 1024, Height: 768})

	style, ok := styles[el]
	if !ok {
		t.Fatal("expected a resolved style for the div")
	}
	if style.Display != DisplayFlex {
		t.Errorf("display = %v, want DisplayFlex", style.Display)
	}
	if style.Width.IsAuto() {
		t.Error("width should not be auto")
	}
	if got := style.Width.Resolve(0); got != 200 {
		t.Errorf("width = %v, want 200", got)
	}
}

func TestComputeStyleTreeSpecificityOrdering(t *testing.T) {
	root := dom.NewDocument()
	el := dom.NewElement("div")
	el.SetAttr("id", "hero")
	el.SetAttr("class", "box")
	root.AppendChild(el)

	sheet := ParseStylesheet(`
		.box { width: 100px; }
		#hero { width: 300px; }
	`, Viewport{})
	styles := ComputeStyleTree(root, []*Stylesheet{sheet}, Viewport{})

	style := styles[el]
	if got := style.Width.Resolve(0); got != 300 {
		t.Errorf("id selector should win over class selector: width = %v, want 300", got)
	}
}

func TestComputeStyleTreeInheritsFontSize(t *testing.T) {
	root := dom.NewDocument()
	parent := dom.NewElement("div")
	child := dom.NewElement("span")
	parent.AppendChild(child)
	root.AppendChild(parent)

	sheet := ParseStylesheet("div { font-size: 24px; }", Viewport{})
	styles := ComputeStyleTree(root, []*Stylesheet{sheet}, Viewport{})

	if got := styles[child].FontSize; got != 24 {
		t.Errorf("child font-size = %v, want inherited 24", got)
	}
}

func TestFindStylesheetLinksSkipsNonStylesheetRels(t *testing.T) {
	root := dom.NewDocument()
	link1 := dom.NewElement("link")
	link1.SetAttr("rel", "stylesheet")
	link1.SetAttr("href", "/a.css")
	link2 := dom.NewElement("link")
	link2.SetAttr("rel", "icon")
	link2.SetAttr("href", "/favicon.ico")
	root.AppendChild(link1)
	root.AppendChild(link2)

	links := FindStylesheetLinks(root)
	if len(links) != 1 || links[0] != "/a.css" {
		t.Errorf("links = %v, want [/a.css]", links)
	}
}
