package jsinfer

import (
	"testing"

	"github.com/arturoeanton/gospatial/dom"
)

func TestApplyActionToggleVisibilityDoesNotMutateInput(t *testing.T) {
	root := dom.NewDocument()
	panel := dom.NewElement("div")
	panel.SetAttr("id", "menu")
	root.AppendChild(panel)

	result := ApplyAction(root, ToggleVisibilityAction{Target: "#menu"})

	if root.Children[0].GetAttr("style") != "" {
		t.Error("ApplyAction mutated the input tree")
	}
	if result.Children[0].GetAttr("style") != "display: none" {
		t.Errorf("got style %q, want display: none", result.Children[0].GetAttr("style"))
	}

	again := ApplyAction(result, ToggleVisibilityAction{Target: "#menu"})
	if again.Children[0].GetAttr("style") != "" {
		t.Errorf("toggling a second time should clear display: none, got %q", again.Children[0].GetAttr("style"))
	}
}

func TestApplyActionToggleClassAddsAndRemoves(t *testing.T) {
	root := dom.NewDocument()
	el := dom.NewElement("div")
	el.SetAttr("id", "box")
	el.SetAttr("class", "card")
	root.AppendChild(el)

	opened := ApplyAction(root, ToggleClassAction{Target: "#box", Class: "open"})
	if !opened.Children[0].HasClass("open") || !opened.Children[0].HasClass("card") {
		t.Errorf("expected both classes present, got %q", opened.Children[0].GetAttr("class"))
	}

	closed := ApplyAction(opened, ToggleClassAction{Target: "#box", Class: "open"})
	if closed.Children[0].HasClass("open") {
		t.Errorf("expected open class removed on second toggle, got %q", closed.Children[0].GetAttr("class"))
	}
}

func TestApplyActionTabSwitchShowsAndHides(t *testing.T) {
	root := dom.NewDocument()
	panelA := dom.NewElement("div")
	panelA.SetAttr("id", "panel-a")
	panelB := dom.NewElement("div")
	panelB.SetAttr("id", "panel-b")
	panelB.SetAttr("style", "display: none")
	root.AppendChild(panelA)
	root.AppendChild(panelB)

	result := ApplyAction(root, TabSwitchAction{ShowTarget: "panel-b", HideTargets: []string{"panel-a"}})

	if result.Children[0].GetAttr("style") != "display: none" {
		t.Errorf("expected panel-a hidden, got %q", result.Children[0].GetAttr("style"))
	}
	if result.Children[1].GetAttr("style") != "" {
		t.Errorf("expected panel-b shown, got %q", result.Children[1].GetAttr("style"))
	}
}
