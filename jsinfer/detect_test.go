package jsinfer

import (
	"testing"

	"github.com/arturoeanton/gospatial/dom"
)

func elWithAttrs(tag string, attrs map[string]string) *dom.Node {
	n := dom.NewElement(tag)
	for k, v := range attrs {
		n.SetAttr(k, v)
	}
	return n
}

func TestDetectBehaviorsOnclickToggleClass(t *testing.T) {
	root := dom.NewDocument()
	btn := elWithAttrs("button", map[string]string{
		"onclick": "document.getElementById('menu').classList.toggle('open')",
	})
	root.AppendChild(btn)

	behaviors := DetectBehaviors(root)
	if len(behaviors) != 1 {
		t.Fatalf("expected 1 behavior, got %d", len(behaviors))
	}
	action, ok := behaviors[0].Action.(ToggleClassAction)
	if !ok {
		t.Fatalf("expected ToggleClassAction, got %T", behaviors[0].Action)
	}
	if action.Target != "#menu" || action.Class != "open" {
		t.Errorf("got %+v", action)
	}
}

func TestDetectBehaviorsDataToggleCollapse(t *testing.T) {
	root := dom.NewDocument()
	a := elWithAttrs("a", map[string]string{
		"data-toggle": "collapse",
		"data-target": "#details",
	})
	root.AppendChild(a)

	behaviors := DetectBehaviors(root)
	if len(behaviors) != 1 {
		t.Fatalf("expected 1 behavior, got %d", len(behaviors))
	}
	action, ok := behaviors[0].Action.(ToggleVisibilityAction)
	if !ok {
		t.Fatalf("expected ToggleVisibilityAction, got %T", behaviors[0].Action)
	}
	if action.Target != "#details" {
		t.Errorf("got target %q, want #details", action.Target)
	}
}

func TestDetectBehaviorsAriaTab(t *testing.T) {
	root := dom.NewDocument()
	tab := elWithAttrs("li", map[string]string{
		"role":          "tab",
		"aria-controls": "panel-1",
	})
	root.AppendChild(tab)

	behaviors := DetectBehaviors(root)
	if len(behaviors) != 1 {
		t.Fatalf("expected 1 behavior, got %d", len(behaviors))
	}
	action, ok := behaviors[0].Action.(TabSwitchAction)
	if !ok {
		t.Fatalf("expected TabSwitchAction, got %T", behaviors[0].Action)
	}
	if action.ShowTarget != "panel-1" {
		t.Errorf("got %+v", action)
	}
}

func TestParseOnclickLocationAssignment(t *testing.T) {
	action := parseOnclick("window.location.href='/dashboard'")
	nav, ok := action.(NavigateAction)
	if !ok {
		t.Fatalf("expected NavigateAction, got %T", action)
	}
	if nav.URL != "/dashboard" {
		t.Errorf("got url %q, want /dashboard", nav.URL)
	}
}

func TestParseOnclickJQueryToggle(t *testing.T) {
	action := parseOnclick("$('#sidebar').toggle()")
	toggle, ok := action.(ToggleVisibilityAction)
	if !ok {
		t.Fatalf("expected ToggleVisibilityAction, got %T", action)
	}
	if toggle.Target != "#sidebar" {
		t.Errorf("got target %q, want #sidebar", toggle.Target)
	}
}

func TestParseOnclickUnrecognizedReturnsNil(t *testing.T) {
	if action := parseOnclick("doSomethingCompletelyUnrelated()"); action != nil {
		t.Errorf("expected nil for an unparseable handler, got %+v", action)
	}
}
