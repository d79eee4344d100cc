package jsinfer

import (
	"testing"

	"github.com/arturoeanton/gospatial/dom"
)

func TestDetectTabGroupsCollectsSelectedTab(t *testing.T) {
	root := dom.NewDocument()
	tablist := dom.NewElement("ul")
	tablist.SetAttr("role", "tablist")

	tab1 := dom.NewElement("li")
	tab1.SetAttr("role", "tab")
	tab1.SetAttr("id", "tab-1")
	tab1.SetAttr("aria-controls", "panel-1")
	tab1.SetAttr("aria-selected", "true")
	tab1.AppendChild(dom.NewText("Profile"))

	tab2 := dom.NewElement("li")
	tab2.SetAttr("role", "tab")
	tab2.SetAttr("id", "tab-2")
	tab2.SetAttr("aria-controls", "panel-2")
	tab2.SetAttr("aria-selected", "false")
	tab2.AppendChild(dom.NewText("Settings"))

	tablist.AppendChild(tab1)
	tablist.AppendChild(tab2)
	root.AppendChild(tablist)

	groups := DetectTabGroups(root)
	if len(groups) != 1 {
		t.Fatalf("expected 1 tab group, got %d", len(groups))
	}
	tabs := groups[0].Tabs
	if len(tabs) != 2 {
		t.Fatalf("expected 2 tabs, got %d", len(tabs))
	}
	if tabs[0].Label != "Profile" || !tabs[0].Selected || tabs[0].PanelID != "panel-1" {
		t.Errorf("got %+v", tabs[0])
	}
	if tabs[1].Label != "Settings" || tabs[1].Selected {
		t.Errorf("got %+v", tabs[1])
	}
}

func TestDetectTabGroupsIgnoresNonTabChildren(t *testing.T) {
	root := dom.NewDocument()
	tablist := dom.NewElement("div")
	tablist.SetAttr("role", "tablist")
	spacer := dom.NewElement("span")
	tablist.AppendChild(spacer)
	root.AppendChild(tablist)

	if groups := DetectTabGroups(root); len(groups) != 0 {
		t.Errorf("a tablist with no role=tab children should produce no group, got %v", groups)
	}
}
