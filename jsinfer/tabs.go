package jsinfer

import "github.com/arturoeanton/gospatial/dom"

// DetectTabGroups finds role="tablist" containers and collects their
// role="tab" children into TabGroups, for agents that want to enumerate
// and select among tabs without simulating individual clicks.
func DetectTabGroups(root *dom.Node) []TabGroup {
	var groups []TabGroup
	findTabGroups(root, &groups)
	return groups
}

func findTabGroups(n *dom.Node, groups *[]TabGroup) {
	if n.GetAttr("role") == "tablist" {
		var tabs []TabInfo
		for _, c := range n.Children {
			if c.GetAttr("role") != "tab" {
				continue
			}
			tabs = append(tabs, TabInfo{
				ID:       c.GetAttr("id"),
				Label:    textContentOf(c),
				PanelID:  c.GetAttr("aria-controls"),
				Selected: c.GetAttr("aria-selected") == "true",
			})
		}
		if len(tabs) > 0 {
			*groups = append(*groups, TabGroup{Tabs: tabs})
		}
	}

	for _, c := range n.Children {
		findTabGroups(c, groups)
	}
}

func textContentOf(n *dom.Node) string {
	if n.Type == dom.NodeText {
		return n.Text
	}
	var out string
	for _, c := range n.Children {
		out += textContentOf(c)
	}
	return out
}
