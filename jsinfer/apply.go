package jsinfer

import (
	"strings"

	"github.com/arturoeanton/gospatial/dom"
)

// ApplyAction simulates action's effect on a cloned copy of root, returning
// the modified tree. root is never mutated in place, keeping the core
// pipeline's pure-function contract.
func ApplyAction(root *dom.Node, action JsAction) *dom.Node {
	switch a := action.(type) {
	case ToggleVisibilityAction:
		id := strings.TrimPrefix(a.Target, "#")
		return toggleElementVisibility(root, id)
	case ToggleClassAction:
		id := strings.TrimPrefix(a.Target, "#")
		return toggleElementClass(root, id, a.Class)
	case TabSwitchAction:
		result := setElementVisibility(root, a.ShowTarget, true)
		for _, hide := range a.HideTargets {
			result = setElementVisibility(result, hide, false)
		}
		return result
	case FormSubmitAction, NavigateAction:
		return root.Clone()
	default:
		return root.Clone()
	}
}

func isDisplayNoneStyle(style string) bool {
	return strings.Contains(style, "display: none") || strings.Contains(style, "display:none")
}

func stripDisplayNone(style string) string {
	s := strings.ReplaceAll(style, "display: none", "")
	s = strings.ReplaceAll(s, "display:none", "")
	return strings.TrimSpace(strings.Trim(s, ";"))
}

func toggleElementVisibility(n *dom.Node, targetID string) *dom.Node {
	result := n.Clone()
	if result.Type == dom.NodeElement && result.GetAttr("id") == targetID {
		isHidden := isDisplayNoneStyle(result.GetAttr("style")) || result.HasAttr("hidden")
		if isHidden {
			result.RemoveAttr("hidden")
			if style := result.GetAttr("style"); style != "" {
				result.SetAttr("style", stripDisplayNone(style))
			}
		} else {
			current := result.GetAttr("style")
			if current == "" {
				result.SetAttr("style", "display: none")
			} else {
				result.SetAttr("style", current+"; display: none")
			}
		}
		return result
	}
	for i, c := range result.Children {
		result.Children[i] = toggleElementVisibility(c, targetID)
	}
	return result
}

func setElementVisibility(n *dom.Node, targetID string, visible bool) *dom.Node {
	result := n.Clone()
	if result.Type == dom.NodeElement && result.GetAttr("id") == targetID {
		if visible {
			result.RemoveAttr("hidden")
			if style := result.GetAttr("style"); style != "" {
				result.SetAttr("style", stripDisplayNone(style))
			}
		} else {
			current := result.GetAttr("style")
			if current == "" {
				result.SetAttr("style", "display: none")
			} else if !isDisplayNoneStyle(current) {
				result.SetAttr("style", current+"; display: none")
			}
		}
		return result
	}
	for i, c := range result.Children {
		result.Children[i] = setElementVisibility(c, targetID, visible)
	}
	return result
}

func toggleElementClass(n *dom.Node, targetID, class string) *dom.Node {
	result := n.Clone()
	if result.Type == dom.NodeElement && result.GetAttr("id") == targetID {
		classes := result.Classes()
		if result.HasClass(class) {
			var kept []string
			for _, c := range classes {
				if c != class {
					kept = append(kept, c)
				}
			}
			result.SetAttr("class", strings.Join(kept, " "))
		} else {
			classes = append(classes, class)
			result.SetAttr("class", strings.Join(classes, " "))
		}
		return result
	}
	for i, c := range result.Children {
		result.Children[i] = toggleElementClass(c, targetID, class)
	}
	return result
}
