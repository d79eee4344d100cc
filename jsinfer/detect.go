package jsinfer

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/arturoeanton/gospatial/dom"
	"github.com/arturoeanton/gospatial/spatial"
)

// classListBackrefPattern matches the
// getElementById('X') ... classList.(toggle|add|remove)('C') shape, where
// the quoted element id and the quoted class name are independent captures
// separated by arbitrary chained-call text. A backreference-capable regex
// expresses "two distinct quoted literals, in this relative order" more
// directly than nested strings.Index/slicing would.
var classListBackrefPattern = regexp2.MustCompile(
	`getElementById\(\s*['"](?<id>[^'"]+)['"]\s*\)[\s\S]*?classList\.(?:toggle|add|remove)\(\s*['"](?<class>[^'"]+)['"]`,
	regexp2.None,
)

// DetectBehaviors walks the raw DOM tree (before layout) for onclick
// handlers and Bootstrap/ARIA toggle attributes, assigning each detected
// trigger an id from a counter advanced by spatial.IsCountedElement. That
// counter matches the spatial DOM's ids only where the emitter's landmark,
// image, zero-size, trivial-text and wrapper rules skip or add nothing.
func DetectBehaviors(root *dom.Node) []JsBehavior {
	var behaviors []JsBehavior
	idCounter := uint32(1)
	detectBehaviorsRecursive(root, &behaviors, &idCounter)
	return behaviors
}

func detectBehaviorsRecursive(n *dom.Node, behaviors *[]JsBehavior, idCounter *uint32) {
	if n.Type == dom.NodeElement {
		if onclick := n.GetAttr("onclick"); onclick != "" {
			if action := parseOnclick(onclick); action != nil {
				*behaviors = append(*behaviors, JsBehavior{TriggerID: *idCounter, Action: action})
			}
		}

		if toggle := n.GetAttr("data-toggle"); toggle != "" {
			target := n.GetAttr("data-target")
			if target == "" {
				target = n.GetAttr("href")
			}
			if target != "" {
				var action JsAction
				switch toggle {
				case "collapse", "dropdown", "modal":
					action = ToggleVisibilityAction{Target: target}
				case "tab", "pill":
					if targetID := strings.TrimPrefix(target, "#"); targetID != target {
						action = TabSwitchAction{ShowTarget: targetID}
					} else {
						action = ToggleVisibilityAction{Target: target}
					}
				default:
					action = ToggleVisibilityAction{Target: target}
				}
				*behaviors = append(*behaviors, JsBehavior{TriggerID: *idCounter, Action: action})
			}
		}

		if controls := n.GetAttr("aria-controls"); controls != "" {
			if n.HasAttr("aria-expanded") {
				*behaviors = append(*behaviors, JsBehavior{
					TriggerID: *idCounter,
					Action:    ToggleVisibilityAction{Target: "#" + controls},
				})
			}
		}

		if n.GetAttr("role") == "tab" {
			if controls := n.GetAttr("aria-controls"); controls != "" {
				*behaviors = append(*behaviors, JsBehavior{
					TriggerID: *idCounter,
					Action:    TabSwitchAction{ShowTarget: controls},
				})
			}
		}

		if spatial.IsCountedElement(n.Tag, n.HasAttr("role"), n.HasAttr("onclick"), n.HasAttr("tabindex")) {
			*idCounter++
		}
	}

	for _, c := range n.Children {
		detectBehaviorsRecursive(c, behaviors, idCounter)
	}
}

// parseOnclick matches, in order: getElementById + classList mutation,
// getElementById + style/toggle visibility, jQuery-style selector calls,
// a bare function-call-with-id-argument, and a location assignment.
func parseOnclick(onclickRaw string) JsAction {
	onclick := strings.TrimSpace(onclickRaw)

	if id := extractElementID(onclick); id != "" {
		if class := extractClassToggleBackref(onclick, id); class != "" {
			return ToggleClassAction{Target: "#" + id, Class: class}
		}
		return ToggleVisibilityAction{Target: "#" + id}
	}

	if selector := extractJQuerySelector(onclick); selector != "" {
		if strings.Contains(onclick, ".toggle(") || strings.Contains(onclick, ".show(") || strings.Contains(onclick, ".hide(") {
			return ToggleVisibilityAction{Target: selector}
		}
		if strings.Contains(onclick, ".addClass(") || strings.Contains(onclick, ".removeClass(") || strings.Contains(onclick, ".toggleClass(") {
			if class := extractJQueryClass(onclick); class != "" {
				return ToggleClassAction{Target: selector, Class: class}
			}
		}
	}

	if id := extractFunctionArg(onclick); id != "" {
		return ToggleVisibilityAction{Target: "#" + id}
	}

	if strings.Contains(onclick, "location") {
		if url := extractURLAssignment(onclick); url != "" {
			return NavigateAction{URL: url}
		}
	}

	return nil
}

func extractElementID(s string) string {
	const marker = "getElementById("
	idx := strings.Index(s, marker)
	if idx < 0 {
		return ""
	}
	return extractQuotedString(s[idx+len(marker):])
}

// extractClassToggleBackref confirms id appears in a getElementById call
// before a later classList mutation names the class, via the shared
// backreference pattern; falls back to empty (caller treats that as a plain
// visibility toggle).
func extractClassToggleBackref(s, id string) string {
	m, err := classListBackrefPattern.FindStringMatch(s)
	if err != nil || m == nil {
		return ""
	}
	idGroup := m.GroupByName("id")
	classGroup := m.GroupByName("class")
	if idGroup == nil || classGroup == nil {
		return ""
	}
	if idGroup.String() != id {
		return ""
	}
	return classGroup.String()
}

func extractJQuerySelector(s string) string {
	for _, prefix := range []string{"$('", "$(\"", "jQuery('", "jQuery(\""} {
		idx := strings.Index(s, prefix)
		if idx < 0 {
			continue
		}
		rest := s[idx+len(prefix):]
		quote := byte('\'')
		if strings.HasSuffix(prefix, "\"") {
			quote = '"'
		}
		if end := strings.IndexByte(rest, quote); end >= 0 {
			return rest[:end]
		}
	}
	return ""
}

func extractJQueryClass(s string) string {
	methods := []string{
		".addClass('", ".addClass(\"", ".removeClass('", ".removeClass(\"",
		".toggleClass('", ".toggleClass(\"",
	}
	for _, method := range methods {
		idx := strings.Index(s, method)
		if idx < 0 {
			continue
		}
		rest := s[idx+len(method):]
		quote := byte('\'')
		if strings.HasSuffix(method, "\"") {
			quote = '"'
		}
		if end := strings.IndexByte(rest, quote); end >= 0 {
			return rest[:end]
		}
	}
	return ""
}

func extractFunctionArg(s string) string {
	paren := strings.IndexByte(s, '(')
	if paren < 0 {
		return ""
	}
	before := s[:paren]
	for _, r := range before {
		if !isAlnumOrUnderscore(r) {
			return ""
		}
	}
	if before == "" {
		return ""
	}
	return extractQuotedString(s[paren+1:])
}

func isAlnumOrUnderscore(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func extractURLAssignment(s string) string {
	patterns := []string{
		"location.href=", "location.href =", "location=", "location =",
		"window.location.href=", "window.location.href =",
		"window.location=", "window.location =",
	}
	for _, p := range patterns {
		idx := strings.Index(s, p)
		if idx < 0 {
			continue
		}
		rest := strings.TrimLeft(s[idx+len(p):], " \t")
		if url := extractQuotedString(rest); url != "" {
			return url
		}
	}
	return ""
}

func extractQuotedString(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	quote := s[0]
	if quote != '\'' && quote != '"' {
		return ""
	}
	rest := s[1:]
	if end := strings.IndexByte(rest, quote); end >= 0 {
		return rest[:end]
	}
	return ""
}
