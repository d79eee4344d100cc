package spatial

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/arturoeanton/gospatial/css"
	"github.com/arturoeanton/gospatial/dom"
	"github.com/arturoeanton/gospatial/layout"
)

var interactiveTags = map[string]bool{
	"a": true, "button": true, "input": true, "select": true,
	"textarea": true, "details": true, "summary": true,
}

var textTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "label": true, "span": true, "li": true, "td": true, "th": true,
	"dt": true, "dd": true, "figcaption": true, "blockquote": true, "pre": true,
	"code": true, "em": true, "strong": true, "b": true, "i": true, "mark": true,
	"small": true,
}

var wrapperTags = map[string]bool{
	"li": true, "td": true, "th": true, "span": true, "p": true, "dt": true, "dd": true,
}

var landmarkTags = map[string]bool{
	"nav": true, "main": true, "header": true, "footer": true, "aside": true,
	"section": true, "form": true,
}

var landmarkRoles = map[string]bool{
	"navigation": true, "main": true, "banner": true, "contentinfo": true,
	"complementary": true, "region": true, "form": true,
}

// IsCountedElement reports whether an element with this tag/role/onclick/
// tabindex combination is in the emitter's interactive or text tag tables.
// jsinfer calls this to advance its id counter. collectElements does not
// call it: the emitter also emits landmarks and images with alt text, and
// skips zero-size, trivial-text and deduplicated wrapper elements, so
// jsinfer's ids can differ from spatial DOM ids on pages with such elements.
func IsCountedElement(tag string, hasRole, hasOnclick, hasTabindex bool) bool {
	return interactiveTags[tag] || textTags[tag] || hasRole || hasOnclick || hasTabindex
}

// GenerateSpatialDom walks a laid-out tree and produces the flat Spatial
// DOM: id assignment, dedup, text collection, role/ARIA state, and label
// association, followed by page classification and suggested-action
// detection.
func GenerateSpatialDom(root *layout.LayoutNode, viewportWidth, viewportHeight float64) *SpatialDom {
	labelMap := collectLabelAssociations(root)

	var els []*SpatialElement
	idCounter := uint32(1)
	collectElements(root, &els, &idCounter, false, labelMap)

	title := findTitle(root)

	d := &SpatialDom{
		Title:  title,
		Vp:     [2]float64{viewportWidth, viewportHeight},
		Scroll: [2]float64{0, 0},
		Els:    els,
	}
	d.RebuildIndex()

	d.PageType = detectPageType(d)
	d.SuggestedActions = detectSuggestedActions(d)

	return d
}

func collectLabelAssociations(root *layout.LayoutNode) map[string]string {
	m := make(map[string]string)
	collectLabelsRecursive(root, m)
	return m
}

func collectLabelsRecursive(n *layout.LayoutNode, m map[string]string) {
	if n.Source.Type == dom.NodeElement && n.Source.Tag == "label" {
		if forID := n.Source.GetAttr("for"); forID != "" {
			text := normalizeText(collectVisibleText(n))
			if text != "" {
				m[forID] = text
			}
		}
	}
	for _, c := range n.Children {
		collectLabelsRecursive(c, m)
	}
}

func isHiddenAttrSet(n *dom.Node) bool {
	return n.HasAttr("hidden")
}

func collectElements(n *layout.LayoutNode, els *[]*SpatialElement, idCounter *uint32, parentHidden bool, labelMap map[string]string) {
	if n.Source.Type == dom.NodeDocument {
		for _, c := range n.Children {
			collectElements(c, els, idCounter, parentHidden, labelMap)
		}
		return
	}
	if n.Source.Type == dom.NodeText {
		return
	}

	ariaHidden := n.Source.GetAttr("aria-hidden") == "true"
	isHidden := parentHidden ||
		n.Style.Display == css.DisplayNone ||
		n.Style.Visibility == css.VisibilityHidden ||
		ariaHidden ||
		isHiddenAttrSet(n.Source)

	// Zero-size visible elements are layout artifacts, not meaningful
	// content — skip emission but still recurse into children.
	if !isHidden && n.Bounds.Width <= 0 && n.Bounds.Height <= 0 {
		for _, c := range n.Children {
			collectElements(c, els, idCounter, isHidden, labelMap)
		}
		return
	}

	tag := n.Source.Tag
	isInteractive := interactiveTags[tag] || n.Source.HasAttr("onclick") || n.Source.HasAttr("role") || n.Source.HasAttr("tabindex")
	isText := textTags[tag]
	hasRole := n.Source.HasAttr("role")
	isLandmark := landmarkTags[tag]
	isImgWithAlt := tag == "img" && n.Source.HasAttr("alt")

	shouldEmit := isInteractive || isText || hasRole || isImgWithAlt || isLandmark

	if shouldEmit {
		isLandmarkRole := isLandmark || landmarkRoles[n.Source.GetAttr("role")]
		if isLandmarkRole {
			emit := emitElement(n, idCounter, strPtr(""), isHidden, labelMap)
			*els = append(*els, emit)
			for _, c := range n.Children {
				collectElements(c, els, idCounter, isHidden, labelMap)
			}
			return
		}

		if isText && !isInteractive && !hasRole {
			textContent := normalizeText(collectVisibleText(n))
			if isTrivialText(textContent) {
				for _, c := range n.Children {
					collectElements(c, els, idCounter, isHidden, labelMap)
				}
				return
			}
		}

		hasInteractive := hasInteractiveDescendants(n)
		isWrapper := wrapperTags[tag]

		switch {
		case isWrapper && !isInteractive && hasInteractive:
			ownText := normalizeText(collectOwnText(n))
			if ownText == "" || isTrivialText(ownText) {
				for _, c := range n.Children {
					collectElements(c, els, idCounter, isHidden, labelMap)
				}
				return
			}
			*els = append(*els, emitElement(n, idCounter, strPtr(ownText), isHidden, labelMap))
		case isText && !isInteractive && hasInteractive:
			ownText := normalizeText(collectOwnText(n))
			if ownText == "" || isTrivialText(ownText) {
				for _, c := range n.Children {
					collectElements(c, els, idCounter, isHidden, labelMap)
				}
				return
			}
			*els = append(*els, emitElement(n, idCounter, strPtr(ownText), isHidden, labelMap))
		default:
			*els = append(*els, emitElement(n, idCounter, nil, isHidden, labelMap))
		}
	}

	for _, c := range n.Children {
		collectElements(c, els, idCounter, isHidden, labelMap)
	}
}

// textOverride carries the tri-state "not computed / explicit empty /
// explicit text" choice collectElements makes before calling emitElement:
// a nil pointer means "compute the normal fallback chain", a pointer to ""
// means "role-only marker, no text at all".
func emitElement(n *layout.LayoutNode, idCounter *uint32, textOverride *string, isHidden bool, labelMap map[string]string) *SpatialElement {
	tag := n.Source.Tag

	var text *string
	switch {
	case textOverride != nil:
		if *textOverride != "" {
			text = textOverride
		}
	case tag == "img":
		if alt := n.Source.GetAttr("alt"); alt != "" {
			text = strPtr(alt)
		}
	default:
		textContent := normalizeText(collectVisibleText(n))
		if textContent != "" {
			text = strPtr(textContent)
		} else if al := n.Source.GetAttr("aria-label"); al != "" {
			text = strPtr(al)
		} else if t := n.Source.GetAttr("title"); t != "" {
			text = strPtr(t)
		} else if alt := findChildImgAlt(n); alt != "" {
			text = strPtr(alt)
		}
	}

	role := determineRole(n.Source)
	ph := attrPtr(n.Source, "placeholder")
	href := attrPtr(n.Source, "href")
	val := attrPtr(n.Source, "value")

	var inputType *string
	if tag == "input" {
		inputType = attrPtr(n.Source, "type")
	}

	disabled := parseBoolAttr(n.Source, "disabled")
	if disabled == nil {
		disabled = parseAriaBool(n.Source, "aria-disabled")
	}
	checked := parseBoolAttr(n.Source, "checked")
	if checked == nil {
		checked = parseAriaBool(n.Source, "aria-checked")
	}
	expanded := parseAriaBool(n.Source, "aria-expanded")
	selected := parseBoolAttr(n.Source, "selected")
	if selected == nil {
		selected = parseAriaBool(n.Source, "aria-selected")
	}
	required := parseBoolAttr(n.Source, "required")
	if required == nil {
		required = parseAriaBool(n.Source, "aria-required")
	}

	var name, label *string
	if tag == "input" || tag == "select" || tag == "textarea" {
		name = attrPtr(n.Source, "name")
		if id := n.Source.GetAttr("id"); id != "" {
			if l, ok := labelMap[id]; ok {
				label = strPtr(l)
			}
		}
	}

	alertType := detectAlertType(n.Source)

	el := &SpatialElement{
		ID:        *idCounter,
		Tag:       tag,
		Role:      role,
		Text:      text,
		Ph:        ph,
		Href:      href,
		Val:       val,
		InputType: inputType,
		Disabled:  disabled,
		Checked:   checked,
		Expanded:  expanded,
		Selected:  selected,
		Required:  required,
		Name:      name,
		Label:     label,
		AlertType: alertType,
		B: [4]int32{
			roundToInt32(n.Bounds.X), roundToInt32(n.Bounds.Y),
			roundToInt32(n.Bounds.Width), roundToInt32(n.Bounds.Height),
		},
	}
	if isHidden {
		el.Hidden = boolPtr(true)
	}
	*idCounter++
	return el
}

func findChildImgAlt(n *layout.LayoutNode) string {
	for _, c := range n.Children {
		if c.Source.Type != dom.NodeElement {
			continue
		}
		if c.Source.Tag == "img" {
			if alt := c.Source.GetAttr("alt"); alt != "" {
				return alt
			}
		}
		if c.Source.Tag == "svg" {
			if label := c.Source.GetAttr("aria-label"); label != "" {
				return label
			}
			if title := findSVGTitle(c); title != "" {
				return title
			}
		}
		if alt := findChildImgAlt(c); alt != "" {
			return alt
		}
	}
	return ""
}

func findSVGTitle(n *layout.LayoutNode) string {
	for _, c := range n.Children {
		if c.Source.Type == dom.NodeElement && c.Source.Tag == "title" {
			if text := collectVisibleText(c); text != "" {
				return text
			}
		}
		if title := findSVGTitle(c); title != "" {
			return title
		}
	}
	return ""
}

func hasInteractiveDescendants(n *layout.LayoutNode) bool {
	for _, c := range n.Children {
		if c.Source.Type != dom.NodeElement {
			continue
		}
		if interactiveTags[c.Source.Tag] || c.Source.HasAttr("onclick") || c.Source.HasAttr("role") || c.Source.HasAttr("tabindex") {
			return true
		}
		if hasInteractiveDescendants(c) {
			return true
		}
	}
	return false
}

// collectOwnText collects text directly owned by n — not text that will be
// carried by an interactive or TEXT-tag descendant emitted separately.
func collectOwnText(n *layout.LayoutNode) string {
	var sb strings.Builder
	for _, c := range n.Children {
		collectOwnTextRecursive(c, &sb)
	}
	return strings.TrimSpace(sb.String())
}

func collectOwnTextRecursive(n *layout.LayoutNode, out *strings.Builder) {
	if n.Source.Type == dom.NodeText {
		t := strings.TrimSpace(n.Source.Text)
		if t != "" {
			s := out.String()
			if s != "" && !strings.HasSuffix(s, " ") {
				out.WriteByte(' ')
			}
			out.WriteString(t)
		}
		return
	}
	tag := n.Source.Tag
	if interactiveTags[tag] || textTags[tag] || n.Source.HasAttr("onclick") || n.Source.HasAttr("role") || n.Source.HasAttr("tabindex") {
		return
	}
	for _, c := range n.Children {
		collectOwnTextRecursive(c, out)
	}
}

func collectVisibleText(n *layout.LayoutNode) string {
	var sb strings.Builder
	collectTextRecursive(n, &sb)
	return strings.TrimSpace(sb.String())
}

func collectTextRecursive(n *layout.LayoutNode, out *strings.Builder) {
	if n.Source.Type == dom.NodeText {
		t := strings.TrimSpace(n.Source.Text)
		if t != "" {
			s := out.String()
			if s != "" && !strings.HasSuffix(s, " ") {
				out.WriteByte(' ')
			}
			out.WriteString(t)
		}
		return
	}
	for _, c := range n.Children {
		collectTextRecursive(c, out)
	}
}

// isTrivialText reports whether text, once trimmed, consists only of
// separator/punctuation characters that carry no meaning for an agent.
func isTrivialText(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	for _, c := range trimmed {
		switch c {
		case '|', '·', '•', '-', '–', '—', '/', '\\', ',', '.', ':', ';',
			'(', ')', '[', ']', '{', '}', ' ', '\t', '\n':
			continue
		default:
			return false
		}
	}
	return true
}

func determineRole(n *dom.Node) *string {
	if role := n.GetAttr("role"); role != "" {
		return strPtr(role)
	}
	switch n.Tag {
	case "a":
		return strPtr("link")
	case "button":
		return strPtr("button")
	case "input":
		inputType := n.GetAttr("type")
		if inputType == "" {
			inputType = "text"
		}
		switch inputType {
		case "checkbox":
			return strPtr("checkbox")
		case "radio":
			return strPtr("radio")
		case "submit", "button":
			return strPtr("button")
		case "search":
			return strPtr("searchbox")
		default:
			return strPtr("textbox")
		}
	case "select":
		return strPtr("combobox")
	case "textarea":
		return strPtr("textbox")
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return strPtr("heading")
	case "nav":
		return strPtr("navigation")
	case "main":
		return strPtr("main")
	case "aside":
		return strPtr("complementary")
	case "header":
		return strPtr("banner")
	case "footer":
		return strPtr("contentinfo")
	case "form":
		return strPtr("form")
	case "section":
		return strPtr("region")
	case "img":
		return strPtr("img")
	}
	return nil
}

func parseBoolAttr(n *dom.Node, attr string) *bool {
	if n.HasAttr(attr) {
		return boolPtr(true)
	}
	return nil
}

func parseAriaBool(n *dom.Node, attr string) *bool {
	if !n.HasAttr(attr) {
		return nil
	}
	return boolPtr(n.GetAttr(attr) == "true")
}

// detectAlertType matches role="alert"/"status" first, then compound CSS
// class patterns. A bare "error"/"danger"/"success"/"warning" class is
// deliberately not matched — too ambiguous (e.g. a loading placeholder
// styled with class="error" on an unrelated site).
func detectAlertType(n *dom.Node) *string {
	switch n.GetAttr("role") {
	case "alert":
		return strPtr("alert")
	case "status":
		return strPtr("status")
	}

	classAttr := n.GetAttr("class")
	if classAttr == "" {
		return nil
	}
	lower := strings.ToLower(classAttr)
	for _, cls := range strings.Fields(lower) {
		compound := strings.ContainsAny(cls, "-_") || strings.HasPrefix(cls, "alert") || strings.HasPrefix(cls, "msg")
		if (strings.Contains(cls, "error") || strings.Contains(cls, "danger")) && compound {
			return strPtr("error")
		}
		if strings.Contains(cls, "success") && compound {
			return strPtr("success")
		}
		if strings.Contains(cls, "warning") && compound {
			return strPtr("warning")
		}
		if cls == "alert" || strings.HasPrefix(cls, "alert-") || strings.HasPrefix(cls, "alert_") {
			return strPtr("alert")
		}
		if strings.Contains(cls, "notice") || strings.Contains(cls, "flash") {
			return strPtr("alert")
		}
	}
	return nil
}

func findTitle(n *layout.LayoutNode) string {
	if n.Source.Type == dom.NodeElement && n.Source.Tag == "title" {
		if text := collectVisibleText(n); text != "" {
			return text
		}
	}
	for _, c := range n.Children {
		if title := findTitle(c); title != "" {
			return title
		}
	}
	return ""
}

// normalizeText folds fullwidth/halfwidth forms and applies NFC
// normalization before whitespace-collapsing, so text comparisons (trivial-
// text checks, code extraction) aren't thrown off by visually-identical but
// byte-distinct Unicode forms.
func normalizeText(s string) string {
	if s == "" {
		return ""
	}
	s = width.Fold.String(s)
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

func attrPtr(n *dom.Node, name string) *string {
	if !n.HasAttr(name) {
		return nil
	}
	return strPtr(n.GetAttr(name))
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func roundToInt32(v float64) int32 {
	if v >= 0 {
		return int32(v + 0.5)
	}
	return -int32(-v + 0.5)
}
