package css

import (
	"sort"
	"strings"

	"github.com/arturoeanton/gospatial/dom"
)

// matchedRule is one candidate rule that matched a specific element, kept
// alongside its specificity/order so the cascade can sort winners.
type matchedRule struct {
	decls       []Declaration
	specificity int
	order       int
	important   bool
}

// ComputeStyleTree resolves every element's LayoutStyle in one document-order
// pass, threading the ancestor stack (for selector matching) and the parent's
// resolved font size (for em/inheritance) on the call stack rather than via
// parent pointers. The returned map is keyed by node identity. <style>
// blocks found under root are parsed against viewport and applied after
// the passed-in sheets.
func ComputeStyleTree(root *dom.Node, sheets []*Stylesheet, viewport Viewport) map[*dom.Node]LayoutStyle {
	result := make(map[*dom.Node]LayoutStyle)
	if root == nil {
		return result
	}

	sheets = append(append([]*Stylesheet(nil), sheets...), ExtractInlineStylesheets(root, viewport)...)
	var rules []Rule
	for _, s := range sheets {
		rules = append(rules, s.Rules...)
	}
	index := BuildSelectorIndex(rules)

	var allDecls []Declaration
	for _, r := range rules {
		allDecls = append(allDecls, ParseInlineStyle(r.Declarations)...)
	}
	vars := ExtractCustomProperties(allDecls)

	computeRec(root, nil, 16, rules, index, vars, result)
	return result
}

func computeRec(node *dom.Node, ancestors []dom.Ancestor, parentFontSize float64, rules []Rule, index *SelectorIndex, vars map[string]string, result map[*dom.Node]LayoutStyle) {
	if node == nil {
		return
	}

	fontSize := parentFontSize
	if node.Type == dom.NodeElement {
		style := computeElementStyle(node, ancestors, rules, index, vars, parentFontSize)
		result[node] = style
		fontSize = style.FontSize
	}

	var nextAncestors []dom.Ancestor
	if node.Type == dom.NodeElement {
		nextAncestors = append(append([]dom.Ancestor(nil), ancestors...), dom.Ancestor{
			Tag: node.Tag, Classes: node.Classes(), ID: node.GetAttr("id"),
		})
	} else {
		nextAncestors = ancestors
	}

	for _, child := range node.Children {
		computeRec(child, nextAncestors, fontSize, rules, index, vars, result)
	}
}

func computeElementStyle(node *dom.Node, ancestors []dom.Ancestor, rules []Rule, index *SelectorIndex, vars map[string]string, parentFontSize float64) LayoutStyle {
	style := defaultStyleForTag(node.Tag)
	style.FontSize = parentFontSize // font-size inherits before any rule is applied

	var matched []matchedRule
	candidates := index.CandidatesFor(strings.ToLower(node.Tag), node.Classes(), node.GetAttr("id"))
	for _, ci := range candidates {
		r := rules[ci]
		if !Matches(r.Selector, node, ancestors) {
			continue
		}
		for _, d := range ParseInlineStyle(r.Declarations) {
			matched = append(matched, matchedRule{
				decls:       []Declaration{d},
				specificity: r.Selector.Specificity,
				order:       r.Order,
				important:   d.Important,
			})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].important != matched[j].important {
			return !matched[i].important
		}
		if matched[i].specificity != matched[j].specificity {
			return matched[i].specificity < matched[j].specificity
		}
		return matched[i].order < matched[j].order
	})

	// font-size first, so em units in later declarations resolve correctly.
	for _, m := range matched {
		for _, d := range m.decls {
			if d.Property == "font-size" {
				applyProperty(&style, d.Property, d.Value, vars)
			}
		}
	}
	for _, m := range matched {
		for _, d := range m.decls {
			if d.Property != "font-size" {
				applyProperty(&style, d.Property, d.Value, vars)
			}
		}
	}

	if inline := node.GetAttr("style"); inline != "" {
		decls := ParseInlineStyle(inline)
		for _, d := range decls {
			if d.Property == "font-size" {
				applyProperty(&style, d.Property, d.Value, vars)
			}
		}
		for _, d := range decls {
			if d.Property != "font-size" {
				applyProperty(&style, d.Property, d.Value, vars)
			}
		}
	}

	applyHTMLAttributeOverrides(&style, node)
	return style
}

// applyHTMLAttributeOverrides applies the handful of presentational HTML
// attributes that affect layout geometry even with no matching CSS rule:
// the hidden attribute forces display:none, and width/height attributes on
// replaced elements set a pixel size absent an explicit style.
func applyHTMLAttributeOverrides(style *LayoutStyle, node *dom.Node) {
	if node.HasAttr("hidden") {
		style.Display = DisplayNone
	}
	if node.Tag == "img" || node.Tag == "input" || node.Tag == "canvas" {
		def := defaultStyleForTag(node.Tag)
		if w := node.GetAttr("width"); w != "" && style.Width == def.Width {
			if d, ok := parseSimpleLength(w+"px", style.FontSize); ok {
				style.Width = d
			} else if d, ok := parseSimpleLength(w, style.FontSize); ok {
				style.Width = d
			}
		}
		if h := node.GetAttr("height"); h != "" && style.Height == def.Height {
			if d, ok := parseSimpleLength(h+"px", style.FontSize); ok {
				style.Height = d
			} else if d, ok := parseSimpleLength(h, style.FontSize); ok {
				style.Height = d
			}
		}
	}
}

// applyProperty resolves one property/value pair onto style. Unknown
// properties and unparseable values are silently ignored, matching a
// permissive CSS engine's handling of vendor-prefixed or malformed input.
func applyProperty(style *LayoutStyle, property, rawValue string, vars map[string]string) {
	value := strings.TrimSpace(resolveVars(rawValue, vars, 0))

	switch property {
	case "display":
		style.Display = parseDisplay(value)
	case "visibility":
		if value == "hidden" || value == "collapse" {
			style.Visibility = VisibilityHidden
		} else {
			style.Visibility = VisibilityVisible
		}
	case "position":
		style.Position = parsePosition(value)
	case "box-sizing":
		if value == "border-box" {
			style.BoxSizing = BoxSizingBorderBox
		} else {
			style.BoxSizing = BoxSizingContentBox
		}
	case "overflow":
		style.Overflow = parseOverflow(value)

	case "width":
		if d, ok := ParseDimension(value, vars, style.FontSize); ok {
			style.Width = d
		}
	case "height":
		if d, ok := ParseDimension(value, vars, style.FontSize); ok {
			style.Height = d
		}
	case "min-width":
		if d, ok := ParseDimension(value, vars, style.FontSize); ok {
			style.MinWidth = d
		}
	case "min-height":
		if d, ok := ParseDimension(value, vars, style.FontSize); ok {
			style.MinHeight = d
		}
	case "max-width":
		if d, ok := ParseDimension(value, vars, style.FontSize); ok {
			style.MaxWidth = d
		}
	case "max-height":
		if d, ok := ParseDimension(value, vars, style.FontSize); ok {
			style.MaxHeight = d
		}

	case "margin":
		if e, ok := ParseEdgesShorthand(value, vars, style.FontSize); ok {
			style.Margin = e
		}
	case "margin-top":
		setEdge(&style.Margin.Top, value, vars, style.FontSize)
	case "margin-right":
		setEdge(&style.Margin.Right, value, vars, style.FontSize)
	case "margin-bottom":
		setEdge(&style.Margin.Bottom, value, vars, style.FontSize)
	case "margin-left":
		setEdge(&style.Margin.Left, value, vars, style.FontSize)

	case "padding":
		if e, ok := ParseEdgesShorthand(value, vars, style.FontSize); ok {
			style.Padding = e
		}
	case "padding-top":
		setEdge(&style.Padding.Top, value, vars, style.FontSize)
	case "padding-right":
		setEdge(&style.Padding.Right, value, vars, style.FontSize)
	case "padding-bottom":
		setEdge(&style.Padding.Bottom, value, vars, style.FontSize)
	case "padding-left":
		setEdge(&style.Padding.Left, value, vars, style.FontSize)

	case "border-width":
		if e, ok := ParseEdgesShorthand(value, vars, style.FontSize); ok {
			style.BorderWidth = e
		}
	case "border-top-width":
		setEdge(&style.BorderWidth.Top, value, vars, style.FontSize)
	case "border-right-width":
		setEdge(&style.BorderWidth.Right, value, vars, style.FontSize)
	case "border-bottom-width":
		setEdge(&style.BorderWidth.Bottom, value, vars, style.FontSize)
	case "border-left-width":
		setEdge(&style.BorderWidth.Left, value, vars, style.FontSize)

	case "top":
		if d, ok := ParseDimension(value, vars, style.FontSize); ok {
			style.Top = d
		}
	case "right":
		if d, ok := ParseDimension(value, vars, style.FontSize); ok {
			style.Right = d
		}
	case "bottom":
		if d, ok := ParseDimension(value, vars, style.FontSize); ok {
			style.Bottom = d
		}
	case "left":
		if d, ok := ParseDimension(value, vars, style.FontSize); ok {
			style.Left = d
		}

	case "flex-direction":
		style.FlexDirection = parseFlexDirection(value)
	case "flex-wrap":
		style.FlexWrap = parseFlexWrap(value)
	case "flex-flow":
		fields := strings.Fields(value)
		for _, f := range fields {
			if fd := parseFlexDirection(f); f == "row" || f == "row-reverse" || f == "column" || f == "column-reverse" {
				style.FlexDirection = fd
			} else {
				style.FlexWrap = parseFlexWrap(f)
			}
		}
	case "flex-grow":
		if n, ok := parseFloat(value); ok {
			style.FlexGrow = n
		}
	case "flex-shrink":
		if n, ok := parseFloat(value); ok {
			style.FlexShrink = n
		}
	case "flex-basis":
		if d, ok := ParseDimension(value, vars, style.FontSize); ok {
			style.FlexBasis = d
		}
	case "flex":
		if grow, shrink, basis, ok := ParseFlexShorthand(value, vars, style.FontSize); ok {
			style.FlexGrow = grow
			style.FlexShrink = shrink
			style.FlexBasis = basis
		}
	case "align-items":
		style.AlignItems = parseAlignItems(value)
	case "align-self":
		style.AlignSelf = parseAlignSelf(value)
	case "align-content":
		style.AlignContent = parseAlignContent(value)
	case "justify-content":
		style.JustifyContent = parseJustifyContent(value)
	case "gap", "row-gap", "column-gap":
		if n, ok := parseFloat(strings.TrimSuffix(value, "px")); ok {
			style.Gap = n
		}

	case "grid-template-columns":
		style.GridTemplateColumns = ParseGridTemplate(value, vars, style.FontSize)
	case "grid-template-rows":
		style.GridTemplateRows = ParseGridTemplate(value, vars, style.FontSize)
	case "grid-column":
		style.GridColumn, _ = ParseGridPlacement(value)
	case "grid-row":
		style.GridRow, _ = ParseGridPlacement(value)

	case "font-size":
		if d, ok := ParseDimension(value, vars, style.FontSize); ok && !d.IsAuto() {
			style.FontSize = d.Resolve(style.FontSize)
		}
	case "line-height":
		if strings.HasSuffix(value, "px") {
			if n, ok := parseFloat(strings.TrimSuffix(value, "px")); ok && style.FontSize != 0 {
				style.LineHeight = n / style.FontSize
			}
		} else if n, ok := parseFloat(value); ok {
			style.LineHeight = n
		}
	}
}

func setEdge(field *float64, value string, vars map[string]string, fontSize float64) {
	if d, ok := ParseDimension(value, vars, fontSize); ok {
		*field = d.Resolve(0)
	}
}

func parseDisplay(v string) Display {
	switch v {
	case "none":
		return DisplayNone
	case "inline":
		return DisplayInline
	case "inline-block":
		return DisplayInlineBlock
	case "flex":
		return DisplayFlex
	case "inline-flex":
		return DisplayInlineFlex
	case "grid":
		return DisplayGrid
	default:
		return DisplayBlock
	}
}

func parsePosition(v string) Position {
	switch v {
	case "relative":
		return PositionRelative
	case "absolute":
		return PositionAbsolute
	case "fixed":
		return PositionFixed
	default:
		return PositionStatic
	}
}

func parseOverflow(v string) Overflow {
	switch v {
	case "hidden":
		return OverflowHidden
	case "scroll":
		return OverflowScroll
	case "auto":
		return OverflowAuto
	default:
		return OverflowVisible
	}
}

func parseFlexDirection(v string) FlexDirection {
	switch v {
	case "row-reverse":
		return FlexRowReverse
	case "column":
		return FlexColumn
	case "column-reverse":
		return FlexColumnReverse
	default:
		return FlexRow
	}
}

func parseFlexWrap(v string) FlexWrap {
	switch v {
	case "wrap":
		return FlexWrapOn
	case "wrap-reverse":
		return FlexWrapReverse
	default:
		return FlexNoWrap
	}
}

func parseAlignItems(v string) AlignItems {
	switch v {
	case "flex-start", "start":
		return AlignFlexStart
	case "flex-end", "end":
		return AlignFlexEnd
	case "center":
		return AlignCenter
	case "baseline":
		return AlignBaseline
	default:
		return AlignStretch
	}
}

func parseAlignSelf(v string) AlignSelf {
	switch v {
	case "stretch":
		return AlignSelfStretch
	case "flex-start", "start":
		return AlignSelfFlexStart
	case "flex-end", "end":
		return AlignSelfFlexEnd
	case "center":
		return AlignSelfCenter
	case "baseline":
		return AlignSelfBaseline
	default:
		return AlignSelfAuto
	}
}

func parseAlignContent(v string) AlignContent {
	switch v {
	case "flex-start", "start":
		return AlignContentFlexStart
	case "flex-end", "end":
		return AlignContentFlexEnd
	case "center":
		return AlignContentCenter
	case "space-between":
		return AlignContentSpaceBetween
	case "space-around":
		return AlignContentSpaceAround
	default:
		return AlignContentStretch
	}
}

func parseJustifyContent(v string) JustifyContent {
	switch v {
	case "flex-end", "end":
		return JustifyFlexEnd
	case "center":
		return JustifyCenter
	case "space-between":
		return JustifySpaceBetween
	case "space-around":
		return JustifySpaceAround
	case "space-evenly":
		return JustifySpaceEvenly
	default:
		return JustifyFlexStart
	}
}

// ======================================================================================
// STYLESHEET EXTRACTION
// ======================================================================================

// ExtractInlineStylesheets finds and parses all <style> blocks in a DOM
// tree. Fetching external <link rel="stylesheet"> documents is an I/O
// concern handled by the pipeline orchestration layer, not this pure
// package — see internal/pipeline.
func ExtractInlineStylesheets(root *dom.Node, viewport Viewport) []*Stylesheet {
	var sheets []*Stylesheet
	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		if n == nil {
			return
		}
		if n.Type == dom.NodeElement && n.Tag == "style" {
			text := n.TextContent()
			if text != "" {
				sheets = append(sheets, ParseStylesheet(text, viewport))
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return sheets
}

// FindStylesheetLinks collects the href of every <link rel="stylesheet">
// so the pipeline layer can fetch them before calling ComputeStyleTree.
func FindStylesheetLinks(root *dom.Node) []string {
	var hrefs []string
	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		if n == nil {
			return
		}
		if n.Type == dom.NodeElement && n.Tag == "link" {
			if strings.ToLower(n.GetAttr("rel")) == "stylesheet" && n.GetAttr("href") != "" {
				hrefs = append(hrefs, n.GetAttr("href"))
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return hrefs
}
