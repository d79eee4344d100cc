package css

// defaultStyleForTag returns the tag-default LayoutStyle used as the
// cascade's starting point, before inherited font-size and matched rules
// are applied.
func defaultStyleForTag(tag string) LayoutStyle {
	s := LayoutStyle{
		Display:        DisplayBlock,
		Visibility:     VisibilityVisible,
		Width:          Auto(),
		Height:         Auto(),
		MinWidth:       Auto(),
		MinHeight:      Auto(),
		MaxWidth:       Auto(),
		MaxHeight:      Auto(),
		Top:            Auto(),
		Right:          Auto(),
		Bottom:         Auto(),
		Left:           Auto(),
		FlexBasis:      Auto(),
		FlexDirection:  FlexRow,
		FlexWrap:       FlexNoWrap,
		FlexGrow:       0,
		FlexShrink:     1,
		AlignItems:     AlignStretch,
		AlignSelf:      AlignSelfAuto,
		AlignContent:   AlignContentStretch,
		JustifyContent: JustifyFlexStart,
		FontSize:       16,
		LineHeight:     1.2,
		Overflow:       OverflowVisible,
		Position:       PositionStatic,
	}

	switch tag {
	case "a", "span", "strong", "em", "b", "i", "u", "small", "sub", "sup",
		"label", "abbr", "cite", "code", "kbd", "mark", "q", "s", "samp",
		"time", "var":
		s.Display = DisplayInline
	case "div", "p", "section", "article", "main", "header", "footer", "nav",
		"aside", "form", "fieldset", "figure", "figcaption", "blockquote",
		"pre", "address", "details", "summary", "dialog", "ul", "ol", "li",
		"dl", "dt", "dd", "table", "thead", "tbody", "tfoot", "tr", "td", "th":
		s.Display = DisplayBlock
	case "h1":
		s.Display = DisplayBlock
		s.FontSize = 32
		s.Margin = Edges{Top: 21, Bottom: 21}
	case "h2":
		s.Display = DisplayBlock
		s.FontSize = 24
		s.Margin = Edges{Top: 19, Bottom: 19}
	case "h3":
		s.Display = DisplayBlock
		s.FontSize = 18.7
		s.Margin = Edges{Top: 18, Bottom: 18}
	case "button", "select", "textarea":
		s.Display = DisplayInlineBlock
	case "input":
		s.Display = DisplayInlineBlock
		s.Width = Px(173)
		s.Height = Px(21)
	case "img":
		s.Display = DisplayInlineBlock
	case "head", "meta", "link", "title", "script", "style", "noscript":
		s.Display = DisplayNone
	case "body":
		s.Display = DisplayBlock
		s.Margin = Edges{Top: 8, Right: 8, Bottom: 8, Left: 8}
	case "html":
		s.Display = DisplayBlock
	default:
		s.Display = DisplayBlock
	}

	return s
}
