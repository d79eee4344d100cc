package css

import (
	"strconv"
	"strings"
)

// ======================================================================================
// STYLESHEET
// ======================================================================================

// Declaration is a single "property: value" pair, with its !important flag
// stripped out into its own field so the cascade can special-case it.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Stylesheet is a flat, already-@media-filtered list of rules in source
// order. @media blocks are resolved against a Viewport at parse time rather
// than carried forward as a tree, since nothing downstream re-evaluates
// them for a different viewport within one pipeline run.
type Stylesheet struct {
	Rules []Rule
}

// Viewport is the subset of the window state media queries can inspect.
type Viewport struct {
	Width, Height float64
}

// ParseInlineStyle parses a style attribute value like
// "color: red; font-size: 16px;" into property/value pairs.
func ParseInlineStyle(styleAttr string) []Declaration {
	var out []Declaration
	for _, part := range strings.Split(styleAttr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		colon := strings.Index(part, ":")
		if colon == -1 {
			continue
		}
		property := strings.ToLower(strings.TrimSpace(part[:colon]))
		value := strings.TrimSpace(part[colon+1:])
		if property == "" || value == "" {
			continue
		}
		important := false
		if lower := strings.ToLower(value); strings.HasSuffix(lower, "!important") {
			important = true
			value = strings.TrimSpace(value[:len(value)-len("!important")])
		}
		out = append(out, Declaration{Property: property, Value: value, Important: important})
	}
	return out
}

// ParseStylesheet parses a CSS stylesheet, descending into @media blocks
// whose query matches viewport and dropping the ones that don't. Comments
// are stripped first; parsing is brace-depth aware so nested @media blocks
// don't confuse the selector/declaration split.
func ParseStylesheet(source string, viewport Viewport) *Stylesheet {
	sheet := &Stylesheet{}
	order := 0
	parseBlock(stripComments(source), viewport, sheet, &order)
	return sheet
}

func parseBlock(css string, viewport Viewport, sheet *Stylesheet, order *int) {
	pos := 0
	for pos < len(css) {
		for pos < len(css) && isWhitespace(css[pos]) {
			pos++
		}
		if pos >= len(css) {
			break
		}

		braceStart := strings.IndexByte(css[pos:], '{')
		if braceStart == -1 {
			break
		}
		braceStart += pos
		header := strings.TrimSpace(css[pos:braceStart])
		braceEnd := findMatchingBrace(css, braceStart)
		if braceEnd == -1 {
			break
		}
		body := css[braceStart+1 : braceEnd]

		if strings.HasPrefix(header, "@media") {
			query := strings.TrimSpace(strings.TrimPrefix(header, "@media"))
			if evaluateMediaQuery(query, viewport) {
				parseBlock(body, viewport, sheet, order)
			}
			pos = braceEnd + 1
			continue
		}

		if strings.HasPrefix(header, "@") {
			// Unsupported at-rule (e.g. @font-face, @keyframes): skip body.
			pos = braceEnd + 1
			continue
		}

		if header != "" {
			declText := body
			for _, sel := range ParseSelectorList(header) {
				sheet.Rules = append(sheet.Rules, Rule{
					Selector:     sel,
					Declarations: declText,
					Order:        *order,
				})
				*order++
			}
		}
		pos = braceEnd + 1
	}
}

func stripComments(css string) string {
	var out strings.Builder
	i := 0
	for i < len(css) {
		if i+1 < len(css) && css[i] == '/' && css[i+1] == '*' {
			end := strings.Index(css[i+2:], "*/")
			if end == -1 {
				break
			}
			i = i + 2 + end + 2
			continue
		}
		out.WriteByte(css[i])
		i++
	}
	return out.String()
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func findMatchingBrace(css string, start int) int {
	depth := 1
	for i := start + 1; i < len(css); i++ {
		switch css[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// ======================================================================================
// MEDIA QUERIES
// ======================================================================================

// evaluateMediaQuery evaluates a (possibly comma-separated, "and"-joined)
// media query against a viewport. Unknown media types/features are treated
// as non-matching rather than causing a parse error, so an unsupported
// query just drops its block.
func evaluateMediaQuery(query string, vp Viewport) bool {
	for _, branch := range strings.Split(query, ",") {
		if evaluateMediaQueryBranch(strings.TrimSpace(branch), vp) {
			return true
		}
	}
	return false
}

func evaluateMediaQueryBranch(branch string, vp Viewport) bool {
	if branch == "" {
		return true
	}
	for _, term := range strings.Split(branch, " and ") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if term == "screen" || term == "all" {
			continue
		}
		if term == "print" {
			return false
		}
		if strings.HasPrefix(term, "(") && strings.HasSuffix(term, ")") {
			if !evaluateMediaFeature(term[1:len(term)-1], vp) {
				return false
			}
			continue
		}
		// Unrecognized term: fail closed.
		return false
	}
	return true
}

func evaluateMediaFeature(feature string, vp Viewport) bool {
	colon := strings.Index(feature, ":")
	if colon == -1 {
		return false
	}
	name := strings.TrimSpace(feature[:colon])
	value := parseMediaPx(strings.TrimSpace(feature[colon+1:]))

	switch name {
	case "min-width":
		return vp.Width >= value
	case "max-width":
		return vp.Width <= value
	case "min-height":
		return vp.Height >= value
	case "max-height":
		return vp.Height <= value
	}
	return false
}

func parseMediaPx(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
