package css

import (
	"strconv"
	"strings"
)

// maxVarDepth bounds var() resolution recursion so a stylesheet with a
// custom-property cycle terminates instead of looping forever.
const maxVarDepth = 32

// ======================================================================================
// DIMENSION PARSING
// ======================================================================================

// ParseDimension parses a length/percentage/calc() expression into a
// Dimension, resolving var() references against vars first. fontSize is
// the element's own (already-resolved) font size, used for em; rem always
// resolves against the root's 16px baseline.
func ParseDimension(raw string, vars map[string]string, fontSize float64) (Dimension, bool) {
	value := strings.TrimSpace(resolveVars(raw, vars, 0))
	if value == "" {
		return Dimension{}, false
	}
	if value == "auto" {
		return Auto(), true
	}
	if strings.HasPrefix(value, "calc(") && strings.HasSuffix(value, ")") {
		pct, px, ok := evalCalc(value[len("calc(") : len(value)-1], fontSize)
		if !ok {
			return Dimension{}, false
		}
		return Calc(pct, px), true
	}
	return parseSimpleLength(value, fontSize)
}

// parseSimpleLength parses a single numeric token with a unit suffix
// (px, %, em, rem, unitless 0) into a Dimension.
func parseSimpleLength(value string, fontSize float64) (Dimension, bool) {
	value = strings.TrimSpace(value)
	switch {
	case strings.HasSuffix(value, "%"):
		n, ok := parseFloat(value[:len(value)-1])
		if !ok {
			return Dimension{}, false
		}
		return Percent(n / 100), true
	case strings.HasSuffix(value, "px"):
		n, ok := parseFloat(value[:len(value)-2])
		if !ok {
			return Dimension{}, false
		}
		return Px(n), true
	case strings.HasSuffix(value, "rem"):
		n, ok := parseFloat(value[:len(value)-3])
		if !ok {
			return Dimension{}, false
		}
		return Px(n * 16), true
	case strings.HasSuffix(value, "em"):
		n, ok := parseFloat(value[:len(value)-2])
		if !ok {
			return Dimension{}, false
		}
		return Px(n * fontSize), true
	default:
		n, ok := parseFloat(value)
		if !ok || n != 0 {
			return Dimension{}, false
		}
		return Px(0), true
	}
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ======================================================================================
// calc()
// ======================================================================================

// evalCalc evaluates the body of a calc() expression (no outer parens),
// returning separate percent (0..1) and px accumulators. Only + and - at
// the top level combine px and percent terms; a leading '-' is unary.
// Nested parens are supported for grouping but */÷ by a bare number is the
// only multiplicative operator since this engine has no general algebra.
func evalCalc(body string, fontSize float64) (pct, px float64, ok bool) {
	tokens := tokenizeCalc(body)
	if len(tokens) == 0 {
		return 0, 0, false
	}
	pct, px, rest, ok := parseCalcSum(tokens, fontSize)
	if !ok || len(rest) != 0 {
		return 0, 0, false
	}
	return pct, px, true
}

func tokenizeCalc(body string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	runes := []rune(body)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch c {
		case ' ', '\t', '\n':
			flush()
		case '+', '-', '*', '/', '(', ')':
			flush()
			tokens = append(tokens, string(c))
		default:
			cur.WriteRune(c)
		}
	}
	flush()
	return tokens
}

// parseCalcSum handles left-to-right +/- combination of terms, each of
// which may itself carry a multiplicative factor.
func parseCalcSum(tokens []string, fontSize float64) (pct, px float64, rest []string, ok bool) {
	sign := 1.0
	rest = tokens
	first := true
	for len(rest) > 0 {
		tok := rest[0]
		if tok == "+" || tok == "-" {
			if first {
				if tok == "-" {
					sign = -1
				}
				rest = rest[1:]
				continue
			}
			nextSign := 1.0
			if tok == "-" {
				nextSign = -1
			}
			rest = rest[1:]
			tp, tx, r, k := parseCalcTerm(rest, fontSize)
			if !k {
				return 0, 0, nil, false
			}
			pct += nextSign * tp
			px += nextSign * tx
			rest = r
			continue
		}
		if tok == ")" {
			break
		}
		tp, tx, r, k := parseCalcTerm(rest, fontSize)
		if !k {
			return 0, 0, nil, false
		}
		pct += sign * tp
		px += sign * tx
		rest = r
		first = false
	}
	return pct, px, rest, true
}

func parseCalcTerm(tokens []string, fontSize float64) (pct, px float64, rest []string, ok bool) {
	if len(tokens) == 0 {
		return 0, 0, nil, false
	}
	if tokens[0] == "(" {
		p, x, r, k := parseCalcSum(tokens[1:], fontSize)
		if !k || len(r) == 0 || r[0] != ")" {
			return 0, 0, nil, false
		}
		pct, px, rest = p, x, r[1:]
	} else {
		p, x, k := parseCalcAtom(tokens[0], fontSize)
		if !k {
			return 0, 0, nil, false
		}
		pct, px, rest = p, x, tokens[1:]
	}

	for len(rest) > 0 && (rest[0] == "*" || rest[0] == "/") {
		op := rest[0]
		if len(rest) < 2 {
			return 0, 0, nil, false
		}
		factor, ferr := strconv.ParseFloat(rest[1], 64)
		if ferr != nil {
			return 0, 0, nil, false
		}
		if op == "/" {
			if factor == 0 {
				return 0, 0, nil, false
			}
			factor = 1 / factor
		}
		pct *= factor
		px *= factor
		rest = rest[2:]
	}
	return pct, px, rest, true
}

func parseCalcAtom(tok string, fontSize float64) (pct, px float64, ok bool) {
	switch {
	case strings.HasSuffix(tok, "%"):
		n, k := parseFloat(tok[:len(tok)-1])
		if !k {
			return 0, 0, false
		}
		return n / 100, 0, true
	case strings.HasSuffix(tok, "px"):
		n, k := parseFloat(tok[:len(tok)-2])
		if !k {
			return 0, 0, false
		}
		return 0, n, true
	case strings.HasSuffix(tok, "rem"):
		n, k := parseFloat(tok[:len(tok)-3])
		if !k {
			return 0, 0, false
		}
		return 0, n * 16, true
	case strings.HasSuffix(tok, "em"):
		n, k := parseFloat(tok[:len(tok)-2])
		if !k {
			return 0, 0, false
		}
		return 0, n * fontSize, true
	default:
		n, k := parseFloat(tok)
		if !k {
			return 0, 0, false
		}
		return 0, n, true
	}
}

// ======================================================================================
// var()
// ======================================================================================

// resolveVars replaces var(--name[, fallback]) references in value with
// their binding in vars, recursing so a custom property can itself
// reference another, up to maxVarDepth. A reference with no binding and no
// fallback resolves to the empty string.
func resolveVars(value string, vars map[string]string, depth int) string {
	if depth >= maxVarDepth || !strings.Contains(value, "var(") {
		return value
	}
	var out strings.Builder
	i := 0
	for i < len(value) {
		idx := strings.Index(value[i:], "var(")
		if idx == -1 {
			out.WriteString(value[i:])
			break
		}
		out.WriteString(value[i : i+idx])
		start := i + idx + len("var(")
		depthParen := 1
		j := start
		for j < len(value) && depthParen > 0 {
			switch value[j] {
			case '(':
				depthParen++
			case ')':
				depthParen--
			}
			if depthParen == 0 {
				break
			}
			j++
		}
		inner := value[start:j]
		name, fallback := splitVarArgs(inner)
		resolved, found := vars[name]
		if !found {
			resolved = fallback
		}
		out.WriteString(resolveVars(resolved, vars, depth+1))
		i = j + 1
	}
	return out.String()
}

func splitVarArgs(inner string) (name, fallback string) {
	comma := strings.Index(inner, ",")
	if comma == -1 {
		return strings.TrimSpace(inner), ""
	}
	return strings.TrimSpace(inner[:comma]), strings.TrimSpace(inner[comma+1:])
}

// ExtractCustomProperties collects "--name: value" declarations so they can
// be threaded into ParseDimension/resolveVars for descendants. Custom
// properties are not inherited through the full cascade machinery here — a
// flat, document-wide table is enough for the patterns real pages use.
func ExtractCustomProperties(decls []Declaration) map[string]string {
	vars := make(map[string]string)
	for _, d := range decls {
		if strings.HasPrefix(d.Property, "--") {
			vars[d.Property] = d.Value
		}
	}
	return vars
}

// ======================================================================================
// SHORTHANDS
// ======================================================================================

// ParseEdgesShorthand parses the 1/2/3/4-value margin/padding/border-width
// shorthand grammar.
func ParseEdgesShorthand(value string, vars map[string]string, fontSize float64) (Edges, bool) {
	fields := strings.Fields(resolveVars(value, vars, 0))
	vals := make([]float64, 0, 4)
	for _, f := range fields {
		d, ok := parseSimpleLength(f, fontSize)
		if !ok {
			return Edges{}, false
		}
		vals = append(vals, d.Resolve(0))
	}
	switch len(vals) {
	case 1:
		return Edges{Top: vals[0], Right: vals[0], Bottom: vals[0], Left: vals[0]}, true
	case 2:
		return Edges{Top: vals[0], Bottom: vals[0], Right: vals[1], Left: vals[1]}, true
	case 3:
		return Edges{Top: vals[0], Right: vals[1], Left: vals[1], Bottom: vals[2]}, true
	case 4:
		return Edges{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, true
	}
	return Edges{}, false
}

// ParseFlexShorthand parses "flex: <grow> [<shrink>] [<basis>]" into its
// three components, defaulting shrink to 1 and basis to auto.
func ParseFlexShorthand(value string, vars map[string]string, fontSize float64) (grow, shrink float64, basis Dimension, ok bool) {
	fields := strings.Fields(resolveVars(value, vars, 0))
	if len(fields) == 0 {
		return 0, 0, Dimension{}, false
	}
	shrink = 1
	basis = Auto()
	if fields[0] == "none" {
		return 0, 0, Px(0), true
	}
	if n, k := parseFloat(fields[0]); k {
		grow = n
	} else {
		return 0, 0, Dimension{}, false
	}
	if len(fields) >= 2 {
		if n, k := parseFloat(fields[1]); k {
			shrink = n
		} else if d, k := ParseDimension(fields[1], vars, fontSize); k {
			basis = d
			return grow, shrink, basis, true
		}
	}
	if len(fields) >= 3 {
		if d, k := ParseDimension(fields[2], vars, fontSize); k {
			basis = d
		}
	}
	return grow, shrink, basis, true
}

// ParseGridTemplate parses a grid-template-columns/rows value, expanding
// repeat(N, ...) by textual duplication of its track list.
func ParseGridTemplate(value string, vars map[string]string, fontSize float64) []GridTrack {
	value = resolveVars(value, vars, 0)
	value = expandGridRepeats(value)
	var tracks []GridTrack
	for _, tok := range splitTopLevel(value) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if t, ok := parseGridTrack(tok, fontSize); ok {
			tracks = append(tracks, t)
		}
	}
	return tracks
}

func expandGridRepeats(value string) string {
	for {
		idx := strings.Index(value, "repeat(")
		if idx == -1 {
			return value
		}
		start := idx + len("repeat(")
		depth := 1
		j := start
		for j < len(value) && depth > 0 {
			switch value[j] {
			case '(':
				depth++
			case ')':
				depth--
			}
			if depth == 0 {
				break
			}
			j++
		}
		inner := value[start:j]
		comma := strings.Index(inner, ",")
		if comma == -1 {
			return value[:idx] + value[j+1:]
		}
		countStr := strings.TrimSpace(inner[:comma])
		trackList := strings.TrimSpace(inner[comma+1:])
		count, err := strconv.Atoi(countStr)
		if err != nil || count < 1 {
			count = 1
		}
		if count > 64 {
			count = 64 // pathological input guard; no real layout needs more
		}
		expanded := strings.TrimSpace(strings.Repeat(trackList+" ", count))
		value = value[:idx] + expanded + value[j+1:]
	}
}

func splitTopLevel(value string) []string {
	var out []string
	var cur strings.Builder
	depth := 0
	for _, c := range value {
		switch c {
		case '(':
			depth++
			cur.WriteRune(c)
		case ')':
			depth--
			cur.WriteRune(c)
		case ' ', '\t', '\n':
			if depth == 0 {
				if cur.Len() > 0 {
					out = append(out, cur.String())
					cur.Reset()
				}
			} else {
				cur.WriteRune(c)
			}
		default:
			cur.WriteRune(c)
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

func parseGridTrack(tok string, fontSize float64) (GridTrack, bool) {
	switch tok {
	case "auto":
		return GridTrack{Kind: GridTrackAuto}, true
	case "min-content":
		return GridTrack{Kind: GridTrackMinContent}, true
	case "max-content":
		return GridTrack{Kind: GridTrackMaxContent}, true
	}
	if strings.HasSuffix(tok, "fr") {
		n, ok := parseFloat(tok[:len(tok)-2])
		if !ok {
			return GridTrack{}, false
		}
		return GridTrack{Kind: GridTrackFr, Value: n}, true
	}
	if strings.HasSuffix(tok, "%") {
		n, ok := parseFloat(tok[:len(tok)-1])
		if !ok {
			return GridTrack{}, false
		}
		return GridTrack{Kind: GridTrackPercent, Value: n / 100}, true
	}
	if d, ok := parseSimpleLength(tok, fontSize); ok && !d.IsAuto() {
		return GridTrack{Kind: GridTrackPx, Value: d.Resolve(0)}, true
	}
	return GridTrack{}, false
}

// ParseGridPlacement parses a grid-column/grid-row value: a bare line
// number, "N / M", or "N / span M". A value with no start line, such as a
// bare "span N", is not recognized and yields no placement.
func ParseGridPlacement(value string) (*GridPlacement, bool) {
	value = strings.TrimSpace(value)
	if value == "" || value == "auto" {
		return nil, false
	}
	parts := strings.Split(value, "/")
	start, ok := parseGridLine(strings.TrimSpace(parts[0]))
	if !ok {
		return nil, false
	}
	if len(parts) == 1 {
		return &GridPlacement{Start: start, End: start + 1}, true
	}
	second := strings.TrimSpace(parts[1])
	if strings.HasPrefix(second, "span") {
		n, ok := parseFloat(strings.TrimSpace(strings.TrimPrefix(second, "span")))
		if !ok {
			return &GridPlacement{Start: start, End: start + 1}, true
		}
		return &GridPlacement{Start: start, End: start + int16(n)}, true
	}
	end, ok := parseGridLine(second)
	if !ok {
		return &GridPlacement{Start: start, End: start + 1}, true
	}
	return &GridPlacement{Start: start, End: end}, true
}

func parseGridLine(s string) (int16, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int16(n), true
}
