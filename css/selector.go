package css

import (
	"strings"

	"github.com/arturoeanton/gospatial/dom"
)

// SelectorPartKind discriminates the components of a selector chain.
type SelectorPartKind int

const (
	PartTag SelectorPartKind = iota
	PartClass
	PartID
	PartAttribute
	PartDescendant
	PartChild
	PartUniversal
	PartPseudoClass
)

// AttrMatchKind enumerates the attribute-selector match operators.
type AttrMatchKind int

const (
	AttrExists AttrMatchKind = iota
	AttrExact
	AttrWord
	AttrPrefix
	AttrSuffix
	AttrContains
	AttrHyphenPrefix
)

// AttrMatch pairs an operator with its comparison value (unused for Exists).
type AttrMatch struct {
	Kind  AttrMatchKind
	Value string
}

// SelectorPart is one component of a selector chain: a simple selector
// (tag/class/id/attribute/universal/pseudo-class) or a combinator.
type SelectorPart struct {
	Kind      SelectorPartKind
	Tag       string
	Class     string
	ID        string
	AttrName  string
	AttrMatch AttrMatch
	Pseudo    string
}

// Selector is a single (non-comma-separated) selector together with its
// specificity: id worth 100, class/attribute/pseudo-class worth 10, tag
// worth 1, summed across the whole chain.
type Selector struct {
	Parts       []SelectorPart
	Specificity int
}

// Rule binds one selector branch to its raw declaration text. A
// comma-separated selector list is split into one Rule per branch so each
// carries its own specificity for the cascade sort.
type Rule struct {
	Selector     Selector
	Declarations string
	Order        int
}

// ParseSelectorList parses a comma-separated selector_text into one
// Selector per branch, dropping branches that fail to parse.
func ParseSelectorList(text string) []Selector {
	var out []Selector
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if sel, ok := parseSelector(part); ok {
			out = append(out, sel)
		}
	}
	return out
}

func parseSelector(input string) (Selector, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Selector{}, false
	}

	var parts []SelectorPart
	specificity := 0
	var current strings.Builder
	runes := []rune(input)
	i := 0

	flushTag := func() {
		tag := strings.TrimSpace(current.String())
		if tag != "" {
			parts = append(parts, SelectorPart{Kind: PartTag, Tag: strings.ToLower(tag)})
			specificity++
		}
		current.Reset()
	}

	readIdent := func() string {
		start := i
		for i < len(runes) {
			c := runes[i]
			if isAlnum(c) || c == '-' || c == '_' {
				i++
				continue
			}
			break
		}
		return string(runes[start:i])
	}

	for i < len(runes) {
		ch := runes[i]
		switch ch {
		case '.':
			flushTag()
			i++
			name := readIdent()
			if name != "" {
				parts = append(parts, SelectorPart{Kind: PartClass, Class: name})
				specificity += 10
			}
		case '#':
			flushTag()
			i++
			name := readIdent()
			if name != "" {
				parts = append(parts, SelectorPart{Kind: PartID, ID: name})
				specificity += 100
			}
		case '[':
			flushTag()
			i++
			var attr strings.Builder
			match := AttrMatch{Kind: AttrExists}
			for i < len(runes) && runes[i] != ']' {
				c := runes[i]
				switch c {
				case '~', '^', '$', '*', '|':
					op := c
					i++
					if i < len(runes) && runes[i] == '=' {
						i++
						val := readAttrValue(runes, &i)
						kind := AttrExists
						switch op {
						case '~':
							kind = AttrWord
						case '^':
							kind = AttrPrefix
						case '$':
							kind = AttrSuffix
						case '*':
							kind = AttrContains
						case '|':
							kind = AttrHyphenPrefix
						}
						match = AttrMatch{Kind: kind, Value: val}
					}
				case '=':
					i++
					val := readAttrValue(runes, &i)
					match = AttrMatch{Kind: AttrExact, Value: val}
				default:
					attr.WriteRune(c)
					i++
				}
			}
			if i < len(runes) && runes[i] == ']' {
				i++
			}
			parts = append(parts, SelectorPart{
				Kind: PartAttribute, AttrName: strings.TrimSpace(attr.String()), AttrMatch: match,
			})
			specificity += 10
		case ':':
			flushTag()
			i++
			if i < len(runes) && runes[i] == ':' {
				i++
			}
			pseudo := readIdent()
			if i < len(runes) && runes[i] == '(' {
				depth := 1
				i++
				for i < len(runes) && depth > 0 {
					switch runes[i] {
					case '(':
						depth++
					case ')':
						depth--
					}
					i++
				}
			}
			parts = append(parts, SelectorPart{Kind: PartPseudoClass, Pseudo: pseudo})
			specificity += 10
		case '>':
			flushTag()
			i++
			for i < len(runes) && isSpace(runes[i]) {
				i++
			}
			parts = append(parts, SelectorPart{Kind: PartChild})
		case ' ', '\t', '\n', '\r':
			flushTag()
			i++
			for i < len(runes) && isSpace(runes[i]) {
				i++
			}
			if i < len(runes) {
				next := runes[i]
				if next != '>' && next != '+' && next != '~' {
					parts = append(parts, SelectorPart{Kind: PartDescendant})
				}
			}
		case '*':
			flushTag()
			i++
			parts = append(parts, SelectorPart{Kind: PartUniversal})
		default:
			current.WriteRune(ch)
			i++
		}
	}
	flushTag()

	if len(parts) == 0 {
		return Selector{}, false
	}
	return Selector{Parts: parts, Specificity: specificity}, true
}

func readAttrValue(runes []rune, i *int) string {
	var val strings.Builder
	if *i < len(runes) && (runes[*i] == '"' || runes[*i] == '\'') {
		quote := runes[*i]
		*i++
		for *i < len(runes) && runes[*i] != quote {
			val.WriteRune(runes[*i])
			*i++
		}
		if *i < len(runes) {
			*i++
		}
	} else {
		for *i < len(runes) && runes[*i] != ']' {
			val.WriteRune(runes[*i])
			*i++
		}
	}
	return strings.TrimSpace(val.String())
}

func isAlnum(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// Matches reports whether sel matches node, given its ancestor chain from
// root (index 0) to immediate parent (last index) — the call-stack
// equivalent of a parent pointer (see dom.WalkWithAncestors).
func Matches(sel Selector, node *dom.Node, ancestors []dom.Ancestor) bool {
	if len(sel.Parts) == 0 {
		return false
	}

	var segments [][]SelectorPart
	var combinatorAfter []SelectorPartKind
	var cur []SelectorPart
	for _, p := range sel.Parts {
		if p.Kind == PartDescendant || p.Kind == PartChild {
			if len(cur) > 0 {
				segments = append(segments, cur)
				combinatorAfter = append(combinatorAfter, p.Kind)
				cur = nil
			}
			continue
		}
		cur = append(cur, p)
	}
	if len(cur) > 0 {
		segments = append(segments, cur)
	}
	if len(segments) == 0 {
		return false
	}

	last := segments[len(segments)-1]
	if !segmentMatches(last, node) {
		return false
	}
	if len(segments) == 1 {
		return true
	}

	segIdx := len(segments) - 2
	ancIdx := len(ancestors)
	for {
		segment := segments[segIdx]
		isChild := combinatorAfter[segIdx] == PartChild

		found := false
		for ancIdx > 0 {
			ancIdx--
			anc := ancestors[ancIdx]
			if ancestorSegmentMatches(segment, anc) {
				found = true
				break
			}
			if isChild {
				return false
			}
		}
		if !found {
			return false
		}
		if segIdx == 0 {
			return true
		}
		segIdx--
	}
}

func segmentMatches(segment []SelectorPart, node *dom.Node) bool {
	tag := strings.ToLower(node.Tag)
	classes := node.Classes()
	id := node.GetAttr("id")
	for _, part := range segment {
		switch part.Kind {
		case PartTag:
			if part.Tag != tag {
				return false
			}
		case PartClass:
			if !containsStr(classes, part.Class) {
				return false
			}
		case PartID:
			if id != part.ID {
				return false
			}
		case PartAttribute:
			if !attrMatches(node, part) {
				return false
			}
		case PartUniversal, PartPseudoClass, PartDescendant, PartChild:
			// Universal matches everything; pseudo-classes don't affect
			// layout geometry; combinators are handled by the caller.
		}
	}
	return true
}

// ancestorSegmentMatches matches a segment against the coarse ancestor
// record. Attribute selectors never match an ancestor position — only the
// rightmost segment (matched via segmentMatches against the live node) can
// see attributes, a deliberate simplification since ancestor records only
// carry tag/id/class.
func ancestorSegmentMatches(segment []SelectorPart, anc dom.Ancestor) bool {
	for _, part := range segment {
		switch part.Kind {
		case PartTag:
			if part.Tag != strings.ToLower(anc.Tag) {
				return false
			}
		case PartClass:
			if !containsStr(anc.Classes, part.Class) {
				return false
			}
		case PartID:
			if anc.ID != part.ID {
				return false
			}
		case PartAttribute:
			return false
		}
	}
	return true
}

func attrMatches(node *dom.Node, part SelectorPart) bool {
	name := part.AttrName
	switch part.AttrMatch.Kind {
	case AttrExists:
		return node.HasAttr(name)
	case AttrExact:
		return node.HasAttr(name) && node.GetAttr(name) == part.AttrMatch.Value
	case AttrWord:
		if !node.HasAttr(name) {
			return false
		}
		for _, w := range strings.Fields(node.GetAttr(name)) {
			if w == part.AttrMatch.Value {
				return true
			}
		}
		return false
	case AttrPrefix:
		return node.HasAttr(name) && strings.HasPrefix(node.GetAttr(name), part.AttrMatch.Value)
	case AttrSuffix:
		return node.HasAttr(name) && strings.HasSuffix(node.GetAttr(name), part.AttrMatch.Value)
	case AttrContains:
		return node.HasAttr(name) && strings.Contains(node.GetAttr(name), part.AttrMatch.Value)
	case AttrHyphenPrefix:
		if !node.HasAttr(name) {
			return false
		}
		v := node.GetAttr(name)
		return v == part.AttrMatch.Value || strings.HasPrefix(v, part.AttrMatch.Value+"-")
	}
	return false
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ======================================================================================
// SELECTOR INDEX
// ======================================================================================

// SelectorIndex buckets rules by the rightmost simple-selector component so
// candidate lookup for an element need not test every rule in the sheet.
// Exposed as its own type so it can be built and queried independently of
// the cascade.
type SelectorIndex struct {
	byTag     map[string][]int
	byClass   map[string][]int
	byID      map[string][]int
	universal []int
}

// BuildSelectorIndex indexes rules by their rightmost simple selector.
func BuildSelectorIndex(rules []Rule) *SelectorIndex {
	idx := &SelectorIndex{
		byTag:   make(map[string][]int),
		byClass: make(map[string][]int),
		byID:    make(map[string][]int),
	}
	for i, r := range rules {
		kind, val := rightmostSimple(r.Selector)
		switch kind {
		case PartTag:
			idx.byTag[val] = append(idx.byTag[val], i)
		case PartClass:
			idx.byClass[val] = append(idx.byClass[val], i)
		case PartID:
			idx.byID[val] = append(idx.byID[val], i)
		default:
			idx.universal = append(idx.universal, i)
		}
	}
	return idx
}

func rightmostSimple(sel Selector) (SelectorPartKind, string) {
	for i := len(sel.Parts) - 1; i >= 0; i-- {
		p := sel.Parts[i]
		switch p.Kind {
		case PartDescendant, PartChild:
			continue
		case PartTag:
			return PartTag, p.Tag
		case PartClass:
			return PartClass, p.Class
		case PartID:
			return PartID, p.ID
		default:
			return PartUniversal, ""
		}
	}
	return PartUniversal, ""
}

// CandidatesFor returns the deduplicated, order-preserving set of rule
// indices that might match an element with the given tag/classes/id.
func (idx *SelectorIndex) CandidatesFor(tag string, classes []string, id string) []int {
	seen := make(map[int]bool)
	var out []int
	add := func(is []int) {
		for _, i := range is {
			if !seen[i] {
				seen[i] = true
				out = append(out, i)
			}
		}
	}
	add(idx.universal)
	add(idx.byTag[tag])
	for _, c := range classes {
		add(idx.byClass[c])
	}
	if id != "" {
		add(idx.byID[id])
	}
	insertionSort(out)
	return out
}

func insertionSort(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
