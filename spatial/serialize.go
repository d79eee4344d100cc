package spatial

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// spatialDomWire mirrors SpatialDom's wire shape but keeps SuggestedActions
// as raw JSON so the polymorphic "action" discriminator can be resolved
// before final decoding.
type spatialDomWire struct {
	URL              string            `json:"url"`
	Title            string            `json:"title"`
	Vp               [2]float64        `json:"vp"`
	Scroll           [2]float64        `json:"scroll"`
	SuggestedActions []json.RawMessage `json:"suggested_actions,omitempty"`
	PageType         PageType          `json:"page_type,omitempty"`
	Els              []*SpatialElement `json:"els"`
}

// UnmarshalJSON resolves each suggested_actions entry's "action" tag to its
// concrete Go type before decoding the rest of its fields.
func (d *SpatialDom) UnmarshalJSON(data []byte) error {
	var w spatialDomWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	d.URL, d.Title, d.Vp, d.Scroll, d.PageType, d.Els = w.URL, w.Title, w.Vp, w.Scroll, w.PageType, w.Els

	d.SuggestedActions = nil
	for _, raw := range w.SuggestedActions {
		action, err := decodeSuggestedAction(raw)
		if err != nil {
			return err
		}
		d.SuggestedActions = append(d.SuggestedActions, action)
	}
	return nil
}

func decodeSuggestedAction(raw json.RawMessage) (SuggestedAction, error) {
	var tag struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, err
	}
	switch tag.Action {
	case "Login":
		var a LoginAction
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, err
		}
		return a, nil
	case "EnterCode":
		var a EnterCodeAction
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, err
		}
		return a, nil
	case "Search":
		var a SearchAction
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, err
		}
		return a, nil
	case "Consent":
		var a ConsentAction
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, err
		}
		return a, nil
	case "SelectFromList":
		var a SelectFromListAction
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("spatial: unknown suggested action tag %q", tag.Action)
	}
}

// FromJSON deserializes a SpatialDom and rebuilds its id index.
func FromJSON(data []byte) (*SpatialDom, error) {
	d := &SpatialDom{}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, err
	}
	d.RebuildIndex()
	return d, nil
}

// ToCompactString renders the extreme-token-budget text format: one element
// per line, of the form
// [<prefix><id>:<tag>[:<type>] (<markers>)... "text-or-placeholder" -><href> @x,y WxH]
func ToCompactString(dom *SpatialDom) string {
	var lines []string
	for _, el := range dom.Els {
		lines = append(lines, compactElementLine(el, ""))
	}
	return strings.Join(lines, "\n")
}

// compactElementLine renders one element; prefixSign is "+" for delta-added
// elements and "" for a full compact dump (which uses "!" for hidden
// instead).
func compactElementLine(el *SpatialElement, prefixSign string) string {
	var parts []string

	idPrefix := prefixSign
	if prefixSign == "" && el.isHidden() {
		idPrefix = "!"
	}
	head := fmt.Sprintf("%s%d:%s", idPrefix, el.ID, el.Tag)
	if el.InputType != nil && *el.InputType != "text" {
		head += ":" + *el.InputType
	}
	parts = append(parts, head)

	if prefixSign == "" {
		if el.Name != nil {
			parts = append(parts, fmt.Sprintf("[%s]", *el.Name))
		}
		if el.Checked != nil && *el.Checked {
			parts = append(parts, "[v]")
		}
		if el.Required != nil && *el.Required {
			parts = append(parts, "[*]")
		}
		if el.Val != nil && *el.Val != "" {
			parts = append(parts, fmt.Sprintf("[=%s]", *el.Val))
		}
	}

	if el.Text != nil {
		parts = append(parts, fmt.Sprintf("%q", *el.Text))
	} else if el.Ph != nil {
		parts = append(parts, fmt.Sprintf("%q", *el.Ph))
	}

	if el.Href != nil {
		parts = append(parts, "->"+*el.Href)
	}

	parts = append(parts, fmt.Sprintf("@%d,%d %dx%d", el.B[0], el.B[1], el.B[2], el.B[3]))

	return "[" + strings.Join(parts, " ") + "]"
}

// elementKey is the content-identity used by Diff to match elements across
// two SpatialDoms — not by id, since ids are assigned sequentially and
// shift whenever the document changes shape.
type elementKey struct {
	tag       string
	text      string
	ph        string
	href      string
	inputType string
	b         [4]int32
}

func keyOf(e *SpatialElement) elementKey {
	k := elementKey{tag: e.Tag, b: e.B}
	if e.Text != nil {
		k.text = *e.Text
	}
	if e.Ph != nil {
		k.ph = *e.Ph
	}
	if e.Href != nil {
		k.href = *e.Href
	}
	if e.InputType != nil {
		k.inputType = *e.InputType
	}
	return k
}

// Diff computes the delta between two SpatialDoms: elements added or
// changed in new, and ids of elements present in old but absent from new.
// Matching is by content key, not id.
func Diff(old, newDom *SpatialDom) DeltaDom {
	oldSet := make(map[elementKey]bool, len(old.Els))
	for _, e := range old.Els {
		oldSet[keyOf(e)] = true
	}
	newSet := make(map[elementKey]bool, len(newDom.Els))
	for _, e := range newDom.Els {
		newSet[keyOf(e)] = true
	}

	var delta DeltaDom
	for _, e := range newDom.Els {
		if !oldSet[keyOf(e)] {
			delta.Changed = append(delta.Changed, e)
		}
	}
	for _, e := range old.Els {
		if !newSet[keyOf(e)] {
			delta.Removed = append(delta.Removed, e.ID)
		}
	}
	return delta
}

// DeltaToCompactString renders a DeltaDom in the same punctuation family as
// ToCompactString: a leading "-[ids...]" line for removals, then one "+"
// line per changed element.
func DeltaToCompactString(delta DeltaDom) string {
	var lines []string
	if len(delta.Removed) > 0 {
		ids := make([]string, len(delta.Removed))
		for i, id := range delta.Removed {
			ids[i] = fmt.Sprintf("%d", id)
		}
		lines = append(lines, "-["+strings.Join(ids, ",")+"]")
	}
	for _, el := range delta.Changed {
		lines = append(lines, compactElementLine(el, "+"))
	}
	return strings.Join(lines, "\n")
}

// sortByRow groups elements into rows by y-coordinate (elements within
// tolerance px of each other's y are the same row), sorted by (y, x) first.
func sortByRow(elements []*SpatialElement, tolerance int32) [][]*SpatialElement {
	if len(elements) == 0 {
		return nil
	}
	sorted := append([]*SpatialElement(nil), elements...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].B[1] != sorted[j].B[1] {
			return sorted[i].B[1] < sorted[j].B[1]
		}
		return sorted[i].B[0] < sorted[j].B[0]
	})

	var rows [][]*SpatialElement
	current := []*SpatialElement{sorted[0]}
	currentY := sorted[0].B[1]
	for _, el := range sorted[1:] {
		if abs32(el.B[1]-currentY) <= tolerance {
			current = append(current, el)
		} else {
			rows = append(rows, current)
			current = []*SpatialElement{el}
			currentY = el.B[1]
		}
	}
	rows = append(rows, current)
	return rows
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
