package spatial

import (
	"regexp"
	"strconv"
	"strings"
)

// Tables extracts a single best-guess table from the dom's visible elements:
// rows of td/th grouped by y-coordinate, with the first row treated as a
// header if it is made up of th elements. Multi-table pages collapse to one
// TableData — a deliberate simplification matching the source behavior.
func (d *SpatialDom) Tables() *TableData {
	var cells []*SpatialElement
	for _, e := range d.Visible() {
		if e.Tag == "td" || e.Tag == "th" {
			cells = append(cells, e)
		}
	}
	if len(cells) == 0 {
		return nil
	}

	rows := sortByRow(cells, 5)
	if len(rows) == 0 {
		return nil
	}

	var headers []string
	startRow := 0
	allTh := true
	for _, c := range rows[0] {
		if c.Tag != "th" {
			allTh = false
			break
		}
	}
	if allTh {
		for _, c := range rows[0] {
			headers = append(headers, cellText(c))
		}
		startRow = 1
	}

	var dataRows [][]string
	for _, row := range rows[startRow:] {
		var cols []string
		for _, c := range row {
			cols = append(cols, cellText(c))
		}
		dataRows = append(dataRows, cols)
	}

	return &TableData{Headers: headers, Rows: dataRows}
}

func cellText(e *SpatialElement) string {
	if e.Text != nil {
		return *e.Text
	}
	return ""
}

var nextKeywords = []string{"next", "›", "»", "more"}
var prevKeywords = []string{"prev", "previous", "‹", "«", "back"}

// Pagination scans visible anchors for next/prev keyword matches (including
// the common Unicode chevron glyphs) and numbered-page links.
func (d *SpatialDom) Pagination() *Pagination {
	var p Pagination
	for _, e := range d.Visible() {
		if e.Tag != "a" || e.Href == nil || e.Text == nil {
			continue
		}
		text := strings.ToLower(strings.TrimSpace(*e.Text))
		href := *e.Href

		if p.Next == nil && containsAny(text, nextKeywords...) {
			h := href
			p.Next = &h
			continue
		}
		if p.Prev == nil && containsAny(text, prevKeywords...) {
			h := href
			p.Prev = &h
			continue
		}
		if isNumericPageLabel(text) {
			p.Pages = append(p.Pages, [2]string{text, href})
		}
	}
	if p.Next == nil && p.Prev == nil && len(p.Pages) == 0 {
		return nil
	}
	return &p
}

func isNumericPageLabel(text string) bool {
	if text == "" || len(text) > 4 {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var codeKeywordPattern = []string{"code", "otp", "pin", "token"}
var digitRunRegexp = regexp.MustCompile(`\d{4,8}`)

// FindCodes searches visible text for short verification codes: either text
// containing a code-related keyword, or text located within 100px
// vertically of a short (<80 char) keyword-bearing label. Pure 4-digit
// numbers that look like a year (1900-2099) are rejected to avoid matching
// copyright lines and the like. Results preserve first-occurrence order and
// are deduplicated.
func (d *SpatialDom) FindCodes() []string {
	visible := d.Visible()

	var keywordEls []*SpatialElement
	for _, e := range visible {
		if e.Text == nil {
			continue
		}
		if containsAny(strings.ToLower(*e.Text), codeKeywordPattern...) {
			keywordEls = append(keywordEls, e)
		}
	}

	seen := make(map[string]bool)
	var codes []string
	addCode := func(code string) {
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}

	for _, e := range visible {
		if e.Text == nil {
			continue
		}
		text := *e.Text
		ownKeyword := containsAny(strings.ToLower(text), codeKeywordPattern...)

		near := ownKeyword
		if !near {
			for _, k := range keywordEls {
				if k == e || len(*k.Text) >= 80 {
					continue
				}
				if dy(e, k) <= 100 {
					near = true
					break
				}
			}
		}
		if !near {
			continue
		}

		for _, match := range digitRunRegexp.FindAllString(text, -1) {
			if len(match) == 4 {
				if n, err := strconv.Atoi(match); err == nil && n >= 1900 && n <= 2099 {
					continue
				}
			}
			addCode(match)
		}
	}
	return codes
}

// Alerts returns visible elements carrying a non-nil AlertType.
func (d *SpatialDom) Alerts() []*SpatialElement {
	var out []*SpatialElement
	for _, e := range d.Visible() {
		if e.AlertType != nil {
			out = append(out, e)
		}
	}
	return out
}
