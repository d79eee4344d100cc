// Package spatial implements Components D and E of the pipeline: walking a
// laid-out tree into the flat, id-addressable Spatial DOM, then classifying
// the page and suggesting agent actions against it.
package spatial

import "encoding/json"

// PageType is a coarse document classification used by agents to pick a
// strategy (login vs list vs article, etc.). The zero value, PageOther, is
// the empty string rather than the literal "Other" so the standard
// encoding/json omitempty tag drops it from the wire format without any
// custom marshaling — a page with no specific classification simply omits
// page_type entirely.
type PageType string

const (
	PageOther         PageType = ""
	PageLogin         PageType = "Login"
	PageTwoFactorAuth PageType = "TwoFactorAuth"
	PageOAuthConsent  PageType = "OAuthConsent"
	PageCaptcha       PageType = "Captcha"
	PageSearch        PageType = "Search"
	PageSearchResults PageType = "SearchResults"
	PageInbox         PageType = "Inbox"
	PageEmailBody     PageType = "EmailBody"
	PageDashboard     PageType = "Dashboard"
	PageForm          PageType = "Form"
	PageArticle       PageType = "Article"
	PageList          PageType = "List"
	PageError         PageType = "Error"
)

// String renders the display name for a PageType, mapping the empty
// zero-value back to "Other" for logging and debugging output.
func (p PageType) String() string {
	if p == PageOther {
		return "Other"
	}
	return string(p)
}

// SpatialElement is one emitted element of a SpatialDom. Every field besides
// Id, Tag and B is optional and modeled as a pointer so encoding/json can
// omit it from the wire format when absent, matching the source payload's
// Option<T> fields.
type SpatialElement struct {
	ID   uint32 `json:"id"`
	Tag  string `json:"tag"`
	Role *string `json:"role,omitempty"`
	Text *string `json:"text,omitempty"`
	Ph   *string `json:"ph,omitempty"`
	Href *string `json:"href,omitempty"`
	Val  *string `json:"val,omitempty"`
	// InputType serializes under the wire name "type".
	InputType *string `json:"type,omitempty"`
	Disabled  *bool   `json:"disabled,omitempty"`
	Checked   *bool   `json:"checked,omitempty"`
	Expanded  *bool   `json:"expanded,omitempty"`
	Selected  *bool   `json:"selected,omitempty"`
	Required  *bool   `json:"required,omitempty"`
	Name      *string `json:"name,omitempty"`
	Label     *string `json:"label,omitempty"`
	AlertType *string `json:"alert_type,omitempty"`
	Hidden    *bool   `json:"hidden,omitempty"`
	// B is the rounded bounds [x, y, w, h].
	B [4]int32 `json:"b"`
}

func (e *SpatialElement) isHidden() bool {
	return e.Hidden != nil && *e.Hidden
}

// SuggestedAction is a typed, id-referencing hint bundling the fields needed
// to perform a common multi-step interaction. Implementations are the five
// variants named below; an implementer may add more.
type SuggestedAction interface {
	ActionTag() string
}

type LoginAction struct {
	UsernameID   uint32  `json:"username_id"`
	PasswordID   uint32  `json:"password_id"`
	SubmitID     uint32  `json:"submit_id"`
	RememberMeID *uint32 `json:"remember_me_id,omitempty"`
}

func (LoginAction) ActionTag() string { return "Login" }

func (a LoginAction) MarshalJSON() ([]byte, error) {
	type alias LoginAction
	return json.Marshal(struct {
		Action string `json:"action"`
		alias
	}{"Login", alias(a)})
}

type EnterCodeAction struct {
	InputID    uint32 `json:"input_id"`
	SubmitID   uint32 `json:"submit_id"`
	CodeLength *int   `json:"code_length,omitempty"`
}

func (EnterCodeAction) ActionTag() string { return "EnterCode" }

func (a EnterCodeAction) MarshalJSON() ([]byte, error) {
	type alias EnterCodeAction
	return json.Marshal(struct {
		Action string `json:"action"`
		alias
	}{"EnterCode", alias(a)})
}

type SearchAction struct {
	InputID  uint32 `json:"input_id"`
	SubmitID uint32 `json:"submit_id"`
}

func (SearchAction) ActionTag() string { return "Search" }

func (a SearchAction) MarshalJSON() ([]byte, error) {
	type alias SearchAction
	return json.Marshal(struct {
		Action string `json:"action"`
		alias
	}{"Search", alias(a)})
}

type ConsentAction struct {
	ApproveIDs []uint32 `json:"approve_ids"`
	DenyIDs    []uint32 `json:"deny_ids"`
}

func (ConsentAction) ActionTag() string { return "Consent" }

func (a ConsentAction) MarshalJSON() ([]byte, error) {
	type alias ConsentAction
	return json.Marshal(struct {
		Action string `json:"action"`
		alias
	}{"Consent", alias(a)})
}

type SelectFromListAction struct {
	Items []uint32 `json:"items"`
}

func (SelectFromListAction) ActionTag() string { return "SelectFromList" }

func (a SelectFromListAction) MarshalJSON() ([]byte, error) {
	type alias SelectFromListAction
	return json.Marshal(struct {
		Action string `json:"action"`
		alias
	}{"SelectFromList", alias(a)})
}

// SpatialDom is the primary output of the pipeline: a flat, id-addressable
// list of elements plus page-level classification.
type SpatialDom struct {
	URL              string            `json:"url"`
	Title            string            `json:"title"`
	Vp               [2]float64        `json:"vp"`
	Scroll           [2]float64        `json:"scroll"`
	SuggestedActions []SuggestedAction `json:"suggested_actions,omitempty"`
	PageType         PageType          `json:"page_type,omitempty"`
	Els              []*SpatialElement `json:"els"`

	// idIndex is rebuilt by RebuildIndex whenever Els is mutated externally;
	// it is never part of the wire format.
	idIndex map[uint32]int

	// SnapshotID is internal bookkeeping for correlating log lines across a
	// single parse call; it is not part of the wire contract.
	SnapshotID string `json:"-"`
}

// Get is an O(1) lookup of an element by id.
func (d *SpatialDom) Get(id uint32) (*SpatialElement, bool) {
	if d.idIndex == nil {
		d.RebuildIndex()
	}
	idx, ok := d.idIndex[id]
	if !ok {
		return nil, false
	}
	return d.Els[idx], true
}

// RebuildIndex recomputes the id → index lookup. Call after mutating Els.
func (d *SpatialDom) RebuildIndex() {
	d.idIndex = make(map[uint32]int, len(d.Els))
	for i, e := range d.Els {
		d.idIndex[e.ID] = i
	}
}

// Visible returns only the non-hidden elements.
func (d *SpatialDom) Visible() []*SpatialElement {
	out := make([]*SpatialElement, 0, len(d.Els))
	for _, e := range d.Els {
		if !e.isHidden() {
			out = append(out, e)
		}
	}
	return out
}

// AboveFold returns elements whose top edge is within the viewport.
func (d *SpatialDom) AboveFold() []*SpatialElement {
	foldY := int32(d.Vp[1])
	out := make([]*SpatialElement, 0, len(d.Els))
	for _, e := range d.Els {
		if e.B[1] < foldY {
			out = append(out, e)
		}
	}
	return out
}

// BelowFold returns elements whose top edge is below the viewport.
func (d *SpatialDom) BelowFold() []*SpatialElement {
	foldY := int32(d.Vp[1])
	out := make([]*SpatialElement, 0, len(d.Els))
	for _, e := range d.Els {
		if e.B[1] >= foldY {
			out = append(out, e)
		}
	}
	return out
}

// FilterAboveFold returns a new SpatialDom containing only above-fold
// elements, for token-limited contexts.
func (d *SpatialDom) FilterAboveFold() *SpatialDom {
	foldY := int32(d.Vp[1])
	els := make([]*SpatialElement, 0, len(d.Els))
	for _, e := range d.Els {
		if e.B[1] < foldY {
			els = append(els, e)
		}
	}
	out := &SpatialDom{
		URL: d.URL, Title: d.Title, Vp: d.Vp, Scroll: d.Scroll,
		SuggestedActions: d.SuggestedActions, PageType: d.PageType, Els: els,
	}
	out.RebuildIndex()
	return out
}

// PageStatistics is a small derived-counts summary over a SpatialDom's
// elements, useful for logging and for agents budgeting how much of the
// page to inspect. It is not part of the JSON wire contract (§6) — only a
// convenience method — so it cannot break the serialization round-trip
// invariant.
type PageStatistics struct {
	TotalElements int
	Interactive   int
	Links         int
}

// Stats computes PageStatistics over the dom's current elements.
func (d *SpatialDom) Stats() PageStatistics {
	var s PageStatistics
	s.TotalElements = len(d.Els)
	for _, e := range d.Els {
		if e.Role != nil && *e.Role == "link" {
			s.Links++
		}
		switch e.Tag {
		case "a", "button", "input", "select", "textarea", "details", "summary":
			s.Interactive++
		}
	}
	return s
}

// TableData is structured table data extracted from the Spatial DOM.
type TableData struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Pagination holds pagination links detected on the page.
type Pagination struct {
	Next  *string    `json:"next,omitempty"`
	Prev  *string    `json:"prev,omitempty"`
	Pages [][2]string `json:"pages,omitempty"`
}

// DeltaDom is the delta output between two SpatialDoms: only the changes.
type DeltaDom struct {
	Changed []*SpatialElement `json:"changed,omitempty"`
	Removed []uint32          `json:"removed,omitempty"`
}
