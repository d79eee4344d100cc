package spatial

import (
	"strings"
	"testing"
)

func TestDetectPageTypeLogin(t *testing.T) {
	dom := &SpatialDom{
		Title: "Sign in",
		Els: []*SpatialElement{
			{ID: 1, Tag: "input", InputType: strPtr("email")},
			{ID: 2, Tag: "input", InputType: strPtr("password")},
			{ID: 3, Tag: "button", Text: strPtr("Log in")},
		},
	}
	if got := detectPageType(dom); got != PageLogin {
		t.Errorf("detectPageType = %v, want Login", got)
	}
}

func TestDetectPageTypeCaptchaBeatsLogin(t *testing.T) {
	dom := &SpatialDom{
		Title: "Please verify you are human",
		Els: []*SpatialElement{
			{ID: 1, Tag: "input", InputType: strPtr("password")},
		},
	}
	if got := detectPageType(dom); got != PageCaptcha {
		t.Errorf("detectPageType = %v, want Captcha (must outrank Login)", got)
	}
}

func TestDetectPageTypeLoginIgnoresButtonWording(t *testing.T) {
	dom := &SpatialDom{
		Title: "Account Access",
		Els: []*SpatialElement{
			{ID: 1, Tag: "input", InputType: strPtr("email")},
			{ID: 2, Tag: "input", InputType: strPtr("password")},
			{ID: 3, Tag: "button", Text: strPtr("Continue")},
		},
	}
	if got := detectPageType(dom); got != PageLogin {
		t.Errorf("detectPageType = %v, want Login (any password field qualifies, regardless of button text)", got)
	}
}

func TestDetectPageTypeErrorByAlertType(t *testing.T) {
	dom := &SpatialDom{
		Title: "Oops",
		Els: []*SpatialElement{
			{ID: 1, Tag: "div", Text: strPtr("We hit a snag"), AlertType: strPtr("error")},
		},
	}
	if got := detectPageType(dom); got != PageError {
		t.Errorf("detectPageType = %v, want Error (alert_type=error should trigger it)", got)
	}
}

func TestDetectPageTypeListByLinkCount(t *testing.T) {
	var els []*SpatialElement
	for i := 0; i < 10; i++ {
		role := "link"
		els = append(els, &SpatialElement{ID: uint32(i + 1), Tag: "a", Role: &role, Href: strPtr("/item")})
	}
	dom := &SpatialDom{Title: "Browse", Els: els}
	if got := detectPageType(dom); got != PageList {
		t.Errorf("detectPageType = %v, want List (10 links meets the threshold)", got)
	}
}

func TestDetectPageTypeInboxRequiresTitleAndLinkCount(t *testing.T) {
	var els []*SpatialElement
	for i := 0; i < 10; i++ {
		role := "link"
		els = append(els, &SpatialElement{ID: uint32(i + 1), Tag: "a", Role: &role, Href: strPtr("/message")})
	}
	dom := &SpatialDom{Title: "Inbox - 5 unread", Els: els}
	if got := detectPageType(dom); got != PageInbox {
		t.Errorf("detectPageType = %v, want Inbox", got)
	}
}

func TestDetectPageTypeEmailBodyRequiresThreeMarkers(t *testing.T) {
	dom := &SpatialDom{
		Els: []*SpatialElement{
			{ID: 1, Text: strPtr("From: alice@example.com")},
			{ID: 2, Text: strPtr("To: bob@example.com")},
			{ID: 3, Text: strPtr("Subject: Lunch plans")},
		},
	}
	if got := detectPageType(dom); got != PageEmailBody {
		t.Errorf("detectPageType = %v, want EmailBody (from/to/subject markers present)", got)
	}
}

func TestDetectPageTypeDashboardRequiresNavAndMain(t *testing.T) {
	navRole, mainRole := "navigation", "main"
	dom := &SpatialDom{
		Title: "Dashboard",
		Els: []*SpatialElement{
			{ID: 1, Tag: "nav", Role: &navRole},
			{ID: 2, Tag: "main", Role: &mainRole},
		},
	}
	if got := detectPageType(dom); got != PageDashboard {
		t.Errorf("detectPageType = %v, want Dashboard", got)
	}

	domNoNav := &SpatialDom{
		Title: "Dashboard",
		Els: []*SpatialElement{
			{ID: 1, Tag: "main", Role: &mainRole},
		},
	}
	if got := detectPageType(domNoNav); got == PageDashboard {
		t.Error("Dashboard should require both navigation and main landmarks")
	}
}

func TestDetectPageTypeArticleRequiresThreeHeadings(t *testing.T) {
	headingRole := "heading"
	longText := strings.Repeat("x", 150)
	dom := &SpatialDom{
		Els: []*SpatialElement{
			{ID: 1, Tag: "h1", Role: &headingRole, Text: strPtr("Title")},
			{ID: 2, Tag: "h2", Role: &headingRole, Text: strPtr("Section one")},
			{ID: 3, Tag: "h2", Role: &headingRole, Text: strPtr("Section two")},
			{ID: 4, Tag: "p", Text: &longText},
			{ID: 5, Tag: "p", Text: &longText},
		},
	}
	if got := detectPageType(dom); got != PageArticle {
		t.Errorf("detectPageType = %v, want Article", got)
	}
}

func TestDetectPageTypeSearchResultsRequiresSearchInputAndContext(t *testing.T) {
	var els []*SpatialElement
	els = append(els, &SpatialElement{ID: 1, Tag: "input", InputType: strPtr("search")})
	for i := 0; i < 8; i++ {
		role := "link"
		els = append(els, &SpatialElement{ID: uint32(i + 2), Tag: "a", Role: &role, Href: strPtr("/result")})
	}
	dom := &SpatialDom{Title: "Search results for \"go\"", Els: els}
	if got := detectPageType(dom); got != PageSearchResults {
		t.Errorf("detectPageType = %v, want SearchResults", got)
	}
}

func TestDetectPageTypeFormNeedsNoSubmitButton(t *testing.T) {
	dom := &SpatialDom{
		Els: []*SpatialElement{
			{ID: 1, Tag: "input", InputType: strPtr("text")},
			{ID: 2, Tag: "input", InputType: strPtr("email")},
		},
	}
	if got := detectPageType(dom); got != PageForm {
		t.Errorf("detectPageType = %v, want Form (2 data-entry inputs, no submit button required)", got)
	}
}

func TestDetectPageTypeDefaultsToOther(t *testing.T) {
	dom := &SpatialDom{
		Title: "My Little Blog",
		Els: []*SpatialElement{
			{ID: 1, Tag: "h2", Text: strPtr("Welcome")},
		},
	}
	if got := detectPageType(dom); got != PageOther {
		t.Errorf("detectPageType = %v, want Other", got)
	}
}

func TestIsSearchInputElementExcludesPassword(t *testing.T) {
	el := &SpatialElement{Tag: "input", InputType: strPtr("password"), Name: strPtr("search")}
	if isSearchInputElement(el) {
		t.Error("a password input should never be treated as a search box")
	}
}

func TestIsSearchInputElementMatchesPlaceholder(t *testing.T) {
	el := &SpatialElement{Tag: "input", InputType: strPtr("text"), Ph: strPtr("Search products...")}
	if !isSearchInputElement(el) {
		t.Error("expected a text input with a 'Search' placeholder to match")
	}
}
