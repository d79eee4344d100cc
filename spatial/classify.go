package spatial

import "strings"

// detectPageType runs the ordered classification rules against dom's title,
// headings and visible elements, returning the first rule that matches.
// Order matters: a captcha challenge on a login form should classify as
// Captcha, not Login, for example.
func detectPageType(dom *SpatialDom) PageType {
	title := strings.ToLower(dom.Title)
	titleHas := func(keywords ...string) bool { return containsAny(title, keywords...) }
	headingHas := func(keywords ...string) bool { return headingContainsAny(dom.Els, keywords...) }

	visible := dom.Visible()

	// 1. Error
	hasErrorAlert := false
	for _, e := range dom.Els {
		if e.AlertType != nil && *e.AlertType == "error" {
			hasErrorAlert = true
			break
		}
	}
	if hasErrorAlert || titleHas("404", "500", "403", "not found", "error") {
		return PageError
	}

	// 2. Captcha
	if titleHas("captcha", "verify you're human", "verify you are human", "robot") {
		return PageCaptcha
	}

	// 3. Login
	if hasVisiblePassword(visible) {
		return PageLogin
	}

	// 4. TwoFactorAuth — specific phrases avoid false positives on pages
	// about source code (bare "code" matches any programming content).
	verificationKeywords := []string{
		"verification", "verify your", "enter code", "security code", "verification code",
		"2fa", "two-factor", "two factor", "otp", "one-time", "passcode",
	}
	hasVerificationContext := titleHas(verificationKeywords...) || headingHas(verificationKeywords...)
	if hasVerificationContext && hasCodeInput(visible) {
		return PageTwoFactorAuth
	}

	// 5. OAuthConsent
	oauthKeywords := []string{"authorize", "allow access", "grant permission", "oauth", "consent"}
	if titleHas(oauthKeywords...) || headingHas(oauthKeywords...) {
		return PageOAuthConsent
	}

	linkCount := countByRole(visible, "link")

	// 6. Inbox
	if titleHas("inbox", "mail", "messages") && linkCount >= 10 {
		return PageInbox
	}

	// 7. EmailBody
	if countEmailMarkers(dom.Els) >= 3 {
		return PageEmailBody
	}

	// 8. Dashboard
	dashboardKeywords := []string{"dashboard", "welcome back", "overview"}
	hasNav := countByRole(dom.Els, "navigation") > 0
	hasMain := countByRole(dom.Els, "main") > 0
	if (titleHas(dashboardKeywords...) || headingHas(dashboardKeywords...)) && hasNav && hasMain {
		return PageDashboard
	}

	// 9. Article (before Search — many content pages have search bars). A
	// page with many links needs more long text to qualify, so content-heavy
	// list pages (long post descriptions) don't misclassify as articles.
	headings := countByRole(dom.Els, "heading")
	longTexts := countLongParagraphs(dom.Els)
	longTextThreshold := 2
	if linkCount >= 20 {
		longTextThreshold = 10
	}
	if headings >= 3 && longTexts >= longTextThreshold {
		return PageArticle
	}

	// 10. SearchResults — needs both a search input and search-related
	// title/heading context; must come before List since results pages have
	// many links too.
	hasSearchInput := hasSearchInputAmong(visible)
	searchResultsKeywords := []string{"search results", "results for", "search:", "found"}
	hasSearchResultsContext := titleHas(searchResultsKeywords...) || headingHas(searchResultsKeywords...) || titleHas("search")
	if hasSearchInput && hasSearchResultsContext && linkCount >= 8 {
		return PageSearchResults
	}

	// 11. List (before Search — many list pages have search bars in nav)
	if linkCount >= 10 {
		return PageList
	}

	// 12. Search — a search input without enough links to be a results page
	// or list.
	if hasSearchInput {
		return PageSearch
	}

	// 13. Form — count data-entry inputs only (excluding checkboxes, radios,
	// hidden, submit, button).
	if countDataEntryInputs(visible) >= 2 {
		return PageForm
	}

	return PageOther
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func joinTexts(els []*SpatialElement) string {
	var sb strings.Builder
	for _, e := range els {
		if e.Text != nil {
			sb.WriteString(*e.Text)
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func headingContainsAny(els []*SpatialElement, keywords ...string) bool {
	for _, e := range els {
		if e.Role == nil || *e.Role != "heading" || e.Text == nil {
			continue
		}
		if containsAny(strings.ToLower(*e.Text), keywords...) {
			return true
		}
	}
	return false
}

func countByRole(els []*SpatialElement, role string) int {
	count := 0
	for _, e := range els {
		if e.Role != nil && *e.Role == role {
			count++
		}
	}
	return count
}

func hasVisiblePassword(visible []*SpatialElement) bool {
	for _, e := range visible {
		if isPasswordInput(e) {
			return true
		}
	}
	return false
}

func hasCodeInput(visible []*SpatialElement) bool {
	for _, e := range visible {
		if e.Tag != "input" {
			continue
		}
		inputType := "text"
		if e.InputType != nil {
			inputType = *e.InputType
		}
		if inputType == "text" || inputType == "number" || inputType == "tel" {
			return true
		}
	}
	return false
}

func countEmailMarkers(els []*SpatialElement) int {
	markers := []string{"from:", "to:", "subject:", "date:"}
	count := 0
	for _, marker := range markers {
		for _, e := range els {
			if e.Text != nil && strings.Contains(strings.ToLower(*e.Text), marker) {
				count++
				break
			}
		}
	}
	return count
}

func countLongParagraphs(els []*SpatialElement) int {
	count := 0
	for _, e := range els {
		if e.Tag == "p" && e.Text != nil && len(*e.Text) > 100 {
			count++
		}
	}
	return count
}

func countDataEntryInputs(visible []*SpatialElement) int {
	count := 0
	for _, e := range visible {
		switch e.Tag {
		case "textarea", "select":
			count++
		case "input":
			if e.InputType == nil {
				count++
				continue
			}
			switch *e.InputType {
			case "checkbox", "radio", "hidden", "submit", "button", "image":
			default:
				count++
			}
		}
	}
	return count
}

func hasSearchInputAmong(els []*SpatialElement) bool {
	for _, e := range els {
		if isSearchInputElement(e) {
			return true
		}
	}
	return false
}

// isSearchInputElement heuristically flags a single-purpose search box by
// tag/type/role/name/placeholder, excluding input types that can never be a
// search query field.
func isSearchInputElement(e *SpatialElement) bool {
	if e.Tag != "input" {
		return false
	}
	if e.InputType != nil {
		switch *e.InputType {
		case "checkbox", "radio", "hidden", "submit", "button", "image", "password":
			return false
		case "search":
			return true
		}
	}
	if e.Role != nil && *e.Role == "searchbox" {
		return true
	}
	if e.Name != nil && strings.Contains(strings.ToLower(*e.Name), "search") {
		return true
	}
	if e.Ph != nil && containsAny(strings.ToLower(*e.Ph), "search", "find", "query") {
		return true
	}
	if e.Label != nil && strings.Contains(strings.ToLower(*e.Label), "search") {
		return true
	}
	return false
}
