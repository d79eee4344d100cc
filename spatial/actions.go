package spatial

import (
	"strings"
)

// detectSuggestedActions runs the five detectors in priority order, each
// against the full element set, and returns whichever fire. No detector
// excludes another: Search, for instance, can coexist with the others (a
// site header search box and a login form can appear on the same page).
func detectSuggestedActions(dom *SpatialDom) []SuggestedAction {
	var actions []SuggestedAction

	if a := detectLoginAction(dom); a != nil {
		actions = append(actions, *a)
	}
	if a := detectEnterCodeAction(dom); a != nil {
		actions = append(actions, *a)
	}
	if a := detectConsentAction(dom); a != nil {
		actions = append(actions, *a)
	}
	if a := detectSearchAction(dom); a != nil {
		actions = append(actions, *a)
	}
	if a := detectSelectFromListAction(dom); a != nil {
		actions = append(actions, *a)
	}
	return actions
}

func isPasswordInput(e *SpatialElement) bool {
	return e.Tag == "input" && e.InputType != nil && *e.InputType == "password"
}

func isTextualInput(e *SpatialElement) bool {
	if e.Tag != "input" {
		return false
	}
	if e.InputType == nil {
		return true
	}
	switch *e.InputType {
	case "text", "email", "tel", "number", "search", "":
		return true
	}
	return false
}

// isUsernameCandidate narrows to exactly the input types a login username
// field is ever given: a bare/unset type defaults to "text" per HTML.
func isUsernameCandidate(e *SpatialElement) bool {
	if e.Tag != "input" {
		return false
	}
	inputType := "text"
	if e.InputType != nil {
		inputType = *e.InputType
	}
	return inputType == "text" || inputType == "email"
}

func dy(a, b *SpatialElement) int32 { return abs32(a.B[1] - b.B[1]) }
func dx(a, b *SpatialElement) int32 { return abs32(a.B[0] - b.B[0]) }

// detectLoginAction looks for a password field, then picks the nearest
// text/email input within 500px of vertical distance (either direction) as
// the username field and the nearest submit button (preferring one below,
// see findNearestSubmitButton) as the trigger.
func detectLoginAction(dom *SpatialDom) *SuggestedAction {
	var password *SpatialElement
	for _, e := range dom.Visible() {
		if isPasswordInput(e) {
			password = e
			break
		}
	}
	if password == nil {
		return nil
	}

	var username *SpatialElement
	var bestDy int32 = -1
	for _, e := range dom.Visible() {
		if e == password || !isUsernameCandidate(e) {
			continue
		}
		d := dy(e, password)
		if d >= 500 {
			continue
		}
		if bestDy < 0 || d < bestDy {
			bestDy = d
			username = e
		}
	}
	if username == nil {
		return nil
	}

	submit := findNearestSubmitButton(dom, password)
	if submit == nil {
		return nil
	}

	var rememberMe *uint32
	for _, e := range dom.Visible() {
		if e.Tag != "input" || e.InputType == nil || *e.InputType != "checkbox" {
			continue
		}
		text := ""
		if e.Label != nil {
			text = *e.Label
		} else if e.Name != nil {
			text = *e.Name
		}
		if containsAny(strings.ToLower(text), "remember") {
			id := e.ID
			rememberMe = &id
			break
		}
	}

	var result SuggestedAction = LoginAction{
		UsernameID:   username.ID,
		PasswordID:   password.ID,
		SubmitID:     submit.ID,
		RememberMeID: rememberMe,
	}
	return &result
}

var codeKeywords = []string{"verification code", "authentication code", "one-time code", "otp", "security code", "enter code", "2fa"}

// detectEnterCodeAction looks for a short, digit-oriented input near
// verification-code language. Password inputs are explicitly excluded so a
// login form's password field is never mistaken for an OTP box.
func detectEnterCodeAction(dom *SpatialDom) *SuggestedAction {
	allText := strings.ToLower(joinTexts(dom.Visible()))
	if !containsAny(allText, codeKeywords...) {
		return nil
	}

	var narrow *SpatialElement
	for _, e := range dom.Visible() {
		if isPasswordInput(e) || !isTextualInput(e) {
			continue
		}
		if e.B[2] < 60 {
			narrow = e
			break
		}
	}

	var candidate *SpatialElement
	if narrow != nil {
		candidate = narrow
	} else {
		for _, e := range dom.Visible() {
			if isPasswordInput(e) || !isTextualInput(e) {
				continue
			}
			text := ""
			if e.Ph != nil {
				text = *e.Ph
			} else if e.Label != nil {
				text = *e.Label
			} else if e.Name != nil {
				text = *e.Name
			}
			if containsAny(strings.ToLower(text), "code", "otp") {
				candidate = e
				break
			}
		}
	}
	if candidate == nil {
		for _, e := range dom.Visible() {
			if isPasswordInput(e) || !isTextualInput(e) {
				continue
			}
			candidate = e
			break
		}
	}
	if candidate == nil {
		return nil
	}

	submit := findNearestSubmitButton(dom, candidate)
	if submit == nil {
		return nil
	}

	var codeLength *int
	if candidate.Ph != nil {
		n := countDigitPlaceholder(*candidate.Ph)
		if n > 0 {
			codeLength = &n
		}
	}

	var result SuggestedAction = EnterCodeAction{
		InputID:    candidate.ID,
		SubmitID:   submit.ID,
		CodeLength: codeLength,
	}
	return &result
}

func countDigitPlaceholder(ph string) int {
	count := 0
	for _, r := range ph {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}

func detectSearchAction(dom *SpatialDom) *SuggestedAction {
	var input *SpatialElement
	for _, e := range dom.Visible() {
		if isSearchInputElement(e) {
			input = e
			break
		}
	}
	if input == nil {
		return nil
	}
	submit := findNearestSubmitButton(dom, input)
	if submit == nil {
		return nil
	}
	var result SuggestedAction = SearchAction{InputID: input.ID, SubmitID: submit.ID}
	return &result
}

// detectConsentAction requires OAuth-consent language in the title or a
// heading before scanning buttons for approve/deny intent — otherwise any
// page with an "Allow"/"Deny" button pair would false-positive.
func detectConsentAction(dom *SpatialDom) *SuggestedAction {
	title := strings.ToLower(dom.Title)
	hasConsentLanguage := containsAny(title, "authorize", "permission", "consent")
	if !hasConsentLanguage {
		for _, e := range dom.Visible() {
			if (e.Tag == "h1" || e.Tag == "h2") && e.Text != nil {
				if containsAny(strings.ToLower(*e.Text), "wants to access", "would like to", "is requesting") {
					hasConsentLanguage = true
					break
				}
			}
		}
	}
	if !hasConsentLanguage {
		return nil
	}

	var approve, deny []uint32
	for _, e := range dom.Visible() {
		if e.Tag != "button" && e.Tag != "a" {
			continue
		}
		if e.Text == nil {
			continue
		}
		text := strings.ToLower(*e.Text)
		switch {
		case containsAny(text, "allow", "approve", "accept", "authorize", "continue", "grant"):
			approve = append(approve, e.ID)
		case containsAny(text, "deny", "decline", "cancel", "reject", "no thanks"):
			deny = append(deny, e.ID)
		}
	}
	if len(approve) == 0 && len(deny) == 0 {
		return nil
	}

	var result SuggestedAction = ConsentAction{ApproveIDs: approve, DenyIDs: deny}
	return &result
}

// detectSelectFromListAction requires at least five link-with-href rows,
// grouped into at least five distinct y-rows — a single nav bar of 5 links
// on one row does not qualify.
func detectSelectFromListAction(dom *SpatialDom) *SuggestedAction {
	var anchors []*SpatialElement
	for _, e := range dom.Visible() {
		if e.Tag == "a" && e.Href != nil {
			anchors = append(anchors, e)
		}
	}
	if len(anchors) < 5 {
		return nil
	}

	rows := sortByRow(anchors, 30)
	if len(rows) < 5 {
		return nil
	}

	var items []uint32
	for _, row := range rows {
		items = append(items, row[0].ID)
	}

	var result SuggestedAction = SelectFromListAction{Items: items}
	return &result
}

// findNearestSubmitButton scores candidate buttons by a Manhattan-like
// distance weighted to prefer buttons below-and-near over buttons above:
// dy<0 (above) is penalized 4x, since a submit control almost always sits
// below its input in conventional form layouts.
func findNearestSubmitButton(dom *SpatialDom, anchor *SpatialElement) *SpatialElement {
	var best *SpatialElement
	var bestScore int32 = -1
	for _, e := range dom.Visible() {
		if !isSubmitLike(e) {
			continue
		}
		dyRaw := e.B[1] - anchor.B[1]
		dxRaw := dx(e, anchor)
		var score int32
		if dyRaw < 0 {
			score = 4*(-dyRaw) + dxRaw
		} else {
			score = 2*dyRaw + dxRaw
		}
		if bestScore < 0 || score < bestScore {
			bestScore = score
			best = e
		}
	}
	return best
}

func isSubmitLike(e *SpatialElement) bool {
	if e.Tag == "button" {
		if e.InputType == nil || *e.InputType != "reset" {
			return true
		}
		return false
	}
	if e.Tag == "input" && e.InputType != nil && *e.InputType == "submit" {
		return true
	}
	return false
}
