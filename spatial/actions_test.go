package spatial

import "testing"

func TestDetectLoginActionFindsNearestFields(t *testing.T) {
	dom := &SpatialDom{
		Els: []*SpatialElement{
			{ID: 1, Tag: "input", InputType: strPtr("email"), B: [4]int32{0, 0, 200, 20}},
			{ID: 2, Tag: "input", InputType: strPtr("password"), B: [4]int32{0, 30, 200, 20}},
			{ID: 3, Tag: "button", B: [4]int32{0, 60, 80, 20}},
		},
	}
	dom.RebuildIndex()

	action := detectLoginAction(dom)
	if action == nil {
		t.Fatal("expected a Login action")
	}
	login, ok := (*action).(LoginAction)
	if !ok {
		t.Fatalf("expected LoginAction, got %T", *action)
	}
	if login.UsernameID != 1 || login.PasswordID != 2 || login.SubmitID != 3 {
		t.Errorf("got %+v, want username=1 password=2 submit=3", login)
	}
}

func TestFindNearestSubmitButtonPrefersBelow(t *testing.T) {
	dom := &SpatialDom{
		Els: []*SpatialElement{
			{ID: 1, Tag: "input", B: [4]int32{0, 50, 100, 20}},
			{ID: 2, Tag: "button", B: [4]int32{0, 10, 80, 20}},
			{ID: 3, Tag: "button", B: [4]int32{0, 80, 80, 20}},
		},
	}
	anchor := dom.Els[0]
	got := findNearestSubmitButton(dom, anchor)
	if got == nil || got.ID != 3 {
		t.Errorf("expected button below the anchor (id 3) to win, got %v", got)
	}
}

func TestDetectSelectFromListActionRequiresFiveRows(t *testing.T) {
	var els []*SpatialElement
	for i := 0; i < 4; i++ {
		els = append(els, &SpatialElement{
			ID: uint32(i + 1), Tag: "a", Href: strPtr("/item"),
			B: [4]int32{0, int32(i * 40), 100, 20},
		})
	}
	dom := &SpatialDom{Els: els}
	if action := detectSelectFromListAction(dom); action != nil {
		t.Error("4 rows should not qualify for SelectFromList")
	}

	els = append(els, &SpatialElement{ID: 5, Tag: "a", Href: strPtr("/item"), B: [4]int32{0, 160, 100, 20}})
	dom = &SpatialDom{Els: els}
	if action := detectSelectFromListAction(dom); action == nil {
		t.Error("5 distinct rows should qualify for SelectFromList")
	}
}

func TestDetectConsentActionRequiresConsentLanguage(t *testing.T) {
	dom := &SpatialDom{
		Title: "My App",
		Els: []*SpatialElement{
			{ID: 1, Tag: "button", Text: strPtr("Allow")},
			{ID: 2, Tag: "button", Text: strPtr("Deny")},
		},
	}
	if action := detectConsentAction(dom); action != nil {
		t.Error("Allow/Deny buttons alone should not trigger Consent without consent language")
	}

	dom.Title = "ExampleApp requests authorize access to your account"
	if action := detectConsentAction(dom); action == nil {
		t.Error("expected a Consent action once consent language is present")
	}
}
