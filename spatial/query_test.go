package spatial

import "testing"

func TestTablesTreatsFirstThRowAsHeader(t *testing.T) {
	dom := &SpatialDom{
		Els: []*SpatialElement{
			{Tag: "th", Text: strPtr("Name"), B: [4]int32{0, 0, 100, 20}},
			{Tag: "th", Text: strPtr("Age"), B: [4]int32{100, 0, 100, 20}},
			{Tag: "td", Text: strPtr("Ann"), B: [4]int32{0, 20, 100, 20}},
			{Tag: "td", Text: strPtr("30"), B: [4]int32{100, 20, 100, 20}},
		},
	}
	table := dom.Tables()
	if table == nil {
		t.Fatal("expected a table")
	}
	if len(table.Headers) != 2 || table.Headers[0] != "Name" || table.Headers[1] != "Age" {
		t.Errorf("got headers %v", table.Headers)
	}
	if len(table.Rows) != 1 || table.Rows[0][0] != "Ann" {
		t.Errorf("got rows %v", table.Rows)
	}
}

func TestPaginationMatchesNextKeyword(t *testing.T) {
	dom := &SpatialDom{
		Els: []*SpatialElement{
			{Tag: "a", Text: strPtr("Next ›"), Href: strPtr("/page/2")},
		},
	}
	p := dom.Pagination()
	if p == nil || p.Next == nil || *p.Next != "/page/2" {
		t.Errorf("expected Next to resolve to /page/2, got %+v", p)
	}
}

func TestFindCodesRejectsYearLikeNumbers(t *testing.T) {
	dom := &SpatialDom{
		Els: []*SpatialElement{
			{Text: strPtr("Copyright 1999")},
		},
	}
	if codes := dom.FindCodes(); len(codes) != 0 {
		t.Errorf("a bare year-like number should not be treated as a code, got %v", codes)
	}
}

func TestFindCodesMatchesKeywordBearingText(t *testing.T) {
	dom := &SpatialDom{
		Els: []*SpatialElement{
			{Text: strPtr("Your verification code is 482913")},
		},
	}
	codes := dom.FindCodes()
	if len(codes) != 1 || codes[0] != "482913" {
		t.Errorf("expected [482913], got %v", codes)
	}
}
