package spatial

import "testing"

func TestResolveURLsLeavesSpecialSchemesAlone(t *testing.T) {
	dom := &SpatialDom{
		Els: []*SpatialElement{
			{ID: 1, Href: strPtr("javascript:void(0)")},
			{ID: 2, Href: strPtr("mailto:a@example.com")},
			{ID: 3, Href: strPtr("#section")},
		},
	}
	ResolveURLs(dom, "https://example.com/dir/page.html")
	if *dom.Els[0].Href != "javascript:void(0)" {
		t.Errorf("javascript: href was rewritten: %s", *dom.Els[0].Href)
	}
	if *dom.Els[1].Href != "mailto:a@example.com" {
		t.Errorf("mailto: href was rewritten: %s", *dom.Els[1].Href)
	}
	if *dom.Els[2].Href != "#section" {
		t.Errorf("fragment-only href was rewritten: %s", *dom.Els[2].Href)
	}
}

func TestResolveURLsResolvesRelativePaths(t *testing.T) {
	dom := &SpatialDom{
		Els: []*SpatialElement{
			{ID: 1, Href: strPtr("../other.html")},
		},
	}
	ResolveURLs(dom, "https://example.com/dir/page.html")
	want := "https://example.com/other.html"
	if *dom.Els[0].Href != want {
		t.Errorf("got %s, want %s", *dom.Els[0].Href, want)
	}
}
