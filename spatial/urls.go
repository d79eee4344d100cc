package spatial

import (
	"net/url"
	"strings"
)

// ResolveURLs rewrites every element's Href in place to an absolute URL
// resolved against base, leaving scheme-qualified, fragment-only, and
// non-http(s) scheme links (javascript:, mailto:, tel:, data:) untouched —
// an agent should never treat those as navigable page URLs.
//
// net/url is standard library, not a third-party dependency: no URL-parsing
// library fits this narrow resolve-against-base operation better than the
// standard library already does.
func ResolveURLs(dom *SpatialDom, base string) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return
	}
	for _, e := range dom.Els {
		if e.Href == nil {
			continue
		}
		resolved := resolveHref(baseURL, *e.Href)
		e.Href = &resolved
	}
}

func resolveHref(base *url.URL, href string) string {
	if href == "" || strings.HasPrefix(href, "#") {
		return href
	}
	lower := strings.ToLower(href)
	for _, scheme := range []string{"http://", "https://", "javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, scheme) {
			return href
		}
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
