// Package classify resolves domains and URLs to productivity categories.
// User-defined rules are consulted first, in insertion order, then the
// built-in default table with a progressive suffix walk so subdomains
// inherit their parent's classification.
package classify

import (
	"net/url"
	"strings"
)

// internalPrefixes mark browser-internal and extension pages that are never
// tracked.
var internalPrefixes = []string{
	"chrome://",
	"chrome-extension://",
	"about:",
	"edge://",
	"brave://",
}

// InternalURL reports whether raw points at a browser-internal or extension
// page (or is empty). Such pages are never tracked.
func InternalURL(raw string) bool {
	if raw == "" || raw == "newtab" {
		return true
	}
	lower := strings.ToLower(raw)
	for _, prefix := range internalPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// ExtractDomain normalizes a URL or bare host into a canonical root domain:
// lowercase, no protocol, no path, leading www. stripped. It returns "" for
// empty input, the new-tab sentinel, browser-internal pages, and anything
// that cannot be parsed as a URL. It never returns an error.
func ExtractDomain(input string) string {
	if InternalURL(input) {
		return ""
	}

	// Bare hosts parse with an empty Host, so give them a scheme first.
	lower := strings.ToLower(input)
	raw := input
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		raw = "https://" + input
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// CategorizeDomain resolves a domain to a category. Resolution order:
// user rules in list order (path rules skipped), exact default lookup,
// then progressively shorter suffixes of the domain against the defaults.
func CategorizeDomain(domain string, rules []Rule) Category {
	if domain == "" {
		return Uncategorized
	}

	lower := strings.TrimPrefix(strings.ToLower(domain), "www.")

	for _, r := range rules {
		if r.matchesDomain(lower) {
			return r.Category
		}
	}

	if cat, ok := defaultCategories[lower]; ok {
		return cat
	}

	// Suffix walk: a.b.c -> b.c so subdomains inherit the parent's
	// classification. The bare TLD is never consulted.
	parts := strings.Split(lower, ".")
	for i := 1; i < len(parts)-1; i++ {
		suffix := strings.Join(parts[i:], ".")
		if cat, ok := defaultCategories[suffix]; ok {
			return cat
		}
	}

	return Uncategorized
}

// CategorizeURL resolves a full URL to a category. Path rules are checked
// first (substring containment against the lowercased URL), then resolution
// falls back to the domain.
func CategorizeURL(rawURL string, rules []Rule) Category {
	if rawURL == "" {
		return Uncategorized
	}

	lowerURL := strings.ToLower(rawURL)
	for _, r := range rules {
		if r.Match != MatchPath {
			continue
		}
		if strings.Contains(lowerURL, strings.ToLower(r.Pattern)) {
			return r.Category
		}
	}

	return CategorizeDomain(ExtractDomain(rawURL), rules)
}
