package classify

import (
	"fmt"
	"strings"
	"time"
)

// MatchType selects how a rule's pattern is compared against a domain or URL.
type MatchType string

const (
	// MatchExact compares the pattern against the domain literally,
	// ignoring a www. prefix on either side.
	MatchExact MatchType = "exact"
	// MatchWildcard patterns of the form *.base match base itself and any
	// subdomain of base. Any other wildcard form is treated as exact.
	MatchWildcard MatchType = "wildcard"
	// MatchPath patterns are substring-matched against the full lowercased
	// URL, so they only apply when a URL (not just a domain) is available.
	MatchPath MatchType = "path"
)

// ParseMatchType validates a match type string from CLI or API input.
func ParseMatchType(s string) (MatchType, error) {
	switch MatchType(s) {
	case MatchExact, MatchWildcard, MatchPath:
		return MatchType(s), nil
	default:
		return "", fmt.Errorf("unknown match type %q (use exact, wildcard, or path)", s)
	}
}

// Rule maps a pattern to a category. User rules are checked in list order
// before the built-in default table; the first match wins.
type Rule struct {
	ID        string    `json:"id"`
	Pattern   string    `json:"pattern"`
	Match     MatchType `json:"match_type"`
	Category  Category  `json:"category"`
	Default   bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// matchesDomain reports whether a non-path rule matches the given domain.
// The domain must already be lowercased with any www. prefix stripped.
func (r Rule) matchesDomain(domain string) bool {
	pattern := strings.ToLower(r.Pattern)

	switch r.Match {
	case MatchExact:
		return domain == pattern || domain == strings.TrimPrefix(pattern, "www.")

	case MatchWildcard:
		if base, ok := strings.CutPrefix(pattern, "*."); ok {
			return domain == base || strings.HasSuffix(domain, "."+base)
		}
		// Not a *.base form: fall back to exact.
		return domain == pattern

	default:
		// Path rules need a full URL and are handled by CategorizeURL.
		return false
	}
}
