// Package route implements the routing table: ordered prefix matching
// and per-route path rewriting.
package route

import "strings"

// PathMapping substitutes a source sub-path prefix with a destination
// sub-path inside a matched route.
type PathMapping struct {
	From string
	To   string
}

// Route maps a path prefix to an upstream domain with an ordered list of
// sub-path substitutions. Domain is a bare host, no scheme.
type Route struct {
	Prefix string
	Domain string
	Paths  []PathMapping
}

// Table is an ordered route table. Order is significant: Match scans
// entries in table order and the first matching prefix wins, so a Table
// is always a slice, never a map.
type Table []Route

// Default returns the built-in route table used when no override is
// configured: the Google and Cloudflare DNS-over-HTTPS endpoints.
func Default() Table {
	return Table{
		{
			Prefix: "/google",
			Domain: "dns.google",
			Paths:  []PathMapping{{From: "/query-dns", To: "/dns-query"}},
		},
		{
			Prefix: "/cloudflare",
			Domain: "one.one.one.one",
			Paths:  []PathMapping{{From: "/query-dns", To: "/dns-query"}},
		},
	}
}

// Match returns the first route whose prefix is a literal string prefix
// of path. Matching is character-wise, not segment-aware: "/googleX"
// matches the prefix "/google".
func (t Table) Match(path string) (*Route, bool) {
	for i := range t {
		if strings.HasPrefix(path, t[i].Prefix) {
			return &t[i], true
		}
	}
	return nil, false
}

// Prefixes returns the route prefixes in table order.
func (t Table) Prefixes() []string {
	out := make([]string, len(t))
	for i, r := range t {
		out[i] = r.Prefix
	}
	return out
}

// Rewrite computes the upstream path for the remainder of a request path
// after the route prefix has been stripped. The first mapping whose From
// is a prefix of remaining is applied; the substitution replaces the
// first textual occurrence of From anywhere in remaining, not only at
// the start. If no mapping applies, remaining passes through unchanged.
func (r *Route) Rewrite(remaining string) string {
	for _, m := range r.Paths {
		if strings.HasPrefix(remaining, m.From) {
			return strings.Replace(remaining, m.From, m.To, 1)
		}
	}
	return remaining
}
