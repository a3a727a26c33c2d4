package route

import (
	"reflect"
	"testing"
)

func TestMatch_FirstMatchWins(t *testing.T) {
	table := Table{
		{Prefix: "/goo", Domain: "first.example"},
		{Prefix: "/google", Domain: "second.example"},
	}

	r, ok := table.Match("/google/query-dns")
	if !ok {
		t.Fatal("Match() = no match, want match")
	}
	// "/goo" precedes "/google" in the table, so it wins even though
	// "/google" is the longer prefix.
	if r.Domain != "first.example" {
		t.Errorf("Domain = %q, want %q", r.Domain, "first.example")
	}
}

func TestMatch(t *testing.T) {
	table := Default()

	tests := []struct {
		name       string
		path       string
		wantDomain string
		wantOK     bool
	}{
		{"google prefix", "/google/query-dns", "dns.google", true},
		{"cloudflare prefix", "/cloudflare/query-dns", "one.one.one.one", true},
		{"prefix exact", "/google", "dns.google", true},
		{"not segment aware", "/googleX/anything", "dns.google", true},
		{"no match", "/unknown/path", "", false},
		{"root", "/", "", false},
		{"empty", "", "", false},
		{"case sensitive", "/Google/query-dns", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := table.Match(tt.path)
			if ok != tt.wantOK {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if ok && r.Domain != tt.wantDomain {
				t.Errorf("Match(%q) domain = %q, want %q", tt.path, r.Domain, tt.wantDomain)
			}
		})
	}
}

func TestRewrite(t *testing.T) {
	r := &Route{
		Prefix: "/google",
		Domain: "dns.google",
		Paths:  []PathMapping{{From: "/query-dns", To: "/dns-query"}},
	}

	tests := []struct {
		name      string
		remaining string
		want      string
	}{
		{"mapped prefix", "/query-dns", "/dns-query"},
		{"mapped prefix with suffix", "/query-dns/extra", "/dns-query/extra"},
		{"pass through", "/other-endpoint", "/other-endpoint"},
		{"empty remainder", "", ""},
		{"key later in path only", "/v2/query-dns", "/v2/query-dns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Rewrite(tt.remaining)
			if got != tt.want {
				t.Errorf("Rewrite(%q) = %q, want %q", tt.remaining, got, tt.want)
			}
		})
	}
}

// The substitution is a plain substring replacement of the first
// occurrence, not anchored to the start of the remainder. A key that
// prefixes the remainder and also appears again later is replaced only
// once, at its first occurrence.
func TestRewrite_FirstOccurrenceOnly(t *testing.T) {
	r := &Route{
		Paths: []PathMapping{{From: "/a", To: "/b"}},
	}

	got := r.Rewrite("/a/x/a")
	if got != "/b/x/a" {
		t.Errorf("Rewrite(%q) = %q, want %q", "/a/x/a", got, "/b/x/a")
	}
}

func TestRewrite_MappingOrder(t *testing.T) {
	r := &Route{
		Paths: []PathMapping{
			{From: "/query", To: "/first"},
			{From: "/query-dns", To: "/second"},
		},
	}

	// Both keys prefix the remainder; the first mapping in declaration
	// order is applied and scanning stops.
	got := r.Rewrite("/query-dns")
	if got != "/first-dns" {
		t.Errorf("Rewrite(%q) = %q, want %q", "/query-dns", got, "/first-dns")
	}
}

func TestDefault(t *testing.T) {
	table := Default()

	if len(table) != 2 {
		t.Fatalf("len(Default()) = %d, want 2", len(table))
	}
	if table[0].Prefix != "/google" || table[0].Domain != "dns.google" {
		t.Errorf("entry 0 = %+v, want /google -> dns.google", table[0])
	}
	if table[1].Prefix != "/cloudflare" || table[1].Domain != "one.one.one.one" {
		t.Errorf("entry 1 = %+v, want /cloudflare -> one.one.one.one", table[1])
	}
	for _, r := range table {
		want := []PathMapping{{From: "/query-dns", To: "/dns-query"}}
		if !reflect.DeepEqual(r.Paths, want) {
			t.Errorf("entry %q paths = %+v, want %+v", r.Prefix, r.Paths, want)
		}
	}
}

func TestPrefixes(t *testing.T) {
	got := Default().Prefixes()
	want := []string{"/google", "/cloudflare"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Prefixes() = %v, want %v", got, want)
	}
}
