package strings

import "testing"

func TestDomainKey(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"startitnow.co.in", "startitnow_co_in"},
		{"StartItNow.Co.In", "startitnow_co_in"},
		{"  example.com ", "example_com"},
		{"nodots", "nodots"},
		{"", ""},
	}
	for _, c := range cases {
		if got := DomainKey(c.in); got != c.want {
			t.Fatalf("DomainKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEmailDomain(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"hr@startitnow.co.in", "startitnow.co.in"},
		{"A@B.COM", "b.com"},
		{"weird@local@last.org", "last.org"},
		{"no-at-sign", ""},
		{"trailing@", ""},
	}
	for _, c := range cases {
		if got := EmailDomain(c.in); got != c.want {
			t.Fatalf("EmailDomain(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestOrDefault(t *testing.T) {
	t.Parallel()

	if got := OrDefault("", "run 1"); got != "run 1" {
		t.Fatalf("OrDefault blank = %q", got)
	}
	if got := OrDefault("  ", "run 1"); got != "run 1" {
		t.Fatalf("OrDefault whitespace = %q", got)
	}
	if got := OrDefault("Go, SQL", "run 1"); got != "Go, SQL" {
		t.Fatalf("OrDefault value = %q", got)
	}
}
