// Package strings provides small string and slice helpers
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// EmptyToNil returns empty string if s is all whitespace, otherwise returns s
func EmptyToNil(s string) string {
	if std.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// OrDefault returns def when s is blank, otherwise s
func OrDefault(s, def string) string {
	if std.TrimSpace(s) == "" {
		return def
	}
	return s
}

// DomainKey normalizes an email domain into a ledger key
// lower-cased with dots replaced by underscores, e.g. "StartItNow.co.in" -> "startitnow_co_in"
func DomainKey(domain string) string {
	d := std.ToLower(std.TrimSpace(domain))
	return std.ReplaceAll(d, ".", "_")
}

// EmailDomain returns the part after '@' lower-cased, or "" when absent
func EmailDomain(email string) string {
	at := std.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return std.ToLower(std.TrimSpace(email[at+1:]))
}
