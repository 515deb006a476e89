package domain

import (
	"strconv"
	"strings"

	pstrings "resumeranker/internal/platform/strings"
)

// Tier is the organization tier assigned to a submitting domain
type Tier struct {
	OrgID     int
	Allotment int
}

// TierTable maps normalized domains to tiers, with a fallback default
// replaces hard-coded partner conditionals so new partners are config only
type TierTable struct {
	Default  Tier
	Partners map[string]Tier
}

// For returns the tier for a raw domain, falling back to the default
func (t TierTable) For(domain string) Tier {
	d := strings.ToLower(strings.TrimSpace(domain))
	if tier, ok := t.Partners[d]; ok {
		return tier
	}
	return t.Default
}

// Allot returns the starting credit allotment for a domain ledger key
// the key is the DomainKey form, so partner domains are matched on that too
func (t TierTable) Allot(domainKey string) int {
	for d, tier := range t.Partners {
		if pstrings.DomainKey(d) == domainKey {
			return tier.Allotment
		}
	}
	return t.Default.Allotment
}

// ParseTierTable builds a TierTable from "domain:org_id:allotment" entries
// malformed entries fall back to the default tier for that domain
func ParseTierTable(entries []string, def Tier) TierTable {
	t := TierTable{Default: def, Partners: map[string]Tier{}}
	for _, e := range entries {
		parts := strings.Split(strings.TrimSpace(e), ":")
		if len(parts) == 0 || parts[0] == "" {
			continue
		}
		tier := def
		if len(parts) > 1 {
			if v, err := strconv.Atoi(parts[1]); err == nil {
				tier.OrgID = v
			}
		}
		if len(parts) > 2 {
			if v, err := strconv.Atoi(parts[2]); err == nil {
				tier.Allotment = v
			}
		}
		t.Partners[strings.ToLower(parts[0])] = tier
	}
	return t
}
