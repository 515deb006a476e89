package module

import (
	"resumeranker/internal/platform/config"
	screendom "resumeranker/internal/services/api/screening/domain"
)

// Options controls the ledger backend and tier allotments
type Options struct {
	// Backend selects "memory" (default) or "postgres"
	Backend string

	Tiers screendom.TierTable
}

// FromConfig reads QUOTA_* and SCREEN_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	qc := cfg.Prefix("QUOTA_")
	sc := cfg.Prefix("SCREEN_")
	def := screendom.Tier{
		OrgID:     sc.MayInt("DEFAULT_ORG_ID", 2),
		Allotment: sc.MayInt("DEFAULT_ALLOTMENT", 100),
	}
	return Options{
		Backend: qc.MayString("BACKEND", "memory"),
		Tiers: screendom.ParseTierTable(
			sc.MayCSV("PARTNER_DOMAINS", []string{"startitnow.co.in:3:500"}),
			def,
		),
	}
}
