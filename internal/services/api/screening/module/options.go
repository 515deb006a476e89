package module

import (
	"time"

	"resumeranker/internal/platform/config"
	"resumeranker/internal/services/api/screening/domain"
)

// Config holds screening module settings sourced from SCREEN_* env
type Config struct {
	AuthgateURL string
	ScoringURL  string

	ScoringTimeout time.Duration
	MaxRetries     int
	RetryBase      time.Duration

	Tiers                  domain.TierTable
	RefundOnScoringFailure bool
}

// FromConfig reads screening settings from the SCREEN_ view
func FromConfig(cfg config.Conf) Config {
	v := cfg.Prefix("SCREEN_")
	return Config{
		AuthgateURL:    v.MustString("AUTHGATE_URL"),
		ScoringURL:     v.MustString("SCORING_URL"),
		ScoringTimeout: v.MayDuration("SCORING_TIMEOUT", 60*time.Second),
		MaxRetries:     v.MayInt("MAX_RETRIES", 3),
		RetryBase:      v.MayDuration("RETRY_BASE", 500*time.Millisecond),
		Tiers: domain.ParseTierTable(
			v.MayCSV("PARTNER_DOMAINS", []string{"startitnow.co.in:3:500"}),
			domain.Tier{
				OrgID:     v.MayInt("DEFAULT_ORG_ID", 2),
				Allotment: v.MayInt("DEFAULT_ALLOTMENT", 100),
			},
		),
		RefundOnScoringFailure: v.MayBool("REFUND_ON_SCORING_FAILURE", true),
	}
}
