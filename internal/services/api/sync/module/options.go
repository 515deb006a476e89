package module

import (
	"time"

	"resumeranker/internal/platform/config"
)

// Options holds the ServiceNow connection settings
type Options struct {
	InstanceURL string
	Username    string
	Password    string
	Table       string
	Timeout     time.Duration

	// Missing lists absent required settings, empty means fully configured
	Missing []string
}

// FromConfig reads SN_* values from process config/env
// required settings are collected rather than enforced here so their absence
// surfaces as a configuration error response, not a boot failure
func FromConfig(cfg config.Conf) Options {
	sn := cfg.Prefix("SN_")
	return Options{
		InstanceURL: sn.MayString("INSTANCE_URL", ""),
		Username:    sn.MayString("USERNAME", ""),
		Password:    sn.MayString("PASSWORD", ""),
		Table:       sn.MayString("TABLE", "u_resume_results"),
		Timeout:     sn.MayDuration("TIMEOUT", 30*time.Second),
		Missing:     sn.Missing("INSTANCE_URL", "USERNAME", "PASSWORD"),
	}
}
