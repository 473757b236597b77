package module

import (
	"time"

	"adrata/internal/platform/config"
)

// Options controls the Oasis messaging service and its relay connection
type Options struct {
	Debounce time.Duration
	Throttle time.Duration
	AutoStop time.Duration

	// TypingSweepEvery bounds how long an abandoned typing session can linger
	TypingSweepEvery time.Duration

	RelayURL   string
	RelayAppID string
	RelayKey   string
}

// FromConfig reads with OASIS_ prefix, relay credentials under RELAY_
func FromConfig(cfg config.Conf) Options {
	o := cfg.Prefix("OASIS_")
	r := cfg.Prefix("RELAY_")
	return Options{
		Debounce:         o.MayDuration("TYPING_DEBOUNCE", 300*time.Millisecond),
		Throttle:         o.MayDuration("TYPING_THROTTLE", 2*time.Second),
		AutoStop:         o.MayDuration("TYPING_AUTOSTOP", 3*time.Second),
		TypingSweepEvery: o.MayDuration("TYPING_SWEEP_EVERY", time.Minute),
		RelayURL:         r.MayString("URL", ""),
		RelayAppID:       r.MayString("APP_ID", "oasis"),
		RelayKey:         r.MayString("KEY", ""),
	}
}
