// Package config handles application configuration via environment variables
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"adrata/internal/platform/logger"
)

// Conf is a namespaced view over environment variables (e.g. "API_", "PG_").
// Use New() for global access, or Prefix("API_") for module scopes
type Conf struct{ prefix string }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix, e.g. cfg.Prefix("API_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// key composes the fully-qualified env var name
func (c Conf) key(k string) string { return c.prefix + k }

// getenv returns the trimmed value of key, "" when unset
func (c Conf) getenv(key string) string {
	return strings.TrimSpace(os.Getenv(c.key(key)))
}

// missing aborts on a required key that is unset or blank
func (c Conf) missing(key string) {
	logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
}

// badValue aborts on a required key that is set but malformed
func (c Conf) badValue(key, value, msg string) {
	logger.Get().Panic().Str("key", c.key(key)).Str("value", value).Msg(msg)
}

// useDefault notes a malformed optional value before falling back
func (c Conf) useDefault(key, value string, def any) {
	logger.Get().Warn().
		Str("key", c.key(key)).
		Str("value", value).
		Interface("default", def).
		Msg("malformed value; using default")
}

// MustString panics if the given key is missing or empty
func (c Conf) MustString(key string) string {
	v := c.getenv(key)
	if v == "" {
		c.missing(key)
	}
	return v
}

// MustInt panics if the given key is missing, empty, or not an int
func (c Conf) MustInt(key string) int {
	s := c.MustString(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		c.badValue(key, s, "invalid int value")
	}
	return v
}

// MustBool panics if the given key is missing, empty, or not a bool
func (c Conf) MustBool(key string) bool {
	s := c.MustString(key)
	v, err := strconv.ParseBool(s)
	if err != nil {
		c.badValue(key, s, "invalid bool value")
	}
	return v
}

// MustDuration panics if the given key is missing, empty, or not a valid duration
func (c Conf) MustDuration(key string) time.Duration {
	s := c.MustString(key)
	d, err := time.ParseDuration(s)
	if err != nil {
		c.badValue(key, s, "invalid duration (e.g. 250ms, 2s, 1h)")
	}
	return d
}

// MustURL panics if the given key is missing, empty, or not an absolute URL
func (c Conf) MustURL(key string) *url.URL {
	s := c.MustString(key)
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		c.badValue(key, s, "invalid absolute URL")
	}
	return u
}

// MustPort returns a net/http addr like ":4000" after validating 1..65535
func (c Conf) MustPort(key string) string {
	s := c.MustString(key)
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		c.badValue(key, s, "invalid TCP port; expected 1..65535")
	}
	return ":" + s
}

// Require panics unless every given key is present and non-blank
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		if c.getenv(k) == "" {
			c.missing(k)
		}
	}
}

// MayString returns the value or def if missing/empty
func (c Conf) MayString(key, def string) string {
	if v := c.getenv(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def if missing/empty; warns and returns def if malformed
func (c Conf) MayInt(key string, def int) int {
	s := c.getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		c.useDefault(key, s, def)
		return def
	}
	return v
}

// MayFloat64 returns the value or def if missing/empty; warns and returns def if malformed
func (c Conf) MayFloat64(key string, def float64) float64 {
	s := c.getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		c.useDefault(key, s, def)
		return def
	}
	return v
}

// MayBool returns the value or def if missing/empty; warns and returns def if malformed
func (c Conf) MayBool(key string, def bool) bool {
	s := c.getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		c.useDefault(key, s, def)
		return def
	}
	return v
}

// MayDuration returns the value or def if missing/empty; warns and returns def if malformed
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s := c.getenv(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		c.useDefault(key, s, def)
		return def
	}
	return d
}

// MayCSV splits a comma-separated env var into trimmed non-empty parts;
// def when the key is missing or nothing survives trimming
func (c Conf) MayCSV(key string, def []string) []string {
	s := c.getenv(key)
	if s == "" {
		return def
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum ensures the value is one of allowed (case-insensitive);
// returns def if empty; panics if set to anything else
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return v
		}
	}
	logger.Get().Panic().
		Str("key", c.key(key)).
		Str("value", v).
		Strs("allowed", allowed).
		Msg("invalid enum value")
	return "" // unreachable
}
