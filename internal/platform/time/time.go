// Package time contains time related helpers
package time

import "time"

// NowUTC returns the current wall clock time in UTC.
// Services use this as their default clock so stored timestamps compare cleanly
func NowUTC() time.Time {
	return time.Now().UTC()
}
