// Package modkit provides module wiring and the shared dependency bundle
package modkit

import (
	"adrata/internal/modkit/repokit"
	"adrata/internal/platform/config"
	"adrata/internal/platform/logger"
)

// Deps carries the core dependencies handed to every module constructor.
// Pure wiring, no behavior of its own
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
}

// ZeroOK reports whether a zero-value Deps is usable in tests.
// Callers still nil-check optional stores before use
func (d Deps) ZeroOK() bool { return true }
