// Package module wires the Oasis messaging service and exposes its ports
package module

import (
	"adrata/internal/adapters/realtime"
	"adrata/internal/modkit"
	"adrata/internal/modkit/httpkit"
	"adrata/internal/services/oasis/repo"
	"adrata/internal/services/oasis/service"
)

// Module defines the oasis worker module
type Module struct {
	deps  modkit.Deps
	ports Ports
	svc   *service.Svc
}

// New constructs the oasis module with its ports
func New(deps modkit.Deps, overrides Options) *Module {
	// Load defaults, then apply non-zero overrides
	opts := FromConfig(deps.Cfg)

	if overrides.Debounce != 0 {
		opts.Debounce = overrides.Debounce
	}
	if overrides.Throttle != 0 {
		opts.Throttle = overrides.Throttle
	}
	if overrides.AutoStop != 0 {
		opts.AutoStop = overrides.AutoStop
	}
	if overrides.TypingSweepEvery != 0 {
		opts.TypingSweepEvery = overrides.TypingSweepEvery
	}
	if overrides.RelayURL != "" {
		opts.RelayURL = overrides.RelayURL
	}
	if overrides.RelayAppID != "" {
		opts.RelayAppID = overrides.RelayAppID
	}
	if overrides.RelayKey != "" {
		opts.RelayKey = overrides.RelayKey
	}

	var pub realtime.Publisher = realtime.Noop{}
	if opts.RelayURL != "" {
		pub = realtime.NewClient(realtime.Options{
			BaseURL: opts.RelayURL,
			AppID:   opts.RelayAppID,
			Key:     opts.RelayKey,
		})
	}

	svc := service.New(deps.PG, repo.NewPG(), pub, service.Config{
		Debounce: opts.Debounce,
		Throttle: opts.Throttle,
		AutoStop: opts.AutoStop,
	})

	m := &Module{deps: deps, svc: svc}
	m.ports = Ports{
		Messaging:   svc,
		Typing:      svc,
		SweepTyping: svc.SweepTyping,
	}
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Close flushes typing sessions on shutdown
func (m *Module) Close() { m.svc.Close() }

// Name returns the module name
func (m *Module) Name() string { return "oasis" }

// Prefix returns the module route prefix (none for the worker module)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes; the API module carries them
func (m *Module) MountRoutes(_ httpkit.Router) {}
