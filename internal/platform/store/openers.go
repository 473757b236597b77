package store

import (
	"context"
	"fmt"
	"time"

	"adrata/internal/platform/store/pg"
)

// boot guard backoff bounds
const (
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

// defaults for the zero-value PGConfig knobs
const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second
)

// openPG opens the pool and publishes the sql adapter only once the
// database actually answers, so a booting service never hands repos a
// dead pool
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	if err := awaitPG(ctx, p, cfg.PG); err != nil {
		p.Close()
		return nil, err
	}

	a := newPGAdapter(p)
	s.PG = a
	return a, nil
}

// awaitPG pings the pool directly (no adapter, no SQL trace lines) with
// exponential backoff until the server answers, the attempts run out,
// or ctx is canceled
func awaitPG(ctx context.Context, p *pg.PG, cfg PGConfig) error {
	maxAttempts := cfg.ConnectRetries
	if maxAttempts <= 0 {
		maxAttempts = defaultConnectRetries
	}
	pingTimeout := cfg.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = defaultPingTimeout
	}

	var lastErr error
	backoff := backoffStart
	for attempt := 0; attempt < maxAttempts; attempt++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(toCtx)
		cancel()

		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		time.Sleep(backoff)
		if backoff *= 2; backoff > backoffCeiling {
			backoff = backoffCeiling
		}
	}
	return fmt.Errorf("postgres ping failed after %d attempts: %w", maxAttempts, lastErr)
}
