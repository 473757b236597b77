// @title         Adrata Oasis API
// @version       0.1.0
// @description   Messaging, typing indicators, lead queue and outreach sending

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adrata/internal/modkit/repokit"
	"adrata/internal/platform/config"
	"adrata/internal/platform/logger"
	phttp "adrata/internal/platform/net/http"
	"adrata/internal/platform/store"

	"adrata/internal/services/api"
	oasismod "adrata/internal/services/oasis/module"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_") // pgCfg lives under SERVICE_PGSQL_*

	// bring up logging early
	l := logger.Get()

	// open the platform store (postgres)
	st, err := store.Open(
		context.Background(),
		store.Config{
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),

				ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 20),
				PingTimeout:    pgCfg.MayDuration("PING_TIMEOUT", 3*time.Second),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// refuse to serve traffic against a store that cannot answer
	repokit.MustGuard(context.Background(), st)

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API; keep the oasis worker handle for sweeps and shutdown
	oasis := api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)
	defer oasis.Close()

	// SIGINT/SIGTERM cancel the run context; Run drains before returning
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// evict abandoned typing sessions in the background
	sweepEvery := root.Prefix("OASIS_").MayDuration("TYPING_SWEEP_EVERY", time.Minute)
	go func() {
		wp := oasis.Ports().(oasismod.Ports)
		t := time.NewTicker(sweepEvery)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := wp.SweepTyping(sweepEvery); n > 0 {
					l.Debug().Int("sessions", n).Msg("typing sessions swept")
				}
			}
		}
	}()

	// run
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
