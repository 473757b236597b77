// Package api provides the HTTP API for the application
package api

import (
	"context"

	"adrata/internal/platform/config"
	"adrata/internal/platform/logger"
	phttp "adrata/internal/platform/net/http"
	"adrata/internal/platform/store"

	"adrata/internal/modkit"
	"adrata/internal/modkit/httpkit"
	"adrata/internal/modkit/module"
	"adrata/internal/modkit/repokit"
	"adrata/internal/modkit/swaggerkit"

	metamod "adrata/internal/services/api/meta/module"
	apioasis "adrata/internal/services/api/oasis/module"
	outreachmod "adrata/internal/services/api/outreach/module"
	speedrunmod "adrata/internal/services/api/speedrun/module"

	// Worker oasis module (owns the typing registry and relay connection)
	workeroasis "adrata/internal/services/oasis/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// scopeGUCs primes the RLS settings for a transaction from whatever
// scope RunInWorkspace or RunAsSuperadmin stashed on the context
func scopeGUCs(ctx context.Context, q repokit.Queryer) error {
	if ws, ok := store.WorkspaceID(ctx); ok {
		if _, err := q.Exec(ctx, `select set_config('app.workspace_id', $1, true)`, ws); err != nil {
			return err
		}
	}
	if store.IsSuperadmin(ctx) {
		if _, err := q.Exec(ctx, `select set_config('app.superadmin', 'on', true)`); err != nil {
			return err
		}
	}
	return nil
}

// Mount mounts the API service onto the given router
// it returns the oasis worker module so main can drive sweeps and shutdown
func Mount(r phttp.Router, opt Options) *workeroasis.Module {
	// shared deps for modules; every transaction the modules open gets
	// the workspace GUCs set before repo code runs
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  repokit.WithBeginHooks(opt.Store.PG, scopeGUCs),
	}

	// Construct the WORKER oasis module first and extract its ports
	oasisWorker := workeroasis.New(deps, workeroasis.Options{})
	wp := module.MustPortsOf[workeroasis.Ports](oasisWorker)

	// Inject the messaging and typing ports into the API oasis module
	apiOasis := apioasis.New(
		deps,
		modkit.WithPorts(apioasis.Ports{
			Messaging: wp.Messaging,
			Typing:    wp.Typing,
		}),
	)

	// meta gets the raw seam so its readiness probe can still Ping;
	// the hooked wrapper only speaks TxRunner
	metaDeps := modkit.Deps{Cfg: opt.Config, PG: opt.Store.PG}

	mods := []module.Module{
		metamod.New(metaDeps),
		speedrunmod.New(deps),
		outreachmod.New(deps),
		oasisWorker, // include worker so its ports are registered
		apiOasis,    // API module that depends on the worker's ports
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	return oasisWorker
}
