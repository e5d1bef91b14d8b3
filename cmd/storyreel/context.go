package main

import (
	"fmt"

	"storyreel-client/internal/actions"
	"storyreel-client/internal/backend"
	"storyreel-client/internal/config"
	"storyreel-client/internal/identity"
	"storyreel-client/internal/project"
	"storyreel-client/internal/recovery"
	"storyreel-client/internal/store"
	"storyreel-client/internal/uploads"
)

// appContext wires the client stack lazily so commands that only print
// help never touch configuration.
type appContext struct {
	cfg       *config.Config
	client    *backend.Client
	store     *store.Store
	facade    *actions.Facade
	recoverer *recovery.Recoverer
	identity  *identity.Provider
}

func (a *appContext) ensure() error {
	if a.cfg != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.client = backend.NewClient(cfg.BackendBaseURL, cfg.BackendToken)
	a.store = store.New(a.client)
	a.facade = actions.New(a.client, a.store)
	a.recoverer = recovery.New(a.client, a.store, cfg.ResyncInterval)
	a.identity = identity.New(cfg.BackendToken)
	return nil
}

func (a *appContext) projects() (*project.Store, error) {
	if a.cfg.SupabaseURL == "" || a.cfg.SupabasePublishableKey == "" {
		return nil, fmt.Errorf("SUPABASE_URL and SUPABASE_PUBLISHABLE_KEY are required for project storage")
	}
	return project.NewStore(a.cfg.SupabaseURL, a.cfg.SupabasePublishableKey, a.cfg.SupabaseProjectTable)
}

func (a *appContext) uploader() (*uploads.Uploader, error) {
	if a.cfg.SupabaseURL == "" || a.cfg.SupabasePublishableKey == "" {
		return nil, fmt.Errorf("SUPABASE_URL and SUPABASE_PUBLISHABLE_KEY are required for seed uploads")
	}
	return uploads.NewUploader(a.cfg.SupabaseURL, a.cfg.SupabasePublishableKey, a.cfg.SupabaseSeedBucket), nil
}
