package main

import (
	"context"

	"resumeranker/internal/platform/config"
	"resumeranker/internal/platform/logger"
	phttp "resumeranker/internal/platform/net/http"
	"resumeranker/internal/platform/store"

	"resumeranker/internal/services/api"
)

func main() {
	root := config.New()

	// bring up logging early
	logger.Init(logger.FromEnv())
	l := logger.Get()

	// the ledger store is optional, the memory backend needs no database
	var st *store.Store
	if root.MayString("QUOTA_BACKEND", "memory") == "postgres" {
		pgCfg := root.Prefix("SERVICE_PGSQL_")
		opened, err := store.Open(
			context.Background(),
			store.Config{
				AppName: "resumeranker-api",
				PG: store.PGConfig{
					Enabled:     true,
					URL:         pgCfg.MustString("DBURL"),
					MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
					SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
					LogSQL:      pgCfg.MayBool("LOG_SQL", true),
				},
			},
			store.WithLogger(*l),
		)
		if err != nil {
			l.Panic().Err(err).Msg("store.Open failed")
		}
		st = opened
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()
	}

	// http server (reads PORT, default :5000)
	srv := phttp.NewServer(root)

	api.Mount(
		srv.Router(),
		api.Options{
			Config: root,
			Store:  st,
			Logger: l,
		},
	)

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
