// @title         Mouthwash API
// @version       0.1.0
// @description   Transcript ingest, moderation, flag queries, and live session endpoints

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"mouthwash/internal/modkit/module"
	"mouthwash/internal/platform/config"
	"mouthwash/internal/platform/logger"
	phttp "mouthwash/internal/platform/net/http"
	"mouthwash/internal/platform/store"

	"mouthwash/internal/services/api"
	livemod "mouthwash/internal/services/live/module"
)

func main() {
	// local runs pick up .env; deployed processes set real env vars
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("MOUTHWASH_PGSQL_")      // pgCfg lives under MOUTHWASH_PGSQL_*
	chCfg := root.Prefix("MOUTHWASH_CLICKHOUSE_") // chCfg lives under MOUTHWASH_CLICKHOUSE_*
	// bring up logging early
	l := logger.Get()

	// open the platform store (postgres + CH adapter)
	st, err := store.Open(
		context.Background(),
		store.Config{
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			CH: store.CHConfig{
				Enabled:    true,
				URL:        chCfg.MustString("DBURL"),
				ClientName: "mouthwash",
				ClientTag:  "api",
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

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API. Mount resolves module scopes itself (CORE_MOD_*,
	// CORE_LIVE_*), so it takes the root config rather than apiCfg
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the live hub and janitor run for the life of the process
	if lp, ok := module.PortsAs[livemod.Ports]("live"); ok {
		go func() {
			if err := lp.Service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				l.Error().Err(err).Msg("live runner stopped")
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			l.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	// run
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
