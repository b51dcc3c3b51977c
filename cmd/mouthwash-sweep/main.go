package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"mouthwash/internal/modkit"
	"mouthwash/internal/modkit/module"
	"mouthwash/internal/platform/config"
	"mouthwash/internal/platform/logger"
	"mouthwash/internal/platform/store"
	ptime "mouthwash/internal/platform/time"

	valclient "mouthwash/internal/adapters/validator"
	flagsmod "mouthwash/internal/services/flags/module"
	moddom "mouthwash/internal/services/moderation/domain"
	modmod "mouthwash/internal/services/moderation/module"
	rollupmod "mouthwash/internal/services/rollup/module"
	trmod "mouthwash/internal/services/transcripts/module"
)

func mustSetEnv(k, v string) {
	if v != "" {
		_ = os.Setenv(k, v)
	}
}

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	root := config.New()
	pgCfg := root.Prefix("MOUTHWASH_PGSQL_")
	chCfg := root.Prefix("MOUTHWASH_CLICKHOUSE_")
	l := logger.Get()

	var (
		fromStr = flag.String("from", "", "inclusive hour, e.g. 2026-02-01T00")
		toStr   = flag.String("to", "", "exclusive hour, e.g. 2026-02-01T06")
		detver  = flag.Int("detver", 1, "detector version to stamp into flags")
		workers = flag.Int("workers", 4, "concurrency (>=1)")
		page    = flag.Int("page", 500, "page size (segments)")
		dryRun  = flag.Bool("dry-run", false, "moderate but do not write flags")

		// Rollup flags
		doRollup  = flag.Bool("rollup", false, "roll up the swept days after moderation")
		roWorkers = flag.Int("rollup-workers", 2, "rollup day concurrency")
	)
	flag.Parse()

	if *fromStr == "" || *toStr == "" {
		log.Fatal("from/to are required (hour resolution)")
	}
	from, err := time.Parse("2006-01-02T15", *fromStr)
	if err != nil {
		log.Fatalf("bad -from: %v", err)
	}
	to, err := time.Parse("2006-01-02T15", *toStr)
	if err != nil {
		log.Fatalf("bad -to: %v", err)
	}
	if !from.Before(to) {
		log.Fatal("from must be < to")
	}

	// CH is only needed when the rollup stage runs
	chURL := ""
	if *doRollup {
		chURL = chCfg.MustString("DBURL")
	}
	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		},
		CH: store.CHConfig{
			Enabled:    *doRollup,
			URL:        chURL,
			ClientName: "mouthwash",
			ClientTag:  "sweep",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// Pass CLI flags into CORE_MOD_* / CORE_ROLLUP_* so modules read their own config
	mustSetEnv("CORE_MOD_DETVER", strconv.Itoa(*detver))
	mustSetEnv("CORE_MOD_WORKERS", strconv.Itoa(*workers))
	mustSetEnv("CORE_MOD_PAGE_SIZE", strconv.Itoa(*page))
	mustSetEnv("CORE_MOD_DRY_RUN", map[bool]string{true: "1", false: "0"}[*dryRun])
	mustSetEnv("CORE_ROLLUP_DETVER", strconv.Itoa(*detver))
	mustSetEnv("CORE_ROLLUP_WORKERS", strconv.Itoa(*roWorkers))

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		CH:  st.CH,
		Log: *l,
	}

	// Build dependency modules first
	tr := trmod.New(deps)
	fl := flagsmod.New(deps)

	// Optional validator sidecar (CORE_MOD_VALIDATOR_URL)
	var vport moddom.ValidatorPort
	vf := root.Prefix("CORE_MOD_VALIDATOR_")
	if url := vf.MayString("URL", ""); url != "" {
		vport = valclient.New(valclient.Options{
			BaseURL:         url,
			Timeout:         vf.MayDuration("TIMEOUT", 0),
			BreakerFailures: uint32(vf.MayInt("BREAKER_FAILURES", 0)),
			BreakerCooldown: vf.MayDuration("BREAKER_COOLDOWN", 0),
		})
	}

	// Moderation module with ports injected from deps modules
	mm := modmod.New(
		deps,
		modmod.Options{
			DetVer:   *detver,
			Workers:  *workers,
			PageSize: *page,
			DryRun:   *dryRun,
		},
		modkit.WithPorts(moddom.Ports{
			Transcripts: module.MustPortsOf[trmod.Ports](tr).Reader,
			Flags:       module.MustPortsOf[flagsmod.Ports](fl).Writer,
			Validator:   vport,
		}),
	)

	// Register ports
	module.Register(tr.Name(), tr.Ports())
	module.Register(fl.Name(), fl.Ports())
	module.Register(mm.Name(), mm.Ports())

	ctx := context.Background()

	ports := mm.Ports().(modmod.Ports)
	if err := ports.Service.RunRange(ctx, from.UTC(), to.UTC()); err != nil {
		l.Fatal().Err(err).Msg("sweep failed")
	}

	if *doRollup {
		ro := rollupmod.New(deps)
		module.Register(ro.Name(), ro.Ports())

		// -to is an exclusive hour, so the last swept day is the floor of
		// the last included hour
		firstDay := ptime.FloorDay(from.UTC())
		lastDay := ptime.FloorDay(to.UTC().Add(-time.Hour))
		roPorts := ro.Ports().(rollupmod.Ports)
		if err := roPorts.Runner.RunRange(ctx, firstDay, lastDay); err != nil {
			l.Fatal().Err(err).Msg("rollup failed")
		}
	}
}
