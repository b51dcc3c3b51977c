package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"mouthwash/internal/modkit"
	"mouthwash/internal/modkit/module"
	"mouthwash/internal/platform/config"
	"mouthwash/internal/platform/logger"
	"mouthwash/internal/platform/store"

	"mouthwash/internal/adapters/feed"
	trdom "mouthwash/internal/services/transcripts/domain"
	trmod "mouthwash/internal/services/transcripts/module"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	root := config.New()
	pgCfg := root.Prefix("MOUTHWASH_PGSQL_")
	l := logger.Get()

	var (
		file    = flag.String("file", "", "transcript feed (JSONL, .gz accepted)")
		batch   = flag.Int("batch", 500, "rows per write")
		session = flag.String("session", "", "override session_id on every row")
		dryRun  = flag.Bool("dry-run", false, "parse and count without writing")
	)
	flag.Parse()

	if *file == "" {
		log.Fatal("-file is required")
	}
	if *batch < 1 {
		log.Fatal("-batch must be >= 1")
	}

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
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

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	tm := trmod.New(deps)
	module.Register(tm.Name(), tm.Ports())
	writer := module.MustPortsOf[trmod.Ports](tm).Writer

	rd, err := feed.Open(*file)
	if err != nil {
		l.Fatal().Err(err).Str("file", *file).Msg("open feed failed")
	}
	defer func() {
		if err := rd.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close feed")
		}
	}()

	ctx := context.Background()
	rows := make([]trdom.Row, 0, *batch)
	wrote := 0

	flush := func() error {
		if len(rows) == 0 || *dryRun {
			rows = rows[:0]
			return nil
		}
		n, err := writer.Write(ctx, rows)
		if err != nil {
			return err
		}
		wrote += n
		rows = rows[:0]
		return nil
	}

	for {
		seg, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			l.Fatal().Err(err).Msg("feed read failed")
		}

		sid := seg.SessionID
		if *session != "" {
			sid = *session
		}
		rows = append(rows, trdom.Row{
			SegmentID: seg.SegmentID,
			SessionID: sid,
			Seq:       seg.Seq,
			Speaker:   seg.Speaker,
			Text:      seg.Text,
			StartMS:   seg.StartMS,
			EndMS:     seg.EndMS,
		})
		if len(rows) >= *batch {
			if err := flush(); err != nil {
				l.Fatal().Err(err).Msg("write batch failed")
			}
		}
	}
	if err := flush(); err != nil {
		l.Fatal().Err(err).Msg("write final batch failed")
	}

	segments, skipped, bytes := rd.Stats()
	l.Info().
		Int("segments", segments).
		Int("skipped", skipped).
		Int64("bytes", bytes).
		Int("wrote", wrote).
		Bool("dry_run", *dryRun).
		Msg("import done")
}
