package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/repquest/repquest/internal/config"
	"github.com/repquest/repquest/internal/ingest"
	"github.com/repquest/repquest/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	exportPath := flag.String("file", "", "path to training-log export (required)")
	user := flag.String("user", "local", "user login to import into")
	dryRun := flag.Bool("dry-run", false, "report counts without inserting into database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *exportPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: repquest-import -config config.yaml -file export.csv [-user login] [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := os.Open(*exportPath)
	if err != nil {
		log.Error("cannot open export file", "path", *exportPath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	sessions, err := ingest.Parse(f)
	if err != nil {
		log.Error("parse failed", "error", err)
		os.Exit(1)
	}
	log.Info("export parsed", "sessions", len(sessions))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode, no data will be written to the database")
	}

	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	uid, err := db.GetOrCreateUser(ctx, *user, "")
	if err != nil {
		log.Error("failed to resolve user", "login", *user, "error", err)
		os.Exit(1)
	}

	imp := ingest.NewImporter(db, log, *dryRun)
	stats, err := imp.Import(ctx, uid, sessions)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *ingest.Stats) {
	if stats == nil {
		return
	}
	log.Info("import stats",
		"parsed", stats.Parsed,
		"inserted", stats.Inserted,
		"skipped", stats.Skipped,
	)
}
