package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"consultation-booking/internal/handler/middleware"
	"consultation-booking/internal/pkg/config"
	"consultation-booking/internal/pkg/errs"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// Applies the versioned SQL files under -dir with the atlas CLI.
func main() {
	dir := flag.String("dir", "migrations", "directory holding the versioned migration files and atlas.sum")
	atlasBin := flag.String("atlas", "atlas", "path to the atlas binary")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall migration timeout")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := migrate(ctx, logger, *dir, *atlasBin, cfg.DB.BuildDSN()); err != nil {
		logger.Error("Migration failed", "error", err)
		os.Exit(1)
	}
}

func migrate(ctx context.Context, logger *slog.Logger, dir, atlasBin, dsn string) error {
	workdir, err := atlasexec.NewWorkingDir(
		atlasexec.WithMigrations(os.DirFS(dir)),
	)
	if err != nil {
		return errs.Wrap(err, "failed to prepare migration directory")
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), atlasBin)
	if err != nil {
		return errs.Wrap(err, "failed to create atlas client")
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{URL: dsn})
	if err != nil {
		return errs.Wrap(err, "failed to apply migrations")
	}

	for _, f := range res.Applied {
		logger.Info("Applied migration", "name", f.Name, "version", f.Version)
	}
	logger.Info("Database is up to date", "current", res.Current, "target", res.Target, "applied", len(res.Applied))
	return nil
}
