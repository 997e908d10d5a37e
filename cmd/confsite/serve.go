package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/faa-hf/confsite/internal/config"
	"github.com/faa-hf/confsite/internal/core"
	"github.com/faa-hf/confsite/internal/databag"
	"github.com/faa-hf/confsite/internal/drive"
	"github.com/faa-hf/confsite/internal/funcs"
	"github.com/faa-hf/confsite/internal/markdown"
	"github.com/faa-hf/confsite/internal/site"
	"github.com/faa-hf/confsite/internal/watch"
	"github.com/faa-hf/confsite/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the preview server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

// openPool connects to the databag database using the configured pool sizes.
func openPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// stores builds the databag store: Postgres first when configured, then
// the databag directory. The returned cleanup releases the pool.
func (a *app) stores(ctx context.Context) (*databag.FileStore, databag.Store, func(), error) {
	files, err := databag.NewFileStore(a.cfg.Site.DatabagDir)
	if err != nil {
		return nil, nil, nil, err
	}
	if !a.cfg.UsesDatabase() {
		return files, files, func() {}, nil
	}

	pool, err := openPool(ctx, a.cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	pg := databag.NewPGStore(pool)
	if err := pg.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}
	slog.Info("databags served from database", "fallback_dir", files.Dir())
	return files, databag.Chain(pg, files), pool.Close, nil
}

func (a *app) resolver(store databag.Store) *drive.Resolver {
	return drive.NewResolver(store,
		drive.WithBag(a.cfg.Drive.Bag),
		drive.WithMarker(a.cfg.Drive.Marker),
		drive.WithURLFormat(a.cfg.Drive.URLFormat),
	)
}

func (a *app) serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("configuration loaded", "config", a.cfg.String())
	slog.Info("table kinds registered", "count", core.KindCount())

	files, store, cleanup, err := a.stores(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if a.cfg.Site.Watch {
		w, err := watch.New(files.Dir(), files, watch.WithFilter(databag.IsBagFile))
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			slog.Warn("databag watch disabled", "error", err)
		} else {
			defer w.Stop()
		}
	}

	tree := site.NewTree(a.cfg.Site.ContentDir)
	resolver := a.resolver(store)
	server := web.NewServer(web.Deps{
		Tree: tree,
		Funcs: &funcs.Env{
			Tree:          tree,
			Drive:         resolver,
			Markdown:      markdown.New(resolver),
			SponsorsPage:  a.cfg.Site.SponsorsPage,
			DefaultColors: a.cfg.Palette.DefaultColors,
		},
		TemplateDir: a.cfg.Site.TemplateDir,
		Server:      a.cfg.Server,
	})

	go func() {
		<-ctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	return server.Start()
}
