package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"rssmerge/adapter/memory"
	"rssmerge/adapter/rss"
	"rssmerge/adapter/web"
	"rssmerge/app"
	"rssmerge/cli/control"
	"rssmerge/internal/logger"
)

const (
	exitUsage        = 2
	exitSourcesFile  = 3
	exitNoSources    = 4
	shutdownDeadline = 10 * time.Second
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "fetch the sources periodically and serve the merged feed",
		ArgsUsage: "SOURCES_FILE",
		Action:    serve,
	}
}

func serve(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: rssmerge serve SOURCES_FILE", exitUsage)
	}
	cfg, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	sources, err := LoadSources(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("cannot read sources file: %v", err), exitSourcesFile)
	}

	ctx, cancel := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.UseDatabase {
		registered, err := registeredSources(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to load registered sources: %w", err)
		}
		sources = lo.Uniq(append(sources, registered...))
	}
	if len(sources) == 0 {
		return cli.Exit("no sources to fetch", exitNoSources)
	}

	listener, err := control.TryListen(cfg.ControlAddr)
	if err != nil {
		if errors.Is(err, control.ErrAlreadyRunning) {
			fmt.Println("Background process is already running")
		}
		return err
	}
	defer listener.Close()

	store := memory.NewStore()
	pages := app.NewPageFetcher(rss.NewHTTPFetcher(cfg.FetchTimeout), rss.NewParser())
	paginator := app.NewQueryPaginator(cfg.PagedHosts, cfg.PageParam)
	paged := app.NewPaginatedFetcher(pages, paginator, cfg.PageWidth, cfg.MaxPages)
	sched := app.NewScheduler(store, pages, paged, paginator, sources, cfg.Interval)

	go func() {
		if err := http.Serve(listener, control.NewServer(sched, store)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L.Warnw("control server stopped", "error", err)
		}
	}()

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: web.NewMux(store)}
	serveErr := make(chan error, 1)
	go func() {
		logger.L.Infow("http server listening", "addr", cfg.ListenAddr)
		serveErr <- srv.ListenAndServe()
	}()

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	logger.L.Infow("scheduler started", "sources", len(sources), "interval", cfg.Interval)

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownDeadline)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L.Warnw("http server shutdown", "error", err)
	}
	if err := sched.Stop(); err != nil {
		logger.L.Warnw("scheduler stop", "error", err)
	}
	logger.L.Infow("graceful shutdown complete")
	return runErr
}
