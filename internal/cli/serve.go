package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/indoornav/cache"
	"github.com/katalvlaran/indoornav/internal/config"
	"github.com/katalvlaran/indoornav/internal/server"
)

// sweepInterval is how often the in-memory route cache drops expired entries.
const sweepInterval = time.Minute

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		backend string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the route planner over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := c.load(ctx)
			if err != nil {
				return err
			}
			if addr != "" {
				e.cfg.Server.Addr = addr
			}
			if backend != "" {
				e.cfg.Cache.Backend = backend
				if err := e.cfg.Validate(); err != nil {
					return err
				}
			}
			ln, err := net.Listen("tcp", e.cfg.Server.Addr)
			if err != nil {
				return err
			}
			return serve(ctx, ln, e)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&backend, "cache", "", "route cache: none, memory or redis")
	return cmd
}

// serve runs the API on ln until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, e *env) error {
	logger := loggerFromContext(ctx)

	rc, err := openCache(ctx, e.cfg, logger)
	if err != nil {
		ln.Close()
		return err
	}
	defer rc.Close()

	srv := server.New(e.planner,
		server.WithCatalog(e.catalog),
		server.WithCache(rc, e.cfg.Cache.TTL),
		server.WithLogger(logger),
		server.WithDefaultLang(e.cfg.Lang),
		server.WithMaxStops(e.cfg.Server.MaxStops),
		server.WithRouteTimeout(e.cfg.Route.Timeout),
	)
	hs := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: e.cfg.Server.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- hs.Serve(ln) }()
	logger.Info("listening", "addr", ln.Addr().String(), "cache", e.cfg.Cache.Backend, "lang", e.cfg.Lang)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// openCache builds the configured route cache. The memory cache is swept
// until ctx is done.
func openCache(ctx context.Context, cfg config.Config, logger *log.Logger) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNull(), nil
	case config.CacheRedis:
		r, err := cache.NewRedis(ctx, cfg.Cache.Redis)
		if err != nil {
			return nil, err
		}
		logger.Debug("redis cache connected", "prefix", cfg.Cache.Redis.Prefix)
		return r, nil
	default:
		m := cache.NewMemory()
		go func() {
			t := time.NewTicker(sweepInterval)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
					if n := m.Sweep(); n > 0 {
						logger.Debug("route cache swept", "expired", n)
					}
				}
			}
		}()
		return m, nil
	}
}
