package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/MarquinhoCF/alwabp-solver/pkg/api"
	"github.com/MarquinhoCF/alwabp-solver/pkg/cache"
	apperrors "github.com/MarquinhoCF/alwabp-solver/pkg/errors"
	"github.com/MarquinhoCF/alwabp-solver/pkg/store"
)

// shutdownGrace is how long in-flight requests get to finish on shutdown.
const shutdownGrace = 10 * time.Second

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr         string
		redisAddr    string
		mongoURI     string
		mongoDB      string
		solveTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver as an HTTP API",
		Long: `Serve the solver as an HTTP API.

Instances are posted as JSON to /api/v1/solve; completed runs are
listed under /api/v1/runs. Without backends the server keeps results
in process memory. With --redis, solve responses are cached in Redis
so identical requests across processes share work; with --mongo, runs
are archived durably.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), serveParams{
				addr:         addr,
				redisAddr:    redisAddr,
				mongoURI:     mongoURI,
				mongoDB:      mongoDB,
				solveTimeout: solveTimeout,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the solution cache (host:port)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI for the run archive")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", appName, "MongoDB database name")
	cmd.Flags().DurationVar(&solveTimeout, "solve-timeout", api.DefaultSolveTimeout, "per-request solve budget cap")

	return cmd
}

type serveParams struct {
	addr         string
	redisAddr    string
	mongoURI     string
	mongoDB      string
	solveTimeout time.Duration
}

// runServe wires the configured backends and serves until the context
// is cancelled.
func (c *CLI) runServe(ctx context.Context, p serveParams) error {
	opts := []api.Option{
		api.WithLogger(c.Logger),
		api.WithSolveTimeout(p.solveTimeout),
	}

	if p.redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, p.redisAddr)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeCache, err, "connect redis at %s", p.redisAddr)
		}
		defer rc.Close()
		opts = append(opts, api.WithCache(rc))
		c.Logger.Info("solution cache", "backend", "redis", "addr", p.redisAddr)
	}

	if p.mongoURI != "" {
		archive, err := store.NewMongoStore(ctx, p.mongoURI, p.mongoDB)
		if err != nil {
			return fmt.Errorf("connect archive: %w", err)
		}
		defer archive.Close(context.Background())
		opts = append(opts, api.WithStore(archive))
		c.Logger.Info("run archive", "backend", "mongo", "db", p.mongoDB)
	}

	srv := &http.Server{
		Addr:              p.addr,
		Handler:           api.New(opts...).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", p.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
