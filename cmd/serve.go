package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lehigh-university-libraries/proofreader/internal/handlers"
	"github.com/lehigh-university-libraries/proofreader/internal/proofread"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the proofreading API server",
		Long: `Starts the proofreading HTTP API on the given port.

Routes:
  GET  /healthcheck
  GET  /api/proofreadinfo?prop=namespaces|qualitylevels
  GET  /api/indexes/{name}
  GET  /api/indexes/{name}/pages?lang=
  GET  /api/page?title=&lang=
  PUT  /api/page

The acting user is read from the user_header request header (default
X-Remote-User), which the fronting proxy must set. Groups come from
user_groups in the config file.`,
		Example: `  # Start server on the configured port (default 8888)
  proofreader serve --catalog ./catalog.jsonl

  # Start server on custom port
  proofreader serve --port 3000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = opts.cfg.Port
			}

			a, err := opts.newApp()
			if err != nil {
				return err
			}
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			editor := proofread.NewEditor(a.resolver, store, opts.cfg.Machine())
			handler := handlers.New(handlers.Services{
				Resolver:        a.resolver,
				Indexes:         a.indexes,
				Editor:          editor,
				Viewer:          opts.newViewer(a, store),
				Info:            opts.cfg.Info(),
				Languages:       a.languages,
				DefaultLanguage: opts.cfg.DefaultLanguage,
				UserHeader:      opts.cfg.UserHeader,
				GroupsOf:        opts.cfg.GroupsOf,
			})

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           handlers.NewRouter(handler, timeout),
				ReadHeaderTimeout: 10 * time.Second,
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				slog.Info("Proofreader API available", "addr", addr, "url", "http://localhost"+addr, "store", opts.cfg.Store)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			})

			return g.Wait()
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default from config, 8888)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Per-request timeout")

	return cmd
}
