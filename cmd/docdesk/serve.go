package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/finite-collective/docdesk/internal/config"
	"github.com/finite-collective/docdesk/internal/httpapi"
	"github.com/finite-collective/docdesk/pkg/store"
)

var serveInit bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local file-service",
	Long: `Serve the document root over HTTP: health, tree listing, document
read and document write. A filesystem watcher keeps the tree listing fresh
while files change underneath.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		st, err := store.New(store.Config{
			Root:   cfg.Root,
			Ignore: cfg.Ignore,
			Logger: slog.Default(),
		})
		if err != nil {
			fatal("Failed to open document root", err)
		}

		if serveInit {
			if err := st.Initialize(cmd.Context()); err != nil {
				fatal("Failed to create document root", err)
			}
		}
		if err := st.Health(cmd.Context()); err != nil {
			fatal("Document root is not usable", err)
		}

		srv := httpapi.NewServer(cfg.ListenAddr, st, cfg.MaxBodyBytes, slog.Default())

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			if err := srv.WatchInvalidate(ctx); err != nil {
				slog.Warn("filesystem watcher unavailable", "error", err)
			}
		}()

		fmt.Printf("Serving %s on %s\n", st.Root(), cfg.ListenAddr)
		if err := srv.Run(ctx); err != nil {
			fatal("Server stopped", err)
		}
		fmt.Println("Shut down")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveInit, "init", false, "Create the document root if it does not exist")
}
