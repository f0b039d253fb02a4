package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/mev/internal/devserver"
	"github.com/nikbrunner/mev/internal/storage"
)

func (c *cli) newDevServerCmd() *cobra.Command {
	var (
		addr   string
		dbPath string
		seed   bool
	)

	cmd := &cobra.Command{
		Use:   "dev-server",
		Short: "Serve the backend API from a local SQLite database",
		Long: `Runs a local implementation of the backend API for development. Point
api.base_url at it, e.g. MEV_API_BASE_URL=http://localhost:8080.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = c.cfg.Dev.Addr
			}
			if dbPath == "" {
				dbPath = c.cfg.Dev.DB
			}
			lg := c.stderrLogger().WithPrefix("dev")

			store, err := storage.NewSQLiteStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if seed {
				if err := store.Seed(ctx); err != nil {
					return err
				}
				lg.Info("seeded", "db", store.Path())
			}

			srv := devserver.New(store, devserver.Config{
				Addr:     addr,
				PageSize: c.cfg.Search.PageSize,
				Logger:   lg,
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default dev.addr)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database (default dev.db)")
	cmd.Flags().BoolVar(&seed, "seed", true, "insert sample data into an empty database")
	return cmd
}

