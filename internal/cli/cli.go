// Package cli provides the zozikafe command line.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"zozikafe/config"
	"zozikafe/database"
	"zozikafe/internal/infra/kv"
	"zozikafe/internal/store"
)

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "zozikafe",
		Short: "ZoziKafe coffee machine showroom",
		Long: `ZoziKafe coffee machine showroom.

Serves the bilingual public site and the admin pages, and manages the
machine inventory from the shell.

Configuration comes from the environment (and .env when present):
  STORE_DRIVER   badger (default), sqlite or postgres
  STORE_PATH     badger directory or sqlite file
  DB_URL         postgres connection string`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newMachinesCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newExportCmd())
	return root
}

// Execute runs the CLI.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// openStore loads config and opens the configured backend.
func openStore() (*config.Config, kv.Store, *store.RecordStore, error) {
	cfg, err := config.LoadEnv()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	kvs, err := database.OpenStore(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open store: %w", err)
	}
	return cfg, kvs, store.New(kvs), nil
}
