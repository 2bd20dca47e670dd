// Command govdata queries the OpenGovTools record stores from the shell.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"opengov/internal/config"
	"opengov/internal/db"
	"opengov/internal/records"
)

// loader returns the catalog a command works on.
type loader func(ctx context.Context) (*records.Catalog, error)

func main() {
	if err := newRootCmd(loadCatalog).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(load loader) *cobra.Command {
	root := &cobra.Command{
		Use:   "govdata",
		Short: "Query public spending, projects and decisions",
		Long: `govdata lists the records behind the OpenGovTools dashboard.

Records come from MongoDB when OPENGOV_MONGO_URI is set and from the
datasets built into the binary otherwise.`,
		SilenceUsage: true,
	}
	root.AddCommand(newListCmd(load), newBudgetCmd(load))
	return root
}

// loadCatalog reads the configured store, falling back to the embedded data.
func loadCatalog(ctx context.Context) (*records.Catalog, error) {
	catalog, err := records.Embedded()
	if err != nil {
		return nil, fmt.Errorf("load embedded records: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if !cfg.UseMongo() {
		return catalog, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.Mongo, "govdata")
	if err != nil {
		return nil, err
	}
	defer db.Disconnect(context.Background(), database)

	return records.NewRepo(database).Load(ctx, catalog)
}
