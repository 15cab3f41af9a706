// Package commands is the cotizaciones command line: it works directly on
// the stored snapshot, using the same storage settings as the server.
package commands

import (
	"context"
	"fmt"

	"github.com/diewo77/go-cotizaciones/internal/config"
	"github.com/diewo77/go-cotizaciones/internal/db"
	"github.com/diewo77/go-cotizaciones/internal/logging"
	"github.com/diewo77/go-cotizaciones/internal/services"
	"github.com/diewo77/go-cotizaciones/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// env is what every subcommand works with once the root has wired storage.
type env struct {
	envFile string
	driver  string
	path    string
	verbose bool

	backend db.Backend
	store   *store.Store
	svc     *services.QuotationService
	// persistErr is the last failed snapshot write, reported on exit.
	persistErr error
}

func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. Output goes to the command's out and
// err writers so tests can capture it.
func NewRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "cotizaciones",
		Short:         "Manage quotations from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if e.backend == nil {
				return nil
			}
			if err := e.backend.Close(); err != nil {
				return err
			}
			if e.persistErr != nil {
				return fmt.Errorf("changes were not saved: %w", e.persistErr)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&e.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	root.PersistentFlags().StringVar(&e.driver, "driver", "", "storage driver, overrides STORAGE_DRIVER")
	root.PersistentFlags().StringVar(&e.path, "path", "", "storage directory, overrides STORAGE_PATH")
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "log storage activity")

	root.AddCommand(
		listCmd(e),
		nextNumberCmd(e),
		totalsCmd(e),
		statusCmd(e),
		duplicateCmd(e),
		statsCmd(e),
		pdfCmd(e),
		snapshotCmd(e),
	)
	return root
}

func (e *env) open(cmd *cobra.Command) error {
	_ = godotenv.Load(e.envFile)

	cfg := config.Load()
	if e.driver != "" {
		cfg.Storage.Driver = e.driver
	}
	if e.path != "" {
		cfg.Storage.Path = e.path
	}
	cfg.Log.Format = "pretty"
	cfg.Log.Level = "warn"
	if e.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := logging.NewWithWriter(cfg.Log, cmd.ErrOrStderr())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	backend, err := db.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage %s: %w", cfg.Storage.Driver, err)
	}
	e.backend = backend
	e.store = store.Open(ctx, backend, store.Options{Key: cfg.Storage.Key, Logger: logger})
	e.store.Subscribe(func(ch store.Change) {
		if ch.PersistErr != nil {
			e.persistErr = ch.PersistErr
		}
	})
	e.svc = services.NewQuotationService(e.store, services.Options{
		Numbering:    services.ParseNumbering(cfg.App.Numbering),
		DefaultTax:   cfg.App.DefaultTax,
		ValidityDays: cfg.App.ValidityDays,
		Logger:       logger,
	})
	return nil
}
