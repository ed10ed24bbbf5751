package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	sqliteadapter "github.com/ericfisherdev/budgetvault/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/budgetvault/internal/adapter/driving/cli"
	"github.com/ericfisherdev/budgetvault/internal/application"
	"github.com/ericfisherdev/budgetvault/internal/config"
	"github.com/ericfisherdev/budgetvault/internal/fieldcrypt"
	"github.com/ericfisherdev/budgetvault/internal/keystore"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded", "db_path", cfg.DBPath, "key_path", cfg.KeyPath)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Load or create the encryption key. A key problem is fatal: running
	// on would either lose data or silently orphan existing tokens.
	key, created, err := keystore.New(cfg.KeyPath).LoadOrCreate()
	if err != nil {
		return err
	}
	if created {
		slog.Warn("new encryption key generated", "path", cfg.KeyPath)
		color.New(color.FgYellow).Fprintf(os.Stderr,
			"[!] New encryption key generated and saved to %q. Items stored under an earlier key can no longer be decrypted.\n",
			cfg.KeyPath)
	}

	cipher, err := fieldcrypt.New(key)
	if err != nil {
		return err
	}

	// 4. Open database and run migrations.
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire adapters and the service.
	svc := application.NewBudgetService(
		sqliteadapter.NewBudgetRepo(db),
		sqliteadapter.NewItemRepo(db),
		cipher,
	)

	// 6. Run the interactive menu until exit or signal.
	menu := cli.New(svc, os.Stdin, os.Stdout, slog.Default())
	return menu.Run(ctx)
}
