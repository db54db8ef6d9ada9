// =============================================================================
// Smart Bookshop POS - Application Wiring
// =============================================================================
//
// App owns every store for the lifetime of one command. It is built once
// by the root command and handed to subcommands through the command context.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/smartbookshop/bookshop-pos/internal/catalog"
	"github.com/smartbookshop/bookshop-pos/internal/config"
	"github.com/smartbookshop/bookshop-pos/internal/credentials"
	"github.com/smartbookshop/bookshop-pos/internal/ledger"
	"github.com/smartbookshop/bookshop-pos/internal/sale"
	"github.com/smartbookshop/bookshop-pos/internal/types"
	"github.com/smartbookshop/bookshop-pos/pkg/utils"
)

// App bundles configuration, logging and the loaded stores.
type App struct {
	Config      *config.MainConfig
	Logger      *log.Logger
	Catalog     *catalog.Store
	Credentials *credentials.Store
	Ledger      *ledger.Ledger
	Checkout    *sale.Checkout
}

type appKey struct{}

// OpenApp creates the data directories and loads the stores described by cfg.
func OpenApp(cfg *config.MainConfig, logger *log.Logger) (*App, error) {
	fm := utils.NewFileManager(cfg.Directories()...)
	if err := fm.EnsureDirectories(); err != nil {
		return nil, err
	}

	books := catalog.NewStore(cfg.InventoryPath())
	if err := books.Load(); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	logger.Debug("catalog loaded", "path", books.Path(), "books", books.Len())

	creds := credentials.NewStore(cfg.CredentialsPath(), cfg.DefaultPassword)
	if err := creds.Load(); err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	sales := ledger.New(cfg.SalesPath(), cfg.Ledger, cfg.CurrencySymbol)

	return &App{
		Config:      cfg,
		Logger:      logger,
		Catalog:     books,
		Credentials: creds,
		Ledger:      sales,
		Checkout:    sale.NewCheckout(sales, sale.WithLogger(logger)),
	}, nil
}

// appFrom returns the App stored by the root command.
func appFrom(cmd *cobra.Command) (*App, error) {
	app, ok := cmd.Context().Value(appKey{}).(*App)
	if !ok {
		return nil, errors.New("application not initialized")
	}
	return app, nil
}

// money formats an amount with the configured currency symbol.
func (a *App) money(amount interface{ StringFixed(int32) string }) string {
	return a.Config.CurrencySymbol + " " + amount.StringFixed(2)
}

// describeError turns store errors into operator-facing messages.
func describeError(err error) string {
	var (
		corruptErr *types.CorruptDataError
		ioErr      *types.IOError
	)

	switch {
	case errors.As(err, &corruptErr):
		return fmt.Sprintf("data file is damaged, fix or restore it before continuing: %s", corruptErr.Error())
	case errors.As(err, &ioErr):
		return fmt.Sprintf("file access failed, nothing was changed: %s", ioErr.Error())
	default:
		return err.Error()
	}
}
