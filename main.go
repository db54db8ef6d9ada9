// =============================================================================
// Smart Bookshop POS - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Smart Bookshop POS CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   bookshop book ...        - Manage the book catalog
//   bookshop sale ...        - Sell books and record the sale
//   bookshop report ...      - Browse the daily sales ledgers
//   bookshop password change - Change the staff password
//   bookshop version         - Display the application version
//
// ARCHITECTURE:
//   - cmd/      : CLI command definitions (Cobra)
//   - internal/ : Stores, cart, ledger and checkout (not for external import)
//   - pkg/      : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/smartbookshop/bookshop-pos/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
