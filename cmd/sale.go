// =============================================================================
// Smart Bookshop POS - Sale Command
// =============================================================================
//
// This file defines the 'sale' command, which sells books and records the
// sale in today's ledger.
//
// COMMAND USAGE:
//   bookshop sale <sku> [<sku>...] [--remove N]... [--dry-run]
//
// SALE PROCESS:
//   1. Look up every SKU in the catalog and add one unit per argument
//   2. Remove the cart positions named by --remove (1-based)
//   3. Show the cart
//   4. Record the sale and print the invoice (skipped with --dry-run)
//
// A SKU repeated on the command line sells that many units.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smartbookshop/bookshop-pos/internal/cart"
	"github.com/smartbookshop/bookshop-pos/internal/sale"
)

var (
	saleRemove []int
	saleDryRun bool
)

// saleCmd represents the 'sale' command.
var saleCmd = &cobra.Command{
	Use:   "sale <sku> [<sku>...]",
	Short: "Sell books and record the sale in today's ledger",
	Long: `Sell books and record the sale in today's ledger.

Each argument adds one unit of that SKU to the cart. The sale is written to
Sales_Records/DD-MM-YYYY.xlsx; if that write fails nothing is recorded and
the command can simply be run again.

Example:
  bookshop sale BK-001 BK-001 BK-007 -p admin123
  bookshop sale BK-001 BK-007 --remove 2 -p admin123`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		return runSale(cmd.OutOrStdout(), app, args)
	},
}

func init() {
	saleCmd.Flags().IntSliceVar(&saleRemove, "remove", nil, "Cart position to remove before checkout (1-based, repeatable)")
	saleCmd.Flags().BoolVar(&saleDryRun, "dry-run", false, "Show the cart without recording the sale")
	rootCmd.AddCommand(saleCmd)
}

// runSale builds the cart from skus and checks it out.
func runSale(out io.Writer, app *App, skus []string) error {
	basket := cart.New()
	for _, sku := range skus {
		record, err := app.Catalog.Get(sku)
		if err != nil {
			return err
		}
		basket.Add(record)
		app.Logger.Debug("added to cart", "sku", sku, "items", basket.ItemCount())
	}

	// Remove from the highest position down so earlier positions stay put.
	positions := slices.Clone(saleRemove)
	slices.Sort(positions)
	slices.Reverse(positions)
	for _, pos := range slices.Compact(positions) {
		if err := basket.RemoveAt(pos - 1); err != nil {
			return err
		}
	}

	printCart(out, app, basket)

	if saleDryRun {
		fmt.Fprintln(out, "\nDry run: sale not recorded.")
		return nil
	}

	invoice, err := app.Checkout.Complete(basket)
	if err != nil {
		return err
	}
	printInvoice(out, app, invoice)
	return nil
}

func printCart(out io.Writer, app *App, basket *cart.Cart) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSKU\tTITLE\tCLASS\tPRICE")
	for i, item := range basket.Items() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, item.SKU, item.Title, item.Category.Label(), app.money(item.Price))
	}
	tw.Flush()
	fmt.Fprintf(out, "\nItems: %d   Total: %s\n", basket.ItemCount(), app.money(basket.Total()))
}

func printInvoice(out io.Writer, app *App, invoice *sale.Invoice) {
	fmt.Fprintln(out, "\n==================== INVOICE ====================")
	fmt.Fprintf(out, "Date: %s   Time: %s\n", invoice.Date, invoice.Time)
	fmt.Fprintf(out, "Sale: %s\n\n", invoice.SaleID)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tCLASS\tQTY\tUNIT\tSUBTOTAL")
	for _, line := range invoice.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			line.Item.Title,
			line.Item.Category.Label(),
			line.Quantity,
			app.money(line.Item.Price),
			app.money(line.Subtotal),
		)
	}
	tw.Flush()

	fmt.Fprintln(out, "-------------------------------------------------")
	fmt.Fprintf(out, "Total books: %d\n", invoice.TotalBooks)
	fmt.Fprintf(out, "Total bill:  %s\n", app.money(invoice.TotalAmount))
	fmt.Fprintln(out, "=================================================")
}
