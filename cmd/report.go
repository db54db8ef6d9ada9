// =============================================================================
// Smart Bookshop POS - Report Commands
// =============================================================================
//
// COMMAND USAGE:
//   bookshop report list               - every ledger day, newest first
//   bookshop report show <DD-MM-YYYY>  - the sales recorded on one day
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smartbookshop/bookshop-pos/internal/ledger"
	"github.com/smartbookshop/bookshop-pos/internal/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Browse the daily sales ledgers",
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the days that have sales, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		return runReportList(cmd.OutOrStdout(), app)
	},
}

var reportShowCmd = &cobra.Command{
	Use:   "show <DD-MM-YYYY>",
	Short: "Show the sales recorded on one day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		return runReportShow(cmd.OutOrStdout(), app, args[0])
	},
}

func init() {
	reportCmd.AddCommand(reportListCmd, reportShowCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportList(out io.Writer, app *App) error {
	dates, err := app.Ledger.ListLedgerDates()
	if err != nil {
		return err
	}
	if len(dates) == 0 {
		fmt.Fprintln(out, "No sales records found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSALES\tREVENUE")
	for _, date := range dates {
		report, err := app.Ledger.ReadLedger(date)
		if err != nil {
			// One unreadable day should not hide the others.
			app.Logger.Warn("skipping unreadable ledger", "date", date.Format(ledger.DateLayout), "err", err)
			fmt.Fprintf(tw, "%s\t?\t?\n", date.Format(ledger.DateLayout))
			continue
		}
		revenue := "?"
		if amount, err := report.Revenue(); err == nil {
			revenue = app.money(amount)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", date.Format(ledger.DateLayout), report.TransactionCount, revenue)
	}
	return tw.Flush()
}

func runReportShow(out io.Writer, app *App, day string) error {
	date, err := ledger.ParseDate(day)
	if err != nil {
		return &types.ValidationError{
			Field:   "date",
			Value:   day,
			Rule:    "date",
			Message: "date must be in DD-MM-YYYY format",
		}
	}

	report, err := app.Ledger.ReadLedger(date)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Sales for %s (%s)\n\n", date.Format(ledger.DateLayout), report.Path)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(report.Header, "\t"))
	for _, row := range report.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nTransactions: %d\n", report.TransactionCount)
	revenue, err := report.Revenue()
	if err != nil {
		app.Logger.Warn("could not total revenue", "date", day, "err", err)
		return nil
	}
	fmt.Fprintf(out, "Revenue:      %s\n", app.money(revenue))
	return nil
}
