// =============================================================================
// Smart Bookshop POS - Book Commands
// =============================================================================
//
// COMMAND USAGE:
//   bookshop book add --title T --sku S --category 9 --price 250
//   bookshop book update <sku> [--title T] [--sku S] [--category C] [--price P]
//   bookshop book delete <sku>
//   bookshop book show <sku>
//   bookshop book list [--category C] [--search TEXT]
//   bookshop book import <file.csv> [--delimiter D]
//   bookshop book export [file.csv] [--delimiter D] [--force]
//
// Every change is written to Inventory/books.json before the command reports
// success.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smartbookshop/bookshop-pos/internal/catalog"
	"github.com/smartbookshop/bookshop-pos/internal/config"
	"github.com/smartbookshop/bookshop-pos/internal/types"
	"github.com/smartbookshop/bookshop-pos/pkg/utils"
)

// bookFlags holds the field flags shared by add and update.
type bookFlags struct {
	title    string
	sku      string
	category string
	price    string
}

var (
	addFlags    bookFlags
	updateFlags bookFlags

	listCategory string
	listSearch   string

	csvDelimiter string
	exportForce  bool
)

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Manage the book catalog",
}

var bookAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		return runBookAdd(cmd.OutOrStdout(), app, addFlags)
	},
}

var bookUpdateCmd = &cobra.Command{
	Use:   "update <sku>",
	Short: "Edit a book; fields not given keep their current value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		current, err := app.Catalog.Get(args[0])
		if err != nil {
			return err
		}

		input := types.BookInput{
			Title:    current.Title,
			SKU:      current.SKU,
			Category: string(current.Category),
			Price:    current.Price.String(),
		}
		flags := cmd.Flags()
		if flags.Changed("title") {
			input.Title = updateFlags.title
		}
		if flags.Changed("sku") {
			input.SKU = updateFlags.sku
		}
		if flags.Changed("category") {
			input.Category = updateFlags.category
		}
		if flags.Changed("price") {
			input.Price = updateFlags.price
		}

		record, err := app.Catalog.Update(args[0], input)
		if err != nil {
			return err
		}
		app.Logger.Info("book updated", "sku", args[0], "new_sku", record.SKU)
		fmt.Fprintln(cmd.OutOrStdout(), "Book updated successfully.")
		printBook(cmd.OutOrStdout(), app, record)
		return nil
	},
}

var bookDeleteCmd = &cobra.Command{
	Use:   "delete <sku>",
	Short: "Remove a book from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		if err := app.Catalog.Delete(args[0]); err != nil {
			return err
		}
		app.Logger.Info("book deleted", "sku", args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "Book %s deleted.\n", args[0])
		return nil
	},
}

var bookShowCmd = &cobra.Command{
	Use:   "show <sku>",
	Short: "Show one book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		record, err := app.Catalog.Get(args[0])
		if err != nil {
			return err
		}
		printBook(cmd.OutOrStdout(), app, record)
		return nil
	},
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List books, optionally filtered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		filter := catalog.Filter{
			Category: types.Category(strings.TrimSpace(listCategory)),
			Search:   listSearch,
		}
		return runBookList(cmd.OutOrStdout(), app, filter)
	},
}

var bookImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Add books from a CSV file with title,sku,category,price columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		delimiter, err := resolveDelimiter(app)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		result, err := app.Catalog.Import(f, delimiter)
		if result != nil {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rows read: %d\n", result.RowsRead)
			fmt.Fprintf(out, "Added:     %d\n", len(result.Added))
			fmt.Fprintf(out, "Rejected:  %d\n", len(result.Errors))
			for _, rowErr := range result.Errors {
				fmt.Fprintf(out, "  - %s\n", describeError(rowErr))
				app.Logger.Warn("import row rejected", "file", args[0], "row", rowErr.Row, "err", rowErr.Err)
			}
		}
		if err != nil {
			return err
		}
		app.Logger.Info("import complete", "file", args[0], "added", len(result.Added), "rejected", len(result.Errors))
		return nil
	},
}

var bookExportCmd = &cobra.Command{
	Use:   "export [file.csv]",
	Short: "Write the catalog as CSV to a file or standard output",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		delimiter, err := resolveDelimiter(app)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			return app.Catalog.Export(cmd.OutOrStdout(), delimiter)
		}

		exists, err := utils.FileExists(args[0])
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", args[0], err)
		}
		if exists && !exportForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", args[0])
		}

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", args[0], err)
		}
		if err := app.Catalog.Export(f, delimiter); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", args[0], err)
		}
		app.Logger.Info("catalog exported", "file", args[0], "books", app.Catalog.Len())
		return nil
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	registerBookFlags(bookAddCmd, &addFlags)
	registerBookFlags(bookUpdateCmd, &updateFlags)

	bookListCmd.Flags().StringVar(&listCategory, "category", "", "Only list books of this class (9-12)")
	bookListCmd.Flags().StringVar(&listSearch, "search", "", "Only list books whose title or SKU contains this text")

	for _, c := range []*cobra.Command{bookImportCmd, bookExportCmd} {
		c.Flags().StringVar(&csvDelimiter, "delimiter", "", "Field delimiter (defaults to import.delimiter from the config)")
	}

	bookExportCmd.Flags().BoolVar(&exportForce, "force", false, "Overwrite an existing export file")

	bookCmd.AddCommand(bookAddCmd, bookUpdateCmd, bookDeleteCmd, bookShowCmd, bookListCmd, bookImportCmd, bookExportCmd)
	rootCmd.AddCommand(bookCmd)
}

func registerBookFlags(c *cobra.Command, f *bookFlags) {
	c.Flags().StringVar(&f.title, "title", "", "Book title")
	c.Flags().StringVar(&f.sku, "sku", "", "Stock keeping unit / serial number")
	c.Flags().StringVar(&f.category, "category", "", "Class: 9, 10, 11 or 12")
	c.Flags().StringVar(&f.price, "price", "", "Unit price, greater than zero")
}

// =============================================================================
// RUN FUNCTIONS
// =============================================================================

func runBookAdd(out io.Writer, app *App, f bookFlags) error {
	record, err := app.Catalog.Add(types.BookInput{
		Title:    f.title,
		SKU:      f.sku,
		Category: f.category,
		Price:    f.price,
	})
	if err != nil {
		return err
	}
	app.Logger.Info("book added", "sku", record.SKU)
	fmt.Fprintln(out, "Book added successfully.")
	printBook(out, app, record)
	return nil
}

func runBookList(out io.Writer, app *App, filter catalog.Filter) error {
	if filter.Category != "" && !filter.Category.Valid() {
		return &types.ValidationError{
			Field:   "category",
			Value:   string(filter.Category),
			Rule:    "category",
			Message: "category must be one of 9, 10, 11, 12",
		}
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SKU\tTITLE\tCLASS\tPRICE")
	count := 0
	for b := range app.Catalog.List(filter) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.SKU, b.Title, b.Category.Label(), app.money(b.Price))
		count++
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d book(s)\n", count)
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func printBook(out io.Writer, app *App, b types.BookRecord) {
	fmt.Fprintf(out, "  Title:    %s\n", b.Title)
	fmt.Fprintf(out, "  SKU:      %s\n", b.SKU)
	fmt.Fprintf(out, "  Category: %s\n", b.Category.Label())
	fmt.Fprintf(out, "  Price:    %s\n", app.money(b.Price))
}

// resolveDelimiter prefers the --delimiter flag over the configured one.
func resolveDelimiter(app *App) (rune, error) {
	value := app.Config.Import.Delimiter
	if csvDelimiter != "" {
		value = csvDelimiter
	}
	r := config.DelimiterRune(value)
	if r == 0 {
		return 0, &types.ValidationError{
			Field:   "delimiter",
			Value:   value,
			Rule:    "oneof",
			Message: `delimiter must be one of "," "|" ";" or "tab"`,
		}
	}
	return r, nil
}
