package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/hotels/internal/catalog"
	"github.com/roach88/hotels/internal/store"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Database string

	// IDGenerator overrides ID assignment (for testing). Defaults to
	// UUIDv7 when nil.
	IDGenerator store.IDGenerator
}

// ImportSummary is the JSON payload of the import command.
type ImportSummary struct {
	Source   string `json:"source"`
	Total    int    `json:"total"`
	Inserted int    `json:"inserted"`
	Skipped  int    `json:"skipped"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <catalog>",
		Short: "Import a catalog into a SQLite database",
		Long: `Validate a catalog and store its hotels in a SQLite database, creating
the database if it doesn't exist.

Hotels are identified by content, so importing the same catalog twice
stores nothing new. Hotels without an id are given a UUIDv7.

Example:
  hotels import ./hotels.json --db ./hotels.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runImport(ctx context.Context, opts *ImportOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())

	c, err := catalog.Load(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, errorCode(err), "failed to load catalog", err)
	}
	hotels, err := c.All(ctx)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeRead, "failed to read catalog", err)
	}

	var storeOpts []store.Option
	if opts.IDGenerator != nil {
		storeOpts = append(storeOpts, store.WithIDGenerator(opts.IDGenerator))
	}
	st, err := store.Open(opts.Database, storeOpts...)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	res, err := st.Import(ctx, path, hotels)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "import failed", err)
	}
	logger.Info("catalog imported", "source", path, "total", res.Total, "inserted", res.Inserted)

	summary := ImportSummary{
		Source:   path,
		Total:    res.Total,
		Inserted: res.Inserted,
		Skipped:  res.Skipped(),
	}
	if opts.Format == "json" {
		return formatter.Success(summary)
	}

	fmt.Fprintf(formatter.Writer, "Imported %d of %d hotel(s) from %s (%d already stored)\n",
		summary.Inserted, summary.Total, path, summary.Skipped)
	return nil
}
