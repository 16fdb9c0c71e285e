package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/hotels/internal/filter"
	"github.com/roach88/hotels/internal/value"
)

// FilterOptions holds flags for the filter command.
type FilterOptions struct {
	*RootOptions
	ExprFile string
	Exact    bool
	AnyKey   string
}

// NewFilterCommand creates the filter command.
func NewFilterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FilterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "filter <items-file> [expression]",
		Short: "Filter any JSON or YAML array",
		Long: `Apply a filter expression to the array in <items-file> and print the
matching elements as canonical JSON.

The expression is read as JSON when it parses, otherwise as text. Use
--expr-file to read it from a JSON or YAML file instead. Without an
expression the input is printed unchanged.

Expressions:
  boston                    any property contains "boston" (case-insensitive)
  '{"name": "!hotel"}'      name does not contain "hotel"
  '{"$": "spa"}'            any property of the element contains "spa"
  '{"address": {"city": "madrid"}}'   nested match

Examples:
  hotels filter ./hotels.json boston
  hotels filter ./rooms.yaml --expr-file ./pattern.yaml --exact`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ExprFile, "expr-file", "", "read the expression from a JSON or YAML file")
	cmd.Flags().BoolVar(&opts.Exact, "exact", false, "match values exactly instead of by substring")
	cmd.Flags().StringVar(&opts.AnyKey, "any-key", filter.DefaultAnyPropertyKey, "pattern key that matches any property")

	return cmd
}

func runFilter(opts *FilterOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	items, err := readValueFile(args[0])
	if err != nil {
		return formatter.Fail(ExitCommandError, readErrorCode(err), "failed to read items", err)
	}

	var expr value.Value = value.Missing{}
	switch {
	case len(args) == 2 && opts.ExprFile != "":
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "expression argument and --expr-file are mutually exclusive", nil)
	case len(args) == 2:
		expr = parseFlagValue(args[1])
	case opts.ExprFile != "":
		expr, err = readValueFile(opts.ExprFile)
		if err != nil {
			return formatter.Fail(ExitCommandError, readErrorCode(err), "failed to read expression", err)
		}
	}
	formatter.VerboseLog("Filtering %s with a %s expression", value.KindOf(items), value.KindOf(expr))

	result := filter.Filter(items, expr,
		filter.WithExact(opts.Exact),
		filter.WithAnyPropertyKey(opts.AnyKey),
		filter.WithLogger(opts.logger(cmd.ErrOrStderr())),
	)

	if opts.Format == "json" {
		return formatter.Success(value.Interface(result))
	}

	out, err := value.MarshalCanonical(result)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to encode result", err)
	}
	fmt.Fprintln(formatter.Writer, string(out))
	return nil
}

// readValueFile parses a JSON or YAML file into a value.
func readValueFile(path string) (value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	v, err := value.ParseYAML(data)
	if err != nil {
		return nil, &parseError{err: err}
	}
	return v, nil
}

type parseError struct{ err error }

func (e *parseError) Error() string { return e.err.Error() }
func (e *parseError) Unwrap() error { return e.err }

func readErrorCode(err error) string {
	var perr *parseError
	switch {
	case errors.Is(err, os.ErrNotExist):
		return ErrCodeNotFound
	case errors.As(err, &perr):
		return ErrCodeParse
	default:
		return ErrCodeRead
	}
}
