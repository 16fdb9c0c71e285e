package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/hotels/internal/catalog"
)

// ValidationIssue is one invalid record.
type ValidationIssue struct {
	Index   int    `json:"index"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Hotels int               `json:"hotels"`
	Errors []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog>",
		Short: "Check a catalog against the hotel schema",
		Long: `Validate every record of a JSON, YAML or CUE catalog and report all
problems, not just the first.

Exit codes:
  0 - Catalog is valid
  1 - One or more records are invalid
  2 - Command error (missing file, unsupported format, malformed input)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	c, errs := catalog.Check(path, catalog.ModeCollectAll)
	if c == nil && len(errs) > 0 {
		return formatter.Fail(ExitCommandError, errorCode(errs[0]), "failed to load catalog", errs[0])
	}

	issues := make([]ValidationIssue, 0, len(errs))
	for _, err := range errs {
		issues = append(issues, toIssue(err))
	}
	formatter.VerboseLog("Checked %d record(s) in %s", c.Len()+len(issues), path)

	if len(issues) > 0 {
		return outputValidationErrors(formatter, c.Len(), issues)
	}

	if opts.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Hotels: c.Len()})
	}
	fmt.Fprintf(formatter.Writer, "✓ %d hotel(s) valid\n", c.Len())
	return nil
}

func toIssue(err error) ValidationIssue {
	var verr *catalog.ValidationError
	if !errors.As(err, &verr) {
		return ValidationIssue{Index: -1, Message: err.Error()}
	}

	issue := ValidationIssue{Index: verr.Index, Field: verr.Field, Message: verr.Message}
	if verr.Pos.IsValid() {
		issue.Line = verr.Pos.Line()
	}
	return issue
}

func outputValidationErrors(formatter *OutputFormatter, valid int, issues []ValidationIssue) error {
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Hotels: valid, Errors: issues},
			Error: &CLIError{
				Code:    ErrCodeValidation,
				Message: issues[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return exitErr
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, issue := range issues {
		loc := fmt.Sprintf("hotels[%d]", issue.Index)
		if issue.Field != "" {
			loc += "." + issue.Field
		}
		if issue.Line > 0 {
			loc = fmt.Sprintf("line %d: %s", issue.Line, loc)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n", ErrCodeValidation, loc, issue.Message)
	}

	return exitErr
}
