package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/hotels/internal/harness"
)

// ScenarioResult holds the result of a single scenario replay.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Events int      `json:"events"`
	Final  []string `json:"final"`
	Errors []string `json:"errors,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml>...",
		Short: "Replay listing scenarios and check expectations",
		Long: `Replay recorded listing scenarios: publish each event, then compare the
visible hotels with the scenario's expectations.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid scenario, missing catalog, etc.)

Examples:
  hotels replay ./scenarios/sort_and_filter.yaml
  hotels replay ./scenarios/*.yaml --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runReplay(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())

	result := ReplayResult{Scenarios: make([]ScenarioResult, 0, len(paths))}
	for _, path := range paths {
		scenario, err := harness.LoadScenario(path)
		if err != nil {
			return formatter.Fail(ExitCommandError, errorCode(err), fmt.Sprintf("failed to load scenario %s", path), err)
		}

		formatter.VerboseLog("Replaying %s (%d event(s))", scenario.Name, len(scenario.Events))
		run, err := harness.Run(scenario, harness.WithLogger(logger))
		if err != nil {
			return formatter.Fail(ExitCommandError, errorCode(err), fmt.Sprintf("failed to run scenario %s", scenario.Name), err)
		}

		sr := ScenarioResult{
			Name:   scenario.Name,
			Pass:   run.Pass,
			Events: len(run.Trace),
			Final:  run.Final,
			Errors: run.Errors,
		}
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
		result.Scenarios = append(result.Scenarios, sr)
	}
	result.Total = len(result.Scenarios)

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		for _, sr := range result.Scenarios {
			if sr.Pass {
				fmt.Fprintf(formatter.Writer, "✓ %s (%d event(s))\n", sr.Name, sr.Events)
				continue
			}
			fmt.Fprintf(formatter.Writer, "✗ %s\n", sr.Name)
			for _, msg := range sr.Errors {
				fmt.Fprintf(formatter.Writer, "    %s\n", msg)
			}
		}
		fmt.Fprintf(formatter.Writer, "\n%d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	return nil
}
