package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/hotels/internal/value"
)

// TraceSnapshot is the golden-file form of a scenario run.
type TraceSnapshot struct {
	ScenarioName string
	Trace        []TraceEvent
	Final        []string
}

// MarshalCanonical renders the snapshot as canonical JSON. Absent event
// values (resets) are omitted.
func (s *TraceSnapshot) MarshalCanonical() ([]byte, error) {
	trace := make(value.Array, len(s.Trace))
	for i, ev := range s.Trace {
		obj := value.Object{
			"seq":     value.Number(ev.Seq),
			"topic":   value.String(ev.Topic),
			"value":   ev.Value,
			"visible": stringArray(ev.Visible),
		}
		if ev.Value == nil {
			obj["value"] = value.Missing{}
		}
		if ev.Error != "" {
			obj["error"] = value.String(ev.Error)
		}
		trace[i] = obj
	}

	return value.MarshalCanonical(value.Object{
		"scenario_name": value.String(s.ScenarioName),
		"trace":         trace,
		"final":         stringArray(s.Final),
	})
}

func stringArray(items []string) value.Array {
	arr := make(value.Array, len(items))
	for i, s := range items {
		arr[i] = value.String(s)
	}
	return arr
}

// RunWithGolden executes a scenario and compares the trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result's trace against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		Trace:        result.Trace,
		Final:        result.Final,
	}
	traceJSON, err := snapshot.MarshalCanonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
