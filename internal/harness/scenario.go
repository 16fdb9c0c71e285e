package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario is a recorded sequence of listing events with expectations.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Catalog is a path to a catalog file, relative to the scenario file.
	// Exactly one of Catalog and Hotels must be set.
	Catalog string `yaml:"catalog,omitempty"`

	// Hotels is an inline catalog, validated like a catalog file.
	Hotels []map[string]any `yaml:"hotels,omitempty"`

	// Exact switches the filter to deep equality.
	Exact bool `yaml:"exact,omitempty"`

	// AnyKey overrides the any-property key ("$" by default).
	AnyKey string `yaml:"any_key,omitempty"`

	Events []EventStep `yaml:"events"`

	// Expect is checked against the list after the last event.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// EventStep publishes one value on a topic.
type EventStep struct {
	Topic string `yaml:"topic"`

	// Value is the payload. YAML null publishes a null value.
	Value any `yaml:"value"`

	// Reset publishes an absent value instead of Value.
	Reset bool `yaml:"reset,omitempty"`

	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause describes the visible list after an event. Unset fields
// are not checked.
type ExpectClause struct {
	// IDs is the exact, ordered list of visible hotel IDs.
	IDs []string `yaml:"ids,omitempty"`

	// Names is the exact, ordered list of visible hotel names.
	Names []string `yaml:"names,omitempty"`

	// Count is the number of visible hotels.
	Count *int `yaml:"count,omitempty"`

	// Error is a substring the handler error must contain. An event with
	// no Error expectation must not fail.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. A relative Catalog
// path is resolved against the scenario file's directory.
// Unknown fields are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Catalog != "" && !filepath.IsAbs(scenario.Catalog) {
		scenario.Catalog = filepath.Join(filepath.Dir(path), scenario.Catalog)
	}

	if scenario.Catalog != "" {
		if _, err := os.Stat(scenario.Catalog); os.IsNotExist(err) {
			return nil, fmt.Errorf("invalid scenario: catalog file not found: %s", scenario.Catalog)
		}
	}

	return scenario, nil
}

// ParseScenario parses scenario YAML. Catalog paths are left as written.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Catalog == "" && s.Hotels == nil:
		return fmt.Errorf("one of catalog or hotels is required")
	case s.Catalog != "" && s.Hotels != nil:
		return fmt.Errorf("catalog and hotels are mutually exclusive")
	}

	if len(s.Events) == 0 {
		return fmt.Errorf("events list is required and must be non-empty")
	}

	for i, ev := range s.Events {
		if ev.Topic == "" {
			return fmt.Errorf("events[%d]: topic is required", i)
		}
		if ev.Reset && ev.Value != nil {
			return fmt.Errorf("events[%d]: reset and value are mutually exclusive", i)
		}
		if err := validateExpect(fmt.Sprintf("events[%d].expect", i), ev.Expect); err != nil {
			return err
		}
	}

	return validateExpect("expect", s.Expect)
}

func validateExpect(where string, e *ExpectClause) error {
	if e == nil {
		return nil
	}
	if e.Count != nil && *e.Count < 0 {
		return fmt.Errorf("%s: count must be non-negative", where)
	}
	if e.IDs == nil && e.Names == nil && e.Count == nil && e.Error == "" {
		return fmt.Errorf("%s: at least one of ids, names, count or error is required", where)
	}
	return nil
}
