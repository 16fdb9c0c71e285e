package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/hotels/internal/catalog"
	"github.com/roach88/hotels/internal/events"
	"github.com/roach88/hotels/internal/filter"
	"github.com/roach88/hotels/internal/hotel"
	"github.com/roach88/hotels/internal/testutil"
	"github.com/roach88/hotels/internal/value"
)

// Harness wires a listing to a bus with a deterministic clock.
type Harness struct {
	bus     *events.Bus
	listing *hotel.Listing
	clock   *testutil.DeterministicClock
	logger  *slog.Logger

	// lastErr is set by the bus error hook during Drain.
	lastErr error
}

// Option configures a scenario run.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger routes bus and listing logs to logger. Runs are silent by
// default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Run executes a scenario and returns its trace and any failed
// expectations. Errors are returned only when the scenario cannot run at
// all, e.g. an invalid catalog.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := config{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx := context.Background()

	src, err := scenarioSource(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to load hotels: %w", err)
	}

	h := &Harness{
		clock:  testutil.NewDeterministicClock(),
		logger: cfg.logger,
	}
	h.bus = events.NewBus(
		events.WithClock(h.clock),
		events.WithLogger(cfg.logger),
		events.WithErrorHandler(func(_ events.Event, err error) {
			h.lastErr = err
		}),
	)

	var filterOpts []filter.Option
	if scenario.Exact {
		filterOpts = append(filterOpts, filter.WithExact(true))
	}
	if scenario.AnyKey != "" {
		filterOpts = append(filterOpts, filter.WithAnyPropertyKey(scenario.AnyKey))
	}
	h.listing = hotel.NewListing(
		hotel.WithLogger(cfg.logger),
		hotel.WithFilterOptions(filterOpts...),
	)

	if err := h.listing.Load(ctx, src); err != nil {
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}
	h.listing.Subscribe(h.bus)

	result := NewResult()
	for i, step := range scenario.Events {
		ev, err := h.publish(ctx, step)
		if err != nil {
			return nil, fmt.Errorf("events[%d]: %w", i, err)
		}
		result.Trace = append(result.Trace, ev)

		for _, failure := range checkEvent(i, ev, step.Expect, h.listing.Hotels()) {
			result.AddError(failure.Error())
		}
	}

	final := h.listing.Hotels()
	result.Final = hotelIDs(final)
	if scenario.Expect != nil {
		for _, failure := range checkExpect("expect", *scenario.Expect, final) {
			result.AddError(failure.Error())
		}
	}

	return result, nil
}

// publish sends one step through the bus and dispatches it.
func (h *Harness) publish(ctx context.Context, step EventStep) (TraceEvent, error) {
	var v value.Value = value.Missing{}
	if !step.Reset {
		v = value.From(step.Value)
	}

	h.lastErr = nil
	seq, err := h.bus.Publish(step.Topic, v)
	if err != nil {
		return TraceEvent{}, err
	}
	if err := h.bus.Drain(ctx); err != nil {
		return TraceEvent{}, err
	}

	ev := TraceEvent{
		Seq:     seq,
		Topic:   step.Topic,
		Value:   v,
		Visible: hotelIDs(h.listing.Hotels()),
	}
	if h.lastErr != nil {
		ev.Error = h.lastErr.Error()
	}
	h.logger.Debug("scenario event applied", "seq", seq, "topic", step.Topic, "visible", len(ev.Visible))
	return ev, nil
}

func scenarioSource(s *Scenario) (hotel.Source, error) {
	if s.Catalog != "" {
		return catalog.Load(s.Catalog)
	}

	doc := make([]any, len(s.Hotels))
	for i, rec := range s.Hotels {
		doc[i] = rec
	}
	c, errs := catalog.FromDocument(doc, catalog.ModeFailFast)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return c, nil
}

func hotelIDs(hotels []hotel.Hotel) []string {
	ids := make([]string, len(hotels))
	for i, h := range hotels {
		ids[i] = h.ID
	}
	return ids
}
