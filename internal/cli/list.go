package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/hotels/internal/events"
	"github.com/roach88/hotels/internal/filter"
	"github.com/roach88/hotels/internal/hotel"
	"github.com/roach88/hotels/internal/pipes"
	"github.com/roach88/hotels/internal/value"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Database string
	Stars    string
	Query    string
	Order    string
	Exact    bool
	AnyKey   string
}

// ListResult is the JSON payload of the list command.
type ListResult struct {
	Count  int           `json:"count"`
	Hotels []hotel.Hotel `json:"hotels"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list [catalog]",
		Short: "List hotels with optional sorting and filtering",
		Long: `List hotels from a catalog file or a database, sorted by price.

Filters are applied the same way the listing page applies its events, in
this order: --stars, --query, --order. Each one starts again from the full
list, so the last one given wins.

Flag values are read as JSON when they parse, otherwise as text:
  --stars 4                       hotels whose stars contain 4
  --stars '{"stars": "!2"}'       hotels without 2 stars
  --query boston                  any field contains "boston"
  --query '{"name": "palace"}'    name contains "palace"
  --order name-ASC                sort by name, ascending

Examples:
  hotels list ./hotels.json
  hotels list --db ./hotels.db --stars 4 --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runList(cmd.Context(), opts, path, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (used when no catalog is given)")
	cmd.Flags().StringVar(&opts.Stars, "stars", "", "stars filter (number or JSON pattern)")
	cmd.Flags().StringVar(&opts.Query, "query", "", "free-text or JSON pattern filter")
	cmd.Flags().StringVar(&opts.Order, "order", "", `sort directive, e.g. "price-DESC"`)
	cmd.Flags().BoolVar(&opts.Exact, "exact", false, "match values exactly instead of by substring")
	cmd.Flags().StringVar(&opts.AnyKey, "any-key", filter.DefaultAnyPropertyKey, "pattern key that matches any property")

	return cmd
}

func runList(ctx context.Context, opts *ListOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())

	src, closeSrc, err := openSource(formatter, path, opts.Database)
	if err != nil {
		return err
	}
	defer closeSrc()

	listing := hotel.NewListing(
		hotel.WithLogger(logger),
		hotel.WithFilterOptions(
			filter.WithExact(opts.Exact),
			filter.WithAnyPropertyKey(opts.AnyKey),
		),
	)
	if err := listing.Load(ctx, src); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeRead, "failed to load hotels", err)
	}

	var handlerErr error
	bus := events.NewBus(
		events.WithLogger(logger),
		events.WithErrorHandler(func(ev events.Event, err error) {
			if handlerErr == nil {
				handlerErr = fmt.Errorf("--%s: %w", flagForTopic(ev.Topic), err)
			}
		}),
	)
	listing.Subscribe(bus)

	for _, step := range []struct {
		topic string
		raw   string
	}{
		{hotel.TopicStars, opts.Stars},
		{hotel.TopicHotel, opts.Query},
		{hotel.TopicOrderBy, opts.Order},
	} {
		if step.raw == "" {
			continue
		}
		v := parseFlagValue(step.raw)
		switch step.topic {
		case hotel.TopicStars:
			v = starsPattern(v)
		case hotel.TopicOrderBy:
			v = value.String(step.raw)
		}
		if _, err := bus.Publish(step.topic, v); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to publish event", err)
		}
	}
	bus.Close()
	if err := bus.Drain(ctx); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "event dispatch interrupted", err)
	}
	if handlerErr != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "invalid flag", handlerErr)
	}

	hotels := listing.Hotels()
	if opts.Format == "json" {
		if hotels == nil {
			hotels = []hotel.Hotel{}
		}
		return formatter.Success(ListResult{Count: len(hotels), Hotels: hotels})
	}

	renderHotels(formatter, hotels)
	return nil
}

// starsPattern turns a bare stars value into {"stars": v}. Patterns are
// passed through.
func starsPattern(v value.Value) value.Value {
	if _, ok := v.(value.Object); ok {
		return v
	}
	return value.Object{"stars": v}
}

func flagForTopic(topic string) string {
	switch topic {
	case hotel.TopicStars:
		return "stars"
	case hotel.TopicHotel:
		return "query"
	case hotel.TopicOrderBy:
		return "order"
	default:
		return topic
	}
}

func renderHotels(f *OutputFormatter, hotels []hotel.Hotel) {
	if len(hotels) == 0 {
		fmt.Fprintln(f.Writer, "No hotels found.")
		return
	}

	fmt.Fprintf(f.Writer, "%-38s  %-30s  %-5s  %10s\n", "ID", "NAME", "STARS", "PRICE")
	for _, h := range hotels {
		fmt.Fprintf(f.Writer, "%-38s  %-30s  %-5s  %10s\n",
			h.ID,
			h.Name,
			starGlyphs(h.Stars),
			value.FormatNumber(h.Price),
		)
		if f.Verbose && len(h.Amenities) > 0 {
			fmt.Fprintf(f.Writer, "%-38s  amenities: %s\n", "", strings.Join(h.Amenities, ", "))
		}
	}
	fmt.Fprintf(f.Writer, "\n%d hotel(s)\n", len(hotels))
}

func starGlyphs(stars int) string {
	return strings.Repeat("★", len(pipes.NumberToArray(value.Number(stars))))
}
