package hotel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/roach88/hotels/internal/events"
	"github.com/roach88/hotels/internal/filter"
	"github.com/roach88/hotels/internal/value"
)

// Topics the listing subscribes to.
const (
	TopicOrderBy = "orderBy"
	TopicStars   = "stars"
	TopicHotel   = "hotel"
)

// DefaultSortField orders the list right after loading.
const DefaultSortField = "price"

// ErrNotLoaded is returned by listing operations before Load succeeds.
var ErrNotLoaded = errors.New("hotel list not loaded")

// Subscriber is the part of an event channel the listing needs.
type Subscriber interface {
	Subscribe(topic string, h events.Handler)
}

// Listing holds the fetched hotels and the currently visible subset.
//
// Every sort or filter operation starts from the original list, so
// operations replace each other rather than compose. Safe for concurrent
// use.
type Listing struct {
	mu       sync.RWMutex
	original []Hotel
	current  []Hotel
	loaded   bool

	logger     *slog.Logger
	filterOpts []filter.Option
}

// Option configures a Listing.
type Option func(*Listing)

// WithLogger sets the listing's logger. It is also passed to the filter.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Listing) {
		l.logger = logger
	}
}

// WithFilterOptions sets options applied to every filter call, e.g.
// filter.WithExact(true).
func WithFilterOptions(opts ...filter.Option) Option {
	return func(l *Listing) {
		l.filterOpts = append(l.filterOpts, opts...)
	}
}

// NewListing creates an empty, unloaded listing.
func NewListing(opts ...Option) *Listing {
	l := &Listing{logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches all hotels from src and sorts them ascending by price.
// On error the previous state is kept.
func (l *Listing) Load(ctx context.Context, src Source) error {
	hotels, err := src.All(ctx)
	if err != nil {
		l.logger.Error("hotel fetch failed", "error", err)
		return fmt.Errorf("load hotels: %w", err)
	}

	sorted := sortHotels(hotels, DefaultSortField)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.original = sorted
	l.current = sorted
	l.loaded = true

	l.logger.Debug("hotels loaded", "count", len(sorted))
	return nil
}

// OrderBy re-sorts the original list by a "field-ASC" / "field-DESC"
// directive. Descending order is the reverse of the ascending order.
func (l *Listing) OrderBy(directive string) error {
	d, err := ParseDirective(directive)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.loaded {
		return ErrNotLoaded
	}

	sorted := sortHotels(l.original, d.Field)
	if d.Direction == Descending {
		slices.Reverse(sorted)
	}
	l.current = sorted

	l.logger.Debug("hotels ordered", "field", d.Field, "direction", d.Direction.String())
	return nil
}

// Stars filters the original list by expr. A Missing expression restores
// the original list.
func (l *Listing) Stars(expr value.Value) error {
	return l.applyFilter(TopicStars, expr, value.KindOf(expr) == value.KindMissing)
}

// Query filters the original list by a free-text or structured
// expression. A Missing expression or the empty string restores the
// original list.
func (l *Listing) Query(expr value.Value) error {
	s, isString := expr.(value.String)
	reset := value.KindOf(expr) == value.KindMissing || (isString && s == "")
	return l.applyFilter(TopicHotel, expr, reset)
}

func (l *Listing) applyFilter(source string, expr value.Value, reset bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.loaded {
		return ErrNotLoaded
	}

	if reset {
		l.current = l.original
		l.logger.Debug("hotel filter cleared", "source", source)
		return nil
	}

	opts := append([]filter.Option{filter.WithLogger(l.logger)}, l.filterOpts...)
	l.current = filter.Slice(l.original, expr, opts...)

	l.logger.Debug("hotels filtered", "source", source, "visible", len(l.current))
	return nil
}

// Hotels returns a copy of the visible hotels.
func (l *Listing) Hotels() []Hotel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.current)
}

// Loaded reports whether Load has succeeded.
func (l *Listing) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

// Subscribe wires the listing to the orderBy, stars and hotel topics.
func (l *Listing) Subscribe(bus Subscriber) {
	bus.Subscribe(TopicOrderBy, func(ctx context.Context, ev events.Event) error {
		directive, ok := ev.Value.(value.String)
		if !ok {
			return fmt.Errorf("%w: expected string, got %s", ErrInvalidDirective, value.KindOf(ev.Value))
		}
		return l.OrderBy(string(directive))
	})
	bus.Subscribe(TopicStars, func(ctx context.Context, ev events.Event) error {
		return l.Stars(ev.Value)
	})
	bus.Subscribe(TopicHotel, func(ctx context.Context, ev events.Event) error {
		return l.Query(ev.Value)
	})
}

// sortHotels returns a stably sorted copy of hotels, ascending by field.
func sortHotels(hotels []Hotel, field string) []Hotel {
	type keyed struct {
		key   value.Value
		hotel Hotel
	}

	items := make([]keyed, len(hotels))
	for i, h := range hotels {
		items[i] = keyed{key: value.Get(h.Value(), field), hotel: h}
	}
	slices.SortStableFunc(items, func(a, b keyed) int {
		return value.Compare(a.key, b.key)
	})

	out := make([]Hotel, len(items))
	for i, it := range items {
		out[i] = it.hotel
	}
	return out
}
