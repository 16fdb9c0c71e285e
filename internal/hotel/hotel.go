// Package hotel models hotel records and the listing that sorts and
// filters them in response to UI events.
package hotel

import (
	"context"

	"github.com/roach88/hotels/internal/value"
)

// Hotel is a single listing entry.
type Hotel struct {
	ID        string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name      string   `json:"name" yaml:"name"`
	Stars     int      `json:"stars" yaml:"stars"`
	Price     float64  `json:"price" yaml:"price"`
	Image     string   `json:"image,omitempty" yaml:"image,omitempty"`
	Amenities []string `json:"amenities,omitempty" yaml:"amenities,omitempty"`
}

// Source supplies the full hotel list. Implementations: catalog files and
// the SQLite store.
type Source interface {
	All(ctx context.Context) ([]Hotel, error)
}

// Value exposes the hotel to the filter and to sort directives. Empty
// optional fields are absent rather than empty strings, so they never
// match a query.
func (h Hotel) Value() value.Value {
	obj := h.content()
	if h.ID != "" {
		obj["id"] = value.String(h.ID)
	}
	return obj
}

// ContentHash identifies a hotel by its content, excluding the ID.
func (h Hotel) ContentHash() (string, error) {
	return value.ContentHash(value.DomainHotel, h.content())
}

func (h Hotel) content() value.Object {
	amenities := make(value.Array, len(h.Amenities))
	for i, a := range h.Amenities {
		amenities[i] = value.String(a)
	}

	obj := value.Object{
		"name":      value.String(h.Name),
		"stars":     value.Number(h.Stars),
		"price":     value.Number(h.Price),
		"amenities": amenities,
	}
	if h.Image != "" {
		obj["image"] = value.String(h.Image)
	}
	return obj
}
