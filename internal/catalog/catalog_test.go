package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hotels/internal/hotel"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const jsonCatalog = `[
  {"id": "1", "name": "Hotel Emperador", "stars": 3, "price": 1596, "amenities": ["safety-box", "nightclub"]},
  {"id": "2", "name": "Petit Palace San Bernardo", "stars": 4, "price": 2145.5, "image": "4900059_30_b.jpg"}
]`

const yamlCatalog = `hotels:
  - id: "1"
    name: Hotel Emperador
    stars: 3
    price: 1596
    amenities: [safety-box, nightclub]
  - id: "2"
    name: Petit Palace San Bernardo
    stars: 4
    price: 2145.5
    image: 4900059_30_b.jpg
`

const cueCatalog = `hotels: [
	{id: "1", name: "Hotel Emperador", stars: 3, price: 1596, amenities: ["safety-box", "nightclub"]},
	{id: "2", name: "Petit Palace San Bernardo", stars: 4, price: 2145.5, image: "4900059_30_b.jpg"},
]
`

func wantHotels() []hotel.Hotel {
	return []hotel.Hotel{
		{ID: "1", Name: "Hotel Emperador", Stars: 3, Price: 1596, Amenities: []string{"safety-box", "nightclub"}},
		{ID: "2", Name: "Petit Palace San Bernardo", Stars: 4, Price: 2145.5, Image: "4900059_30_b.jpg"},
	}
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json list", "hotels.json", jsonCatalog},
		{"yaml hotels key", "hotels.yaml", yamlCatalog},
		{"yml extension", "hotels.yml", yamlCatalog},
		{"cue hotels key", "hotels.cue", cueCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)

			c, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, path, c.Path)
			assert.Equal(t, 2, c.Len())

			got, err := c.All(context.Background())
			require.NoError(t, err)
			assert.Equal(t, wantHotels(), got)
		})
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, "hotels.csv", "name,stars\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeFile(t, "hotels.json", `[{"name": `)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse JSON catalog")
}

func TestLoad_NoHotelsList(t *testing.T) {
	path := writeFile(t, "hotels.json", `{"rooms": []}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hotels")
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		record string
		field  string
	}{
		{"empty name", `{"name": "", "stars": 3, "price": 10}`, "name"},
		{"stars too high", `{"name": "A", "stars": 6, "price": 10}`, "stars"},
		{"stars not int", `{"name": "A", "stars": 2.5, "price": 10}`, "stars"},
		{"negative price", `{"name": "A", "stars": 3, "price": -1}`, "price"},
		{"amenity not string", `{"name": "A", "stars": 3, "price": 1, "amenities": [1]}`, "amenities"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "hotels.json", "["+tt.record+"]")

			_, err := Load(path)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %T: %v", err, err)
			assert.Equal(t, 0, verr.Index)
			assert.Contains(t, verr.Field, tt.field)
			assert.NotEmpty(t, verr.Message)
		})
	}
}

func TestLoad_MissingRequiredField(t *testing.T) {
	path := writeFile(t, "hotels.json", `[{"name": "A", "stars": 3}]`)

	_, err := Load(path)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 0, verr.Index)
}

func TestLoad_ExtraFieldsAllowed(t *testing.T) {
	path := writeFile(t, "hotels.json", `[{"name": "A", "stars": 3, "price": 10, "rating": 9.1}]`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestCheck_CollectAll(t *testing.T) {
	path := writeFile(t, "hotels.json", `[
		{"name": "Good", "stars": 3, "price": 10},
		{"name": "", "stars": 3, "price": 10},
		{"name": "Also good", "stars": 5, "price": 0},
		{"name": "Bad", "stars": 0, "price": 10}
	]`)

	c, errs := Check(path, ModeCollectAll)
	require.Len(t, errs, 2)
	require.NotNil(t, c)
	assert.Equal(t, 2, c.Len())

	var first, second *ValidationError
	require.True(t, errors.As(errs[0], &first))
	require.True(t, errors.As(errs[1], &second))
	assert.Equal(t, 1, first.Index)
	assert.Equal(t, 3, second.Index)
	assert.Contains(t, first.Error(), "hotels[1]")
}

func TestCheck_FailFastStopsAtFirst(t *testing.T) {
	path := writeFile(t, "hotels.json", `[
		{"name": "", "stars": 3, "price": 10},
		{"name": "Bad", "stars": 0, "price": 10}
	]`)

	c, errs := Check(path, ModeFailFast)
	assert.Nil(t, c)
	assert.Len(t, errs, 1)
}

func TestCheck_CUEPositions(t *testing.T) {
	path := writeFile(t, "hotels.cue", `hotels: [
	{name: "A", stars: 9, price: 1},
]
`)

	_, errs := Check(path, ModeCollectAll)
	require.Len(t, errs, 1)

	var verr *ValidationError
	require.True(t, errors.As(errs[0], &verr))
	assert.Contains(t, verr.Field, "stars")
}

func TestFromDocument(t *testing.T) {
	doc := []any{
		map[string]any{"name": "Inline", "stars": 2, "price": 99.5},
	}

	c, errs := FromDocument(doc, ModeFailFast)
	require.Empty(t, errs)

	got, err := c.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []hotel.Hotel{{Name: "Inline", Stars: 2, Price: 99.5}}, got)
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	c, errs := FromDocument([]any{map[string]any{"name": "A", "stars": 1, "price": 1}}, ModeFailFast)
	require.Empty(t, errs)

	first, _ := c.All(context.Background())
	first[0].Name = "changed"

	second, _ := c.All(context.Background())
	assert.Equal(t, "A", second[0].Name)
}

func TestFormatFor(t *testing.T) {
	for path, want := range map[string]Format{
		"a.json": FormatJSON,
		"a.JSON": FormatJSON,
		"a.yaml": FormatYAML,
		"a.yml":  FormatYAML,
		"a.cue":  FormatCUE,
	} {
		got, err := FormatFor(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFor("a.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Equal(t, "yaml", FormatYAML.String())
}

var _ hotel.Source = (*Catalog)(nil)
