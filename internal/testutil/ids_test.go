package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedIDGenerator_Counter(t *testing.T) {
	gen := NewFixedIDGenerator("")
	assert.Equal(t, "hotel-0001", gen.NewID())
	assert.Equal(t, "hotel-0002", gen.NewID())

	custom := NewFixedIDGenerator("h")
	assert.Equal(t, "h-0001", custom.NewID())
}

func TestFixedIDGenerator_List(t *testing.T) {
	gen := NewFixedIDList("a", "b")
	assert.Equal(t, "a", gen.NewID())
	assert.Equal(t, "b", gen.NewID())
	assert.Panics(t, func() { gen.NewID() })
}

func TestSampleHotels_FreshCopy(t *testing.T) {
	first := SampleHotels()
	first[0].Amenities[0] = "changed"

	assert.Equal(t, "safety-box", SampleHotels()[0].Amenities[0])
	assert.Len(t, SampleHotels(), 4)
}
