package testutil

import "github.com/roach88/hotels/internal/hotel"

// SampleHotels returns a fresh copy of the four-hotel fixture used across
// package tests. Two hotels share a price so stable ordering is observable.
func SampleHotels() []hotel.Hotel {
	return []hotel.Hotel{
		{ID: "1", Name: "Hotel Emperador", Stars: 3, Price: 1596, Image: "4900059_30_b.jpg", Amenities: []string{"safety-box", "nightclub", "deep-soaking-bathtub", "beach", "business-center"}},
		{ID: "2", Name: "Petit Palace San Bernardo", Stars: 4, Price: 2145, Image: "4900059_30_b.jpg", Amenities: []string{"safety-box", "nightclub", "deep-soaking-bathtub", "beach"}},
		{ID: "3", Name: "Hotel Nuevo Boston", Stars: 2, Price: 861, Image: "4900059_30_b.jpg", Amenities: []string{"safety-box", "nightclub"}},
		{ID: "4", Name: "Hotel Santo Domingo", Stars: 4, Price: 1596, Image: "4900059_30_b.jpg", Amenities: []string{"business-center"}},
	}
}
