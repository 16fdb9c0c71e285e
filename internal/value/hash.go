package value

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for a future algorithm change.
const (
	DomainHotel = "hotels/hotel/v1"
)

// ContentHash computes SHA-256(domain || 0x00 || canonical(v)) as hex.
// The null separator prevents domain/data boundary ambiguity.
func ContentHash(domain string, v Value) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("content hash: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}
