package ids

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// HexLength is the number of hex digits in a rendered 64-bit digest.
const HexLength = 16

// Digest64 derives a deterministic 64-bit value from an ordered tuple of fields.
// Each field is length-prefixed, so ("ab", "c") and ("a", "bc") never collide
// by construction.
func Digest64(fields ...string) uint64 {
	hash := sha256.New()
	var prefix [binary.MaxVarintLen64]byte
	for _, field := range fields {
		n := binary.PutUvarint(prefix[:], uint64(len(field)))
		hash.Write(prefix[:n])
		hash.Write([]byte(field))
	}
	sum := hash.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}

// FormatHex renders a digest as fixed-width lowercase hex.
func FormatHex(value uint64) string {
	return fmt.Sprintf("%0*x", HexLength, value)
}
