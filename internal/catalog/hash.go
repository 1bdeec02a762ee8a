package catalog

import (
	"hash/crc32"

	"golang.org/x/text/unicode/norm"
)

// Hash computes the value the game substitutes for HASH("s"): the IEEE
// CRC-32 of the NFC form of s, reinterpreted as a signed 32-bit integer.
func Hash(s string) int32 {
	sum := crc32.ChecksumIEEE([]byte(norm.NFC.String(s)))
	return int32(sum) // #nosec G115 -- wraparound is the intended reinterpretation
}
