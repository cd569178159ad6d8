// Package hashutil computes and verifies content fingerprints over
// primitive version files. A fingerprint is a string "<algo>:<hex>"; the
// algo prefix is optional when reading (defaults to blake3) and always
// emitted when writing.
package hashutil

import (
	"encoding/hex"
	"strings"

	"lukechampine.com/blake3"
)

// DefaultAlgo is the hash algorithm used when none is specified.
const DefaultAlgo = "blake3"

// Fingerprint computes the content fingerprint of data using DefaultAlgo,
// formatted as "blake3:<hex>".
func Fingerprint(data []byte) string {
	return Format(DefaultAlgo, data)
}

// Format computes a fingerprint for data under the named algorithm. Only
// "blake3" is currently implemented; an unrecognized algo yields the
// blake3 fingerprint, so a stored hash under an unknown algorithm compares
// unequal rather than silently passing. Additional algorithms slot in
// under the same "<algo>:<hex>" convention.
func Format(algo string, data []byte) string {
	switch algo {
	case "blake3", "":
		sum := blake3.Sum256(data)
		return "blake3:" + hex.EncodeToString(sum[:])
	default:
		return Format(DefaultAlgo, data)
	}
}

// Split separates a stored fingerprint into its algorithm and hex digest.
// A fingerprint with no "algo:" prefix is treated as blake3 for backward
// compatibility.
func Split(fingerprint string) (algo, hex string) {
	if idx := strings.IndexByte(fingerprint, ':'); idx >= 0 {
		return fingerprint[:idx], fingerprint[idx+1:]
	}
	return DefaultAlgo, fingerprint
}

// Equal reports whether stored matches the fingerprint of data. Comparison
// is byte-for-byte hex equality after normalizing the missing-prefix case.
func Equal(stored string, data []byte) bool {
	algo, digest := Split(stored)
	computed := Format(algo, data)
	_, computedDigest := Split(computed)
	return digest == computedDigest
}
