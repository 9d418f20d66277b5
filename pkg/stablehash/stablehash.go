// Package stablehash computes deterministic, cross-process-stable hashes
// over arbitrary values by hashing a canonical serialized form.
//
// Values are marshaled to YAML before hashing: yaml.v3 emits map keys in
// sorted order and struct fields in declaration order, so the serialized
// bytes do not depend on pointer identity or map iteration order. Slices
// serialize in element order, which makes the hash order-sensitive where
// order carries meaning (e.g., the line snapshot of a file).
package stablehash

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Hash returns a stable 64-bit hash of v. Two logically equal values hash
// equal across repeated calls and across process restarts.
func Hash(v any) (uint64, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("canonicalize value: %w", err)
	}

	sum := sha256.Sum256(data)
	return binary.BigEndian.Uint64(sum[:8]), nil
}

// HashString returns a stable 64-bit hash of a string. It avoids the YAML
// round-trip for the common case of hashing a file identity.
func HashString(s string) uint64 {
	sum := sha256.Sum256([]byte(s))
	return binary.BigEndian.Uint64(sum[:8])
}

// Key renders a hash as a fixed-width hex string, suitable for use as a
// filesystem-safe storage key.
func Key(h uint64) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], h)
	return hex.EncodeToString(buf[:])
}
