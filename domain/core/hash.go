package core

import (
	"crypto/sha256"
	"encoding/binary"
)

// SeedKey derives a 32-byte stream key from a stream name and a numeric seed.
// Identical (name, seed) pairs always yield the same key.
func SeedKey(name string, seed int64) [32]byte {
	buf := make([]byte, 0, len(name)+9)
	buf = append(buf, name...)
	buf = append(buf, 0)
	buf = binary.BigEndian.AppendUint64(buf, uint64(seed))
	return sha256.Sum256(buf)
}
