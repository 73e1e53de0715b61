package hash

import "github.com/cespare/xxhash/v2"

// Payload computes the xxHash64 digest of a record payload.
func Payload(data []byte) uint64 {
	return xxhash.Sum64(data)
}
