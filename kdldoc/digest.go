package kdldoc

import "github.com/cespare/xxhash/v2"

// digestBytes hashes a raw byte span for use as a content fingerprint (spec
// SPEC_FULL §6.7). Two elements with byte-identical raw spans — including
// through a clone_subtree — hash identically, underwriting the clone
// independence property with a cheap equality check.
func digestBytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}
