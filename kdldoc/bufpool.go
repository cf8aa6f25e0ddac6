package kdldoc

import "sync"

// slicePool is a process-wide []byte pool. Three instances exist: one for
// a document's retained UTF-8 input buffer, one for the row-storage buffer
// backing a metadataDB, and scratchPool (unescape.go) for large unescape
// scratch buffers. Each zeroes a buffer before returning it to the pool,
// since any of them may carry sensitive payload bytes.
type slicePool struct {
	p sync.Pool
}

// get returns a slice of length n. Its backing array may be larger
// (whatever a prior put left behind); callers must not assume cap(b) == n.
func (sp *slicePool) get(n int) []byte {
	if v, ok := sp.p.Get().([]byte); ok && v != nil {
		if cap(v) >= n {
			return v[:n]
		}
	}
	return make([]byte, n)
}

// put zeroes b's full capacity and returns it to the pool.
func (sp *slicePool) put(b []byte) {
	if b == nil {
		return
	}
	full := b[:cap(b)]
	for i := range full {
		full[i] = 0
	}
	sp.p.Put(full) //nolint:staticcheck // small non-pointer value, matches corpus style
}

var (
	byteBufferPool = &slicePool{} // takes back a pooled UTF-8 input buffer on Dispose; Parse does not rent from it
	rowBufferPool  = &slicePool{} // rents the MetadataDB row storage
)
